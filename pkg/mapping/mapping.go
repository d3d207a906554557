// Package mapping defines the ordered old-name to new-name table applied by
// the batch renamer.
package mapping

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrDuplicateSource indicates two entries share the same old name.
	ErrDuplicateSource = errors.New("duplicate source name")
	// ErrOddPairs indicates FromPairs received an unpaired name.
	ErrOddPairs = errors.New("names must come in old/new pairs")

	errNotPlainName = validation.NewError("validation_not_plain_name", "must be a plain file name")
)

// Entry is a single intended rename inside the target directory.
type Entry struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Validate checks that both names are plain file names.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.From, validation.Required, validation.By(plainName)),
		validation.Field(&e.To, validation.Required, validation.By(plainName)),
	)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// Mapping is an ordered list of entries, unique by From. Order only affects
// output; entries are applied independently.
type Mapping []Entry

// Validate checks every entry and rejects repeated source names.
func (m Mapping) Validate() error {
	seen := make(map[string]int, len(m))
	for i, entry := range m {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("renames[%d]: %w", i, err)
		}
		if first, ok := seen[entry.From]; ok {
			return fmt.Errorf("renames[%d]: %w %q (first used at renames[%d])", i, ErrDuplicateSource, entry.From, first)
		}
		seen[entry.From] = i
	}

	return nil
}

// Sources returns the old names in mapping order.
func (m Mapping) Sources() []string {
	names := make([]string, 0, len(m))
	for _, entry := range m {
		names = append(names, entry.From)
	}

	return names
}

// FromPairs builds a mapping from alternating old and new names.
func FromPairs(names ...string) (Mapping, error) {
	if len(names)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d names", ErrOddPairs, len(names))
	}

	m := make(Mapping, 0, len(names)/2)
	for i := 0; i < len(names); i += 2 {
		m = append(m, Entry{From: names[i], To: names[i+1]})
	}

	return m, nil
}

// Default returns the hackathon submission asset renames.
func Default() Mapping {
	return Mapping{
		{From: "16_16bit_KOK_트랙1-1.pdf", To: "16bit_hackathon_presentation.pdf"},
		{From: "2026_02_09 00_20.mp4", To: "demo_video.mp4"},
		{From: "1770564041177.jpg", To: "screenshot_1.jpg"},
		{From: "1770564039628.jpg", To: "screenshot_2.jpg"},
	}
}

func plainName(value any) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}

	if name == "." || name == ".." ||
		strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) ||
		strings.ContainsRune(name, 0) ||
		filepath.VolumeName(name) != "" {
		return errNotPlainName
	}

	return nil
}
