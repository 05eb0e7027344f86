// Package rewrite splices replacement specifiers into source text by byte offset.
package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrStaleMapping is returned when a mapping's range no longer holds its original text.
	ErrStaleMapping = errors.New("mapping does not match source")
	// ErrOverlappingMappings is returned when two mappings touch the same bytes.
	ErrOverlappingMappings = errors.New("overlapping mappings")
)

// Mapping replaces one specifier occurrence. Start and End delimit the text
// between the quotes; quotes and everything outside the range are preserved.
type Mapping struct {
	Original    string `json:"original" yaml:"original" toml:"original"`
	Replacement string `json:"replacement" yaml:"replacement" toml:"replacement"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Index       int    `json:"index" yaml:"index" toml:"index"`
	Start       int    `json:"-" yaml:"-" toml:"-"`
	End         int    `json:"-" yaml:"-" toml:"-"`
	Line        int    `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
}

// Apply returns content with every mapping applied and whether it differs from
// the input. Mappings are applied back to front in reverse discovery order, so
// each replacement lands on untouched input bytes and earlier offsets stay
// valid. On error content is returned unchanged.
func Apply(content []byte, mappings []Mapping) ([]byte, bool, error) {
	if len(mappings) == 0 {
		return content, false, nil
	}

	ordered := make([]Mapping, len(mappings))
	copy(ordered, mappings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start > ordered[j].Start
		}
		return ordered[i].Index > ordered[j].Index
	})

	if err := validate(content, ordered); err != nil {
		return content, false, err
	}

	out := append([]byte(nil), content...)
	for _, m := range ordered {
		rest := append([]byte(m.Replacement), out[m.End:]...)
		out = append(out[:m.Start], rest...)
	}

	return out, !bytes.Equal(out, content), nil
}

// validate expects mappings sorted by descending Start.
func validate(content []byte, ordered []Mapping) error {
	prevStart := len(content) + 1
	for _, m := range ordered {
		if m.Start < 0 || m.End < m.Start || m.End > len(content) {
			return fmt.Errorf("%w: range [%d:%d] outside content", ErrStaleMapping, m.Start, m.End)
		}
		if m.End > prevStart || (m.End == prevStart && m.Start == prevStart) {
			return fmt.Errorf("%w: [%d:%d]", ErrOverlappingMappings, m.Start, m.End)
		}
		if got := string(content[m.Start:m.End]); got != m.Original {
			return fmt.Errorf("%w: expected %q at [%d:%d], found %q", ErrStaleMapping, m.Original, m.Start, m.End, got)
		}
		prevStart = m.Start
	}
	return nil
}
