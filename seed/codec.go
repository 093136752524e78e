// Package seed converts bird parameters to and from the short dotted seed string.
//
// A seed has five sections, each a one-letter tag followed by integer values:
//
//	m.<beak x4>.h.<head x7>.b.<belly x5>.t.<tail x5>.c.<cutoff x1>
//
// Values are truncated toward zero on encode, so seeds are lossy.
package seed

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pthm-cable/coolbirds/bird"
)

const separator = "."

var (
	// ErrBadValue is returned when a section value is not a number.
	ErrBadValue = errors.New("invalid seed value")
	// ErrArity is returned when a section has the wrong number of values.
	ErrArity = errors.New("wrong value count")
	// ErrUnknownSection is returned for a section tag that is not m, h, b, t or c.
	ErrUnknownSection = errors.New("unknown section prefix")
)

// Encode renders p as a seed string.
func Encode(p bird.Params) string {
	var sb strings.Builder
	for i, section := range bird.Sections {
		if i > 0 {
			sb.WriteString(separator)
		}
		sb.WriteString(section.Tag())
		for _, spec := range bird.SectionFields(section) {
			sb.WriteString(separator)
			sb.WriteString(strconv.Itoa(truncate(spec.Get(&p))))
		}
	}
	return sb.String()
}

func truncate(v float32) int {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Trunc(f))
}

// Decode applies the sections found in s to p.
// Sections may appear in any order and only the sections present are written.
// On error, sections before the failing one have already been applied.
func Decode(s string, p *bird.Params) error {
	tokens := strings.Split(strings.TrimSpace(s), separator)

	starts := sectionStarts(tokens)
	if len(starts) == 0 || starts[0] != 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, tokens[0])
	}

	for i, start := range starts {
		end := len(tokens)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		if err := applySection(tokens[start], tokens[start+1:end], p); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes s on top of the default bird.
func Parse(s string) (bird.Params, error) {
	p := bird.Default()
	if err := Decode(s, &p); err != nil {
		return bird.Params{}, err
	}
	return p, nil
}

// sectionStarts returns the indices of tokens that open a section.
func sectionStarts(tokens []string) []int {
	var starts []int
	for i, tok := range tokens {
		if isTagToken(tok) {
			starts = append(starts, i)
		}
	}
	return starts
}

// isTagToken reports whether tok looks like a section prefix rather than a value.
func isTagToken(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func applySection(tag string, raw []string, p *bird.Params) error {
	section, ok := bird.SectionForTag(tag)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, tag)
	}

	values := make([]float32, 0, len(raw))
	for _, tok := range raw {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("%w: section %q value %q", ErrBadValue, tag, tok)
		}
		values = append(values, float32(v))
	}

	specs := bird.SectionFields(section)
	if len(values) != len(specs) {
		return fmt.Errorf("%w: section %q expects %d values, got %d", ErrArity, tag, len(specs), len(values))
	}

	for i, spec := range specs {
		spec.Set(p, values[i])
	}
	return nil
}
