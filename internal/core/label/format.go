// Package label implements the workspace label scheme: validation of the
// configurable format and deterministic rendering of allocated numbers.
// The package is pure (no I/O) so rendering can never fail at allocation
// time; malformed schemes are rejected earlier, when an administrator
// edits the workspace settings.
package label

import (
	"fmt"
	"strconv"
	"strings"

	"shelfmark/internal/core/apperror"
)

// Placeholder marks the position of the numeric component in a format
// string, e.g. "ITEM-{n}".
const Placeholder = "{n}"

// Scheme is an immutable snapshot of a workspace's label configuration.
// The allocator takes a fresh snapshot per call; it is never cached
// across allocations.
type Scheme struct {
	// Format is the template string containing exactly one Placeholder.
	Format string `json:"format"`

	// Padding is the minimum digit width of the numeric component.
	// Numbers wider than Padding are rendered at full width.
	Padding int `json:"padding"`

	// Separator joins static template text and the numeric component.
	// May be empty.
	Separator string `json:"separator"`
}

// DefaultScheme returns the scheme assigned to new workspaces.
func DefaultScheme() Scheme {
	return Scheme{
		Format:    "ITEM-" + Placeholder,
		Padding:   3,
		Separator: "-",
	}
}

// Validate checks a label scheme configuration. Called whenever an
// administrator edits workspace label settings, before the edit is
// persisted. A scheme that passes Validate always renders successfully.
func Validate(format string, padding int, separator string) error {
	if format == "" {
		return apperror.NewInvalidFormat("label format must not be empty")
	}
	if padding < 0 {
		return apperror.NewInvalidFormat("label padding must not be negative").
			WithDetail("padding", padding)
	}
	switch strings.Count(format, Placeholder) {
	case 1:
		// ok
	case 0:
		return apperror.NewInvalidFormat(
			fmt.Sprintf("label format must contain the %s placeholder", Placeholder)).
			WithDetail("format", format)
	default:
		return apperror.NewInvalidFormat(
			fmt.Sprintf("label format must contain exactly one %s placeholder", Placeholder)).
			WithDetail("format", format)
	}
	if strings.Contains(separator, Placeholder) {
		return apperror.NewInvalidFormat("label separator must not contain the placeholder").
			WithDetail("separator", separator)
	}
	return nil
}

// Validate checks the scheme.
func (s Scheme) Validate() error {
	return Validate(s.Format, s.Padding, s.Separator)
}

// Render formats the given number with this scheme.
func (s Scheme) Render(n int64) string {
	return Format(s.Format, s.Padding, s.Separator, n)
}

// Format renders a label: the number is zero-padded to at least padding
// digits (never truncated) and substituted at the placeholder, joined to
// the surrounding static text by separator. Static text that already ends
// or begins with the separator is not doubled, so "ITEM-{n}" and
// "ITEM{n}" render identically with separator "-".
//
// Pure and deterministic: identical inputs always produce an identical
// string.
func Format(format string, padding int, separator string, n int64) string {
	if padding < 0 {
		padding = 0
	}
	num := fmt.Sprintf("%0*d", padding, n)

	idx := strings.Index(format, Placeholder)
	if idx < 0 {
		// Unreachable for validated schemes.
		return num
	}

	prefix := format[:idx]
	suffix := format[idx+len(Placeholder):]

	var b strings.Builder
	if prefix != "" {
		b.WriteString(strings.TrimSuffix(prefix, separator))
		b.WriteString(separator)
	}
	b.WriteString(num)
	if suffix != "" {
		b.WriteString(separator)
		b.WriteString(strings.TrimPrefix(suffix, separator))
	}
	return b.String()
}

// ParseNumber extracts the numeric component from a rendered label.
// The last run of digits is taken, so static text may contain digits of
// its own ("A1-{n}"). Returns -1 if the label has no numeric component.
func ParseNumber(label string) int64 {
	end := -1
	start := -1
	for i := len(label) - 1; i >= 0; i-- {
		if label[i] >= '0' && label[i] <= '9' {
			if end == -1 {
				end = i + 1
			}
			start = i
		} else if end != -1 {
			break
		}
	}
	if end == -1 {
		return -1
	}

	n, err := strconv.ParseInt(label[start:end], 10, 64)
	if err != nil {
		return -1
	}
	return n
}
