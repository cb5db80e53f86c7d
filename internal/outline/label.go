package outline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidLabel is returned when a label has no trailing "[start-end]" suffix.
var ErrInvalidLabel = errors.New("invalid bookmark label")

// labelPattern matches the last bracketed page range in a label. The greedy
// title group lets titles contain brackets of their own.
var labelPattern = regexp.MustCompile(`^(.*) \[(\d+)-(\d*)\]$`)

// FormatLabel renders a range as "title [start-end]", leaving end empty when open.
func FormatLabel(r Range) string {
	end := ""
	if !r.IsOpen() {
		end = strconv.Itoa(r.End)
	}
	return fmt.Sprintf("%s [%d-%s]", r.Title, r.Start, end)
}

// ParseLabel is the inverse of FormatLabel. The returned Range has no Level.
func ParseLabel(label string) (Range, error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}

	start, err := strconv.Atoi(m[2])
	if err != nil {
		return Range{}, fmt.Errorf("%w: start page %q", ErrInvalidLabel, m[2])
	}

	end := Open
	if m[3] != "" {
		end, err = strconv.Atoi(m[3])
		if err != nil {
			return Range{}, fmt.Errorf("%w: end page %q", ErrInvalidLabel, m[3])
		}
	}

	return Range{Title: m[1], Start: start, End: end}, nil
}

// Labels formats every range in order.
func Labels(ranges []Range) []string {
	labels := make([]string, len(ranges))
	for i, r := range ranges {
		labels[i] = FormatLabel(r)
	}
	return labels
}
