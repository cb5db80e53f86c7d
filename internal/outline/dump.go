package outline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedDump is returned when a complete bookmark entry carries a level
// below 1 or a page that is not a non-negative integer.
var ErrMalformedDump = errors.New("malformed bookmark dump")

// pdftk dump_data_utf8 field prefixes
const (
	tagBookmark = "Bookmark"
	tagTitle    = "BookmarkTitle: "
	tagLevel    = "BookmarkLevel: "
	tagPage     = "BookmarkPageNumber: "
)

// ParseDump reads pdftk dump_data_utf8 output and returns the bookmarks in
// document order. An entry is collected only when a title, level and page
// line appear consecutively among the Bookmark* lines; anything else is
// skipped. pdftk reports page 0 for bookmarks without a page destination;
// those are kept.
func ParseDump(r io.Reader) ([]Record, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, tagBookmark) {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bookmark dump: %w", err)
	}

	var records []Record
	for i := 0; i+2 < len(lines); i++ {
		title, ok := cutField(lines[i], tagTitle)
		if !ok {
			continue
		}
		level, ok := cutField(lines[i+1], tagLevel)
		if !ok {
			continue
		}
		page, ok := cutField(lines[i+2], tagPage)
		if !ok {
			continue
		}

		rec := Record{Title: title}
		var err error
		if rec.Level, err = atLeast(level, 1); err != nil {
			return nil, fmt.Errorf("%w: %q: level %w", ErrMalformedDump, title, err)
		}
		if rec.StartPage, err = atLeast(page, 0); err != nil {
			return nil, fmt.Errorf("%w: %q: page %w", ErrMalformedDump, title, err)
		}
		records = append(records, rec)
		i += 2
	}

	return records, nil
}

// cutField strips prefix from line. The value must be non-empty.
func cutField(line, prefix string) (string, bool) {
	v, ok := strings.CutPrefix(line, prefix)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func atLeast(s string, floor int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < floor {
		return 0, fmt.Errorf("%d is below %d", n, floor)
	}
	return n, nil
}
