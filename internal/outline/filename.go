package outline

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Ext is the extension given to every extracted file.
	Ext = ".pdf"

	// MaxFilenameLen bounds the title part of a default filename, in runes.
	MaxFilenameLen = 50

	fallbackFilename = "bookmark"
)

// DefaultFilename derives an output filename from a bookmark title.
// Diacritics are stripped, each run of non-alphanumeric characters becomes a
// single underscore, and the result is cut to maxLen runes before Ext is
// appended. maxLen <= 0 uses MaxFilenameLen.
func DefaultFilename(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxFilenameLen
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, title)
	if err != nil {
		plain = title
	}

	var b strings.Builder
	sep := false
	for _, r := range plain {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}

	name := []rune(b.String())
	if len(name) > maxLen {
		name = name[:maxLen]
	}
	out := strings.TrimRight(string(name), "_")
	if out == "" {
		out = fallbackFilename
	}
	return out + Ext
}

// BatchFilename names the ordinal-th batch output: prefix + ordinal + Ext.
func BatchFilename(prefix string, ordinal int) string {
	return prefix + strconv.Itoa(ordinal) + Ext
}
