package outline

// Resolve returns the end page of records[i] under the given policy, or Open.
//
// Only records after i are examined, and the scan walks the full, unfiltered
// list so a record hidden by a Selection can still close a range. A boundary
// that would end the range before it starts (the next record starts on the
// same page, or on page 0) yields Open. i must be a valid index.
func Resolve(records []Record, i int, policy Policy) int {
	cur := records[i]
	for _, next := range records[i+1:] {
		if !policy.closes(next.Level, cur.Level) {
			continue
		}
		end := next.StartPage - 1
		if end < cur.StartPage {
			return Open
		}
		return end
	}
	return Open
}

// ResolveAll filters records by sel and resolves each kept record against
// the whole list. It returns nil when nothing matches.
func ResolveAll(records []Record, sel Selection, policy Policy) []Range {
	var ranges []Range
	for i, rec := range records {
		if !sel.Match(rec.Level) {
			continue
		}
		ranges = append(ranges, Range{
			Title: rec.Title,
			Level: rec.Level,
			Start: rec.StartPage,
			End:   Resolve(records, i, policy),
		})
	}
	return ranges
}
