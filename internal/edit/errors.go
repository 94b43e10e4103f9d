package edit

import "fmt"

// IndexError reports a paragraph index outside [0, paragraph count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid paragraph index: %d. Document has %d paragraphs.", e.Index, e.Count)
}

// RangeError reports an inverted or out-of-bounds paragraph index pair.
// The message names the offending value and its bound so a caller can
// self-correct without further inspection.
type RangeError struct {
	Start int
	End   int
	Count int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start < 0:
		return fmt.Sprintf("start_index (%d) must be >= 0", e.Start)
	case e.End >= e.Count:
		return fmt.Sprintf("end_index (%d) exceeds paragraph count (%d)", e.End, e.Count)
	case e.Start > e.End:
		return fmt.Sprintf("start_index (%d) > end_index (%d)", e.Start, e.End)
	default:
		return fmt.Sprintf("invalid range [%d, %d]", e.Start, e.End)
	}
}

// ValidateRange rejects an invalid index pair before any mutation happens.
func ValidateRange(start, end, count int) error {
	if start < 0 || end >= count || start > end {
		return &RangeError{Start: start, End: end, Count: count}
	}
	return nil
}

// NotFoundError reports that neither the exact nor the substring matching
// pass located the requested text among eligible paragraphs.
type NotFoundError struct {
	Kind string // "start anchor", "end anchor", "header", "target paragraph"
	Text string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in document", e.Kind, e.Text)
}
