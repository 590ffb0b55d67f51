package batch

import (
	"fmt"
	"strings"
)

// maxReportedFailures limits how many failure messages the summary
// spells out; the remainder is reported as a count.
const maxReportedFailures = 5

// Failure records one item that did not produce an output file.
type Failure struct {
	// Index is the 0-based position of the failed pair.
	Index int `json:"index"`

	// Message is the human-readable record, "Image <index+1>: <cause>".
	Message string `json:"message"`
}

// Result aggregates the outcome of a batch run.
type Result struct {
	Total     int       `json:"total"`              // Pairs attempted
	Succeeded int       `json:"succeeded"`          // Output files written
	Failures  []Failure `json:"failures,omitempty"` // Failed items, in order
}

// Ok reports whether every item produced an output file.
func (r *Result) Ok() bool {
	return len(r.Failures) == 0
}

// Summary renders the result the way the final report presents it:
// either full success or a partial count followed by at most five
// failure messages and a remainder count.
func (r *Result) Summary() string {
	if r.Ok() {
		return fmt.Sprintf("Successfully processed %d images.", r.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d/%d images successfully.\n\nErrors:\n", r.Succeeded, r.Total)
	for i, f := range r.Failures {
		if i == maxReportedFailures {
			break
		}
		b.WriteString(f.Message)
		b.WriteByte('\n')
	}
	if extra := len(r.Failures) - maxReportedFailures; extra > 0 {
		fmt.Fprintf(&b, "... and %d more errors\n", extra)
	}
	return strings.TrimRight(b.String(), "\n")
}
