package batch

import (
	"fmt"
	"strings"
	"testing"
)

func TestResult_SummaryFullSuccess(t *testing.T) {
	r := &Result{Total: 4, Succeeded: 4}

	if !r.Ok() {
		t.Fatal("result with no failures should be Ok")
	}
	if got, want := r.Summary(), "Successfully processed 4 images."; got != want {
		t.Errorf("Summary: got %q, want %q", got, want)
	}
}

func TestResult_SummaryPartial(t *testing.T) {
	r := &Result{Total: 3, Succeeded: 2, Failures: []Failure{
		{Index: 1, Message: "Image 2: decode b.png: broken"},
	}}

	s := r.Summary()
	if !strings.Contains(s, "Processed 2/3 images successfully.") {
		t.Errorf("Summary missing partial count: %q", s)
	}
	if !strings.Contains(s, "Image 2: decode b.png: broken") {
		t.Errorf("Summary missing failure message: %q", s)
	}
}

func TestResult_SummaryTruncatesErrors(t *testing.T) {
	r := &Result{Total: 10, Succeeded: 3}
	for i := 0; i < 7; i++ {
		r.Failures = append(r.Failures, Failure{
			Index:   i,
			Message: fmt.Sprintf("Image %d: boom", i+1),
		})
	}

	s := r.Summary()
	if !strings.Contains(s, "... and 2 more errors") {
		t.Errorf("Summary missing remainder count: %q", s)
	}
	if strings.Contains(s, "Image 6: boom") {
		t.Errorf("Summary should stop after five messages: %q", s)
	}
	if !strings.Contains(s, "Image 5: boom") {
		t.Errorf("Summary should include the fifth message: %q", s)
	}
}
