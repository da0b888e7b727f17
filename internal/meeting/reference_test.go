package meeting

import (
	"fmt"
	"strings"
	"testing"
)

func wordsTranscript(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestExcerptFirstWindow(t *testing.T) {
	transcript := wordsTranscript(500)

	got := Excerpt(1, transcript)
	fields := strings.Fields(got)
	if len(fields) != 90 {
		t.Fatalf("excerpt words = %d, want 90", len(fields))
	}
	if fields[0] != "w0" {
		t.Errorf("first word = %q, want w0", fields[0])
	}
	if !strings.HasSuffix(got, "…") {
		t.Error("clipped excerpt should end with an ellipsis")
	}
}

func TestExcerptStrideAndOverlap(t *testing.T) {
	transcript := wordsTranscript(500)

	second := strings.Fields(Excerpt(2, transcript))
	if second[0] != "w60" {
		t.Errorf("second window starts at %q, want w60", second[0])
	}
	// last 30 words of window 1 are the first 30 of window 2's stride
	first := strings.Fields(Excerpt(1, transcript))
	if first[60] != "w60" {
		t.Errorf("overlap start = %q, want w60", first[60])
	}
}

func TestExcerptShortTranscript(t *testing.T) {
	transcript := wordsTranscript(50)

	got := Excerpt(1, transcript)
	if strings.HasSuffix(got, "…") {
		t.Error("excerpt reaching the end must not be ellipsized")
	}
	if len(strings.Fields(got)) != 50 {
		t.Errorf("excerpt words = %d, want all 50", len(strings.Fields(got)))
	}
}

func TestExcerptOutOfRange(t *testing.T) {
	transcript := wordsTranscript(50)

	if got := Excerpt(2, transcript); got != NoExcerpt {
		t.Errorf("past-the-end id = %q, want NoExcerpt", got)
	}
	if got := Excerpt(0, transcript); got != NoExcerpt {
		t.Errorf("id 0 = %q, want NoExcerpt", got)
	}
	if got := Excerpt(-3, transcript); got != NoExcerpt {
		t.Errorf("negative id = %q, want NoExcerpt", got)
	}
	if got := Excerpt(1, ""); got != NoExcerpt {
		t.Errorf("empty transcript = %q, want NoExcerpt", got)
	}
}

func TestExcerptIsPure(t *testing.T) {
	transcript := wordsTranscript(300)
	a := Excerpt(3, transcript)
	b := Excerpt(3, transcript)
	if a != b {
		t.Error("same inputs must yield the same excerpt")
	}
}

func TestAssignRefsOrder(t *testing.T) {
	s := sampleStructure()
	rm := AssignRefs(s)

	// budget: header, key point, decision; budget-tools: header, two action
	// items; roadmap: header, decision
	if rm.Len() != 8 {
		t.Fatalf("refs = %d, want 8", rm.Len())
	}

	want := []Ref{
		{ID: 1, SectionID: "budget", Kind: RefSection},
		{ID: 2, SectionID: "budget", Kind: RefKeyPoint},
		{ID: 3, SectionID: "budget", Kind: RefDecision},
		{ID: 4, SectionID: "budget-tools", Kind: RefSection},
		{ID: 5, SectionID: "budget-tools", Kind: RefActionItem, ItemIndex: 0},
		{ID: 6, SectionID: "budget-tools", Kind: RefActionItem, ItemIndex: 1},
		{ID: 7, SectionID: "roadmap", Kind: RefSection},
		{ID: 8, SectionID: "roadmap", Kind: RefDecision},
	}
	for i, r := range rm.Refs() {
		if r != want[i] {
			t.Errorf("ref[%d] = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestAssignRefsDeterministic(t *testing.T) {
	s := sampleStructure()
	a := AssignRefs(s)
	b := AssignRefs(s)

	for i, r := range a.Refs() {
		if b.Refs()[i] != r {
			t.Fatal("same tree must produce the same mapping")
		}
	}
}

func TestIDFor(t *testing.T) {
	s := sampleStructure()
	rm := AssignRefs(s)

	if got := rm.IDFor("budget-tools", RefActionItem, 1); got != 6 {
		t.Errorf("IDFor action item = %d, want 6", got)
	}
	if got := rm.IDFor("missing", RefSection, 0); got != 0 {
		t.Errorf("IDFor unknown = %d, want 0", got)
	}
}
