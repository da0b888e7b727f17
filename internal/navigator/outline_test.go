package navigator

import (
	"strings"
	"testing"

	"github.com/minute-tui/minute/internal/meeting"
)

func testStructure() *meeting.Structure {
	return &meeting.Structure{
		Title: "Weekly Sync",
		Context: meeting.Context{
			Purpose: "Align the team",
			Participants: []meeting.Participant{
				{Name: "Ana", Role: "PM"},
			},
		},
		Sections: []meeting.Section{
			{
				ID:      "status",
				Heading: "Status Updates",
				Level:   2,
				Content: "Everyone reported progress on their tracks.",
				Metadata: meeting.SectionMetadata{
					KeyPoints: []string{"backend migration on schedule"},
				},
				Subsections: []meeting.Section{
					{
						ID:      "status-infra",
						Heading: "Infrastructure",
						Level:   3,
						Metadata: meeting.SectionMetadata{
							Decisions: []string{"move staging to the new cluster"},
							ActionItems: []meeting.ActionItem{
								{Task: "drain old nodes", Owner: "Bo", Priority: "high"},
							},
						},
					},
				},
			},
			{
				ID:      "risks",
				Heading: "Risks",
				Level:   2,
			},
		},
	}
}

func mustOutline(t *testing.T) *Outline {
	t.Helper()
	o, err := NewOutline(testStructure())
	if err != nil {
		t.Fatalf("NewOutline: %v", err)
	}
	return o
}

func visibleIDs(o *Outline) []string {
	var ids []string
	for _, r := range o.VisibleRows() {
		ids = append(ids, r.Node.ID)
	}
	return ids
}

func TestOutlineStartsExpanded(t *testing.T) {
	o := mustOutline(t)

	got := visibleIDs(o)
	want := []string{"status", "status-infra", "risks"}
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visible[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollapseHidesChildrenOnly(t *testing.T) {
	o := mustOutline(t)

	o.Toggle("status")
	got := visibleIDs(o)
	if len(got) != 2 || got[0] != "status" || got[1] != "risks" {
		t.Errorf("visible = %v, collapsed node stays, its children go", got)
	}
}

func TestToggleIsLossless(t *testing.T) {
	o := mustOutline(t)

	before := visibleIDs(o)
	o.Toggle("status")
	o.Toggle("status")
	after := visibleIDs(o)

	if len(before) != len(after) {
		t.Fatalf("visible = %v, want %v after double toggle", after, before)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("row %d = %q, want %q", i, after[i], before[i])
		}
	}
	// the subtree itself was never mutated
	if o.Section("status-infra") == nil {
		t.Error("collapsed subtree must stay intact")
	}
}

func TestExpandCollapseAll(t *testing.T) {
	o := mustOutline(t)

	o.CollapseAll()
	if n := len(visibleIDs(o)); n != 2 {
		t.Errorf("visible after collapse all = %d, want only the roots", n)
	}
	o.CollapseAll() // collapsing twice changes nothing
	if n := len(visibleIDs(o)); n != 2 {
		t.Errorf("visible after second collapse = %d, want 2", n)
	}

	o.ExpandAll()
	if n := len(visibleIDs(o)); n != 3 {
		t.Errorf("visible after expand all = %d, want 3", n)
	}
}

func TestCollapsedSummary(t *testing.T) {
	o := mustOutline(t)

	got := o.Node("status").CollapsedSummary()
	if !strings.Contains(got, "1 points") || !strings.Contains(got, "1 subtopics") {
		t.Errorf("summary = %q", got)
	}

	if got := o.Node("risks").CollapsedSummary(); got != "collapsed" {
		t.Errorf("empty section summary = %q", got)
	}
}

func TestRenderDocumentAnchors(t *testing.T) {
	o := mustOutline(t)

	doc := o.RenderDocument(80, "")

	if len(doc.Anchors) != 4 {
		t.Fatalf("anchors = %d, want context + 3 sections", len(doc.Anchors))
	}
	if doc.Anchors[0].ID != ContextAnchorID {
		t.Errorf("first anchor = %q, want the context block", doc.Anchors[0].ID)
	}
	for i := 1; i < len(doc.Anchors); i++ {
		if doc.Anchors[i].Line <= doc.Anchors[i-1].Line {
			t.Errorf("anchor %d line %d not after anchor %d line %d",
				i, doc.Anchors[i].Line, i-1, doc.Anchors[i-1].Line)
		}
		if doc.Anchors[i].Line >= len(doc.Lines) {
			t.Errorf("anchor %d points past the rendered document", i)
		}
	}
}

func TestRenderDocumentCollapsedSection(t *testing.T) {
	o := mustOutline(t)
	o.Toggle("status")

	doc := o.RenderDocument(80, "")
	joined := strings.Join(doc.Lines, "\n")

	if strings.Contains(joined, "Infrastructure") {
		t.Error("collapsed section must hide its subsections")
	}
	if !strings.Contains(joined, "Status Updates") {
		t.Error("collapsed section keeps its heading")
	}
	if !strings.Contains(joined, "subtopics") {
		t.Error("collapsed section shows its inline summary")
	}
}

func TestRenderDocumentContent(t *testing.T) {
	o := mustOutline(t)

	doc := o.RenderDocument(80, "")
	joined := strings.Join(doc.Lines, "\n")

	for _, want := range []string{
		"Weekly Sync",
		"Align the team",
		"backend migration on schedule",
		"move staging to the new cluster",
		"drain old nodes",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestRenderOutlineBadges(t *testing.T) {
	o := mustOutline(t)

	rows := o.RenderOutline(40, 0, "status")
	joined := strings.Join(rows, "\n")

	if !strings.Contains(joined, "Status Updates") || !strings.Contains(joined, "Infrastructure") {
		t.Errorf("outline missing headings:\n%s", joined)
	}
}

func TestDuplicateSectionIDRejected(t *testing.T) {
	s := testStructure()
	s.Sections[1].ID = "status"

	if _, err := NewOutline(s); err == nil {
		t.Fatal("duplicate section ids must be rejected")
	}
}
