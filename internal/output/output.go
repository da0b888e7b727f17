package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/minute-tui/minute/internal/meeting"
)

// Formatter writes human-readable progress for the headless commands.
type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Uploading(path string) {
	fmt.Fprintf(f.w, "📤 Uploading %s...\n", path)
}

func (f *Formatter) Transcribing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio... This may take 2-3 minutes\n")
}

func (f *Formatter) Summarizing(estimate string) {
	if estimate != "" {
		fmt.Fprintf(f.w, "🤖 Generating AI summary (%s)...\n", estimate)
		return
	}
	fmt.Fprintf(f.w, "🤖 Generating AI summary...\n")
}

func (f *Formatter) Ingested(meetingID string, chunks int) {
	fmt.Fprintf(f.w, "🔍 Indexed for chat: %s (%d chunks)\n", meetingID, chunks)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

// Structure prints a hierarchical summary as an indented outline.
func (f *Formatter) Structure(s *meeting.Structure) {
	fmt.Fprintf(f.w, "\n📋 %s\n", s.Title)
	if s.Context.Purpose != "" {
		fmt.Fprintf(f.w, "   %s\n", s.Context.Purpose)
	}
	s.Walk(func(sec *meeting.Section, depth int) {
		indent := strings.Repeat("  ", depth+1)
		fmt.Fprintf(f.w, "%s%s\n", indent, sec.Heading)
		for _, d := range sec.Metadata.Decisions {
			fmt.Fprintf(f.w, "%s  ✓ %s\n", indent, d)
		}
		for _, a := range sec.Metadata.ActionItems {
			line := a.Task
			if a.Owner != "" {
				line += " (" + a.Owner + ")"
			}
			fmt.Fprintf(f.w, "%s  ▢ %s\n", indent, line)
		}
	})
	fmt.Fprintf(f.w, "\n   %d sections, %d decisions, %d action items\n",
		s.CountSections(), s.CountDecisions(), s.CountActionItems())
}

// FlatSummary prints the legacy summary shape.
func (f *Formatter) FlatSummary(tldr string, keyPoints, decisions, actionItems []string) {
	fmt.Fprintf(f.w, "\n📋 TL;DR\n   %s\n", tldr)
	printList := func(title, bullet string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(f.w, "\n   %s\n", title)
		for _, it := range items {
			fmt.Fprintf(f.w, "   %s %s\n", bullet, it)
		}
	}
	printList("Key Points", "•", keyPoints)
	printList("Decisions", "✓", decisions)
	printList("Action Items", "▢", actionItems)
}

func (f *Formatter) SessionListHeader(count int) {
	fmt.Fprintf(f.w, "💬 Sessions (%d):\n\n", count)
}

func (f *Formatter) SessionListItem(id, title, lastMessageAt string, messages int) {
	fmt.Fprintf(f.w, "  %s  %-40s  %d messages  %s\n", id, title, messages, lastMessageAt)
}
