package navigator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/minute-tui/minute/internal/meeting"
	"github.com/minute-tui/minute/internal/ui"
)

// ContextAnchorID is the pseudo-section anchor for the meeting context
// block, which precedes the first real section.
const ContextAnchorID = "context"

// RenderedDocument is the content pane plus the anchors the tracker needs.
type RenderedDocument struct {
	Lines   []string
	Anchors []Anchor
}

// RenderDocument renders every section in document order. Collapsed
// sections keep their heading and show a compact summary instead of their
// body and children.
func (o *Outline) RenderDocument(width int, activeID string) RenderedDocument {
	var doc RenderedDocument

	anchor := func(id string) {
		doc.Anchors = append(doc.Anchors, Anchor{ID: id, Line: len(doc.Lines)})
	}
	add := func(lines ...string) {
		doc.Lines = append(doc.Lines, lines...)
	}

	s := o.structure

	// Title
	add(ui.TitleStyle.Render(s.Title), "")

	// Context block
	anchor(ContextAnchorID)
	ctxHeading := "Meeting Context"
	if activeID == ContextAnchorID {
		add(ui.ActiveHeadingStyle.Render(ctxHeading))
	} else {
		add(ui.HeadingStyle.Render(ctxHeading))
	}
	if s.Context.Purpose != "" {
		add(ui.LabelStyle.Render("Purpose"))
		add(wrapIndent(s.Context.Purpose, width, "  ")...)
	}
	if len(s.Context.Participants) > 0 {
		add(ui.LabelStyle.Render("Participants"))
		var names []string
		for _, p := range s.Context.Participants {
			name := p.Name
			if p.Role != "" {
				name += " (" + p.Role + ")"
			}
			names = append(names, name)
		}
		add(wrapIndent(strings.Join(names, ", "), width, "  ")...)
	}
	if s.Context.Background != "" {
		add(ui.LabelStyle.Render("Background"))
		add(wrapIndent(s.Context.Background, width, "  ")...)
	}
	add("")

	var render func(secs []meeting.Section, depth int)
	render = func(secs []meeting.Section, depth int) {
		for i := range secs {
			sec := &secs[i]
			node := o.byID[sec.ID]
			indent := strings.Repeat("  ", depth)

			anchor(sec.ID)

			marker := "▾"
			if node != nil && !node.Expanded {
				marker = "▸"
			}
			refID := o.refs.IDFor(sec.ID, meeting.RefSection, 0)
			heading := fmt.Sprintf("%s%s %s %s", indent, marker, sec.Heading, ui.RefBadgeStyle.Render(fmt.Sprintf("[%d]", refID)))
			if sec.ID == activeID {
				add(ui.ActiveHeadingStyle.Render(heading))
			} else {
				add(headingStyleForLevel(sec.Level).Render(heading))
			}

			if node != nil && !node.Expanded {
				add(ui.DimStyle.Render(indent + "  " + node.CollapsedSummary()))
				add("")
				continue
			}

			if len(sec.Metadata.Speakers) > 0 {
				add(ui.DimStyle.Render(indent + "  " + strings.Join(sec.Metadata.Speakers, ", ")))
			}
			if sec.Content != "" {
				add(wrapIndent(sec.Content, width, indent+"  ")...)
			}

			if len(sec.Metadata.KeyPoints) > 0 {
				add(ui.LabelStyle.Render(indent + "  Key Points"))
				for j, point := range sec.Metadata.KeyPoints {
					r := o.refs.IDFor(sec.ID, meeting.RefKeyPoint, j)
					add(bulletLines(point, width, indent+"  ", "•", r)...)
				}
			}
			if len(sec.Metadata.Decisions) > 0 {
				add(ui.DecisionLabelStyle.Render(indent + "  Decisions"))
				for j, decision := range sec.Metadata.Decisions {
					r := o.refs.IDFor(sec.ID, meeting.RefDecision, j)
					add(bulletLines(decision, width, indent+"  ", "✓", r)...)
				}
			}
			if len(sec.Metadata.ActionItems) > 0 {
				add(ui.ActionLabelStyle.Render(indent + "  Action Items"))
				for j, item := range sec.Metadata.ActionItems {
					r := o.refs.IDFor(sec.ID, meeting.RefActionItem, j)
					text := item.Task
					var meta []string
					if item.Owner != "" {
						meta = append(meta, item.Owner)
					}
					if item.DueDate != "" {
						meta = append(meta, item.DueDate)
					}
					if item.Priority != "" {
						meta = append(meta, item.Priority)
					}
					if len(meta) > 0 {
						text += " — " + strings.Join(meta, " · ")
					}
					add(bulletLines(text, width, indent+"  ", "▢", r)...)
				}
			}
			add("")

			render(sec.Subsections, depth+1)
		}
	}
	render(s.Sections, 0)

	return doc
}

// RenderOutline renders the sidebar rows. cursor is the focused row index;
// activeID highlights the scroll-tracked section.
func (o *Outline) RenderOutline(width, cursor int, activeID string) []string {
	rows := o.VisibleRows()
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		n := row.Node
		marker := " "
		if row.HasChildren {
			if n.Expanded {
				marker = "▾"
			} else {
				marker = "▸"
			}
		}
		label := fmt.Sprintf("%s%s %s", strings.Repeat("  ", n.Depth), marker, n.Heading)
		if n.ActionItems > 0 {
			label += " " + ui.BadgeStyle.Render(fmt.Sprintf("%d", n.ActionItems))
		}
		label = truncate(label, width)
		switch {
		case i == cursor:
			lines = append(lines, ui.SelectedStyle.Render("> "+label))
		case n.ID == activeID:
			lines = append(lines, ui.ActiveOutlineStyle.Render("  "+label))
		default:
			lines = append(lines, "  "+label)
		}
	}
	return lines
}

func headingStyleForLevel(level int) lipgloss.Style {
	switch level {
	case 3:
		return ui.SubheadingStyle
	case 4:
		return ui.MinorHeadingStyle
	default:
		return ui.HeadingStyle
	}
}

func bulletLines(text string, width int, indent, bullet string, refID int) []string {
	prefix := indent + "  " + bullet + " "
	cont := indent + "    "
	wrapped := wrap(text, max(10, width-len(cont)-6))
	lines := make([]string, 0, len(wrapped))
	for i, wl := range wrapped {
		if i == 0 {
			line := prefix + wl
			if refID > 0 {
				line += " " + ui.RefBadgeStyle.Render(fmt.Sprintf("[%d]", refID))
			}
			lines = append(lines, line)
		} else {
			lines = append(lines, cont+wl)
		}
	}
	return lines
}

func wrapIndent(text string, width int, indent string) []string {
	wrapped := wrap(text, max(10, width-len(indent)-2))
	lines := make([]string, 0, len(wrapped))
	for _, wl := range wrapped {
		lines = append(lines, indent+wl)
	}
	return lines
}

func wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}
