// Package export writes a meeting structure out as a .docx minutes
// document.
package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/minute-tui/minute/internal/meeting"
)

const (
	fontName = "Calibri"
	bodySize = 11
)

// ToDocx renders the structure to outputPath.
func ToDocx(s *meeting.Structure, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addRun(doc.AddParagraph(""), s.Title, true, 18)

	// Context block
	if s.Context.Purpose != "" {
		addRun(doc.AddParagraph(""), "Purpose", true, 14)
		addRun(doc.AddParagraph(""), s.Context.Purpose, false, bodySize)
	}
	if len(s.Context.Participants) > 0 {
		addRun(doc.AddParagraph(""), "Participants", true, 14)
		var names []string
		for _, p := range s.Context.Participants {
			name := p.Name
			if p.Role != "" {
				name += " (" + p.Role + ")"
			}
			names = append(names, name)
		}
		addRun(doc.AddParagraph(""), strings.Join(names, ", "), false, bodySize)
	}
	if s.Context.Background != "" {
		addRun(doc.AddParagraph(""), "Background", true, 14)
		addRun(doc.AddParagraph(""), s.Context.Background, false, bodySize)
	}

	s.Walk(func(sec *meeting.Section, depth int) {
		doc.AddParagraph("")
		addRun(doc.AddParagraph(""), sec.Heading, true, headingSize(sec.Level))

		if sec.Content != "" {
			addRun(doc.AddParagraph(""), sec.Content, false, bodySize)
		}
		for _, point := range sec.Metadata.KeyPoints {
			addRun(doc.AddParagraph(""), "• "+point, false, bodySize)
		}
		for _, decision := range sec.Metadata.Decisions {
			addRun(doc.AddParagraph(""), "✓ "+decision, false, bodySize)
		}
		for _, item := range sec.Metadata.ActionItems {
			text := "☐ " + item.Task
			if item.Owner != "" {
				text += " — " + item.Owner
			}
			if item.DueDate != "" {
				text += " (due " + item.DueDate + ")"
			}
			addRun(doc.AddParagraph(""), text, false, bodySize)
		}
	})

	// Footer line mirroring the document metadata.
	doc.AddParagraph("")
	meta := fmt.Sprintf("%d sections · %d decisions · %d action items · generated %s",
		s.Metadata.TotalSections, s.Metadata.TotalDecisions, s.Metadata.TotalActionItems, s.Metadata.GeneratedAt)
	addRun(doc.AddParagraph(""), meta, false, 9)

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 2:
		return 15
	case 3:
		return 13
	default:
		return 12
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
