package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/minute-tui/minute/internal/meeting"
	"github.com/minute-tui/minute/internal/pipeline"
	"github.com/minute-tui/minute/internal/record"
	"github.com/minute-tui/minute/internal/ui"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.view {
	case ViewCapture:
		sections = append(sections, m.renderCaptureView())
	case ViewDocument:
		sections = append(sections, m.renderDocumentView())
	case ViewChat:
		sections = append(sections, m.renderChatView())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("MINUTE")

	tabs := []string{"Capture", "Notes", "Chat"}
	var rendered []string
	for i, t := range tabs {
		label := fmt.Sprintf("[%d] %s", i+1, t)
		if View(i) == m.view {
			rendered = append(rendered, ui.PanelTitleActiveStyle.Render(label))
		} else {
			rendered = append(rendered, ui.DimStyle.Render(label))
		}
	}

	return title + "  " + strings.Join(rendered, "  ")
}

func (m Model) renderStatusBar() string {
	var dot string
	if m.recorder != nil {
		switch m.recorder.State() {
		case record.StateRecording:
			dot = ui.RecordingDotStyle.Render("● REC") + " " + ui.TimestampStyle.Render(formatElapsed(m.recorder.ElapsedSeconds()))
		case record.StatePaused:
			dot = ui.PausedDotStyle.Render("‖ PAUSED") + " " + ui.TimestampStyle.Render(formatElapsed(m.recorder.ElapsedSeconds()))
		default:
			dot = ui.IdleDotStyle.Render("○ IDLE")
		}
	} else {
		dot = ui.IdleDotStyle.Render("○ NO MIC")
	}

	var busy string
	if m.pipe.IsProcessing() || m.chatLoading {
		busy = "  " + m.spinner.View()
	}

	return dot + busy + "  " + ui.StatusStyle.Render(m.statusText)
}

// renderCaptureView shows the stage progress, recording state, and the
// inbox file list.
func (m Model) renderCaptureView() string {
	height := m.contentVisibleLines()
	var lines []string

	lines = append(lines, m.renderStageProgress()...)
	lines = append(lines, "")

	if m.pendingFile != "" {
		lines = append(lines, "  "+ui.LabelStyle.Render("Ready:")+" "+filepath.Base(m.pendingFile)+ui.DimStyle.Render("  (Enter to process)"))
		lines = append(lines, "")
	}

	if m.pipe.Step() == pipeline.StepComplete && m.pipe.Mode() == pipeline.ModeLegacy && m.pipe.Summary() != nil {
		lines = append(lines, m.renderFlatSummary()...)
	} else {
		lines = append(lines, m.renderInboxList()...)
	}

	return padToHeight(lines, height, m.width)
}

func (m Model) renderStageProgress() []string {
	type stage struct {
		label string
		step  pipeline.Step
	}
	stages := []stage{
		{"Upload", pipeline.StepUploading},
		{"Transcribe", pipeline.StepTranscribing},
		{"Summarize", pipeline.StepSummarizing},
	}
	order := map[pipeline.Step]int{
		pipeline.StepIdle:         0,
		pipeline.StepUploading:    1,
		pipeline.StepTranscribing: 2,
		pipeline.StepSummarizing:  3,
		pipeline.StepComplete:     4,
		pipeline.StepError:        4,
	}
	current := order[m.pipe.Step()]

	var lines []string
	lines = append(lines, "  "+ui.PanelTitleStyle.Render("PROCESSING"))
	for i, st := range stages {
		pos := i + 1
		var line string
		switch {
		case pos < current:
			line = ui.StepDoneStyle.Render("  ✓ " + st.label)
		case pos == current && m.pipe.IsProcessing():
			line = ui.StepActiveStyle.Render("  "+m.spinner.View()+" "+st.label) + "  " + ui.DimStyle.Render(m.pipe.StageLabel())
		default:
			line = ui.StepPendingStyle.Render("  · " + st.label)
		}
		lines = append(lines, line)
	}
	if m.pipe.Step() == pipeline.StepComplete {
		lines = append(lines, ui.StepDoneStyle.Render("  ✓ Done")+"  "+ui.DimStyle.Render(m.pipe.StageLabel()))
	}
	if m.pipe.Step() == pipeline.StepError {
		lines = append(lines, ui.ErrorStyle.Render("  ✗ Failed")+"  "+ui.ErrorTextStyle.Render(m.pipe.Err()))
	}
	return lines
}

func (m Model) renderInboxList() []string {
	var lines []string
	if m.cfg.InboxDir == "" {
		return lines
	}
	lines = append(lines, "  "+ui.PanelTitleStyle.Render(fmt.Sprintf("INBOX (%d)", len(m.inboxFiles)))+"  "+ui.DimStyle.Render(m.cfg.InboxDir))
	if len(m.inboxFiles) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Drop audio files into the inbox to queue them"))
		return lines
	}
	for i, f := range m.inboxFiles {
		name := filepath.Base(f)
		if i == m.inboxCursor {
			lines = append(lines, ui.SelectedStyle.Render("  > "+name))
		} else {
			lines = append(lines, "    "+name)
		}
	}
	return lines
}

func (m Model) renderFlatSummary() []string {
	s := m.pipe.Summary()
	width := max(20, m.width-6)

	var lines []string
	lines = append(lines, "  "+ui.HeadingStyle.Render("TL;DR"))
	for _, l := range wrapText(s.TLDR, width) {
		lines = append(lines, "  "+l)
	}
	appendBullets := func(title string, items []string, style lipgloss.Style, bullet string) {
		if len(items) == 0 {
			return
		}
		lines = append(lines, "", "  "+style.Render(title))
		for _, it := range items {
			wrapped := wrapText(it, width-4)
			lines = append(lines, "  "+bullet+" "+wrapped[0])
			for _, wl := range wrapped[1:] {
				lines = append(lines, "    "+wl)
			}
		}
	}
	appendBullets("Key Points", s.KeyPoints, ui.LabelStyle, "•")
	appendBullets("Decisions", s.Decisions, ui.DecisionLabelStyle, "✓")
	appendBullets("Action Items", s.ActionItems, ui.ActionLabelStyle, "▢")
	return lines
}

// renderDocumentView shows the outline and the rendered document side by
// side, with an optional transcript excerpt overlay.
func (m Model) renderDocumentView() string {
	if m.outline == nil {
		return padToHeight([]string{ui.DimStyle.Render("  Process a meeting to see its notes here")}, m.contentVisibleLines(), m.width)
	}

	if m.refOverlay {
		return m.renderExcerptOverlay()
	}

	outlineW := m.outlinePanelWidth()
	contentW := m.contentPanelWidth()
	height := m.contentVisibleLines()

	active := m.tracker.Active()

	outlineLines := m.renderOutlinePanel(outlineW, height, active)
	contentLines := m.renderContentPanel(contentW, height)

	divider := ui.DividerStyle.Render("│")
	var rows []string
	for i := 0; i < height; i++ {
		rows = append(rows, outlineLines[i]+divider+contentLines[i])
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderOutlinePanel(width, height int, active string) []string {
	var header string
	if m.focusedPanel == FocusOutline {
		header = ui.PanelTitleActiveStyle.Render("OUTLINE")
	} else {
		header = ui.PanelTitleStyle.Render("OUTLINE")
	}

	cursor := -1
	if m.focusedPanel == FocusOutline {
		cursor = m.outlineCursor
	}

	rows := m.outline.RenderOutline(width, cursor, active)

	// keep the cursor row in view
	visible := height - 1
	if len(rows) > visible && cursor >= 0 {
		start := clamp(cursor-visible/2, 0, len(rows)-visible)
		rows = rows[start : start+visible]
	}

	lines := append([]string{header}, rows...)
	return normalizePanel(lines, width, height)
}

func (m Model) renderContentPanel(width, height int) []string {
	var header string
	if m.focusedPanel == FocusContent {
		header = ui.PanelTitleActiveStyle.Render("NOTES")
	} else {
		header = ui.PanelTitleStyle.Render("NOTES")
	}

	lines := []string{header}
	end := min(m.docScroll+height-1, len(m.doc.Lines))
	for i := m.docScroll; i < end; i++ {
		lines = append(lines, m.doc.Lines[i])
	}

	return normalizePanel(lines, width, height)
}

func (m Model) renderExcerptOverlay() string {
	width := max(30, m.width*70/100)
	height := m.contentVisibleLines()

	excerpt := meeting.Excerpt(m.refOverlayID, m.pipe.Transcript())

	var lines []string
	lines = append(lines, ui.PanelTitleActiveStyle.Render(fmt.Sprintf("TRANSCRIPT REFERENCE [%d]", m.refOverlayID)))
	lines = append(lines, "")
	for _, l := range wrapText(excerpt, width-4) {
		lines = append(lines, "  "+l)
	}
	lines = append(lines, "")
	lines = append(lines, ui.DimStyle.Render("  Esc to close"))

	return padToHeight(lines, height, m.width)
}

// renderChatView shows stored sessions next to the active conversation.
func (m Model) renderChatView() string {
	sessionW := m.sessionPanelWidth()
	messagesW := max(30, m.width-sessionW-3)
	height := m.contentVisibleLines()

	sessionLines := m.renderSessionPanel(sessionW, height)
	messageLines := m.renderMessagePanel(messagesW, height)

	divider := ui.DividerStyle.Render("│")
	var rows []string
	for i := 0; i < height; i++ {
		rows = append(rows, sessionLines[i]+divider+messageLines[i])
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSessionPanel(width, height int) []string {
	sessions := m.chatMgr.Sessions()

	var header string
	if m.focusedPanel == FocusSessions {
		header = ui.PanelTitleActiveStyle.Render(fmt.Sprintf("SESSIONS (%d)", len(sessions)))
	} else {
		header = ui.PanelTitleStyle.Render(fmt.Sprintf("SESSIONS (%d)", len(sessions)))
	}

	lines := []string{header}
	if len(sessions) == 0 {
		lines = append(lines, ui.DimStyle.Render("  No conversations yet"))
	}
	for i, s := range sessions {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		marker := "  "
		if s.SessionID == m.chatMgr.ActiveID() {
			marker = "● "
		}
		line := marker + title
		if i == m.sessionCursor && m.focusedPanel == FocusSessions {
			line = ui.SelectedStyle.Render("> " + title)
		}
		lines = append(lines, truncateToWidth(line, width))
	}

	return normalizePanel(lines, width, height)
}

func (m Model) renderMessagePanel(width, height int) []string {
	var header string
	filter := "all meetings"
	if id := m.meetingFilterID(); id != "" {
		filter = m.meetings[m.meetingFilter-1].Title
		if filter == "" {
			filter = id
		}
	}
	if m.focusedPanel == FocusInput {
		header = ui.PanelTitleActiveStyle.Render("CHAT") + "  " + ui.DimStyle.Render("("+filter+")")
	} else {
		header = ui.PanelTitleStyle.Render("CHAT") + "  " + ui.DimStyle.Render("("+filter+")")
	}

	bodyHeight := height - 2 // header and input line

	var body []string
	if len(m.chatMessages) == 0 && !m.chatLoading {
		body = append(body, "", ui.DimStyle.Render("  Ask a question about your indexed meetings"))
	} else {
		body = m.renderMessages(width)
	}
	if m.chatLoading {
		body = append(body, ui.SpinnerStyle.Render("  "+m.spinner.View()+" Thinking…"))
	}

	start := 0
	if m.chatLive {
		if len(body) > bodyHeight {
			start = len(body) - bodyHeight
		}
	} else {
		start = clamp(m.chatScroll, 0, max(0, len(body)-bodyHeight))
	}
	end := min(start+bodyHeight, len(body))

	lines := []string{header}
	lines = append(lines, body[start:end]...)
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, truncateToWidth(m.input.View(), width))

	return normalizePanel(lines, width, height)
}

func (m Model) renderMessages(width int) []string {
	textWidth := max(20, width-4)
	var lines []string
	for _, msg := range m.chatMessages {
		lines = append(lines, "")
		if msg.Role == "user" {
			lines = append(lines, ui.UserMsgStyle.Render("  You"))
			for _, l := range wrapText(msg.Content, textWidth) {
				lines = append(lines, "  "+l)
			}
			continue
		}
		lines = append(lines, ui.AssistantMsgStyle.Render("  Minute"))
		lines = append(lines, renderMarkdown(msg.Content, textWidth)...)
		for _, src := range msg.Sources {
			lines = append(lines, ui.SourceStyle.Render(fmt.Sprintf("  ↳ %s (%.2f)", src.MeetingID, src.Score)))
		}
	}
	return lines
}

// renderMarkdown renders assistant markdown through glamour, falling back
// to plain wrapping when rendering fails.
func renderMarkdown(content string, width int) []string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, rerr := r.Render(content); rerr == nil {
			return strings.Split(strings.Trim(rendered, "\n"), "\n")
		}
	}
	var lines []string
	for _, l := range wrapText(content, width) {
		lines = append(lines, "  "+l)
	}
	return lines
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	type binding struct{ key, desc string }
	var bindings []binding

	switch m.view {
	case ViewCapture:
		if m.recorder != nil && m.recorder.IsRecording() {
			bindings = append(bindings,
				binding{"Space", " Stop"},
				binding{"p", " Pause"},
				binding{"d", " Discard"},
			)
		} else {
			bindings = append(bindings,
				binding{"Space", " Record"},
				binding{"Enter", " Process"},
				binding{"n", " New"},
			)
		}
	case ViewDocument:
		bindings = append(bindings,
			binding{"Tab", " Focus"},
			binding{"j/k", " Nav"},
			binding{"Space", " Fold"},
			binding{"Enter", " Jump"},
			binding{"x", " Source"},
			binding{"E/C", " Fold all"},
		)
	case ViewChat:
		bindings = append(bindings,
			binding{"Tab", " Focus"},
			binding{"Enter", " Ask/Open"},
			binding{"n", " New"},
			binding{"m", " Meeting"},
			binding{"d", " Delete"},
		)
	}
	bindings = append(bindings, binding{"1-3", " View"}, binding{"q", " Quit"})

	var parts []string
	for _, b := range bindings {
		parts = append(parts, ui.FooterKeyStyle.Render(b.key)+ui.FooterDescStyle.Render(b.desc))
	}
	return strings.Join(parts, "  ")
}

// Layout helpers

func (m Model) contentVisibleLines() int {
	if m.height == 0 {
		return 20
	}
	// header(1) + status(1) + dividers(2) + error(1) + footer(1) + padding
	reserved := 7
	return max(5, m.height-reserved)
}

func (m Model) outlinePanelWidth() int {
	if m.width == 0 {
		return 30
	}
	return max(24, m.width*32/100)
}

func (m Model) contentPanelWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.outlinePanelWidth()-3)
}

func (m Model) sessionPanelWidth() int {
	if m.width == 0 {
		return 28
	}
	return max(22, m.width*28/100)
}

func (m Model) maxDocScroll() int {
	visible := m.contentVisibleLines() - 1
	if len(m.doc.Lines) <= visible {
		return 0
	}
	return len(m.doc.Lines) - visible
}

func (m Model) maxChatScroll() int {
	visible := m.contentVisibleLines() - 2
	total := len(m.renderMessages(max(30, m.width-m.sessionPanelWidth()-3)))
	if total <= visible {
		return 0
	}
	return total - visible
}

func normalizePanel(lines []string, width, height int) []string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = padRight(truncateToWidth(l, width), width)
	}
	return lines
}

func padToHeight(lines []string, height, width int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = truncateToWidth(l, width)
	}
	return strings.Join(lines, "\n")
}

func formatElapsed(seconds int) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), seconds%60)
}

func trimmed(s string) string { return strings.TrimSpace(s) }

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// truncateToWidth cuts a possibly styled line to the given cell width
// without splitting escape sequences.
func truncateToWidth(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func wrapText(text string, width int) []string {
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
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
