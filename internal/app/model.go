package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minute-tui/minute/config"
	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/chat"
	"github.com/minute-tui/minute/internal/inbox"
	"github.com/minute-tui/minute/internal/meeting"
	"github.com/minute-tui/minute/internal/navigator"
	"github.com/minute-tui/minute/internal/pipeline"
	"github.com/minute-tui/minute/internal/record"
	"github.com/minute-tui/minute/internal/store"
	"github.com/minute-tui/minute/internal/ui"
)

// View selects which screen is shown.
type View int

const (
	ViewCapture View = iota
	ViewDocument
	ViewChat
)

// PanelFocus tracks which panel has keyboard focus inside a view.
type PanelFocus int

const (
	FocusOutline PanelFocus = iota
	FocusContent
	FocusSessions
	FocusInput
)

const sessionListLimit = 50

// Model is the root bubbletea model for the minute TUI.
type Model struct {
	cfg    *config.Config
	client *api.Client

	view View

	// Processing
	pipe *pipeline.Pipeline

	// Recording
	recorder    *record.Controller
	recorderErr string // ffmpeg missing, shown as a hint
	pendingFile string // stopped recording or picked inbox file, ready to process

	// Inbox
	watcher     *inbox.Watcher
	inboxFiles  []string
	inboxCursor int

	// Document
	outline       *navigator.Outline
	tracker       *navigator.Tracker
	doc           navigator.RenderedDocument
	docScroll     int
	outlineCursor int
	refOverlay    bool
	refOverlayID  int

	// Chat
	chatMgr       *chat.Manager
	chatMessages  []api.ChatMessage
	chatLoading   bool
	chatScroll    int
	chatLive      bool
	sessionCursor int
	sessionsFresh bool // server list loaded, mirror results no longer wanted
	meetings      []api.MeetingListItem
	meetingFilter int // 0 = all meetings, 1..n = meetings[i-1]
	input         textinput.Model

	// Local mirror
	mirror *store.Store

	// UI state
	focusedPanel   PanelFocus
	width          int
	height         int
	spinner        spinner.Model
	statusText     string
	errorMessage   string
	errorTransient bool
}

// New creates a new Model wired to the given configuration.
func New(cfg *config.Config) Model {
	client := api.New(api.Config{
		BaseURL:     cfg.APIURL,
		Token:       cfg.Token,
		WorkspaceID: cfg.WorkspaceID,
		Timeout:     cfg.Timeout,
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SpinnerStyle

	ti := textinput.New()
	ti.Placeholder = "Ask about your meetings…"
	ti.Prompt = "> "

	m := Model{
		cfg:          cfg,
		client:       client,
		view:         ViewCapture,
		pipe:         pipeline.New(),
		chatMgr:      chat.NewManager(client),
		chatLive:     true,
		focusedPanel: FocusInput,
		spinner:      sp,
		input:        ti,
		statusText:   "Ready",
	}

	if device, err := record.NewFFmpegDevice(); err != nil {
		m.recorderErr = err.Error()
	} else {
		m.recorder = record.NewController(device, cfg.RecordDir)
	}

	if cfg.InboxDir != "" {
		if w, err := inbox.New(cfg.InboxDir); err == nil {
			m.watcher = w
		}
	}

	return m
}

// Init opens the local mirror and starts the inbox watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		openMirrorCmd(store.DefaultDBPath()),
		listMeetingsCmd(m.client),
		m.spinner.Tick,
	}
	if m.watcher != nil {
		cmds = append(cmds, watchInboxCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rerenderDocument()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case UploadResultMsg:
		m.pipe.ApplyUpload(msg.Gen, msg.Resp, msg.Err)
		if m.pipe.Step() == pipeline.StepTranscribing && msg.Gen == m.pipe.Generation() {
			m.statusText = m.pipe.StageLabel()
			return m, transcribeCmd(m.client, msg.Gen, msg.Resp.MeetingID, msg.Resp.S3Path)
		}
		return m, nil

	case TranscribeResultMsg:
		m.pipe.ApplyTranscript(msg.Gen, msg.Resp, msg.Err)
		if m.pipe.Step() == pipeline.StepSummarizing && msg.Gen == m.pipe.Generation() {
			m.statusText = m.pipe.StageLabel()
			return m, m.summarizeStageCmd(msg.Gen)
		}
		return m, nil

	case EstimateResultMsg:
		m.pipe.ApplyEstimate(msg.Gen, msg.Resp, msg.Err)
		if m.pipe.Step() == pipeline.StepSummarizing && msg.Gen == m.pipe.Generation() {
			m.statusText = m.pipe.StageLabel()
			return m, enhancedSummaryCmd(m.client, msg.Gen, m.pipe.Transcript())
		}
		return m, nil

	case EnhancedSummaryResultMsg:
		m.pipe.ApplyEnhancedSummary(msg.Gen, msg.Resp, msg.Err)
		if m.pipe.Step() != pipeline.StepComplete || msg.Gen != m.pipe.Generation() {
			return m, nil
		}
		m.statusText = m.pipe.StageLabel()
		if err := m.buildDocument(); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.view = ViewDocument
		m.focusedPanel = FocusOutline
		return m, ingestCmd(m.client, msg.Gen, m.pipe.Transcript(), m.pipe.MeetingID())

	case SummaryResultMsg:
		m.pipe.ApplySummary(msg.Gen, msg.Resp, msg.Err)
		if m.pipe.Step() == pipeline.StepComplete && msg.Gen == m.pipe.Generation() {
			// legacy runs are never indexed
			m.statusText = m.pipe.StageLabel()
		}
		return m, nil

	case IngestResultMsg:
		if note := m.pipe.ApplyIngest(msg.Gen, msg.Resp, msg.Err); note != "" {
			m.errorMessage = note
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		return m, listMeetingsCmd(m.client)

	case RecordTickMsg:
		if m.recorder == nil {
			return m, nil
		}
		switch m.recorder.State() {
		case record.StateRecording:
			m.recorder.Tick()
			return m, recordTickCmd()
		case record.StatePaused:
			return m, recordTickCmd()
		}
		return m, nil

	case InboxFileMsg:
		m.inboxFiles = append(m.inboxFiles, msg.Path)
		return m, watchInboxCmd(m.watcher)

	case ChatAnswerMsg:
		m.chatLoading = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.chatMessages = append(m.chatMessages, msg.User, msg.Assistant)
		m.chatLive = true
		return m, saveExchangeCmd(m.chatMgr, msg.User, msg.Assistant, m.meetingFilterID())

	case ExchangeSavedMsg:
		if msg.Err != nil {
			m.errorMessage = "Could not save the conversation: " + msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		return m, saveMirrorCmd(m.mirror, m.chatMgr.Sessions())

	case SessionsLoadedMsg:
		if msg.FromMirror {
			if !m.sessionsFresh && msg.Err == nil {
				m.chatMgr.Seed(msg.Sessions)
			}
			return m, nil
		}
		if msg.Err != nil {
			return m, nil // keep whatever the mirror gave us
		}
		m.sessionsFresh = true
		m.chatMgr.Seed(msg.Sessions)
		return m, saveMirrorCmd(m.mirror, msg.Sessions)

	case SessionLoadedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.chatMessages = msg.Session.Messages
		m.meetingFilter = m.meetingFilterIndex(msg.Session.MeetingID)
		m.chatLive = true
		return m, nil

	case SessionDeletedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		if m.sessionCursor >= len(m.chatMgr.Sessions()) {
			m.sessionCursor = max(0, len(m.chatMgr.Sessions())-1)
		}
		return m, saveMirrorCmd(m.mirror, m.chatMgr.Sessions())

	case MeetingsLoadedMsg:
		if msg.Err == nil {
			m.meetings = msg.Meetings
			if m.meetingFilter > len(m.meetings) {
				m.meetingFilter = 0
			}
		}
		return m, nil

	case MirrorOpenedMsg:
		m.mirror = msg.Store
		return m, loadMirrorSessionsCmd(m.mirror, sessionListLimit)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// summarizeStageCmd issues the right call for the summarizing stage. The
// enhanced path fetches the estimate first; the flat path goes straight to
// the summary.
func (m Model) summarizeStageCmd(gen int) tea.Cmd {
	if m.pipe.Mode() == pipeline.ModeEnhanced {
		return estimateCmd(m.client, gen, m.pipe.Transcript())
	}
	return summaryCmd(m.client, gen, m.pipe.Transcript())
}

// beginProcessing starts a pipeline run and issues its first stage command.
func (m *Model) beginProcessing(in pipeline.Input) tea.Cmd {
	mode := pipeline.ModeEnhanced
	if !m.cfg.Enhanced {
		mode = pipeline.ModeLegacy
	}
	if err := m.pipe.Begin(in, mode); err != nil {
		m.errorMessage = err.Error()
		m.errorTransient = true
		return clearTransientErrorCmd()
	}
	m.errorMessage = ""
	m.statusText = m.pipe.StageLabel()
	gen := m.pipe.Generation()
	if m.pipe.Step() == pipeline.StepUploading {
		return uploadCmd(m.client, gen, in.AudioPath)
	}
	return m.summarizeStageCmd(gen)
}

// buildDocument constructs the outline, viewport tracker, and rendered
// document from the completed structure.
func (m *Model) buildDocument() error {
	s := m.pipe.Structure()
	if s == nil {
		return nil
	}
	outline, err := navigator.NewOutline(s)
	if err != nil {
		return err
	}
	m.outline = outline
	m.tracker = navigator.NewTracker(nil)
	m.docScroll = 0
	m.outlineCursor = 0
	m.refOverlay = false
	m.rerenderDocument()
	return nil
}

// rerenderDocument rebuilds the rendered document lines and the tracker's
// anchor table for the current width.
func (m *Model) rerenderDocument() {
	if m.outline == nil {
		return
	}
	active := ""
	if m.tracker != nil {
		active = m.tracker.Active()
	}
	m.doc = m.outline.RenderDocument(m.contentPanelWidth(), active)
	if m.tracker != nil {
		m.tracker.SetAnchors(m.doc.Anchors)
		m.tracker.SetViewportHeight(m.contentVisibleLines())
	}
	maxScroll := m.maxDocScroll()
	if m.docScroll > maxScroll {
		m.docScroll = maxScroll
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// The chat input swallows printable keys while focused.
	typing := m.view == ViewChat && m.focusedPanel == FocusInput && m.input.Focused()

	if !typing {
		switch key {
		case KeyQuit, KeyQuitUpper, KeyCtrlC:
			return m.quit()
		case KeyViewCapture:
			m.view = ViewCapture
			return m, nil
		case KeyViewDocument:
			if m.outline != nil {
				m.view = ViewDocument
			}
			return m, nil
		case KeyViewChat:
			m.view = ViewChat
			m.focusedPanel = FocusInput
			m.input.Focus()
			return m, m.enterChatCmd()
		}
	} else if key == KeyCtrlC {
		return m.quit()
	}

	switch m.view {
	case ViewCapture:
		return m.handleCaptureKey(key)
	case ViewDocument:
		return m.handleDocumentKey(key)
	case ViewChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.Teardown()
	}
	if m.watcher != nil {
		m.watcher.Close()
	}
	if m.mirror != nil {
		m.mirror.Close()
	}
	return m, tea.Quit
}

// enterChatCmd refreshes sessions and meetings when the chat view opens.
func (m Model) enterChatCmd() tea.Cmd {
	return tea.Batch(
		refreshSessionsCmd(m.client, sessionListLimit),
		listMeetingsCmd(m.client),
	)
}

func (m Model) handleCaptureKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeySpace:
		if m.recorder == nil {
			m.errorMessage = "Recording unavailable: " + m.recorderErr
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		if m.recorder.IsRecording() {
			result, err := m.recorder.Stop()
			if err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			m.pendingFile = result.AudioPath
			m.statusText = "Recording saved. Press Enter to process it."
			return m, nil
		}
		if err := m.recorder.Start(); err != nil {
			m.errorMessage = err.Error()
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.pendingFile = ""
		m.statusText = "Recording…"
		return m, recordTickCmd()

	case KeyPause:
		if m.recorder == nil {
			return m, nil
		}
		if m.recorder.IsPaused() {
			if err := m.recorder.Resume(); err == nil {
				m.statusText = "Recording…"
			}
		} else if m.recorder.State() == record.StateRecording {
			if err := m.recorder.Pause(); err == nil {
				m.statusText = "Paused"
			}
		}
		return m, nil

	case KeyDiscard:
		if m.recorder != nil {
			if m.recorder.IsRecording() {
				m.recorder.Teardown()
			} else {
				m.recorder.Discard()
			}
			m.statusText = "Recording discarded"
		}
		m.pendingFile = ""
		return m, nil

	case KeyJ, KeyDown:
		if m.inboxCursor < len(m.inboxFiles)-1 {
			m.inboxCursor++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.inboxCursor > 0 {
			m.inboxCursor--
		}
		return m, nil

	case KeyEnter:
		path := m.pendingFile
		if path == "" && m.inboxCursor < len(m.inboxFiles) {
			path = m.inboxFiles[m.inboxCursor]
		}
		if path == "" {
			return m, nil
		}
		cmd := m.beginProcessing(pipeline.Input{AudioPath: path})
		if m.pipe.IsProcessing() {
			m.pendingFile = ""
		}
		return m, cmd

	case KeyNew:
		if !m.pipe.IsProcessing() {
			m.pipe.Reset()
			m.statusText = "Ready"
			m.errorMessage = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDocumentKey(key string) (tea.Model, tea.Cmd) {
	if m.outline == nil {
		return m, nil
	}

	if m.refOverlay {
		switch key {
		case KeyEsc, KeyExcerpt, KeyEnter:
			m.refOverlay = false
		}
		return m, nil
	}

	switch key {
	case KeyTab:
		if m.focusedPanel == FocusOutline {
			m.focusedPanel = FocusContent
		} else {
			m.focusedPanel = FocusOutline
		}
		return m, nil

	case KeyJ:
		if m.focusedPanel == FocusOutline {
			rows := m.outline.VisibleRows()
			if m.outlineCursor < len(rows)-1 {
				m.outlineCursor++
			}
			return m, nil
		}
		return m.scrollContent(1), nil

	case KeyK:
		if m.focusedPanel == FocusOutline {
			if m.outlineCursor > 0 {
				m.outlineCursor--
			}
			return m, nil
		}
		return m.scrollContent(-1), nil

	case KeyDown:
		return m.scrollContent(1), nil

	case KeyUp:
		return m.scrollContent(-1), nil

	case KeyEnter:
		rows := m.outline.VisibleRows()
		if m.focusedPanel == FocusOutline && m.outlineCursor < len(rows) {
			id := rows[m.outlineCursor].Node.ID
			m.docScroll = clamp(m.tracker.Select(id), 0, m.maxDocScroll())
			m.rerenderDocument()
		}
		return m, nil

	case KeySpace:
		rows := m.outline.VisibleRows()
		if m.focusedPanel == FocusOutline && m.outlineCursor < len(rows) {
			m.outline.Toggle(rows[m.outlineCursor].Node.ID)
			m.rerenderDocument()
			rows = m.outline.VisibleRows()
			if m.outlineCursor >= len(rows) {
				m.outlineCursor = max(0, len(rows)-1)
			}
		}
		return m, nil

	case KeyExpandAll:
		m.outline.ExpandAll()
		m.rerenderDocument()
		return m, nil

	case KeyCollapseAll:
		m.outline.CollapseAll()
		m.rerenderDocument()
		m.outlineCursor = 0
		return m, nil

	case KeyExcerpt:
		rows := m.outline.VisibleRows()
		if m.focusedPanel == FocusOutline && m.outlineCursor < len(rows) {
			id := rows[m.outlineCursor].Node.ID
			if refID := m.outline.Refs().IDFor(id, meeting.RefSection, 0); refID > 0 {
				m.refOverlay = true
				m.refOverlayID = refID
			}
		}
		return m, nil
	}
	return m, nil
}

// scrollContent moves the content viewport and feeds the tracker, which may
// change the active section and thus the highlighting.
func (m Model) scrollContent(delta int) Model {
	before := m.tracker.Active()
	m.docScroll = clamp(m.docScroll+delta, 0, m.maxDocScroll())
	m.tracker.Scroll(m.docScroll)
	if m.tracker.Active() != before {
		m.rerenderDocument()
	}
	return m
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.focusedPanel == FocusInput {
		switch key {
		case KeyEnter:
			question := trimmed(m.input.Value())
			if question == "" || m.chatLoading {
				return m, nil
			}
			m.input.SetValue("")
			m.chatLoading = true
			return m, askCmd(m.client, question, m.meetingFilterID())

		case KeyEsc:
			m.input.Blur()
			m.focusedPanel = FocusSessions
			return m, nil

		case KeyTab:
			m.input.Blur()
			m.focusedPanel = FocusSessions
			return m, nil

		case KeyUp:
			m.chatLive = false
			if m.chatScroll > 0 {
				m.chatScroll--
			}
			return m, nil

		case KeyDown:
			m.chatScroll++
			if m.chatScroll >= m.maxChatScroll() {
				m.chatScroll = m.maxChatScroll()
				m.chatLive = true
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Sessions panel
	switch key {
	case KeyTab, KeyEsc:
		m.focusedPanel = FocusInput
		m.input.Focus()
		return m, nil

	case KeyJ, KeyDown:
		if m.sessionCursor < len(m.chatMgr.Sessions())-1 {
			m.sessionCursor++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
		return m, nil

	case KeyEnter:
		sessions := m.chatMgr.Sessions()
		if m.sessionCursor < len(sessions) {
			return m, loadSessionCmd(m.chatMgr, sessions[m.sessionCursor].SessionID)
		}
		return m, nil

	case KeyDiscard:
		sessions := m.chatMgr.Sessions()
		if m.sessionCursor < len(sessions) {
			id := sessions[m.sessionCursor].SessionID
			if id == m.chatMgr.ActiveID() {
				m.chatMessages = nil
			}
			return m, deleteSessionCmd(m.chatMgr, id)
		}
		return m, nil

	case KeyNew:
		m.chatMgr.StartNew()
		m.chatMessages = nil
		m.chatScroll = 0
		m.chatLive = true
		m.focusedPanel = FocusInput
		m.input.Focus()
		return m, nil

	case KeyMeetingFilter:
		m.meetingFilter = (m.meetingFilter + 1) % (len(m.meetings) + 1)
		return m, nil
	}
	return m, nil
}

// meetingFilterID resolves the current meeting filter to an id, empty
// meaning all meetings.
func (m Model) meetingFilterID() string {
	if m.meetingFilter == 0 || m.meetingFilter > len(m.meetings) {
		return ""
	}
	return m.meetings[m.meetingFilter-1].MeetingID
}

func (m Model) meetingFilterIndex(meetingID string) int {
	if meetingID == "" {
		return 0
	}
	for i, mt := range m.meetings {
		if mt.MeetingID == meetingID {
			return i + 1
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
