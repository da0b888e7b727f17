package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/chat"
	"github.com/minute-tui/minute/internal/inbox"
	"github.com/minute-tui/minute/internal/store"
)

// uploadCmd pushes the audio file to the backend.
func uploadCmd(client *api.Client, gen int, audioPath string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.UploadAudio(context.Background(), audioPath)
		return UploadResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// transcribeCmd asks for the transcript of an uploaded file.
func transcribeCmd(client *api.Client, gen int, meetingID, s3Path string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.TranscribeAudio(context.Background(), meetingID, s3Path)
		return TranscribeResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// estimateCmd fetches the processing estimate. Failures are tolerated; the
// summarize stage proceeds either way.
func estimateCmd(client *api.Client, gen int, transcript string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.EstimateProcessingTime(context.Background(), transcript)
		return EstimateResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// enhancedSummaryCmd requests the hierarchical summary.
func enhancedSummaryCmd(client *api.Client, gen int, transcript string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.GenerateEnhancedSummary(context.Background(), api.EnhancedSummarizeRequest{
			Transcript: transcript,
			MeetingMetadata: &api.MeetingMetadataHint{
				Date: time.Now().Format("2006-01-02"),
			},
		})
		return EnhancedSummaryResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// summaryCmd requests the flat legacy summary.
func summaryCmd(client *api.Client, gen int, transcript string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.GenerateSummary(context.Background(), transcript)
		return SummaryResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// ingestCmd indexes the transcript in the background after completion.
func ingestCmd(client *api.Client, gen int, transcript, meetingID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.IngestMeeting(context.Background(), api.IngestRequest{
			Transcript: transcript,
			MeetingID:  meetingID,
		})
		return IngestResultMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// askCmd answers one question. The user message is built up front so its
// timestamp precedes the assistant's.
func askCmd(client *api.Client, question, meetingID string) tea.Cmd {
	userMsg := chat.NewMessage("user", question, nil)
	return func() tea.Msg {
		resp, err := client.AskChat(context.Background(), api.ChatRequest{
			Question:  question,
			MeetingID: meetingID,
		})
		if err != nil {
			return ChatAnswerMsg{User: userMsg, Err: err}
		}
		return ChatAnswerMsg{
			User:      userMsg,
			Assistant: chat.NewMessage("assistant", resp.Answer, resp.Sources),
		}
	}
}

// saveExchangeCmd persists a turn through the session manager.
func saveExchangeCmd(mgr *chat.Manager, userMsg, assistantMsg api.ChatMessage, meetingID string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.RecordExchange(context.Background(), userMsg, assistantMsg, meetingID)
		return ExchangeSavedMsg{Err: err}
	}
}

// refreshSessionsCmd lists sessions from the server.
func refreshSessionsCmd(client *api.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := client.ListChatSessions(context.Background(), limit)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

// loadMirrorSessionsCmd reads the local mirror for an instant first paint.
func loadMirrorSessionsCmd(mirror *store.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		if mirror == nil {
			return SessionsLoadedMsg{FromMirror: true}
		}
		sessions, err := mirror.LoadSessions(limit)
		if err != nil {
			return SessionsLoadedMsg{FromMirror: true} // mirror problems stay silent
		}
		return SessionsLoadedMsg{Sessions: sessions, FromMirror: true}
	}
}

// saveMirrorCmd writes the current session list to the mirror, best-effort.
func saveMirrorCmd(mirror *store.Store, sessions []api.ChatSession) tea.Cmd {
	return func() tea.Msg {
		if mirror != nil {
			_ = mirror.SaveSessions(sessions)
		}
		return nil
	}
}

// openMirrorCmd opens the local sqlite mirror.
func openMirrorCmd(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(path)
		if err != nil {
			return nil // run without a mirror
		}
		return MirrorOpenedMsg{Store: s}
	}
}

// loadSessionCmd opens one stored conversation.
func loadSessionCmd(mgr *chat.Manager, sessionID string) tea.Cmd {
	return func() tea.Msg {
		session, err := mgr.Load(context.Background(), sessionID)
		return SessionLoadedMsg{Session: session, Err: err}
	}
}

// deleteSessionCmd removes a stored conversation.
func deleteSessionCmd(mgr *chat.Manager, sessionID string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.Delete(context.Background(), sessionID)
		return SessionDeletedMsg{SessionID: sessionID, Err: err}
	}
}

// listMeetingsCmd fetches the indexed meetings for the chat filter.
func listMeetingsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		meetings, err := client.ListMeetings(context.Background())
		return MeetingsLoadedMsg{Meetings: meetings, Err: err}
	}
}

// recordTickCmd drives the one-second recording timer.
func recordTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return RecordTickMsg{}
	})
}

// watchInboxCmd waits for the next dropped audio file.
func watchInboxCmd(w *inbox.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Files()
		if !ok {
			return nil
		}
		return InboxFileMsg{Path: path}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}
