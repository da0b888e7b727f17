package app

// Key binding constants used in handleKey.
const (
	KeyQuit          = "q"
	KeyQuitUpper     = "Q"
	KeyCtrlC         = "ctrl+c"
	KeySpace         = " "
	KeyTab           = "tab"
	KeyEsc           = "esc"
	KeyUp            = "up"
	KeyDown          = "down"
	KeyJ             = "j"
	KeyK             = "k"
	KeyEnter         = "enter"
	KeyPause         = "p"
	KeyDiscard       = "d"
	KeyNew           = "n"
	KeyExpandAll     = "E"
	KeyCollapseAll   = "C"
	KeyExcerpt       = "x"
	KeyMeetingFilter = "m"
	KeyViewCapture   = "1"
	KeyViewDocument  = "2"
	KeyViewChat      = "3"
)
