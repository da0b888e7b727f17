package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD75F")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorCyan    = lipgloss.Color("#5FD7FF")
	ColorBlue    = lipgloss.Color("#5F87FF")
	ColorOrange  = lipgloss.Color("#FFAF5F")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF87FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SubheadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGray)

	MinorHeadingStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	ActiveHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	ActiveOutlineStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	DecisionLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	ActionLabelStyle = lipgloss.NewStyle().
				Foreground(ColorOrange)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true)

	RefBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	PausedDotStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	AssistantMsgStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	StepDoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StepActiveStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(ColorDimGray)
)
