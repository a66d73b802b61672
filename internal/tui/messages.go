package tui

// Message types for tea.Cmd async operations

// commandDoneMsg is sent when a console line has been handled
type commandDoneMsg struct {
	line   string
	output string
	err    error
}
