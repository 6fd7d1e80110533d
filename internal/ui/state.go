package ui

type State int

const (
	StateDashboard State = iota
	StatePrompt
	StateHelp
)

func (s State) String() string {
	switch s {
	case StateDashboard:
		return "Dashboard"
	case StatePrompt:
		return "Prompt"
	case StateHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
