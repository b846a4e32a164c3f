package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up, W, click - jump; also starts, resumes and continues
	ActionPause             // P - pause/unpause
	ActionResume            // explicit resume from a pause menu
	ActionRestart           // R - restart from any phase
	ActionToggleAuto        // A - toggle auto-play
	ActionContinue          // Enter - continue after losing a life
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionRestart:
		return "Restart"
	case ActionToggleAuto:
		return "ToggleAuto"
	case ActionContinue:
		return "Continue"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputEvent is a discrete request from the input source.
// At is the clock reading when the request was made; the jump controller
// uses it for the double-jump acceptance window.
type InputEvent struct {
	Action Action
	At     time.Duration
}
