// internal/form/form.go
//
// Contact form submission state. The submit control moves through a small
// state machine; the only asynchronous work is a single multipart POST.

package form

import "time"

// ResetDelay is how long success and error feedback stay on the submit
// control before it reverts to idle.
const ResetDelay = 4000 * time.Millisecond

// Phase is the submit control's state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
	PhaseSuccess
	PhaseError
)

// Button describes how the submit control renders in a given phase.
type Button struct {
	Label      string
	Background string // empty means default styling
	Disabled   bool
}

// ButtonFor returns the control's presentation for a phase. The disabled
// flag is true only while sending and during success feedback; the error
// state re-enables the control immediately so the visitor can retry.
func ButtonFor(p Phase) Button {
	switch p {
	case PhaseSending:
		return Button{Label: "Sending...", Disabled: true}
	case PhaseSuccess:
		return Button{Label: "✓ Message sent!", Background: SuccessColor, Disabled: true}
	case PhaseError:
		return Button{Label: "Something went wrong — try again", Background: ErrorColor}
	default:
		return Button{Label: "Send Message →"}
	}
}

// Feedback colors for the submit control.
const (
	SuccessColor = "#4CAF50"
	ErrorColor   = "#FF6B6B"
)
