// internal/tui/formview.go
//
// The contact form portion of the page: field editors, the submit control's
// state machine, and the single-attempt submission command.

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"atrium/internal/form"
	"atrium/internal/page"
)

type formSubmitResultMsg struct {
	gen int
	err error
}

type formResetMsg struct {
	gen int
}

type fieldEditor struct {
	spec      page.FormField
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func (e *fieldEditor) value() string {
	if e.multiline {
		return e.area.Value()
	}
	return e.input.Value()
}

func (e *fieldEditor) clear() {
	if e.multiline {
		e.area.Reset()
		return
	}
	e.input.Reset()
}

func (e *fieldEditor) focus() tea.Cmd {
	if e.multiline {
		return e.area.Focus()
	}
	return e.input.Focus()
}

func (e *fieldEditor) blur() {
	if e.multiline {
		e.area.Blur()
		return
	}
	e.input.Blur()
}

func (e *fieldEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.multiline {
		e.area, cmd = e.area.Update(msg)
	} else {
		e.input, cmd = e.input.Update(msg)
	}
	return cmd
}

// formView owns the contact form's editors and submit phase. It exists only
// when the page declares a contact form; a page without one leaves the whole
// component unwired.
type formView struct {
	sectionID string
	editors   []fieldEditor
	focus     int // editor index; len(editors) is the submit control
	phase     form.Phase
	submitter *form.Submitter
	accent    string
}

func newFormView(f *page.ContactForm, sectionID string, submitter *form.Submitter, accent string) *formView {
	v := &formView{
		sectionID: sectionID,
		submitter: submitter,
		accent:    accent,
	}
	for _, spec := range f.Fields {
		editor := fieldEditor{spec: spec, multiline: spec.Multiline}
		if spec.Multiline {
			area := textarea.New()
			area.Placeholder = spec.Placeholder
			area.SetHeight(3)
			area.ShowLineNumbers = false
			area.CharLimit = 2000
			editor.area = area
		} else {
			input := textinput.New()
			input.Placeholder = spec.Placeholder
			input.Prompt = ""
			input.CharLimit = 200
			editor.input = input
		}
		v.editors = append(v.editors, editor)
	}
	return v
}

func (v *formView) buttonIndex() int {
	return len(v.editors)
}

// focusedMultiline reports whether the focused editor is a textarea, where
// arrow keys move the cursor instead of the focus.
func (v *formView) focusedMultiline() bool {
	return v.focus < len(v.editors) && v.editors[v.focus].multiline
}

func (v *formView) focusFirst() tea.Cmd {
	v.focus = 0
	return v.applyFocus()
}

func (v *formView) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range v.editors {
		if i == v.focus {
			cmd = v.editors[i].focus()
		} else {
			v.editors[i].blur()
		}
	}
	return cmd
}

func (v *formView) blurAll() {
	for i := range v.editors {
		v.editors[i].blur()
	}
}

func (v *formView) cycleFocus(delta int) tea.Cmd {
	total := len(v.editors) + 1
	v.focus = (v.focus + delta + total) % total
	return v.applyFocus()
}

// button reports the submit control's current presentation.
func (v *formView) button() form.Button {
	return form.ButtonFor(v.phase)
}

func (v *formView) values() []form.Field {
	fields := make([]form.Field, 0, len(v.editors))
	for i := range v.editors {
		fields = append(fields, form.Field{Name: v.editors[i].spec.Name, Value: v.editors[i].value()})
	}
	return fields
}

func (v *formView) clearFields() {
	for i := range v.editors {
		v.editors[i].clear()
	}
}

// submit starts a submission unless the control is disabled. The returned
// command performs the single POST attempt off the update loop and reports
// back with the submission's generation token.
func (v *formView) submit() tea.Cmd {
	if v.button().Disabled {
		return nil
	}
	fields := v.values()
	gen := v.submitter.Begin()
	v.phase = form.PhaseSending
	submitter := v.submitter
	return func() tea.Msg {
		err := submitter.Submit(context.Background(), fields)
		return formSubmitResultMsg{gen: gen, err: err}
	}
}

// handleResult applies a submission outcome. Results from a superseded
// submission are dropped; the newest submission owns the control.
func (v *formView) handleResult(msg formSubmitResultMsg) tea.Cmd {
	if !v.submitter.Current(msg.gen) {
		return nil
	}
	if msg.err != nil {
		v.phase = form.PhaseError
	} else {
		v.phase = form.PhaseSuccess
		v.clearFields()
	}
	gen := msg.gen
	return tea.Tick(form.ResetDelay, func(time.Time) tea.Msg {
		return formResetMsg{gen: gen}
	})
}

// handleReset reverts feedback to idle. A stale reset (scheduled by an
// earlier submission) is ignored so it cannot clobber a newer submission's
// feedback.
func (v *formView) handleReset(msg formResetMsg) {
	if !v.submitter.Current(msg.gen) {
		return
	}
	if v.phase == form.PhaseSuccess || v.phase == form.PhaseError {
		v.phase = form.PhaseIdle
	}
}

// update routes input to the focused editor.
func (v *formView) update(msg tea.Msg) tea.Cmd {
	if v.focus >= len(v.editors) {
		return nil
	}
	return v.editors[v.focus].update(msg)
}

// render draws the form fields and submit control at the given width.
func (v *formView) render(width int, focused bool) string {
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CCCCCC"))
	focusedLabel := labelStyle.Foreground(lipgloss.Color(v.accent))
	fieldStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("#444444")).
		PaddingLeft(1)

	var parts []string
	for i := range v.editors {
		label := labelStyle.Render(v.editors[i].spec.Label)
		if focused && i == v.focus {
			label = focusedLabel.Render(v.editors[i].spec.Label)
		}
		var body string
		if v.editors[i].multiline {
			body = v.editors[i].area.View()
		} else {
			body = v.editors[i].input.View()
		}
		parts = append(parts, label, fieldStyle.Render(body))
	}
	parts = append(parts, "", v.renderButton(focused))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *formView) renderButton(focused bool) string {
	btn := v.button()
	style := lipgloss.NewStyle().Bold(true).Padding(0, 2)
	switch {
	case btn.Background != "":
		style = style.Background(lipgloss.Color(btn.Background)).Foreground(lipgloss.Color("#FFFFFF"))
	case btn.Disabled:
		style = style.Foreground(lipgloss.Color("#888888"))
	default:
		style = style.Foreground(lipgloss.Color(v.accent))
	}
	if focused && v.focus == v.buttonIndex() && !btn.Disabled {
		style = style.Underline(true)
	}
	return style.Render(btn.Label)
}
