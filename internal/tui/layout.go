// internal/tui/layout.go
//
// Renders the page into the viewport's document and records where every
// section and reveal target landed, in document line coordinates. The
// geometry feeds the visibility observers after each render.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"atrium/internal/page"
)

type extent struct {
	id     string
	top    int
	height int
}

type docLayout struct {
	height   int
	sections []extent
	reveals  []extent
}

// blockID names a reveal target. Stable across relayouts as long as the
// block keeps its position within its section, which is what lets reveal
// state survive a live reload.
func blockID(sectionID string, idx int) string {
	return fmt.Sprintf("%s/block-%d", sectionID, idx)
}

// renderDocument draws the whole page at the given width and returns the
// document plus its layout geometry.
func (a *App) renderDocument(width int) (string, docLayout) {
	if width < 20 {
		width = 20
	}
	inner := width - 2

	var lines []string
	appendBlock := func(rendered string) {
		if rendered == "" {
			return
		}
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	var lay docLayout
	for _, sec := range a.pg.Sections {
		secTop := len(lines)
		appendBlock(a.renderSectionTitle(sec, inner))
		lines = append(lines, "")
		for idx, blk := range sec.Blocks {
			blockTop := len(lines)
			switch blk.Kind() {
			case page.KindParagraph:
				appendBlock(a.renderParagraph(blk.Paragraph, inner))
			case page.KindSkill:
				id := blockID(sec.ID, idx)
				appendBlock(a.renderSkill(blk.Skill, a.animator.Revealed(id), inner))
				lay.reveals = append(lay.reveals, extent{id: id, top: blockTop, height: len(lines) - blockTop})
			case page.KindTimeline:
				id := blockID(sec.ID, idx)
				appendBlock(a.renderTimeline(blk.Timeline, a.animator.Revealed(id), inner))
				lay.reveals = append(lay.reveals, extent{id: id, top: blockTop, height: len(lines) - blockTop})
			case page.KindForm:
				if a.formView != nil {
					appendBlock(a.formView.render(inner, a.focus == focusForm))
				}
			}
			lines = append(lines, "")
		}
		lines = append(lines, "")
		lay.sections = append(lay.sections, extent{id: sec.ID, top: secTop, height: len(lines) - secTop})
	}
	lay.height = len(lines)
	return strings.Join(lines, "\n"), lay
}

func (a *App) renderSectionTitle(sec page.Section, width int) string {
	title := sec.Title
	if title == "" {
		title = sec.ID
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EEEEEE"))
	if a.spy != nil && a.spy.Active() == sec.ID {
		style = style.Foreground(lipgloss.Color(a.accent))
	}
	rule := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).
		Render(strings.Repeat("─", max(0, width-lipgloss.Width(title)-3)))
	return style.Render(title) + " " + rule
}

func (a *App) renderParagraph(text string, width int) string {
	return lipgloss.NewStyle().
		Width(max(20, width)).
		Foreground(lipgloss.Color("#CCCCCC")).
		Render(strings.TrimSpace(text))
}

// renderSkill draws a skill card. Unrevealed cards render dimmed; the reveal
// swaps in the accent border and full text color, and never swaps back.
func (a *App) renderSkill(sc *page.SkillCard, revealed bool, width int) string {
	border := lipgloss.Color("#333333")
	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#555555"))
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	if revealed {
		border = lipgloss.Color(a.accent)
		name = name.Foreground(lipgloss.Color("#EEEEEE"))
		meta = meta.Foreground(lipgloss.Color("#AAAAAA"))
	}
	var body []string
	line := name.Render(sc.Name)
	if sc.Level != "" {
		line += meta.Render(" · " + sc.Level)
	}
	body = append(body, line)
	if sc.Detail != "" {
		body = append(body, meta.Render(sc.Detail))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(20, width)).
		Render(strings.Join(body, "\n"))
}

// renderTimeline draws one experience entry with a gutter bullet.
func (a *App) renderTimeline(item *page.TimelineItem, revealed bool, width int) string {
	bulletGlyph, headColor, subColor := "○", "#555555", "#444444"
	headStyle := lipgloss.NewStyle()
	if revealed {
		bulletGlyph, headColor, subColor = "●", "#EEEEEE", "#AAAAAA"
		headStyle = headStyle.Bold(true)
	}
	bulletColor := "#444444"
	if revealed {
		bulletColor = a.accent
	}
	bullet := lipgloss.NewStyle().Foreground(lipgloss.Color(bulletColor)).Render(bulletGlyph)
	head := headStyle.Foreground(lipgloss.Color(headColor))
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color(subColor))
	lines := []string{
		fmt.Sprintf("%s %s", bullet, head.Render(item.Role)),
		"  " + sub.Render(item.Period),
	}
	if item.Summary != "" {
		summary := sub.Width(max(20, width-2)).Render(item.Summary)
		for _, l := range strings.Split(summary, "\n") {
			lines = append(lines, "  "+l)
		}
	}
	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
