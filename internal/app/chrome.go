package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osmet/vitals/internal/input"
	"github.com/osmet/vitals/internal/theme"
)

// chrome holds the lipgloss styles for the parts of the dashboard that are
// not box/meter/graph algorithm output (spec.md's exact box-drawing and
// glyph-packed sparklines stay raw CSI, per internal/render): the status
// line and the help overlay. Grounded on the teacher's internal/monitor/
// styles.go HeaderStyle/FooterStyle/CardStyle idiom, rebuilt per palette
// since vitals' colors come from a loaded theme rather than fixed consts.
type chrome struct {
	status lipgloss.Style
	key    lipgloss.Style
	desc   lipgloss.Style
	panel  lipgloss.Style
	title  lipgloss.Style
}

func newChrome(pal *theme.Palette) chrome {
	border := lipgloss.Color(pal.Colors["proc_box"].Hex())
	title := lipgloss.Color(pal.Colors["title"].Hex())
	fg := lipgloss.Color(pal.Colors["main_fg"].Hex())
	muted := lipgloss.Color(pal.Colors["inactive_fg"].Hex())

	return chrome{
		status: lipgloss.NewStyle().Foreground(muted),
		key:    lipgloss.NewStyle().Foreground(title).Bold(true),
		desc:   lipgloss.NewStyle().Foreground(fg),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(title).Bold(true),
	}
}

// renderHelpOverlay draws the bubbles/key-derived binding list in a bordered
// panel centered over the dashboard, toggled by the '?' action.
func (a *App) renderHelpOverlay(cols, rows int) string {
	c := newChrome(a.palette)
	var body strings.Builder
	body.WriteString(c.title.Render("keys"))
	body.WriteString("\n")
	for _, line := range input.HelpLines() {
		key, desc, ok := strings.Cut(line, "  ")
		if !ok {
			body.WriteString(line + "\n")
			continue
		}
		body.WriteString(c.key.Render(key) + " " + c.desc.Render(desc) + "\n")
	}
	panel := c.panel.Render(strings.TrimRight(body.String(), "\n"))

	lines := strings.Split(panel, "\n")
	width := 0
	for _, l := range lines {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	x := cols/2 - width/2
	if x < 1 {
		x = 1
	}
	y := rows/2 - len(lines)/2
	if y < 1 {
		y = 1
	}

	var sb strings.Builder
	for i, l := range lines {
		sb.WriteString("\x1b[")
		sb.WriteString(strconv.Itoa(y + i))
		sb.WriteString(";")
		sb.WriteString(strconv.Itoa(x))
		sb.WriteString("f")
		sb.WriteString(l)
	}
	return sb.String()
}
