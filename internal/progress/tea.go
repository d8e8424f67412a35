// SPDX-License-Identifier: EPL-2.0

package progress

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned by TeaBar.Run when the user quits the program.
var ErrInterrupted = errors.New("interrupted")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

type (
	advanceMsg int
	finishMsg  struct{}
)

type model struct {
	title       string
	total       int
	elapsed     int
	bar         progress.Model
	done        bool
	interrupted bool
}

func newModel(title string, total int) model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth

	return model{title: title, total: total, bar: bar}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.elapsed = min(m.total, m.elapsed+int(msg))
	case finishMsg:
		m.elapsed = m.total
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.interrupted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = max(20, min(80, msg.Width-30))
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(clockStyle.Render(fmt.Sprintf("%s / %s", Clock(m.elapsed), Clock(m.total))))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(fraction(m.elapsed, m.total)))
	b.WriteString("\n")
	if !m.done {
		b.WriteString(dimStyle.Render("q to stop"))
		b.WriteString("\n")
	}

	return b.String()
}

// TeaBar shows progress in a Bubble Tea program. Run must be running for
// Advance and Finish to return.
type TeaBar struct {
	program *tea.Program
}

func NewTeaBar(title string, total int, opts ...tea.ProgramOption) *TeaBar {
	return &TeaBar{program: tea.NewProgram(newModel(title, total), opts...)}
}

// Run blocks until Finish is called or the user quits.
func (b *TeaBar) Run() error {
	final, err := b.program.Run()
	if err != nil {
		return fmt.Errorf("progress display: %w", err)
	}
	if m, ok := final.(model); ok && m.interrupted {
		return ErrInterrupted
	}

	return nil
}

func (b *TeaBar) Advance(n int) { b.program.Send(advanceMsg(n)) }
func (b *TeaBar) Finish()       { b.program.Send(finishMsg{}) }
