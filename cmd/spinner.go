package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errSpinnerModel = errors.New("spinner program returned an unexpected model")

// waitDoneMsg carries the result of the wrapped call and ends the program.
type waitDoneMsg struct {
	err error
}

// waitModel animates a one line spinner next to a label while a single
// backend call runs. It reads no input; the call finishing is the only
// way out.
type waitModel struct {
	spinner spinner.Model
	label   string
	work    tea.Cmd
	result  error
	settled bool
}

func newWaitModel(label string, work tea.Cmd) waitModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return waitModel{spinner: sp, label: label, work: work}
}

func (m waitModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case waitDoneMsg:
		m.settled = true
		m.result = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m waitModel) View() string {
	if m.settled {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// runWithSpinner runs fn while showing label on output, then returns
// fn's error.
func runWithSpinner(ctx context.Context, output io.Writer, label string, fn func(context.Context) error) error {
	work := func() tea.Msg {
		return waitDoneMsg{err: fn(ctx)}
	}

	p := tea.NewProgram(
		newWaitModel(label, work),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(waitModel)
	if !ok {
		return errSpinnerModel
	}
	return m.result
}
