package dashboard

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nkaddour/ttc/internal/application"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	snapshot application.Snapshot
	opts     RenderOptions
	styles   styles
	output   string
}

func newModel(snapshot application.Snapshot, opts RenderOptions) model {
	return model{
		snapshot: snapshot,
		opts:     opts,
		styles:   newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.snapshot, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces a one-shot dashboard view for non-interactive output.
func Render(snapshot application.Snapshot, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(snapshot, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// SnapshotMsg carries a settled aggregation round into the watch view.
// Send it with Program.Send from the poller's deliver callback.
type SnapshotMsg application.Snapshot

// WatchModel is the live dashboard: a spinner until the first round
// lands, then the rendered view, replaced wholesale on every round.
// refresh, when set, backs the "r" key with an on-demand round.
type WatchModel struct {
	opts     RenderOptions
	styles   styles
	spinner  spinner.Model
	snapshot *application.Snapshot
	refresh  func() application.Snapshot
}

func NewWatchModel(opts RenderOptions, refresh func() application.Snapshot) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return WatchModel{
		opts:    opts,
		styles:  newStyles(),
		spinner: sp,
		refresh: refresh,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		snapshot := application.Snapshot(msg)
		m.snapshot = &snapshot
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.refresh == nil {
				return m, nil
			}
			refresh := m.refresh
			return m, func() tea.Msg {
				return SnapshotMsg(refresh())
			}
		}
		return m, nil
	case spinner.TickMsg:
		if m.snapshot != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m WatchModel) View() string {
	if m.snapshot == nil {
		return m.spinner.View() + " loading dashboard..."
	}

	opts := m.opts
	opts.Now = m.snapshot.TakenAt
	view := renderView(*m.snapshot, opts, m.styles)
	return view + "\n" + m.styles.hint.Render("r to refresh, q to quit")
}
