package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type workDoneMsg struct{ err error }

type spinModel struct {
	spinner spinner.Model
	label   string
	work    func() error
	err     error
	done    bool
}

func newSpinModel(label string, work func() error) spinModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(SpinnerStyle),
	)
	return spinModel{spinner: s, label: label, work: work}
}

func (m spinModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return workDoneMsg{err: work()}
	})
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + HintStyle.Render(m.label) + "\n"
}

// Spin runs work while showing label next to a spinner on out. It returns
// work's error. Cancelling ctx stops the spinner but work itself must watch
// ctx to return early.
func Spin(ctx context.Context, out io.Writer, label string, work func() error) error {
	p := tea.NewProgram(newSpinModel(label, work),
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return final.(spinModel).err
}
