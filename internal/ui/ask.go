package ui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the prompt without asking.
var ErrCancelled = errors.New("cancelled")

type askModel struct {
	input     textinput.Model
	question  string
	cancelled bool
	done      bool
}

func newAskModel() askModel {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "Which sections of CS 1331 are open this fall?"
	ti.CharLimit = 500
	ti.Width = 72
	ti.Focus()
	return askModel{input: ti}
}

func (m askModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m askModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.question = q
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m askModel) View() string {
	if m.done {
		return ""
	}
	return PromptStyle.Render("Ask about course registration") + "\n\n" +
		m.input.View() + "\n\n" +
		HintStyle.Render("enter to ask • esc to quit") + "\n"
}

// AskQuestion reads one question interactively. The prompt is drawn on out so
// stdout stays free for the result table.
func AskQuestion(ctx context.Context, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(newAskModel(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(askModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.question, nil
}
