package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the operator aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// GetInput shows an interactive single-line prompt on stderr.
func GetInput(prompt string, placeholder string, password bool) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	if password {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	m := inputModel{
		textInput: ti,
		prompt:    prompt,
	}

	// Use Stderr to avoid polluting stdout
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	if m, ok := finalModel.(inputModel); ok && m.complete {
		return m.textInput.Value(), nil
	}
	return "", ErrCancelled
}

// IsYes reports whether answer confirms a (y/n) question. Only the exact
// token "y" does.
func IsYes(answer string) bool {
	return answer == "y"
}

// TeaConfirmer asks yes/no questions with an interactive text input.
type TeaConfirmer struct{}

func (TeaConfirmer) Confirm(question string) (bool, error) {
	answer, err := GetInput(question, "y/n", false)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// LineConfirmer asks yes/no questions over plain reader/writer streams, for
// when stdin is not a terminal.
type LineConfirmer struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewLineConfirmer wraps in and out.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{In: bufio.NewReader(in), Out: out}
}

func (c *LineConfirmer) Confirm(question string) (bool, error) {
	fmt.Fprint(c.Out, question)

	line, err := c.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return IsYes(line), nil
}

type inputModel struct {
	textInput textinput.Model
	prompt    string
	complete  bool
	quitting  bool
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.complete = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.complete {
		return ""
	}
	if m.quitting {
		return quitTextStyle.Render("Cancelled.")
	}
	return fmt.Sprintf(
		"\n%s\n\n%s\n\n",
		titleStyle.Render(m.prompt),
		m.textInput.View(),
	)
}
