package ui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by Spin when the operator presses Ctrl+C.
var ErrInterrupted = errors.New("cancelled by user")

type taskResultMsg struct {
	data any
	err  error
}

type spinnerModel struct {
	spinner  spinner.Model
	text     string
	task     func() (any, error)
	result   any
	err      error
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			res, err := m.task()
			return taskResultMsg{data: res, err: err}
		},
	)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = ErrInterrupted
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case taskResultMsg:
		m.result = msg.data
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit

	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), textStyle.Render(m.text))
}

// Spin runs a blocking task with a spinner overlay.
// The task function returns a result (any) and an error.
// Spin returns (any, error).
func Spin(text string, task func() (any, error)) (any, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := spinnerModel{
		spinner: s,
		text:    text,
		task:    task,
	}

	// Use stderr to avoid polluting stdout
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm, ok := finalModel.(spinnerModel)
	if !ok {
		return nil, fmt.Errorf("internal error: invalid model type")
	}

	return fm.result, fm.err
}

// SpinnerClock waits between credential report checks behind a spinner.
// The wait has no cancellation of its own, so Ctrl+C ends the process
// through OnInterrupt.
type SpinnerClock struct {
	Text        string
	OnInterrupt func()
}

func (SpinnerClock) Now() time.Time { return time.Now() }

func (c SpinnerClock) Sleep(d time.Duration) {
	text := c.Text
	if text == "" {
		text = "Waiting for the credential report..."
	}

	_, err := Spin(fmt.Sprintf("%s (next check in %s)", text, d), func() (any, error) {
		time.Sleep(d)
		return nil, nil
	})
	switch {
	case errors.Is(err, ErrInterrupted):
		if c.OnInterrupt != nil {
			c.OnInterrupt()
			return
		}
		os.Exit(130)
	case err != nil:
		// No usable terminal; wait without the overlay.
		time.Sleep(d)
	}
}
