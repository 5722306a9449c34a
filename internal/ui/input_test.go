package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConfirmerOnlyExactYes(t *testing.T) {
	cases := map[string]bool{
		"y\n":    true,
		"y\r\n":  true,
		"y":      true,
		"Y\n":    false,
		"yes\n":  false,
		" y\n":   false,
		"y \n":   false,
		"n\n":    false,
		"\n":     false,
		"":       false,
	}

	for input, want := range cases {
		var out bytes.Buffer
		c := NewLineConfirmer(strings.NewReader(input), &out)

		got, err := c.Confirm("Generate? (y/n) ")
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "Generate? (y/n) ", out.String())
	}
}

func TestLineConfirmerReadsSuccessiveAnswers(t *testing.T) {
	var out bytes.Buffer
	c := NewLineConfirmer(strings.NewReader("n\ny\n"), &out)

	first, _ := c.Confirm("? ")
	second, _ := c.Confirm("? ")

	assert.False(t, first)
	assert.True(t, second)
}

func TestInputModelKeys(t *testing.T) {
	m := inputModel{prompt: "Generate?"}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, next.(inputModel).complete)
	assert.Equal(t, "", next.(inputModel).View())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(inputModel).quitting)
	assert.Contains(t, next.(inputModel).View(), "Cancelled.")
}

func TestSpinnerModelFinishesWithTaskResult(t *testing.T) {
	m := spinnerModel{text: "waiting"}

	next, _ := m.Update(taskResultMsg{data: 42})
	fm := next.(spinnerModel)
	assert.True(t, fm.quitting)
	assert.Equal(t, 42, fm.result)
	assert.NoError(t, fm.err)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.ErrorIs(t, next.(spinnerModel).err, ErrInterrupted)
}
