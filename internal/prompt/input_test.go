package prompt

import (
	"errors"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPrompter struct {
	err      error
	response string
	prompts  []string
}

func (m *mockPrompter) Prompt(prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (*mockPrompter) Close() error {
	return nil
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{name: "y", response: "y", want: true},
		{name: "yes with spaces", response: "  YES ", want: true},
		{name: "no", response: "n", want: false},
		{name: "empty defaults to no", response: "", want: false},
		{name: "anything else", response: "sure", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prompter := &mockPrompter{response: tt.response}
			got, err := Confirm(prompter, "Proceed?")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.Len(t, prompter.prompts, 1)
			assert.Contains(t, prompter.prompts[0], "Proceed? [y/N]")
		})
	}
}

func TestConfirm_Aborted(t *testing.T) {
	t.Parallel()

	for _, abortErr := range []error{liner.ErrPromptAborted, io.EOF} {
		_, err := Confirm(&mockPrompter{err: abortErr}, "Proceed?")
		require.ErrorIs(t, err, ErrCancelled)
	}
}

func TestConfirm_OtherError(t *testing.T) {
	t.Parallel()

	boom := errors.New("terminal gone")
	_, err := Confirm(&mockPrompter{err: boom}, "Proceed?")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "confirmation prompt failed")
}
