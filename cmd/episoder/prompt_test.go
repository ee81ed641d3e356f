package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptWithDefault(t *testing.T) {
	withInput(t, "\nnas\n")

	got, err := promptWithDefault("Server", "http://localhost")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", got)

	got, err = promptWithDefault("Server", "http://localhost")
	require.NoError(t, err)
	assert.Equal(t, "nas", got)

	_, err = promptWithDefault("Server", "x")
	assert.Error(t, err, "EOF with no input")
}

func TestPromptRequired_RetriesUntilValue(t *testing.T) {
	withInput(t, "\n  \nMy Show\n")

	got, err := promptRequired("Series title")
	require.NoError(t, err)
	assert.Equal(t, "My Show", got)
}

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"yep\n", false},
		{"y", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			withInput(t, tt.input)
			got, err := promptConfirm("Rename?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptPassword_NotATerminal(t *testing.T) {
	withInput(t, "secret\n")

	got, err := promptPassword("Password")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}
