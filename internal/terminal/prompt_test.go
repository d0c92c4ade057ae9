package terminal

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"anything else\n", false},
		{"", false}, // EOF without input
	}

	for _, tt := range tests {
		var out bytes.Buffer
		r := bufio.NewReader(strings.NewReader(tt.input))
		got := Confirm(r, "Proceed?", &out)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Proceed? [y/N]: ")
	}
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("line one\nline two\n"))

	got, err := GetMultiline(r, "Enter content:", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
	assert.Contains(t, out.String(), "Enter content:")
}

func TestGetMultiline_NoTrailingNewline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("only line"))

	got, err := GetMultiline(r, "Enter content:", &out)
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetPassword_Stubbed(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("sekrit"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := GetPassword("Enter password: ", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("sekrit"), pw)
	assert.Contains(t, out.String(), "Enter password: ")
}
