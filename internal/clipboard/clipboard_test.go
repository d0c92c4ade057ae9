package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindTool_NothingInstalled(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	t.Cleanup(func() { lookPath = orig })

	_, _, ok := findTool()
	assert.False(t, ok)
}

func TestCopy_NoTool(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	t.Cleanup(func() { lookPath = orig })

	err := Copy(context.Background(), "some text")
	assert.True(t, errors.Is(err, ErrNoTool))
}

func TestFindTool_ProbeOrder(t *testing.T) {
	orig := lookPath
	lookPath = func(binary string) (string, error) {
		if binary == "xsel" || binary == "pbcopy" {
			return "/usr/bin/" + binary, nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })

	binary, args, ok := findTool()
	assert.True(t, ok)
	assert.Equal(t, "xsel", binary, "earlier tools in the list win")
	assert.Equal(t, []string{"--clipboard", "--input"}, args)
}

func TestInfo(t *testing.T) {
	orig := lookPath
	lookPath = func(binary string) (string, error) {
		if binary == "wl-copy" {
			return "/usr/bin/wl-copy", nil
		}
		return "", exec.ErrNotFound
	}
	t.Cleanup(func() { lookPath = orig })

	assert.Equal(t, "using wl-copy", Info())

	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	assert.Contains(t, Info(), "no clipboard tool found")
}
