package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpener(env map[string]string, installed ...string) *Opener {
	o := NewOpener()
	o.getenv = func(k string) string { return env[k] }
	o.lookPath = func(name string) (string, error) {
		for _, bin := range installed {
			if bin == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
	return o
}

func TestFindEditor(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		want      string
	}{
		{"EDITOR wins", map[string]string{"EDITOR": "hx", "VISUAL": "code"}, nil, "hx"},
		{"VISUAL fallback", map[string]string{"VISUAL": "code --wait"}, nil, "code --wait"},
		{"installed fallback", nil, []string{"nano", "vim"}, "/usr/bin/vim"},
		{"nothing", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testOpener(tt.env, tt.installed...).findEditor())
		})
	}
}

func TestCommand(t *testing.T) {
	o := testOpener(map[string]string{"EDITOR": "code --wait"})

	cmd, err := o.Command("/tmp/notes.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/notes.md"}, cmd.Args)

	WithEditor("micro")(o)
	cmd, err = o.Command("/tmp/notes.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"micro", "/tmp/notes.md"}, cmd.Args)

	_, err = testOpener(nil).Command("/tmp/notes.md")
	assert.Error(t, err)
}
