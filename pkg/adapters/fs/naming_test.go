package fs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomName(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		name, err := randomName()
		require.NoError(t, err)
		require.Len(t, name, NameLength)
		for _, r := range name {
			assert.True(t, strings.ContainsRune(nameAlphabet, r), "unexpected rune %q in %s", r, name)
		}
		seen[name] = true
	}
	// 52^15 names; a repeat here means the source is broken.
	assert.Len(t, seen, 200)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "abc", want: "abc.txt"},
		{in: "abc.txt", want: "abc.txt"},
		{in: "notes.md", want: "notes.md.txt"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "..", wantErr: true},
		{in: "../abc", wantErr: true},
		{in: `sub\abc`, wantErr: true},
	}

	for _, tt := range tests {
		got, err := fileName(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestOpenFlags(t *testing.T) {
	_, err := openFlags("wr")
	assert.Error(t, err)

	for mode := range modeFlags {
		_, err := openFlags(mode)
		assert.NoError(t, err, "mode %s", mode)
	}
}
