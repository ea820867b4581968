package console_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/isekai/internal/console"
)

func TestConn_ReadLine_Terminators(t *testing.T) {
	c := console.NewConn(strings.NewReader("one\ntwo\r\nthree\rfour"), io.Discard, false)

	for _, want := range []string{"one", "two", "three", "four"} {
		got, err := c.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestConn_ReadLine_DropsControlCharacters(t *testing.T) {
	c := console.NewConn(strings.NewReader("a\x07b\tc\x1b\n"), io.Discard, false)
	got, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "ab\tc", got)
}

func TestConn_ReadLine_EmptyInput(t *testing.T) {
	c := console.NewConn(strings.NewReader(""), io.Discard, false)
	_, err := c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestConn_WriteLine_StripsColorWhenDisabled(t *testing.T) {
	var out bytes.Buffer
	c := console.NewConn(strings.NewReader(""), &out, false)
	require.NoError(t, c.WriteLine(console.Colorize(console.Red, "warn")))
	require.NoError(t, c.WritePrompt(console.Colorize(console.Green, "> ")))
	assert.Equal(t, "warn\n> ", out.String())
}

func TestConn_WriteLine_KeepsColorWhenEnabled(t *testing.T) {
	var out bytes.Buffer
	c := console.NewConn(strings.NewReader(""), &out, true)
	require.NoError(t, c.WriteLine(console.Colorize(console.Red, "warn")))
	assert.Equal(t, "\033[31mwarn\033[0m\n", out.String())
}

// Property: every line written to the input is read back verbatim.
func TestConn_ReadLine_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-zA-Z0-9 ]{0,20}`), 1, 10).Draw(rt, "lines")
		c := console.NewConn(strings.NewReader(strings.Join(lines, "\n")+"\n"), io.Discard, false)
		for i, want := range lines {
			got, err := c.ReadLine()
			if err != nil {
				rt.Fatalf("line %d: %v", i, err)
			}
			if got != want {
				rt.Fatalf("line %d = %q, want %q", i, got, want)
			}
		}
	})
}
