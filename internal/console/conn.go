package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Conn is a line-oriented terminal over an arbitrary reader and writer,
// typically os.Stdin and os.Stdout.
type Conn struct {
	reader *bufio.Reader
	out    io.Writer
	color  bool
	mu     sync.Mutex
}

// NewConn wraps in and out. When color is false, ANSI sequences are stripped
// from everything written.
//
// Precondition: in and out must be non-nil.
func NewConn(in io.Reader, out io.Writer, color bool) *Conn {
	return &Conn{
		reader: bufio.NewReaderSize(in, 4096),
		out:    out,
		color:  color,
	}
}

// ReadLine reads one line of input without its \n or \r\n terminator.
// Control characters other than tab are dropped. A final unterminated line
// is returned without error; io.EOF is reported on the following call.
//
// Postcondition: Returns the next line, or "" and an error (including io.EOF).
func (c *Conn) ReadLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return line.String(), nil
			}
			return "", err
		}

		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := c.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = c.reader.ReadByte()
			}
			break
		}
		if b < 32 && b != '\t' {
			continue
		}
		line.WriteByte(b)
	}
	return line.String(), nil
}

// WriteLine writes text followed by a newline.
//
// Precondition: text should not contain a trailing newline.
func (c *Conn) WriteLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "%s\n", c.render(text))
	return err
}

// WritePrompt writes text without a trailing newline.
func (c *Conn) WritePrompt(prompt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprint(c.out, c.render(prompt))
	return err
}

func (c *Conn) render(s string) string {
	if c.color {
		return s
	}
	return StripANSI(s)
}
