package console

import "context"

// LineTerminal is the line-oriented I/O surface shared by Conn and the
// minigame and creation screens.
type LineTerminal interface {
	ReadLine() (string, error)
	WriteLine(text string) error
	WritePrompt(prompt string) error
}

type lineResult struct {
	line string
	err  error
}

// CancelableTerminal makes ReadLine on a blocking terminal return ctx.Err()
// as soon as ctx is done. Writes pass straight through.
//
// Each read runs on its own goroutine and nothing is read ahead. A read still
// blocked when ctx ends is abandoned; its goroutine exits once the wrapped
// terminal returns. A CancelableTerminal must not be shared between goroutines.
type CancelableTerminal struct {
	ctx     context.Context
	term    LineTerminal
	pending chan lineResult
}

// NewCancelableTerminal wraps term so that reads observe ctx.
//
// Precondition: ctx and term must be non-nil.
func NewCancelableTerminal(ctx context.Context, term LineTerminal) *CancelableTerminal {
	return &CancelableTerminal{ctx: ctx, term: term}
}

// ReadLine returns the next line from the wrapped terminal, or ctx.Err() if
// ctx is done first.
func (t *CancelableTerminal) ReadLine() (string, error) {
	if err := t.ctx.Err(); err != nil {
		return "", err
	}
	if t.pending == nil {
		ch := make(chan lineResult, 1)
		t.pending = ch
		go func() {
			line, err := t.term.ReadLine()
			ch <- lineResult{line: line, err: err}
		}()
	}
	select {
	case <-t.ctx.Done():
		return "", t.ctx.Err()
	case r := <-t.pending:
		t.pending = nil
		return r.line, r.err
	}
}

// WriteLine implements LineTerminal.
func (t *CancelableTerminal) WriteLine(text string) error { return t.term.WriteLine(text) }

// WritePrompt implements LineTerminal.
func (t *CancelableTerminal) WritePrompt(prompt string) error { return t.term.WritePrompt(prompt) }
