package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

// ErrQuit is returned by prompts when input is exhausted.
var ErrQuit = errors.New("input closed")

type readResult struct {
	line string
	err  error
}

// Prompter reads validated answers from the user, re-asking until the
// input is acceptable. Input is read on a background goroutine so a
// waiting prompt returns as soon as its context is cancelled.
type Prompter struct {
	in  *bufio.Reader
	out *Printer

	start sync.Once
	lines chan readResult
}

// NewPrompter creates a prompter reading from r and echoing prompts to out.
func NewPrompter(r io.Reader, out *Printer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(r),
		out:   out,
		lines: make(chan readResult, 1),
	}
}

// readLoop forwards lines until the reader fails. The buffered channel
// lets it exit after delivering the final error.
func (p *Prompter) readLoop() {
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// Line prints prompt and returns the trimmed reply, which may be empty.
// It returns ctx.Err() if ctx is cancelled while waiting and ErrQuit once
// input is exhausted.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start.Do(func() { go p.readLoop() })
	p.out.Prompt(prompt)

	var r readResult
	select {
	case <-ctx.Done():
		p.out.Println()
		return "", ctx.Err()
	case r = <-p.lines:
	}

	if r.err != nil {
		// The reader is done; keep the error for later calls.
		p.lines <- readResult{err: r.err}
		switch {
		case errors.Is(r.err, io.EOF) && r.line != "":
			return strings.TrimSpace(r.line), nil
		case errors.Is(r.err, io.EOF):
			p.out.Println()
			return "", ErrQuit
		default:
			return "", fmt.Errorf("read input: %w", r.err)
		}
	}
	return strings.TrimSpace(r.line), nil
}

// NonEmpty asks until the reply is not blank.
func (p *Prompter) NonEmpty(ctx context.Context, prompt string) (string, error) {
	for {
		s, err := p.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		if s != "" {
			return s, nil
		}
		p.out.Error("Input cannot be empty.")
	}
}

// Float asks until the reply is a number within [low, high].
func (p *Prompter) Float(ctx context.Context, prompt string, low, high float64) (float64, error) {
	for {
		s, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			p.out.Error("Please enter a number.")
			continue
		}
		if v < low || v > high {
			p.out.Error("Out of allowed range.")
			continue
		}
		return v, nil
	}
}

// Int asks until the reply is an integer within [low, high].
func (p *Prompter) Int(ctx context.Context, prompt string, low, high int) (int, error) {
	for {
		s, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			p.out.Error("Please enter an integer.")
			continue
		}
		if v < low || v > high {
			p.out.Error("Out of allowed range.")
			continue
		}
		return v, nil
	}
}
