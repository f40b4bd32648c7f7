package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NameProvider supplies the replacement name for RenameCollection.
type NameProvider interface {
	Name(ctx context.Context, current string) (string, error)
}

// StaticName returns a fixed name, typically a command-line argument.
type StaticName string

func (s StaticName) Name(context.Context, string) (string, error) {
	return string(s), nil
}

// PromptName asks for a name on Out and reads one line from In.
//
// Name returns as soon as ctx ends, but the read on In cannot be interrupted:
// its goroutine stays blocked until In yields a line, reaches EOF or is
// closed. Callers that outlive the prompt should close In after cancelling.
type PromptName struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptName) Name(ctx context.Context, current string) (string, error) {
	if p.In == nil {
		return "", fmt.Errorf("no input available for the new name")
	}
	if p.Out != nil {
		_, _ = fmt.Fprintf(p.Out, "Enter new name (current: %q): ", current)
	}

	type result struct {
		line string
		err  error
	}
	lines := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		lines <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case read := <-lines:
		if read.err != nil && !errors.Is(read.err, io.EOF) {
			return "", fmt.Errorf("failed to read new name: %w", read.err)
		}
		return strings.TrimSpace(read.line), nil
	}
}
