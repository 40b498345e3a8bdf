package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/planrun/pkg/planrun"
)

// Prompter reads single-line queries from an input stream.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// ReadQuery prints prompt and reads one line.
// Returns io.EOF when the input is exhausted and ctx.Err() when cancelled.
func (p *Prompter) ReadQuery(ctx context.Context, prompt string) (planrun.Query, error) {
	fmt.Fprint(p.out, prompt)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		input, err := p.reader.ReadString('\n')
		if err != nil && !(err == io.EOF && input != "") {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-errChan:
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		return planrun.Query(input), nil
	}
}
