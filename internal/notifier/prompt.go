package notifier

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TerminalPrompter asks questions on a terminal. AssumeYes answers every
// question with yes without reading input.
type TerminalPrompter struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool

	reader *bufio.Reader
}

// Confirm prints question and reads a y/N answer. End of input means no.
func (p *TerminalPrompter) Confirm(_ context.Context, question string) (bool, error) {
	if p.AssumeYes {
		fmt.Fprintf(p.Out, "%s [y/N] y\n", question)
		return true, nil
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "%s [y/N] ", question)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
