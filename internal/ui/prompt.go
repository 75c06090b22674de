package ui

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"
)

// Operator is the human in the loop during setup and calibration.
type Operator interface {
	// AwaitReady blocks until the operator acknowledges the current instruction.
	AwaitReady(ctx context.Context) error
	// Confirm asks a yes/no question about the physical system.
	Confirm(ctx context.Context, label string) (bool, error)
}

// TerminalOperator talks to the operator via the controlling terminal.
// All reads share one buffered reader, and at most one line read is outstanding.
type TerminalOperator struct {
	reader *bufio.Reader

	mu      sync.Mutex
	pending chan error
}

func NewTerminalOperator() *TerminalOperator {
	return NewTerminalOperatorFrom(os.Stdin)
}

func NewTerminalOperatorFrom(in io.Reader) *TerminalOperator {
	return &TerminalOperator{reader: bufio.NewReader(in)}
}

// nextLine returns the channel of the outstanding line read, starting one if needed.
// A read abandoned by a cancelled caller is handed to the next caller.
func (o *TerminalOperator) nextLine() chan error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		result := make(chan error, 1)
		o.pending = result
		go func() {
			_, err := o.reader.ReadString('\n')
			result <- err
		}()
	}
	return o.pending
}

func (o *TerminalOperator) AwaitReady(ctx context.Context) error {
	Printfln("Press enter to continue...")
	line := o.nextLine()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-line:
		o.mu.Lock()
		o.pending = nil
		o.mu.Unlock()
		return err
	}
}

func (o *TerminalOperator) Confirm(ctx context.Context, label string) (bool, error) {
	type answer struct {
		ok  bool
		err error
	}
	result := make(chan answer, 1)
	go func() {
		ok, err := pterm.DefaultInteractiveConfirm.Show(label)
		result <- answer{ok, err}
	}()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-result:
		return a.ok, a.err
	}
}

// ScriptedOperator answers from a fixed list of confirmations, mostly for tests
// and unattended runs. Once the list is exhausted every question is answered with true.
type ScriptedOperator struct {
	Answers []bool
	Asked   []string
}

func (o *ScriptedOperator) AwaitReady(ctx context.Context) error {
	return ctx.Err()
}

func (o *ScriptedOperator) Confirm(ctx context.Context, label string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	o.Asked = append(o.Asked, label)
	if len(o.Answers) == 0 {
		return true, nil
	}
	next := o.Answers[0]
	o.Answers = o.Answers[1:]
	return next, nil
}
