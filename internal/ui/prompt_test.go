package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalOperator_AwaitReady(t *testing.T) {
	// GIVEN
	operator := NewTerminalOperatorFrom(strings.NewReader("\n"))

	// WHEN
	err := operator.AwaitReady(context.Background())

	// THEN
	assert.NoError(t, err)
}

func TestTerminalOperator_AwaitReady_KeepsBufferedLines(t *testing.T) {
	// GIVEN
	operator := NewTerminalOperatorFrom(strings.NewReader("\n\n"))
	ctx := context.Background()

	// WHEN
	first := operator.AwaitReady(ctx)
	second := operator.AwaitReady(ctx)

	// THEN
	assert.NoError(t, first)
	assert.NoError(t, second)
}

func TestTerminalOperator_AwaitReady_CancelledReadIsReused(t *testing.T) {
	// GIVEN
	in, out := io.Pipe()
	defer func() { _ = in.Close() }()
	operator := NewTerminalOperatorFrom(in)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	cancelledErr := operator.AwaitReady(ctx)
	go func() {
		_, _ = out.Write([]byte("\n"))
	}()
	err := operator.AwaitReady(context.Background())

	// THEN
	assert.ErrorIs(t, cancelledErr, context.Canceled)
	assert.NoError(t, err)
}

func TestScriptedOperator_Confirm(t *testing.T) {
	// GIVEN
	operator := &ScriptedOperator{Answers: []bool{false, true}}
	ctx := context.Background()

	// WHEN
	first, _ := operator.Confirm(ctx, "level 1.50")
	second, _ := operator.Confirm(ctx, "level 1.50")
	third, _ := operator.Confirm(ctx, "level 2.00")

	// THEN
	assert.False(t, first)
	assert.True(t, second)
	assert.True(t, third)
	assert.Equal(t, []string{"level 1.50", "level 1.50", "level 2.00"}, operator.Asked)
}

func TestScriptedOperator_CancelledContext(t *testing.T) {
	// GIVEN
	operator := &ScriptedOperator{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	_, err := operator.Confirm(ctx, "level")

	// THEN
	assert.ErrorIs(t, err, context.Canceled)
}
