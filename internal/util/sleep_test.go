package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepWithContext_Elapses(t *testing.T) {
	// GIVEN
	ctx := context.Background()

	// WHEN
	err := SleepWithContext(ctx, 5*time.Millisecond)

	// THEN
	assert.NoError(t, err)
}

func TestSleepWithContext_Cancelled(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	start := time.Now()
	err := SleepWithContext(ctx, 10*time.Second)

	// THEN
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
