package atlas

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockBus struct {
	written  [][]byte
	response []byte
	readErr  error
	reads    int
}

func (b *mockBus) ReadBytes(addr byte, num int) ([]byte, error) {
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	result := make([]byte, num)
	copy(result, b.response)
	return result, nil
}

func (b *mockBus) WriteBytes(addr byte, value []byte) error {
	b.written = append(b.written, value)
	return nil
}

func newTestProbe(bus Bus) *Probe {
	probe := NewProbe(bus, 0x63)
	probe.LongTimeout = 0
	probe.ShortTimeout = 0
	return probe
}

func TestParseResponse_Ok(t *testing.T) {
	// GIVEN
	data := append([]byte{StatusOk}, []byte("5.712")...)
	data = append(data, 0, 0, 0)

	// WHEN
	result, err := ParseResponse(data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "5.712", result)
}

func TestParseResponse_MasksHighBit(t *testing.T) {
	// GIVEN
	data := []byte{StatusOk, '7' | 0x80, '.' | 0x80, '0', 0}

	// WHEN
	result, err := ParseResponse(data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "7.0", result)
}

func TestParseResponse_Status(t *testing.T) {
	tests := []struct {
		status byte
		err    error
	}{
		{StatusSyntaxError, ErrSyntax},
		{StatusPending, ErrPending},
		{StatusNoData, ErrNoData},
		{42, ErrBadStatus},
	}

	for _, tt := range tests {
		// WHEN
		_, err := ParseResponse([]byte{tt.status, '1'})

		// THEN
		assert.ErrorIs(t, err, tt.err)
	}
}

func TestProbe_ReadValue(t *testing.T) {
	// GIVEN
	bus := &mockBus{response: append([]byte{StatusOk}, []byte("1413.0,706,0.70,1.000")...)}
	probe := newTestProbe(bus)

	// WHEN
	value, err := probe.ReadValue(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1413.0, value)
	assert.Equal(t, []byte{'R', 0}, bus.written[0])
}

func TestProbe_ReadCompensated(t *testing.T) {
	// GIVEN
	bus := &mockBus{response: append([]byte{StatusOk}, []byte("5.81")...)}
	probe := newTestProbe(bus)

	// WHEN
	value, err := probe.ReadCompensated(context.Background(), 23.4)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 5.81, value)
	assert.Equal(t, "RT,23.40\x00", string(bus.written[0]))
}

func TestProbe_SleepHasNoResponse(t *testing.T) {
	// GIVEN
	bus := &mockBus{}
	probe := newTestProbe(bus)

	// WHEN
	result, err := probe.Query(context.Background(), "Sleep")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "", result)
	assert.Equal(t, 0, bus.reads)
}

func TestProbe_ReadError(t *testing.T) {
	// GIVEN
	busErr := errors.New("remote I/O error")
	bus := &mockBus{readErr: busErr}
	probe := newTestProbe(bus)

	// WHEN
	_, err := probe.ReadValue(context.Background())

	// THEN
	assert.ErrorIs(t, err, busErr)
}

func TestProbe_CommandTimeout(t *testing.T) {
	// GIVEN
	probe := NewProbe(&mockBus{}, 0x64)

	// WHEN
	readTimeout, readResponse := probe.commandTimeout("r")
	calTimeout, _ := probe.commandTimeout("Cal,mid,7.00")
	infoTimeout, _ := probe.commandTimeout("i")
	_, sleepResponse := probe.commandTimeout("SLEEP")

	// THEN
	assert.True(t, readResponse)
	assert.Equal(t, DefaultLongTimeout, readTimeout)
	assert.Equal(t, DefaultLongTimeout, calTimeout)
	assert.Equal(t, DefaultShortTimeout, infoTimeout)
	assert.False(t, sleepResponse)
}
