package atlas

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markusressel/hydro2go/internal/util"
)

const (
	StatusOk          byte = 1
	StatusSyntaxError byte = 2
	StatusPending     byte = 254
	StatusNoData      byte = 255

	DefaultLongTimeout  = 1500 * time.Millisecond
	DefaultShortTimeout = 300 * time.Millisecond

	// DefaultPpmFactor converts EC (uS/cm) into PPM on the 500 scale
	DefaultPpmFactor = 0.5

	responseLength = 31
)

var (
	longTimeoutCommands = []string{"R", "CAL"}
	sleepCommands       = []string{"SLEEP"}

	ErrSyntax    = errors.New("probe rejected command")
	ErrPending   = errors.New("probe still processing")
	ErrNoData    = errors.New("probe has no data")
	ErrBadStatus = errors.New("unknown probe status")
)

// Bus is the subset of an I2C bus the probe needs
type Bus interface {
	ReadBytes(addr byte, num int) ([]byte, error)
	WriteBytes(addr byte, value []byte) error
}

// Probe talks to a single EZO circuit
type Probe struct {
	Bus     Bus
	Address byte

	LongTimeout  time.Duration
	ShortTimeout time.Duration

	mu sync.Mutex
}

func NewProbe(bus Bus, address byte) *Probe {
	return &Probe{
		Bus:          bus,
		Address:      address,
		LongTimeout:  DefaultLongTimeout,
		ShortTimeout: DefaultShortTimeout,
	}
}

// Query writes the command, waits the command specific processing time and parses the response.
// SLEEP puts the circuit to sleep and returns an empty response.
func (p *Probe) Query(ctx context.Context, command string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	payload := append([]byte(command), 0)
	if err := p.Bus.WriteBytes(p.Address, payload); err != nil {
		return "", fmt.Errorf("write %q to 0x%02x: %w", command, p.Address, err)
	}

	timeout, expectResponse := p.commandTimeout(command)
	if !expectResponse {
		return "", nil
	}
	if err := util.SleepWithContext(ctx, timeout); err != nil {
		return "", err
	}

	data, err := p.Bus.ReadBytes(p.Address, responseLength)
	if err != nil {
		return "", fmt.Errorf("read from 0x%02x: %w", p.Address, err)
	}
	return ParseResponse(data)
}

// ReadValue issues a read and parses the first field as float
func (p *Probe) ReadValue(ctx context.Context) (float64, error) {
	return p.readFloat(ctx, "R")
}

// ReadCompensated issues a temperature compensated read
func (p *Probe) ReadCompensated(ctx context.Context, celsius float64) (float64, error) {
	return p.readFloat(ctx, "RT,"+strconv.FormatFloat(celsius, 'f', 2, 64))
}

func (p *Probe) readFloat(ctx context.Context, command string) (float64, error) {
	response, err := p.Query(ctx, command)
	if err != nil {
		return 0, err
	}
	// EC circuits may report multiple comma separated parameters
	field := strings.TrimSpace(strings.Split(response, ",")[0])
	value, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected response %q from 0x%02x: %w", response, p.Address, err)
	}
	return value, nil
}

func (p *Probe) commandTimeout(command string) (time.Duration, bool) {
	upper := strings.ToUpper(command)
	for _, prefix := range longTimeoutCommands {
		if strings.HasPrefix(upper, prefix) {
			return p.LongTimeout, true
		}
	}
	for _, prefix := range sleepCommands {
		if strings.HasPrefix(upper, prefix) {
			return 0, false
		}
	}
	return p.ShortTimeout, true
}

// ParseResponse validates the status byte and decodes the payload
func ParseResponse(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNoData
	}

	switch data[0] {
	case StatusOk:
	case StatusSyntaxError:
		return "", ErrSyntax
	case StatusPending:
		return "", ErrPending
	case StatusNoData:
		return "", ErrNoData
	default:
		return "", fmt.Errorf("%w: %d", ErrBadStatus, data[0])
	}

	payload := data[1:]
	if i := bytes.IndexByte(payload, 0); i >= 0 {
		payload = payload[:i]
	}
	result := make([]byte, len(payload))
	for i, b := range payload {
		// some boards set the MSB on every byte
		result[i] = b &^ 0x80
	}
	return strings.TrimSpace(string(result)), nil
}
