package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
	// RuntimeOverride indicates if the value was overridden at runtime.
	RuntimeOverride bool
}

func (o *Optional[T]) Get() T {
	return o.Value
}

// SetOverride sets the value and marks it as overridden at runtime.
func (o *Optional[T]) SetOverride(value T) {
	o.RuntimeOverride = true
	o.Value = value
}

// DefaultTrueBool is a boolean type that defaults to true if not present and not overridden.
type DefaultTrueBool struct {
	Optional[bool]
}

// Get returns the boolean value, defaulting to true if not present and not overridden.
func (b *DefaultTrueBool) Get() bool {
	if !b.Present && !b.RuntimeOverride {
		return true
	}
	return b.Value
}

// DefaultTrueBoolHookFunc returns a mapstructure decode hook function for DefaultTrueBool.
func DefaultTrueBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		// Only target our specific named type
		if t != reflect.TypeOf(DefaultTrueBool{}) {
			return data, nil
		}

		var val bool
		switch v := data.(type) {
		case bool:
			val = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return data, nil
			}
			val = parsed
		default:
			return data, nil
		}

		return DefaultTrueBool{
			Optional: Optional[bool]{
				Value:   val,
				Present: true,
			},
		}, nil
	}
}

// PumpDirection is the sign applied to the motor throttle when running forward
type PumpDirection int

const (
	PumpDirectionNormal   PumpDirection = 1
	PumpDirectionReversed PumpDirection = -1
)

// PumpDirectionHookFunc allows the direction to be written as
// "normal" | "reversed" or as 1 | -1.
func PumpDirectionHookFunc() mapstructure.DecodeHookFuncType {
	directionType := reflect.TypeOf(PumpDirection(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != directionType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return parsePumpDirection(strconv.Itoa(v))
		case int64:
			return parsePumpDirection(strconv.FormatInt(v, 10))
		case float64:
			return parsePumpDirection(strconv.FormatFloat(v, 'f', -1, 64))
		case string:
			return parsePumpDirection(v)
		}
		return data, nil
	}
}

func parsePumpDirection(value string) (PumpDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "+1", "normal", "forward":
		return PumpDirectionNormal, nil
	case "-1", "reversed", "reverse":
		return PumpDirectionReversed, nil
	default:
		return 0, fmt.Errorf("invalid pump direction '%s', use one of: normal | reversed", value)
	}
}
