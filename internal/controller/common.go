package controller

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	// ErrDosingTimeout is returned when a dosing loop exceeds its cycle or time bound
	ErrDosingTimeout = errors.New("dosing did not reach target within bounds")
	// ErrFillTimeout is returned when the fill pump did not reach the target level within MaxBursts
	ErrFillTimeout = errors.New("fill did not reach target within bounds")
)

// Measurement returns the current, averaged value of a controlled quantity
type Measurement func(ctx context.Context) (float64, error)

// Statistics counts controller activity for the prometheus exporter
type Statistics struct {
	FillBursts   atomic.Int64
	DosingCycles atomic.Int64
	PhCycles     atomic.Int64
	Timeouts     atomic.Int64
}

type StatisticsSnapshot struct {
	FillBursts   int64 `json:"fillBursts"`
	DosingCycles int64 `json:"dosingCycles"`
	PhCycles     int64 `json:"phCycles"`
	Timeouts     int64 `json:"timeouts"`
}

func (s *Statistics) Snapshot() StatisticsSnapshot {
	if s == nil {
		return StatisticsSnapshot{}
	}
	return StatisticsSnapshot{
		FillBursts:   s.FillBursts.Load(),
		DosingCycles: s.DosingCycles.Load(),
		PhCycles:     s.PhCycles.Load(),
		Timeouts:     s.Timeouts.Load(),
	}
}
