// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package scan

import (
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MultiTechSystems/gs1-payload-schema/gs1"
)

// State is the phase a scan session is in.
type State int

const (
	StateScanning State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of the latest scan.
type Result struct {
	ID        string      `json:"id,omitempty" yaml:"id,omitempty"`
	State     State       `json:"state" yaml:"state"`
	Record    *gs1.Record `json:"record,omitempty" yaml:"record,omitempty"`
	Message   string      `json:"message,omitempty" yaml:"message,omitempty"`
	ScannedAt time.Time   `json:"scanned_at,omitempty" yaml:"scanned_at,omitempty"`
	Err       error       `json:"-" yaml:"-"`
}

// Session tracks the current scan result. Every detected barcode gets a
// ULID so repeated scans of the same label can be told apart; no
// deduplication is done. Safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	processor *Processor
	entropy   *ulid.MonotonicEntropy // guarded by mu
	current   Result
	logger    *slog.Logger
	now       func() time.Time
}

// NewSession creates a session in the scanning state.
func NewSession(processor *Processor, logger *slog.Logger) *Session {
	if processor == nil {
		processor = NewProcessor(nil, Options{Logger: logger})
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		processor: processor,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		current:   Result{State: StateScanning},
		logger:    logger,
		now:       time.Now,
	}
}

// OnBarcodeDetected processes raw and makes the outcome current.
func (s *Session) OnBarcodeDetected(raw string) Result {
	rec, err := s.processor.Process(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newResult()
	if err != nil {
		res.State = StateError
		res.Message = err.Error()
		res.Err = err
		s.logger.Info("scan rejected", "scan_id", res.ID, "state", res.State, "err", err)
	} else {
		res.State = StateSuccess
		res.Record = &rec
		s.logger.Debug("scan decoded", "scan_id", res.ID, "state", res.State)
	}
	s.current = res
	return res
}

// OnScanError records a failure reported by the capture side.
func (s *Session) OnScanError(message string) Result {
	if message == "" {
		message = "unknown error"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.newResult()
	res.State = StateError
	res.Message = message
	s.logger.Warn("scan failed", "scan_id", res.ID, "message", message)
	s.current = res
	return res
}

// Reset returns the session to the scanning state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Result{State: StateScanning}
}

// Current returns the latest result.
func (s *Session) Current() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// newResult must be called with mu held.
func (s *Session) newResult() Result {
	t := s.now()
	return Result{
		ID:        ulid.MustNew(ulid.Timestamp(t), s.entropy).String(),
		ScannedAt: t,
	}
}
