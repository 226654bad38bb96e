package main

import (
	"sync"
)

// supply is a simulated board net voltage. It can be set directly or
// ramped towards a target by a fixed step per tick.
type supply struct {
	mu      sync.Mutex
	voltage uint16
	target  uint16
	stepMV  uint16
}

func newSupply(mv uint16) *supply {
	return &supply{voltage: mv, target: mv}
}

// ReadVoltage implements voltmon.VoltageSource.
func (s *supply) ReadVoltage() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voltage
}

// Set jumps to mv and cancels any ramp.
func (s *supply) Set(mv uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voltage = mv
	s.target = mv
	s.stepMV = 0
}

// Ramp moves the voltage towards target by stepMV on every tick.
func (s *supply) Ramp(target, stepMV uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
	s.stepMV = stepMV
	if stepMV == 0 {
		s.voltage = target
	}
}

// Ramping reports whether a ramp is in progress.
func (s *supply) Ramping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voltage != s.target
}

// Run advances an active ramp by one step. It implements scheduler.Task
// and runs before the monitor in the same tick.
func (s *supply) Run(uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.voltage < s.target:
		if s.target-s.voltage <= s.stepMV {
			s.voltage = s.target
		} else {
			s.voltage += s.stepMV
		}
	case s.voltage > s.target:
		if s.voltage-s.target <= s.stepMV {
			s.voltage = s.target
		} else {
			s.voltage -= s.stepMV
		}
	}
}
