package health

import (
	"context"
	"sort"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the outcome of one readiness pass. Checks maps each dependency
// to "ok" or its error text.
type Report struct {
	Ready  bool
	Checks map[string]string
}

// Failed lists the failing dependencies in name order.
func (r Report) Failed() []string {
	var out []string
	for name, status := range r.Checks {
		if status != StatusOK {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

const StatusOK = "ok"

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready checks every dependency; one failure does not skip the rest.
	Ready(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. Nil checkers are skipped, so
// optional dependencies can be passed unconditionally.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

func (s *service) Ready(ctx context.Context) Report {
	r := Report{Ready: true, Checks: make(map[string]string, len(s.checkers))}
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			r.Ready = false
			r.Checks[ch.Name()] = err.Error()
			continue
		}
		r.Checks[ch.Name()] = StatusOK
	}
	return r
}
