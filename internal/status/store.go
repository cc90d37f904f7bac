package status

import (
	"sync"

	"github.com/hamed0406/infrawatch/internal/domain"
)

// TargetStatus pairs a registered target with a copy of its current record.
type TargetStatus struct {
	Target domain.Target       `json:"target"`
	Record domain.StatusRecord `json:"record"`
}

// Store owns every StatusRecord. A single coarse lock covers both the
// transition detection on the write path and snapshot reads; the target set
// is small and fixed, so finer locking buys nothing.
type Store struct {
	mu      sync.RWMutex
	order   []domain.Target
	records map[string]*domain.StatusRecord
}

func NewStore(targets []domain.Target) *Store {
	order := make([]domain.Target, len(targets))
	copy(order, targets)
	return &Store{
		order:   order,
		records: make(map[string]*domain.StatusRecord, len(targets)),
	}
}

// Targets returns the registry in registration order.
func (s *Store) Targets() []domain.Target {
	out := make([]domain.Target, len(s.order))
	copy(out, s.order)
	return out
}

// Apply feeds one fresh probe result through the transition detector and
// returns the transition, or nil when nothing notifiable happened.
//
// First observation of a target establishes the baseline without an event.
// A repeated identical outcome leaves Since untouched: it marks since when
// the current status has been true. Only a genuine flip emits.
func (s *Store) Apply(t domain.Target, r domain.ProbeResult) *domain.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[t.ID()]
	if !ok {
		s.records[t.ID()] = &domain.StatusRecord{
			Status: r.Status(),
			Since:  r.At,
			Last:   r,
		}
		return nil
	}

	if rec.Status == r.Status() {
		rec.Last = r
		return nil
	}

	tr := &domain.Transition{
		Target: t,
		From:   rec.Status,
		To:     r.Status(),
		At:     r.At,
		Result: r,
	}
	if rec.Status == domain.StatusDown && r.Up {
		tr.Downtime = r.At.Sub(rec.Since)
	}

	rec.Status = r.Status()
	rec.Since = r.At
	rec.Last = r
	return tr
}

// Snapshot returns a consistent point-in-time view of every target, grouped
// by kind and keeping registration order within each kind. Targets never
// probed show up as unknown.
func (s *Store) Snapshot() []TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TargetStatus, 0, len(s.order))
	for _, kind := range domain.Kinds {
		for _, t := range s.order {
			if t.Kind != kind {
				continue
			}
			st := TargetStatus{Target: t, Record: domain.StatusRecord{Status: domain.StatusUnknown}}
			if rec, ok := s.records[t.ID()]; ok {
				st.Record = *rec
			}
			out = append(out, st)
		}
	}
	return out
}

// Counts reports how many targets are currently up and down. Unknown targets
// count in neither bucket.
func (s *Store) Counts() (up, down int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		switch rec.Status {
		case domain.StatusUp:
			up++
		case domain.StatusDown:
			down++
		}
	}
	return up, down
}
