// Package planner is the trip-planning core: it aggregates visa, flight, and
// hotel data per itinerary leg, degrades to substitute data when external
// capabilities fail, and renders the combined plan report.
package planner

import (
	"strings"
	"sync"
	"time"

	"github.com/nomadscompass/backend/internal/domain"
)

// Service names tracked by the quota tracker.
const (
	ServiceFlights = "flights"
	ServiceHotels  = "hotels"
)

// errorThreshold is the number of consecutive generic failures after which a
// service is switched to substitute mode.
const errorThreshold = 3

// quotaState is the tracked state for one external service.
type quotaState struct {
	substituting bool
	errorCount   int
	lastChange   time.Time
}

// QuotaTracker decides, per external service, whether live calls should be
// attempted at all. Once a service trips into substitute mode it stays there
// until an explicit Reset — there is no implicit expiry, because a depleted
// monthly quota does not recover on its own.
//
// One tracker instance is shared across all concurrent planning requests;
// every mutation is serialized under a single mutex so concurrent legs never
// under-count errors.
type QuotaTracker struct {
	mu       sync.Mutex
	services map[string]*quotaState
	now      func() time.Time
}

// NewQuotaTracker returns an empty tracker. Unseen services report as live.
func NewQuotaTracker() *QuotaTracker {
	return &QuotaTracker{
		services: make(map[string]*quotaState),
		now:      time.Now,
	}
}

// IsSubstituting reports whether the service is in substitute mode.
func (t *QuotaTracker) IsSubstituting(service string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.services[service]
	return ok && s.substituting
}

// RecordError counts one generic upstream failure. On the third consecutive
// failure the service trips into substitute mode.
func (t *QuotaTracker) RecordError(service string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(service)
	s.errorCount++
	if s.errorCount >= errorThreshold && !s.substituting {
		s.substituting = true
		s.lastChange = t.now()
	}
}

// RecordQuotaSignal trips the service into substitute mode immediately.
// Call it when the upstream failure is unambiguously a quota or rate-limit
// rejection; a single 429 is conclusive, unlike a transient timeout.
func (t *QuotaTracker) RecordQuotaSignal(service string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(service)
	if !s.substituting {
		s.substituting = true
		s.lastChange = t.now()
	}
}

// RecordSuccess resets the consecutive-error counter. It does not clear
// substitute mode — once tripped, only an explicit Reset clears it.
func (t *QuotaTracker) RecordSuccess(service string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state(service).errorCount = 0
}

// Reset clears the substitute flag and error counter for one service.
// This is the only way out of substitute mode. Resetting an already-clear
// or unknown service is a no-op, so the call is idempotent.
func (t *QuotaTracker) Reset(service string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.services[service]
	if !ok {
		return
	}
	if s.substituting || s.errorCount != 0 {
		s.substituting = false
		s.errorCount = 0
		s.lastChange = t.now()
	}
}

// ResetAll clears the substitute flag and error counter for every service.
func (t *QuotaTracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.services {
		if s.substituting || s.errorCount != 0 {
			s.substituting = false
			s.errorCount = 0
			s.lastChange = t.now()
		}
	}
}

// Status returns a point-in-time snapshot of every tracked service.
func (t *QuotaTracker) Status() map[string]domain.QuotaSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]domain.QuotaSnapshot, len(t.services))
	for name, s := range t.services {
		out[name] = domain.QuotaSnapshot{
			Substituting: s.substituting,
			ErrorCount:   s.errorCount,
			LastChange:   s.lastChange,
		}
	}
	return out
}

// state returns the tracked state for service, creating it on first use.
// Callers must hold t.mu.
func (t *QuotaTracker) state(service string) *quotaState {
	s, ok := t.services[service]
	if !ok {
		s = &quotaState{}
		t.services[service] = s
	}
	return s
}

// quotaSignalMarkers are the substrings that identify an upstream failure as
// a quota or rate-limit rejection rather than a transient error.
var quotaSignalMarkers = []string{"429", "quota", "rate limit"}

// IsQuotaSignal reports whether the error text marks a conclusive
// quota/rate-limit rejection.
func IsQuotaSignal(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaSignalMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
