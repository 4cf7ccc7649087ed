package wizardapi

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type session struct {
	controller *wizard.Controller
	lastSeen   time.Time
	// notice is the message of the last failed submission.
	notice string
}

// Store keeps wizard sessions in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewStore creates a store. When ttl is positive a goroutine sweeps idle
// sessions every interval until Close is called.
func NewStore(ttl, interval time.Duration, now func() time.Time, logger *zap.Logger) *Store {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if ttl <= 0 || interval <= 0 {
		close(s.done)
		return s
	}
	go s.sweepLoop(interval)
	return s
}

// Create stores controller under a new id.
func (s *Store) Create(controller *wizard.Controller) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{controller: controller, lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// Get returns the controller for id and marks the session as active.
func (s *Store) Get(id string) (*wizard.Controller, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.controller, true
}

// SetNotice records a form-level message for id. An empty msg clears it.
func (s *Store) SetNotice(id, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.notice = msg
	}
}

// Notice returns the form-level message recorded for id.
func (s *Store) Notice(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess.notice
	}
	return ""
}

// Delete removes id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed. Sessions with a submission in flight are kept.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if !sess.lastSeen.Before(cutoff) {
			continue
		}
		if sess.controller.State().Submitting {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	if removed > 0 {
		s.logger.Debug("swept idle wizard sessions", zap.Int("removed", removed), zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

// Close stops the sweeper and waits for it to exit. It is safe to call more
// than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

func (s *Store) sweepLoop(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
