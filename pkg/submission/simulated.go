package submission

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/application"
)

const (
	// DefaultDelay mirrors the latency the portal simulates for submissions.
	DefaultDelay = 2 * time.Second
	// DefaultIDPrefix prefixes every generated application id.
	DefaultIDPrefix = "APP"
	// idSpace bounds the numeric suffix; ids are zero-padded to three digits.
	idSpace = 1000
)

var errSimulatedFailure = errors.New("simulated backend failure")

// Simulated is the default Submitter. It waits a fixed delay and returns a
// random id such as "APP042". Ids can collide; there is no uniqueness check.
type Simulated struct {
	delay       time.Duration
	prefix      string
	failureRate float64
	logger      *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// SimulatedOption configures a Simulated submitter.
type SimulatedOption func(*Simulated)

// WithDelay overrides the simulated latency. Zero returns immediately.
func WithDelay(delay time.Duration) SimulatedOption {
	return func(s *Simulated) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithSeed makes the generated ids deterministic.
func WithSeed(seed uint64) SimulatedOption {
	return func(s *Simulated) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithIDPrefix overrides the "APP" prefix.
func WithIDPrefix(prefix string) SimulatedOption {
	return func(s *Simulated) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithFailureRate makes a fraction of submissions fail, in [0, 1].
func WithFailureRate(rate float64) SimulatedOption {
	return func(s *Simulated) {
		switch {
		case rate < 0:
			s.failureRate = 0
		case rate > 1:
			s.failureRate = 1
		default:
			s.failureRate = rate
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) SimulatedOption {
	return func(s *Simulated) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulated constructs the simulated submitter. Without WithSeed the
// generator is seeded from crypto/rand.
func NewSimulated(options ...SimulatedOption) *Simulated {
	s := &Simulated{
		delay:  DefaultDelay,
		prefix: DefaultIDPrefix,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(cryptoSeed(), cryptoSeed()))
	}
	return s
}

// Submit waits for the configured delay and returns a generated id.
func (s *Simulated) Submit(ctx context.Context, form application.ApplicationForm) (Result, error) {
	if ctx == nil {
		return Result{}, NewError(errors.New("context is required"))
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Result{}, NewError(ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Result{}, NewError(err)
	}

	s.mu.Lock()
	fail := s.failureRate > 0 && s.rng.Float64() < s.failureRate
	n := s.rng.IntN(idSpace)
	s.mu.Unlock()

	if fail {
		s.logger.Debug("simulated submission failed", zap.String("email", form.Email))
		return Result{}, NewError(errSimulatedFailure)
	}

	id := fmt.Sprintf("%s%03d", s.prefix, n)
	s.logger.Debug("simulated submission accepted", zap.String("application_id", id))
	return Result{ApplicationID: id}, nil
}

func cryptoSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}
