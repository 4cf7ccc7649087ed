package status

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultDelay mirrors the latency of the demo status service.
const DefaultDelay = 1500 * time.Millisecond

//go:embed data/records.yaml
var seedRecords []byte

type seedFile struct {
	Records   []ApplicationRecord `yaml:"records"`
	Dashboard []Summary           `yaml:"dashboard"`
}

// Directory is an in-memory Lookup.
type Directory struct {
	mu        sync.RWMutex
	records   map[string]ApplicationRecord
	dashboard []Summary
	delay     time.Duration
	logger    *zap.Logger
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDelay simulates lookup latency. Zero disables it.
func WithDelay(d time.Duration) DirectoryOption {
	return func(dir *Directory) {
		if d >= 0 {
			dir.delay = d
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) DirectoryOption {
	return func(dir *Directory) {
		if logger != nil {
			dir.logger = logger
		}
	}
}

// NewDirectory builds an empty directory.
func NewDirectory(options ...DirectoryOption) *Directory {
	dir := &Directory{
		records: make(map[string]ApplicationRecord),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(dir)
	}
	return dir
}

// NewSeededDirectory builds a directory holding the embedded demo records.
func NewSeededDirectory(options ...DirectoryOption) (*Directory, error) {
	dir := NewDirectory(options...)
	if err := dir.LoadYAML(seedRecords); err != nil {
		return nil, err
	}
	return dir, nil
}

// LoadYAML merges records and dashboard entries from a YAML document with
// top-level "records" and "dashboard" lists.
func (d *Directory) LoadYAML(data []byte) error {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("status: decode records: %w", err)
	}
	for i, rec := range seed.Records {
		if NormalizeID(rec.ID) == "" {
			return fmt.Errorf("status: record %d has no id", i)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, rec := range seed.Records {
		rec.ID = NormalizeID(rec.ID)
		d.records[rec.ID] = rec
	}
	d.dashboard = append(d.dashboard, seed.Dashboard...)
	d.logger.Debug("status records loaded",
		zap.Int("records", len(seed.Records)),
		zap.Int("dashboard", len(seed.Dashboard)))
	return nil
}

// Put stores or replaces a record.
func (d *Directory) Put(rec ApplicationRecord) {
	rec.ID = NormalizeID(rec.ID)
	d.mu.Lock()
	d.records[rec.ID] = rec
	d.mu.Unlock()
}

// Lookup implements Lookup. The id is matched case-insensitively.
func (d *Directory) Lookup(ctx context.Context, id, email string) (ApplicationRecord, error) {
	if err := checkCredentials(id, email); err != nil {
		return ApplicationRecord{}, err
	}
	if err := d.wait(ctx); err != nil {
		return ApplicationRecord{}, err
	}

	key := NormalizeID(id)
	d.mu.RLock()
	rec, ok := d.records[key]
	d.mu.RUnlock()
	if !ok {
		d.logger.Debug("application not found", zap.String("application_id", key))
		return ApplicationRecord{}, &NotFoundError{ID: key}
	}
	return cloneRecord(rec), nil
}

// Dashboard lists the applicant's applications with their badge tone.
func (d *Directory) Dashboard() []Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Summary, len(d.dashboard))
	for i, s := range d.dashboard {
		s.Tone = Tone(s.Status)
		out[i] = s
	}
	return out
}

func (d *Directory) wait(ctx context.Context) error {
	if d.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("status: lookup canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func cloneRecord(rec ApplicationRecord) ApplicationRecord {
	rec.StatusHistory = append([]HistoryEntry(nil), rec.StatusHistory...)
	rec.NextSteps = append([]string(nil), rec.NextSteps...)
	rec.SupportDocuments = append([]SupportDocument(nil), rec.SupportDocuments...)
	return rec
}
