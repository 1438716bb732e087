// Package repository owns the canonical in-memory dataset. Every read and
// mutation in the system goes through the one DatasetRepository instance;
// no other component retains a private copy that could drift.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/coursedesk-api/internal/models"
	"github.com/noah-isme/coursedesk-api/internal/repair"
	"github.com/noah-isme/coursedesk-api/internal/seed"
	"github.com/noah-isme/coursedesk-api/internal/store"
)

// ExportVersion tags exported documents.
const ExportVersion = "1.0.0"

// Sentinel errors surfaced to the service layer.
var (
	ErrNotFound            = errors.New("record not found")
	ErrCapacityFull        = errors.New("course capacity reached")
	ErrDuplicateEnrollment = errors.New("active enrollment already exists")
	ErrMalformedDocument   = errors.New("document failed structural check")
)

// Config tunes the persistence behaviour of the repository.
type Config struct {
	PrimaryKey     string
	BackupKey      string
	BackupInterval time.Duration
}

// storeMetrics is the narrow slice of the metrics service the repository needs.
type storeMetrics interface {
	ObserveLoad(source string)
	ObserveSave(success bool)
	ObserveBackup(success bool)
	SetDatasetSizes(courses, students, instructors, enrollments int)
}

// DatasetRepository loads, repairs, serves and persists the dataset.
type DatasetRepository struct {
	mu       sync.RWMutex
	backend  store.Backend
	repairer *repair.Repairer
	metrics  storeMetrics
	logger   *zap.Logger
	cfg      Config

	data       *models.Dataset
	available  bool
	lastBackup time.Time
	onChange   func()

	now func() time.Time
}

// New constructs a DatasetRepository. The dataset is empty until Load runs.
func New(backend store.Backend, repairer *repair.Repairer, cfg Config, logger *zap.Logger) *DatasetRepository {
	if repairer == nil {
		repairer = repair.New(nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PrimaryKey == "" {
		cfg.PrimaryKey = store.DefaultPrimaryKey
	}
	if cfg.BackupKey == "" {
		cfg.BackupKey = store.DefaultBackupKey
	}
	if cfg.BackupInterval <= 0 {
		cfg.BackupInterval = 5 * time.Minute
	}
	return &DatasetRepository{
		backend:  backend,
		repairer: repairer,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// SetMetrics attaches an optional metrics sink.
func (r *DatasetRepository) SetMetrics(m storeMetrics) { r.metrics = m }

// SetOnChange registers a callback fired after every successful mutation.
// The autosave debouncer hangs off this hook.
func (r *DatasetRepository) SetOnChange(fn func()) { r.onChange = fn }

// Available reports whether the storage medium passed its probe. False means
// the dataset works in memory only and changes will not survive a restart.
func (r *DatasetRepository) Available() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available
}

// Load establishes the live dataset. Fallback order: primary slot, backup
// slot, seed fixture. Whatever is obtained passes through repair
// unconditionally, then enrolled counters are recomputed. Load never fails;
// the worst case ends at the repaired seed.
func (r *DatasetRepository) Load(ctx context.Context) *models.Dataset {
	r.mu.Lock()

	r.available = r.backend != nil && r.backend.Probe(ctx)
	if !r.available {
		r.logger.Warn("storage unavailable, changes will not survive restart")
	}

	var ds *models.Dataset
	source := "seed"
	if r.available {
		if raw, ok := r.backend.Read(ctx, r.cfg.PrimaryKey); ok {
			if parsed, err := decodeDocument(raw); err == nil {
				ds = parsed
				source = "primary"
			} else {
				r.logger.Warn("primary slot rejected", zap.Error(err))
			}
		}
		if ds == nil {
			if raw, ok := r.backend.Read(ctx, r.cfg.BackupKey); ok {
				if parsed, err := decodeDocument(raw); err == nil {
					ds = parsed
					source = "backup"
				} else {
					r.logger.Warn("backup slot rejected", zap.Error(err))
				}
			}
		}
	}

	seeded := ds == nil
	if seeded {
		ds = seed.Dataset()
	}

	ds = r.repairer.Repair(ds)
	repair.RecountEnrolled(ds)
	r.data = ds
	r.lastBackup = r.now()

	if seeded && r.available {
		if payload, err := json.Marshal(r.data); err == nil {
			r.backend.Write(ctx, r.cfg.PrimaryKey, string(payload))
			r.backend.Write(ctx, r.cfg.BackupKey, string(payload))
		}
	}

	r.logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("courses", len(ds.Courses)),
		zap.Int("students", len(ds.Students)),
		zap.Int("instructors", len(ds.Instructors)),
		zap.Int("enrollments", len(ds.Enrollments)))
	r.observeSizesLocked()
	metrics := r.metrics
	r.mu.Unlock()

	if metrics != nil {
		metrics.ObserveLoad(source)
	}
	snapshot := r.Snapshot()
	return &snapshot
}

// Save serializes the live dataset and writes the primary slot. The backup
// slot is written too when forced, or when the backup interval has elapsed
// since the last backup write. Returns whether the primary write succeeded;
// backup failures are logged but never flip the result.
func (r *DatasetRepository) Save(ctx context.Context, force bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx, force)
}

func (r *DatasetRepository) saveLocked(ctx context.Context, force bool) bool {
	if !r.available || r.data == nil {
		return false
	}

	payload, err := json.Marshal(r.data)
	if err != nil {
		r.logger.Error("dataset serialization failed", zap.Error(err))
		return false
	}

	ok := r.backend.Write(ctx, r.cfg.PrimaryKey, string(payload))
	if !ok {
		r.logger.Warn("primary save failed")
	}
	if r.metrics != nil {
		r.metrics.ObserveSave(ok)
	}

	if force || r.lastBackup.IsZero() || r.now().Sub(r.lastBackup) > r.cfg.BackupInterval {
		backupOK := r.backend.Write(ctx, r.cfg.BackupKey, string(payload))
		if backupOK {
			r.lastBackup = r.now()
		} else {
			r.logger.Warn("backup save failed")
		}
		if r.metrics != nil {
			r.metrics.ObserveBackup(backupOK)
		}
	}

	return ok
}

// Snapshot returns a copy of the live dataset for rendering. Top-level
// collections are copied so list mutations on the caller side cannot touch
// the canonical state.
func (r *DatasetRepository) Snapshot() models.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *DatasetRepository) snapshotLocked() models.Dataset {
	if r.data == nil {
		return models.Dataset{}
	}
	out := models.Dataset{
		Courses:     append([]models.Course(nil), r.data.Courses...),
		Students:    append([]models.Student(nil), r.data.Students...),
		Instructors: append([]models.Instructor(nil), r.data.Instructors...),
		Categories:  append([]models.Category(nil), r.data.Categories...),
		Enrollments: append([]models.Enrollment(nil), r.data.Enrollments...),
	}
	if r.data.AISettings != nil {
		settings := *r.data.AISettings
		out.AISettings = &settings
	}
	return out
}

// Export wraps a snapshot with export metadata, serialized verbatim.
func (r *DatasetRepository) Export() models.ExportDocument {
	return models.ExportDocument{
		Dataset:    r.Snapshot(),
		ExportDate: r.now(),
		Version:    ExportVersion,
	}
}

// Import replaces the live dataset with an externally supplied document. The
// document must pass the same structural sniff as a stored slot, then runs
// through repair before going live, so imported data cannot bypass the
// invariants. A forced save persists the result immediately.
func (r *DatasetRepository) Import(ctx context.Context, raw []byte) error {
	ds, err := decodeDocument(string(raw))
	if err != nil {
		return ErrMalformedDocument
	}

	ds = r.repairer.Repair(ds)
	repair.RecountEnrolled(ds)

	r.mu.Lock()
	r.data = ds
	r.observeSizesLocked()
	r.saveLocked(ctx, true)
	r.mu.Unlock()

	r.notifyChanged()
	return nil
}

// mutate runs fn against the canonical dataset under the write lock. On
// success the dataset passes through the same repair gate as a load, and
// enrolled counters are recomputed, so every mutation leaves the state
// invariant-clean through one normalization path. fn is expected to validate
// before mutating.
func (r *DatasetRepository) mutate(fn func(ds *models.Dataset) error) error {
	r.mu.Lock()
	if r.data == nil {
		r.data = r.repairer.Repair(&models.Dataset{})
	}
	err := fn(r.data)
	if err == nil {
		r.data = r.repairer.Repair(r.data)
		repair.RecountEnrolled(r.data)
		r.observeSizesLocked()
	}
	r.mu.Unlock()

	if err == nil {
		r.notifyChanged()
	}
	return err
}

func (r *DatasetRepository) notifyChanged() {
	if r.onChange != nil {
		r.onChange()
	}
}

func (r *DatasetRepository) observeSizesLocked() {
	if r.metrics == nil || r.data == nil {
		return
	}
	r.metrics.SetDatasetSizes(len(r.data.Courses), len(r.data.Students), len(r.data.Instructors), len(r.data.Enrollments))
}

// nextID returns max existing id + 1, or 1 for an empty collection. Not
// collision-safe against concurrent writers; acceptable for a single-writer
// local store.
func nextID(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
