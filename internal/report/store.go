package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sagarsuraksha/hz/internal/kv"
)

// reportsKey is the durable key holding the whole report collection as a
// JSON array.
const reportsKey = "reports"

var (
	// ErrEmptyTitle rejects a draft whose title is empty after trimming.
	ErrEmptyTitle = errors.New("report title is required")

	// ErrNotFound is returned when a mutation targets an id absent from
	// the store. The stored collection is left untouched.
	ErrNotFound = errors.New("report not found")
)

// Store is the durable report store. Reads pass every record through the
// defaulting rule (missing or unknown status/priority repaired to their
// defaults) and writes replace the whole collection, so two independent
// processes racing on the same snapshot follow last-writer-wins. Within a
// single process Store is not safe for concurrent use; the CLI is a single
// logical thread.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
}

// NewStore wraps a kv substrate. A nil logger defaults to slog.Default().
func NewStore(db kv.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: db, logger: logger}
}

// Create validates the draft, assigns identity and lifecycle defaults,
// persists every transient attachment, and appends the finalized report to
// the collection. The draft's other fields are preserved verbatim.
func (s *Store) Create(ctx context.Context, draft Draft) (Report, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return Report{}, ErrEmptyTitle
	}

	photos, err := persistAll(ctx, draft.Photos)
	if err != nil {
		return Report{}, fmt.Errorf("persist photos: %w", err)
	}
	videos, err := persistAll(ctx, draft.Videos)
	if err != nil {
		return Report{}, fmt.Errorf("persist videos: %w", err)
	}

	r := Report{
		ID:          newID(),
		Title:       title,
		Description: draft.Description,
		Photos:      photos,
		Videos:      videos,
		Status:      DefaultStatus,
		Priority:    DefaultPriority,
		Timestamp:   clock.Now().UTC(),
	}
	if draft.Location != nil {
		loc := *draft.Location
		r.Location = &loc
	}

	reports, _ := s.load()
	reports = append(reports, r)
	if err := s.save(reports); err != nil {
		return Report{}, err
	}
	return r, nil
}

// List returns the full collection, repaired per the defaulting rule. When
// the repair changed anything the repaired collection is written back, so
// legacy records are healed in place. A corrupt stored collection degrades
// to an empty one; it never propagates as an error.
func (s *Store) List() ([]Report, error) {
	reports, repaired := s.load()
	if repaired {
		if err := s.save(reports); err != nil {
			return nil, fmt.Errorf("heal report collection: %w", err)
		}
	}
	return reports, nil
}

// UpdateStatus replaces the status of the report with the given id and
// persists the collection. Returns ErrNotFound for an absent id.
func (s *Store) UpdateStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.mutate(id, func(r *Report) { r.Status = status })
}

// UpdatePriority replaces the priority of the report with the given id and
// persists the collection. Returns ErrNotFound for an absent id.
func (s *Store) UpdatePriority(id string, priority Priority) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	return s.mutate(id, func(r *Report) { r.Priority = priority })
}

// Get returns a single report by id, repaired like List.
func (s *Store) Get(id string) (Report, error) {
	reports, _ := s.load()
	for _, r := range reports {
		if r.ID == id {
			return r, nil
		}
	}
	return Report{}, ErrNotFound
}

// mutate applies fn to the matching record and rewrites the collection.
func (s *Store) mutate(id string, fn func(*Report)) error {
	reports, _ := s.load()
	for i := range reports {
		if reports[i].ID == id {
			fn(&reports[i])
			return s.save(reports)
		}
	}
	return ErrNotFound
}

// load reads and repairs the stored collection. The second return reports
// whether any record needed repair. Corruption and a missing key both yield
// an empty collection.
func (s *Store) load() ([]Report, bool) {
	data, err := s.kv.Get(reportsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNoKey) {
			s.logger.Warn("report collection unreadable, degrading to empty", "error", err)
		}
		return []Report{}, false
	}

	var reports []Report
	if err := json.Unmarshal(data, &reports); err != nil {
		s.logger.Warn("report collection corrupt, degrading to empty", "error", err)
		return []Report{}, false
	}

	repaired := false
	for i := range reports {
		if !reports[i].Status.Valid() {
			reports[i].Status = DefaultStatus
			repaired = true
		}
		if !reports[i].Priority.Valid() {
			reports[i].Priority = DefaultPriority
			repaired = true
		}
	}
	return reports, repaired
}

// save rewrites the whole collection under the reports key.
func (s *Store) save(reports []Report) error {
	data, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("encode report collection: %w", err)
	}
	if err := s.kv.Set(reportsKey, data); err != nil {
		return fmt.Errorf("write report collection: %w", err)
	}
	return nil
}

// newID returns a fresh report identifier. UUIDv7 keeps ids time-ordered;
// the random fallback only fires if the system clock is unusable.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
