package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/models"
	"github.com/loadrush/loadrush-backend/internal/repositories"
)

// MemoryStore holds all records in memory. Adapter views (Loads,
// Subscriptions, Snapshots, UploadJobs) satisfy the repository interfaces so
// the API can run without Postgres (USE_MEMORY_STORE=true) and aggregator
// tests don't need a database.
type MemoryStore struct {
	loadMu sync.RWMutex
	loads  map[uuid.UUID]*models.Load

	subMu sync.RWMutex
	subs  map[uuid.UUID]*models.Subscription

	snapMu sync.RWMutex
	snaps  map[string]*models.KPISnapshot // keyed by day (2006-01-02)

	jobMu sync.RWMutex
	jobs  map[uuid.UUID]*models.UploadJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		loads: make(map[uuid.UUID]*models.Load),
		subs:  make(map[uuid.UUID]*models.Subscription),
		snaps: make(map[string]*models.KPISnapshot),
		jobs:  make(map[uuid.UUID]*models.UploadJob),
	}
}

// Repository views

func (m *MemoryStore) Loads() repositories.LoadRepo                 { return memoryLoads{m} }
func (m *MemoryStore) Subscriptions() repositories.SubscriptionRepo { return memorySubs{m} }
func (m *MemoryStore) Snapshots() repositories.SnapshotRepo         { return memorySnaps{m} }
func (m *MemoryStore) UploadJobs() repositories.UploadJobRepo       { return memoryJobs{m} }

// Load operations

func (m *MemoryStore) CreateLoad(load *models.Load) error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if load.ID == uuid.Nil {
		load.ID = uuid.New()
	}
	if load.CreatedAt.IsZero() {
		load.CreatedAt = time.Now()
	}
	load.UpdatedAt = time.Now()

	cp := *load
	m.loads[load.ID] = &cp
	return nil
}

func (m *MemoryStore) GetLoad(id string) (*models.Load, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid load ID: %w", err)
	}

	m.loadMu.RLock()
	defer m.loadMu.RUnlock()

	load, ok := m.loads[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *load
	return &cp, nil
}

func (m *MemoryStore) ListLoads(limit int) ([]models.Load, error) {
	if limit < 1 {
		limit = 50
	}

	all, err := m.AllLoads()
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MemoryStore) AllLoads() ([]models.Load, error) {
	m.loadMu.RLock()
	defer m.loadMu.RUnlock()

	out := make([]models.Load, 0, len(m.loads))
	for _, load := range m.loads {
		out = append(out, *load)
	}
	return out, nil
}

func (m *MemoryStore) LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error) {
	m.loadMu.RLock()
	defer m.loadMu.RUnlock()

	out := []models.Load{}
	for _, load := range m.loads {
		for _, s := range statuses {
			if load.Status == s {
				out = append(out, *load)
				break
			}
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateLoadStatus(id string, status models.LoadStatus) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid load ID: %w", err)
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	load, ok := m.loads[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	now := time.Now()
	load.Status = status
	switch status {
	case models.StatusBooked:
		load.AcceptedAt = &now
	case models.StatusDelivered:
		load.CompletedAt = &now
	}
	load.UpdatedAt = now
	return nil
}

func (m *MemoryStore) UpdateLoadAddresses(id, pickup, drop string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid load ID: %w", err)
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	load, ok := m.loads[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	load.PickupAddress = pickup
	load.DropAddress = drop
	load.UpdatedAt = time.Now()
	return nil
}

// Subscription operations

func (m *MemoryStore) CreateSubscription(sub *models.Subscription) error {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	cp := *sub
	m.subs[sub.ID] = &cp
	return nil
}

func (m *MemoryStore) CountActiveSubscriptions(role models.SubscriptionRole) (int64, error) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	var count int64
	for _, sub := range m.subs {
		if sub.Role == role && sub.Status == models.SubscriptionActive {
			count++
		}
	}
	return count, nil
}

// Snapshot operations

func (m *MemoryStore) UpsertSnapshot(snap *models.KPISnapshot) error {
	m.snapMu.Lock()
	defer m.snapMu.Unlock()

	cp := *snap
	m.snaps[snap.Day.Format("2006-01-02")] = &cp
	return nil
}

func (m *MemoryStore) LatestSnapshotOnOrBefore(day time.Time) (*models.KPISnapshot, error) {
	m.snapMu.RLock()
	defer m.snapMu.RUnlock()

	var best *models.KPISnapshot
	for _, snap := range m.snaps {
		if snap.Day.After(day) {
			continue
		}
		if best == nil || snap.Day.After(best.Day) {
			best = snap
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *best
	return &cp, nil
}

// Upload job operations

func (m *MemoryStore) CreateUploadJob(job *models.UploadJob) error {
	m.jobMu.Lock()
	defer m.jobMu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUploadJob(id string) (*models.UploadJob, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid upload job ID: %w", err)
	}

	m.jobMu.RLock()
	defer m.jobMu.RUnlock()

	job, ok := m.jobs[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

// Adapters onto the repository interfaces.

type memoryLoads struct{ s *MemoryStore }

func (a memoryLoads) Create(load *models.Load) error        { return a.s.CreateLoad(load) }
func (a memoryLoads) GetByID(id string) (*models.Load, error) { return a.s.GetLoad(id) }
func (a memoryLoads) List(limit int) ([]models.Load, error) { return a.s.ListLoads(limit) }
func (a memoryLoads) AllLoads() ([]models.Load, error)      { return a.s.AllLoads() }
func (a memoryLoads) LoadsByStatus(statuses ...models.LoadStatus) ([]models.Load, error) {
	return a.s.LoadsByStatus(statuses...)
}
func (a memoryLoads) UpdateStatus(id string, status models.LoadStatus) error {
	return a.s.UpdateLoadStatus(id, status)
}
func (a memoryLoads) UpdateAddresses(id, pickup, drop string) error {
	return a.s.UpdateLoadAddresses(id, pickup, drop)
}

type memorySubs struct{ s *MemoryStore }

func (a memorySubs) Create(sub *models.Subscription) error { return a.s.CreateSubscription(sub) }
func (a memorySubs) CountActive(role models.SubscriptionRole) (int64, error) {
	return a.s.CountActiveSubscriptions(role)
}

type memorySnaps struct{ s *MemoryStore }

func (a memorySnaps) Upsert(snap *models.KPISnapshot) error { return a.s.UpsertSnapshot(snap) }
func (a memorySnaps) LatestOnOrBefore(day time.Time) (*models.KPISnapshot, error) {
	return a.s.LatestSnapshotOnOrBefore(day)
}

type memoryJobs struct{ s *MemoryStore }

func (a memoryJobs) Create(job *models.UploadJob) error { return a.s.CreateUploadJob(job) }
func (a memoryJobs) GetByID(id string) (*models.UploadJob, error) {
	return a.s.GetUploadJob(id)
}
