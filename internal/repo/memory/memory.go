// Package memory is an in-process ReservationRepo used by tests and by local
// runs without a database. The mutex serializes the overlap check and the
// insert, giving the same atomicity the postgres exclusion constraint
// provides.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vincanto/bookings/internal/domain"
	"github.com/vincanto/bookings/internal/repo"
)

type ReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{
		nextID:       1,
		reservations: make(map[int64]*domain.Reservation),
	}
}

var _ repo.ReservationRepo = (*ReservationRepo)(nil)

func (m *ReservationRepo) CreateIfAvailable(_ context.Context, in *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	requested := in.Range()
	for _, existing := range m.reservations {
		if existing.Blocking() && existing.Range().Overlaps(requested) {
			return nil, repo.ErrDateConflict
		}
	}

	b := *in
	b.ID = m.nextID
	m.nextID++
	b.ManageToken = uuid.NewString()
	b.Status = domain.ReservationPending
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	m.reservations[b.ID] = &b
	out := b
	return &out, nil
}

func (m *ReservationRepo) BookedRanges(context.Context) ([]domain.DateRange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ranges []domain.DateRange
	for _, b := range m.reservations {
		if b.Blocking() {
			ranges = append(ranges, b.Range())
		}
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start.Before(ranges[j].Start) })
	return ranges, nil
}

func (m *ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (m *ReservationRepo) GetByIDWithToken(_ context.Context, id int64, token string) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.reservations[id]
	if !ok || b.ManageToken != token {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (m *ReservationRepo) List(_ context.Context, limit, offset int) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]domain.Reservation, 0, len(m.reservations))
	for _, b := range m.reservations {
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return []domain.Reservation{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// SetStatus flips a stored reservation's status. It exists for tests that
// need cancelled records; the booking engine itself never mutates status.
func (m *ReservationRepo) SetStatus(id int64, status domain.ReservationStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.reservations[id]
	if !ok {
		return false
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	return true
}
