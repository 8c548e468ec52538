// Package memstore in-memory реализации репозиториев для тестов use case'ов.
// Транзакции сериализуются мьютексом и откатываются снимком состояния.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/event"
	inviteeRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/invitee"
	overrideRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/override"
	sessionRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	slotlockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/slotlock"
)

type txKey struct{}

type state struct {
	events    map[int64]domain.Event
	overrides map[int64]domain.Override
	sessions  map[int64]domain.EventSession
	bookings  map[int64]domain.Booking
	invitees  map[int64]domain.Invitee
	locks     map[string]time.Time
}

func newState() state {
	return state{
		events:    make(map[int64]domain.Event),
		overrides: make(map[int64]domain.Override),
		sessions:  make(map[int64]domain.EventSession),
		bookings:  make(map[int64]domain.Booking),
		invitees:  make(map[int64]domain.Invitee),
		locks:     make(map[string]time.Time),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.events {
		c.events[k] = v
	}
	for k, v := range s.overrides {
		c.overrides[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.invitees {
		c.invitees[k] = v
	}
	for k, v := range s.locks {
		c.locks[k] = v
	}
	return c
}

// Store общее состояние всех in-memory репозиториев
type Store struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	nextID int64
	data   state

	// Commits число успешно зафиксированных транзакций
	Commits int
	// Rollbacks число откатов
	Rollbacks int
}

func New() *Store {
	return &Store{data: newState()}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Events() *EventRepository       { return &EventRepository{s: s} }
func (s *Store) Overrides() *OverrideRepository { return &OverrideRepository{s: s} }
func (s *Store) Sessions() *SessionRepository   { return &SessionRepository{s: s} }
func (s *Store) Bookings() *BookingRepository   { return &BookingRepository{s: s} }
func (s *Store) Invitees() *InviteeRepository   { return &InviteeRepository{s: s} }
func (s *Store) SlotLocks() *SlotLockRepository { return &SlotLockRepository{s: s} }
func (s *Store) TxManager() *TxManager          { return &TxManager{s: s} }

// TxManager сериализует транзакции и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.data.clone()
	m.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.data = snapshot
		m.s.Rollbacks++
		m.s.mu.Unlock()
		return err
	}

	m.s.mu.Lock()
	m.s.Commits++
	m.s.mu.Unlock()
	return nil
}

func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// EventRepository

type EventRepository struct{ s *Store }

func (r *EventRepository) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.events {
		if existing.TenantID == e.TenantID && existing.Slug == e.Slug {
			return nil, eventRepo.ErrEventAlreadyExists
		}
	}

	created := *e
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.s.data.events[created.ID] = created

	*e = created
	return &created, nil
}

func (r *EventRepository) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.data.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	return &e, nil
}

func (r *EventRepository) GetByTenantAndSlug(_ context.Context, tenantID, slug string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.data.events {
		if e.TenantID == tenantID && e.Slug == slug {
			found := e
			return &found, nil
		}
	}
	return nil, eventRepo.ErrEventNotFound
}

func (r *EventRepository) ListByTenant(_ context.Context, tenantID string) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Event, 0)
	for _, e := range r.s.data.events {
		if e.TenantID == tenantID {
			found := e
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *EventRepository) Update(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.events[e.ID]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	for id, other := range r.s.data.events {
		if id != e.ID && other.TenantID == e.TenantID && other.Slug == e.Slug {
			return nil, eventRepo.ErrEventAlreadyExists
		}
	}

	updated := *e
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.s.data.events[e.ID] = updated
	return &updated, nil
}

func (r *EventRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.events[id]; !ok {
		return eventRepo.ErrEventNotFound
	}
	delete(r.s.data.events, id)
	return nil
}

// OverrideRepository

type OverrideRepository struct{ s *Store }

func (r *OverrideRepository) Upsert(_ context.Context, o *domain.Override) (*domain.Override, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	saved := *o
	now := time.Now().UTC()
	saved.UpdatedAt = now

	for id, existing := range r.s.data.overrides {
		if existing.EventID == o.EventID && existing.Date.Equal(o.Date) {
			saved.ID = id
			saved.CreatedAt = existing.CreatedAt
			r.s.data.overrides[id] = saved
			return &saved, nil
		}
	}

	saved.ID = r.s.id()
	saved.CreatedAt = now
	r.s.data.overrides[saved.ID] = saved
	return &saved, nil
}

func (r *OverrideRepository) GetByEventAndDate(_ context.Context, eventID int64, date time.Time) (*domain.Override, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.data.overrides {
		if o.EventID == eventID && o.Date.Equal(date) {
			found := o
			return &found, nil
		}
	}
	return nil, overrideRepo.ErrOverrideNotFound
}

func (r *OverrideRepository) ListByEventInRange(_ context.Context, eventID int64, from, to time.Time) ([]*domain.Override, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Override, 0)
	for _, o := range r.s.data.overrides {
		if o.EventID == eventID && !o.Date.Before(from) && !o.Date.After(to) {
			found := o
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *OverrideRepository) Delete(_ context.Context, eventID int64, date time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, o := range r.s.data.overrides {
		if o.EventID == eventID && o.Date.Equal(date) {
			delete(r.s.data.overrides, id)
			return nil
		}
	}
	return overrideRepo.ErrOverrideNotFound
}

// SessionRepository

type SessionRepository struct{ s *Store }

func (r *SessionRepository) Create(_ context.Context, sess *domain.EventSession) (*domain.EventSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.sessions {
		if existing.EventID == sess.EventID && existing.StartTime.Equal(sess.StartTime) {
			return nil, sessionRepo.ErrSessionAlreadyExists
		}
	}

	created := *sess
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.s.data.sessions[created.ID] = created
	return &created, nil
}

func (r *SessionRepository) GetByID(_ context.Context, eventID, id int64) (*domain.EventSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.data.sessions[id]
	if !ok || sess.EventID != eventID {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return &sess, nil
}

func (r *SessionRepository) ListByEventInRange(_ context.Context, eventID int64, from, to time.Time) ([]*domain.EventSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.EventSession, 0)
	for _, sess := range r.s.data.sessions {
		if sess.EventID == eventID && !sess.StartTime.Before(from) && sess.StartTime.Before(to) {
			found := sess
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (r *SessionRepository) Update(_ context.Context, sess *domain.EventSession) (*domain.EventSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.sessions[sess.ID]
	if !ok || existing.EventID != sess.EventID {
		return nil, sessionRepo.ErrSessionNotFound
	}
	for id, other := range r.s.data.sessions {
		if id != sess.ID && other.EventID == sess.EventID && other.StartTime.Equal(sess.StartTime) {
			return nil, sessionRepo.ErrSessionAlreadyExists
		}
	}

	updated := *sess
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.s.data.sessions[sess.ID] = updated
	return &updated, nil
}

func (r *SessionRepository) Delete(_ context.Context, eventID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.data.sessions[id]
	if !ok || sess.EventID != eventID {
		return sessionRepo.ErrSessionNotFound
	}
	delete(r.s.data.sessions, id)
	return nil
}

// BookingRepository

type BookingRepository struct{ s *Store }

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *b
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.s.data.bookings[created.ID] = created

	*b = created
	return &created, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetByManagementToken(_ context.Context, token string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.data.bookings {
		if b.ManagementToken == token {
			found := b
			return &found, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *BookingRepository) ListByEvent(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if b.EventID != filter.EventID {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		found := b
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (r *BookingRepository) Cancel(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now().UTC()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) Reschedule(_ context.Context, id int64, start, end time.Time, location *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.StartTime = start.UTC()
	b.EndTime = end.UTC()
	b.Location = location
	b.UpdatedAt = time.Now().UTC()
	r.s.data.bookings[id] = b
	return nil
}

// InviteeRepository

type InviteeRepository struct{ s *Store }

func (r *InviteeRepository) Create(_ context.Context, inv *domain.Invitee) (*domain.Invitee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.invitees {
		if existing.Token == inv.Token {
			return nil, inviteeRepo.ErrTokenAlreadyExists
		}
	}

	created := *inv
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.s.data.invitees[created.ID] = created
	return &created, nil
}

func (r *InviteeRepository) GetByToken(_ context.Context, eventID int64, token string) (*domain.Invitee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, inv := range r.s.data.invitees {
		if inv.EventID == eventID && inv.Token == token {
			found := inv
			return &found, nil
		}
	}
	return nil, inviteeRepo.ErrInviteeNotFound
}

func (r *InviteeRepository) ListByEvent(_ context.Context, eventID int64) ([]*domain.Invitee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Invitee, 0)
	for _, inv := range r.s.data.invitees {
		if inv.EventID == eventID {
			found := inv
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *InviteeRepository) UpdateStatus(_ context.Context, id int64, status domain.InviteeStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.data.invitees[id]
	if !ok {
		return inviteeRepo.ErrInviteeNotFound
	}
	inv.Status = status
	inv.UpdatedAt = time.Now().UTC()
	r.s.data.invitees[id] = inv
	return nil
}

// SlotLockRepository

type SlotLockRepository struct{ s *Store }

// Acquire требует транзакцию, как и postgres-реализация
func (r *SlotLockRepository) Acquire(ctx context.Context, eventID int64, start time.Time) error {
	if !inTx(ctx) {
		return slotlockRepo.ErrNoTransaction
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.data.locks[fmt.Sprintf("%d:%s", eventID, start.UTC().Format(time.RFC3339))] = time.Now().UTC()
	return nil
}

// ActiveCount число не отменённых броней на момент start
func (s *Store) ActiveCount(eventID int64, start time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, b := range s.data.bookings {
		if b.EventID == eventID && b.StartTime.Equal(start) && b.IsActive() {
			count++
		}
	}
	return count
}

// BookingCount число всех броней события
func (s *Store) BookingCount(eventID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, b := range s.data.bookings {
		if b.EventID == eventID {
			count++
		}
	}
	return count
}
