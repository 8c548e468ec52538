package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	slotsCache "github.com/m04kA/SMC-SchedulingService/internal/infra/cache/slots"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notifications"
)

// Publisher запоминает опубликованные события
type Publisher struct {
	mu     sync.Mutex
	events []notifications.BookingEvent
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *Publisher) Events() []notifications.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]notifications.BookingEvent(nil), p.events...)
}

// Cache запоминает сброшенные ключи кэша слотов
type Cache struct {
	mu          sync.Mutex
	dates       []time.Time
	eventResets []int64
}

func (c *Cache) Get(context.Context, int64, time.Time) ([]domain.Slot, error) {
	return nil, slotsCache.ErrCacheMiss
}

func (c *Cache) Set(context.Context, int64, time.Time, []domain.Slot) error { return nil }

func (c *Cache) InvalidateDate(_ context.Context, _ int64, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dates = append(c.dates, date)
	return nil
}

func (c *Cache) InvalidateEvent(_ context.Context, eventID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventResets = append(c.eventResets, eventID)
	return nil
}

// InvalidatedDates дни, для которых сбрасывался кэш
func (c *Cache) InvalidatedDates() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Time(nil), c.dates...)
}

// InvalidatedEvents события, для которых сбрасывался весь кэш
func (c *Cache) InvalidatedEvents() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]int64(nil), c.eventResets...)
}

// FixedClock часы с фиксированным временем
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
