package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"planner_server_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore — тестовое хранилище событий в памяти.
type fakeStore struct {
	events  map[int64]*models.CalendarEvent
	nextID  int64
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: make(map[int64]*models.CalendarEvent)}
}

func (s *fakeStore) SaveEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	if event.Id == 0 {
		s.nextID++
		event.Id = s.nextID
	}
	stored := *event
	s.events[event.Id] = &stored
	return &stored, nil
}

func (s *fakeStore) DeleteEvent(ctx context.Context, id int64) error {
	delete(s.events, id)
	return nil
}

func (s *fakeStore) QueryEventsByOwnerAndRange(ctx context.Context, ownerID int64, start, end time.Time) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, e := range s.events {
		if e.OwnerId == ownerID && !e.StartDate.Before(start) && !e.StartDate.After(end) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func newTestService(store EventStore, delivery Delivery, now time.Time) *Service {
	return NewService(store, newTestScheduler(delivery, now))
}

func TestOnEventCreatedAttachesHandles(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	delivery := newFakeDelivery()
	svc := newTestService(store, delivery, now)

	created, err := svc.OnEventCreated(context.Background(), 7, eventWith(now.Add(2*time.Hour), []int{60, 5}))
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.OwnerId)
	assert.Len(t, created.NotificationHandles, 2)
	assert.NotZero(t, created.Id)
	assert.Len(t, store.events, 1)
}

func TestOnEventCreatedValidation(t *testing.T) {
	now := time.Now()
	svc := newTestService(newFakeStore(), newFakeDelivery(), now)

	_, err := svc.OnEventCreated(context.Background(), 7, &models.CalendarEvent{StartDate: now.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = svc.OnEventCreated(context.Background(), 7, &models.CalendarEvent{Title: "Без даты"})
	assert.ErrorIs(t, err, ErrMissingStartDate)
}

// Отказы доставки не блокируют сохранение: событие сохраняется и с меньшим
// числом дескрипторов, чем напоминаний.
func TestOnEventCreatedDeliveryFailureStillSaves(t *testing.T) {
	now := time.Now()
	start := now.Add(2 * time.Hour)
	store := newFakeStore()
	delivery := newFakeDelivery()
	delivery.failFireAt[start.Add(-60*time.Minute)] = true
	svc := newTestService(store, delivery, now)

	created, err := svc.OnEventCreated(context.Background(), 7, eventWith(start, []int{60, 5}))
	require.NoError(t, err)
	assert.Len(t, created.NotificationHandles, 1)
	assert.Len(t, store.events, 1)
}

func TestOnEventCreatedPersistenceFailure(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	store.saveErr = errors.New("database gone")
	svc := newTestService(store, newFakeDelivery(), now)

	_, err := svc.OnEventCreated(context.Background(), 7, eventWith(now.Add(2*time.Hour), []int{5}))
	assert.Error(t, err, "ошибка персистентности фатальна для операции")
}

func TestOnEventCreatedPermissionDenied(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	delivery := newFakeDelivery()
	svc := newTestService(store, delivery, now)
	svc.PermissionGranted = func(ctx context.Context, ownerID int64) bool { return false }

	created, err := svc.OnEventCreated(context.Background(), 7, eventWith(now.Add(2*time.Hour), []int{60, 5}))
	require.NoError(t, err, "запрет уведомлений не мешает сохранению события")
	assert.Empty(t, created.NotificationHandles)
	assert.Empty(t, delivery.callsOfKind("schedule"))
}

func TestOnEventUpdatedReplacesHandles(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	delivery := newFakeDelivery()
	svc := newTestService(store, delivery, now)

	previous, err := svc.OnEventCreated(context.Background(), 7, eventWith(now.Add(2*time.Hour), []int{60, 15}))
	require.NoError(t, err)
	oldHandles := previous.NotificationHandles
	require.Len(t, oldHandles, 2)

	// Перенос начала ближе: из {60, 15, 5} в будущем остается только 5
	draft := eventWith(now.Add(12*time.Minute), []int{60, 15, 5})
	updated, err := svc.OnEventUpdated(context.Background(), 7, draft, previous)
	require.NoError(t, err)

	assert.Equal(t, previous.Id, updated.Id)
	assert.Len(t, updated.NotificationHandles, 1)
	for _, h := range oldHandles {
		assert.NotContains(t, updated.NotificationHandles, h)
	}
	assert.Len(t, delivery.callsOfKind("cancel"), 2)
}

func TestOnEventUpdatedRejectsCrossOwner(t *testing.T) {
	now := time.Now()
	delivery := newFakeDelivery()
	svc := newTestService(newFakeStore(), delivery, now)

	previous := eventWith(now.Add(2*time.Hour), []int{5})
	previous.Id = 1
	previous.OwnerId = 7
	previous.NotificationHandles = []string{"h1"}

	_, err := svc.OnEventUpdated(context.Background(), 8, eventWith(now.Add(time.Hour), []int{5}), previous)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, delivery.calls, "чужое событие отклоняется до побочных эффектов")
}

func TestOnEventDeletedCancelsAndRemoves(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	delivery := newFakeDelivery()
	svc := newTestService(store, delivery, now)

	created, err := svc.OnEventCreated(context.Background(), 7, eventWith(now.Add(2*time.Hour), []int{60, 15, 5}))
	require.NoError(t, err)
	require.Len(t, created.NotificationHandles, 3)

	require.NoError(t, svc.OnEventDeleted(context.Background(), 7, created))
	assert.Len(t, delivery.callsOfKind("cancel"), 3)
	assert.Empty(t, store.events)
}

func TestOnEventDeletedRejectsCrossOwner(t *testing.T) {
	now := time.Now()
	delivery := newFakeDelivery()
	svc := newTestService(newFakeStore(), delivery, now)

	event := eventWith(now.Add(time.Hour), []int{5})
	event.Id = 1
	event.OwnerId = 7
	event.NotificationHandles = []string{"h1"}

	err := svc.OnEventDeleted(context.Background(), 8, event)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, delivery.calls)
}

// Восстановление после потери системных будильников: дескрипторы
// пересчитываются из Reminders и StartDate, прежний набор не нужен.
func TestRecomputeSchedule(t *testing.T) {
	now := time.Now()
	store := newFakeStore()
	delivery := newFakeDelivery()
	svc := newTestService(store, delivery, now)

	event := eventWith(now.Add(2*time.Hour), []int{60, 5})
	event.Id = 3
	event.OwnerId = 7
	// Дескрипторы прежней жизни процесса: на стороне доставки их уже нет
	event.NotificationHandles = []string{"stale-1", "stale-2"}

	repaired, err := svc.RecomputeSchedule(context.Background(), 7, event)
	require.NoError(t, err)
	assert.Len(t, repaired.NotificationHandles, 2)
	assert.NotContains(t, repaired.NotificationHandles, "stale-1")
	assert.Len(t, delivery.callsOfKind("schedule"), 2)
}
