package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAtFires(t *testing.T) {
	fired := make(chan Notification, 1)
	svc := NewLocalService(func(n Notification) { fired <- n })
	defer svc.Close()

	fireAt := time.Now().Add(20 * time.Millisecond)
	handle, err := svc.ScheduleAt(context.Background(), fireAt, "Экзамен", "starting in 15 minutes")
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	select {
	case n := <-fired:
		assert.Equal(t, handle, n.Handle)
		assert.Equal(t, "Экзамен", n.Title)
		assert.Equal(t, "starting in 15 minutes", n.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("уведомление не сработало")
	}

	// После срабатывания дескриптор больше не числится ожидающим
	assert.Equal(t, 0, svc.PendingCount())
}

func TestCancelPreventsFiring(t *testing.T) {
	fired := make(chan Notification, 1)
	svc := NewLocalService(func(n Notification) { fired <- n })
	defer svc.Close()

	handle, err := svc.ScheduleAt(context.Background(), time.Now().Add(50*time.Millisecond), "Отменено", "starting in 5 minutes")
	require.NoError(t, err)

	svc.Cancel(context.Background(), handle)
	assert.Equal(t, 0, svc.PendingCount())

	select {
	case <-fired:
		t.Fatal("отмененное уведомление не должно срабатывать")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCancelUnknownHandleIsNoop(t *testing.T) {
	svc := NewLocalService(nil)
	defer svc.Close()

	// Неизвестный дескриптор и повторная отмена - no-op, без паник
	svc.Cancel(context.Background(), "no-such-handle")

	handle, err := svc.ScheduleAt(context.Background(), time.Now().Add(time.Hour), "x", "y")
	require.NoError(t, err)
	svc.Cancel(context.Background(), handle)
	svc.Cancel(context.Background(), handle)
	assert.Equal(t, 0, svc.PendingCount())
}

func TestPermissionDenied(t *testing.T) {
	svc := NewLocalService(nil)
	defer svc.Close()

	assert.True(t, svc.RequestPermission(context.Background()))

	svc.SetPermission(false)
	assert.False(t, svc.RequestPermission(context.Background()))

	_, err := svc.ScheduleAt(context.Background(), time.Now().Add(time.Hour), "x", "y")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCloseStopsEverything(t *testing.T) {
	svc := NewLocalService(nil)

	_, err := svc.ScheduleAt(context.Background(), time.Now().Add(time.Hour), "x", "y")
	require.NoError(t, err)
	require.Equal(t, 1, svc.PendingCount())

	svc.Close()
	assert.Equal(t, 0, svc.PendingCount())

	_, err = svc.ScheduleAt(context.Background(), time.Now().Add(time.Hour), "x", "y")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHandlesAreUnique(t *testing.T) {
	svc := NewLocalService(nil)
	defer svc.Close()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		handle, err := svc.ScheduleAt(context.Background(), time.Now().Add(time.Hour), "x", "y")
		require.NoError(t, err)
		assert.False(t, seen[handle], "дескрипторы не должны повторяться")
		seen[handle] = true
	}
}
