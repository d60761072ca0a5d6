package notify

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPermissionDenied возвращается из ScheduleAt при выключенных уведомлениях.
var ErrPermissionDenied = errors.New("доставка уведомлений не разрешена")

// ErrClosed возвращается из ScheduleAt после остановки сервиса.
var ErrClosed = errors.New("сервис уведомлений остановлен")

// Notification — уведомление, переданное получателю в момент срабатывания.
type Notification struct {
	Handle string
	Title  string
	Body   string
	FireAt time.Time
}

// Sink принимает сработавшие уведомления (отправка клиенту, лог и т.п.).
type Sink func(n Notification)

// LocalService — локальная реализация доставки уведомлений: по одному таймеру
// на каждое ожидающее уведомление, дескриптор — UUID. Жизненный цикл
// дескриптора: запланирован -> {сработал | отменен}; оба конечных состояния
// для Cancel неотличимы от "нет такого дескриптора".
type LocalService struct {
	mu         sync.Mutex
	timers     map[string]*time.Timer
	sink       Sink
	permission bool
	closed     bool
}

// NewLocalService создает сервис доставки. Разрешение на уведомления
// изначально выдано; sink может быть nil — тогда срабатывания только логируются.
func NewLocalService(sink Sink) *LocalService {
	return &LocalService{
		timers:     make(map[string]*time.Timer),
		sink:       sink,
		permission: true,
	}
}

// RequestPermission сообщает, разрешена ли доставка уведомлений.
func (s *LocalService) RequestPermission(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// SetPermission включает или выключает доставку. Уже запланированные
// уведомления при выключении не отменяются: этим управляет вызывающая сторона.
func (s *LocalService) SetPermission(granted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permission = granted
}

// ScheduleAt планирует уведомление на момент fireAt и возвращает его дескриптор.
func (s *LocalService) ScheduleAt(ctx context.Context, fireAt time.Time, title, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrClosed
	}
	if !s.permission {
		return "", ErrPermissionDenied
	}

	handle := uuid.New().String()
	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[handle] = time.AfterFunc(delay, func() {
		s.fire(Notification{Handle: handle, Title: title, Body: body, FireAt: fireAt})
	})
	return handle, nil
}

func (s *LocalService) fire(n Notification) {
	s.mu.Lock()
	_, pending := s.timers[n.Handle]
	delete(s.timers, n.Handle)
	sink := s.sink
	s.mu.Unlock()

	// Таймер мог быть отменен между срабатыванием и захватом мьютекса.
	if !pending {
		return
	}
	if sink != nil {
		sink(n)
	} else {
		log.Printf("Уведомление %s: %s — %s", n.Handle, n.Title, n.Body)
	}
}

// Cancel отменяет ожидающее уведомление. Для неизвестного, уже сработавшего
// или уже отмененного дескриптора — no-op; повторный вызов всегда безопасен.
func (s *LocalService) Cancel(ctx context.Context, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[handle]
	if !ok {
		return
	}
	timer.Stop()
	delete(s.timers, handle)
}

// PendingCount возвращает число ожидающих уведомлений.
func (s *LocalService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close останавливает все таймеры; дальнейшие ScheduleAt возвращают ErrClosed.
func (s *LocalService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
	s.closed = true
}
