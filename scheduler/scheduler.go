package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"planner_server_go/models"
)

// DefaultReminders — набор напоминаний по умолчанию (в минутах до начала события),
// применяется при создании события, если клиент не прислал свой список.
var DefaultReminders = []int{1440, 60, 15, 5}

// ErrMissingStartDate возвращается, когда событие передано планировщику без даты начала.
var ErrMissingStartDate = errors.New("событие не содержит даты начала (startDate)")

// Delivery — коллаборатор доставки уведомлений.
// Планировщик не знает, как уведомления доставляются; ему нужны только
// запрос разрешения, планирование на момент времени и отмена по дескриптору.
type Delivery interface {
	// RequestPermission сообщает, разрешена ли доставка уведомлений.
	RequestPermission(ctx context.Context) bool
	// ScheduleAt планирует уведомление на момент fireAt и возвращает его дескриптор.
	ScheduleAt(ctx context.Context, fireAt time.Time, title, body string) (string, error)
	// Cancel отменяет уведомление по дескриптору. Отмена неизвестного или уже
	// сработавшего дескриптора — no-op, никогда не ошибка.
	Cancel(ctx context.Context, handle string)
}

// Scheduler поддерживает инвариант: множество ожидающих уведомлений события
// в точности соответствует его напоминаниям, которые еще в будущем.
// Все операции идемпотентны и безопасны при повторе.
type Scheduler struct {
	delivery Delivery

	// Now подменяется в тестах; по умолчанию time.Now.
	Now func() time.Time
}

// New создает планировщик напоминаний поверх переданного коллаборатора доставки.
func New(delivery Delivery) *Scheduler {
	return &Scheduler{
		delivery: delivery,
		Now:      time.Now,
	}
}

// ScheduleAll планирует уведомление для каждого различного неотрицательного
// интервала m из event.Reminders: fireAt = StartDate - m минут. Интервалы,
// разрешающиеся в прошлое, пропускаются без ошибки. Вызовы доставки для разных
// интервалов независимы и выполняются параллельно; отказ одного вызова не
// мешает остальным — собираются только успешно полученные дескрипторы.
// Возвращает ошибку только для события без даты начала, до любых вызовов доставки.
func (s *Scheduler) ScheduleAll(ctx context.Context, event *models.CalendarEvent) ([]string, error) {
	if event.StartDate.IsZero() {
		return nil, ErrMissingStartDate
	}

	now := s.Now()
	seen := make(map[int]bool)

	var wg sync.WaitGroup
	var mu sync.Mutex
	handles := []string{}

	for _, m := range event.Reminders {
		if m < 0 || seen[m] {
			continue
		}
		seen[m] = true

		fireAt := event.StartDate.Add(-time.Duration(m) * time.Minute)
		if !fireAt.After(now) {
			// Напоминание уже в прошлом — не планируем и не считаем это ошибкой.
			continue
		}

		wg.Add(1)
		go func(offset int, fireAt time.Time) {
			defer wg.Done()
			body := FireText(fireAt, event.StartDate)
			handle, err := s.delivery.ScheduleAt(ctx, fireAt, event.Title, body)
			if err != nil {
				// Доставка — best-effort: отказ по одному интервалу логируем и продолжаем.
				log.Printf("ScheduleAll: не удалось запланировать напоминание за %d мин. для события %q: %v", offset, event.Title, err)
				return
			}
			mu.Lock()
			handles = append(handles, handle)
			mu.Unlock()
		}(m, fireAt)
	}

	wg.Wait()
	return handles, nil
}

// RescheduleAll отменяет все ранее выданные дескрипторы и планирует
// уведомления заново по актуальным StartDate и Reminders события.
// Все отмены завершаются до первого нового вызова ScheduleAt, чтобы старое и
// новое уведомление одного и того же напоминания не существовали одновременно.
// Перепланирование всегда моделируется как "отменить старое + запланировать
// новое": состояния "перепланировано" у дескриптора нет.
func (s *Scheduler) RescheduleAll(ctx context.Context, event *models.CalendarEvent, previousHandles []string) ([]string, error) {
	s.CancelAll(ctx, previousHandles)
	return s.ScheduleAll(ctx, event)
}

// CancelAll отменяет каждый дескриптор из переданного набора. Неизвестные,
// уже сработавшие и уже отмененные дескрипторы игнорируются; повторный вызов
// с тем же набором — no-op. Никогда не возвращает ошибку.
func (s *Scheduler) CancelAll(ctx context.Context, handles []string) {
	var wg sync.WaitGroup
	for _, handle := range handles {
		wg.Add(1)
		go func(h string) {
			defer wg.Done()
			s.delivery.Cancel(ctx, h)
		}(handle)
	}
	wg.Wait()
}
