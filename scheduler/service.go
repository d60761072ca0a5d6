package scheduler

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"planner_server_go/models"
)

// ErrNotOwner возвращается при попытке изменить или удалить чужое событие.
var ErrNotOwner = errors.New("событие принадлежит другому пользователю")

// ErrMissingTitle возвращается для события без названия.
var ErrMissingTitle = errors.New("событие не содержит названия (title)")

// EventStore — коллаборатор персистентности событий календаря.
type EventStore interface {
	SaveEvent(ctx context.Context, event *models.CalendarEvent) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id int64) error
	QueryEventsByOwnerAndRange(ctx context.Context, ownerID int64, start, end time.Time) ([]models.CalendarEvent, error)
}

// Service связывает планировщик напоминаний с хранилищем событий и реализует
// операции прикладного уровня: создание, обновление и удаление события
// вместе с согласованным пере-планированием его уведомлений.
//
// ownerID всегда передается явно от вызывающей стороны — внутри сервиса
// никакой "текущий пользователь" не читается.
type Service struct {
	store EventStore
	sched *Scheduler

	// PermissionGranted опционально сообщает, разрешены ли уведомления для
	// пользователя (например, по его настройкам). nil означает "разрешены".
	// При запрете планирование пропускается, событие сохраняется без
	// дескрипторов; отмена прежних дескрипторов выполняется всегда.
	PermissionGranted func(ctx context.Context, ownerID int64) bool
}

// NewService создает сервис событий календаря.
func NewService(store EventStore, sched *Scheduler) *Service {
	return &Service{store: store, sched: sched}
}

func (s *Service) permissionGranted(ctx context.Context, ownerID int64) bool {
	if s.PermissionGranted == nil {
		return true
	}
	return s.PermissionGranted(ctx, ownerID)
}

func validateDraft(draft *models.CalendarEvent) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrMissingTitle
	}
	if draft.StartDate.IsZero() {
		return ErrMissingStartDate
	}
	return nil
}

// OnEventCreated планирует напоминания для нового события, прикрепляет
// полученные дескрипторы и сохраняет запись. Отказы доставки не блокируют
// сохранение: запись события сохраняется при любом числе успешно
// запланированных напоминаний.
func (s *Service) OnEventCreated(ctx context.Context, ownerID int64, draft *models.CalendarEvent) (*models.CalendarEvent, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft.OwnerId = ownerID

	if s.permissionGranted(ctx, ownerID) {
		handles, err := s.sched.ScheduleAll(ctx, draft)
		if err != nil {
			return nil, err
		}
		draft.NotificationHandles = handles
	} else {
		log.Printf("OnEventCreated: уведомления для пользователя %d отключены, событие сохраняется без напоминаний", ownerID)
		draft.NotificationHandles = []string{}
	}

	return s.store.SaveEvent(ctx, draft)
}

// OnEventUpdated отменяет дескрипторы прежней версии события, планирует
// уведомления по новым StartDate/Reminders и сохраняет объединенный результат.
// Изменение чужого события отклоняется до любых побочных эффектов.
func (s *Service) OnEventUpdated(ctx context.Context, ownerID int64, draft *models.CalendarEvent, previous *models.CalendarEvent) (*models.CalendarEvent, error) {
	if previous.OwnerId != ownerID {
		return nil, ErrNotOwner
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	draft.Id = previous.Id
	draft.OwnerId = previous.OwnerId

	if s.permissionGranted(ctx, ownerID) {
		handles, err := s.sched.RescheduleAll(ctx, draft, previous.NotificationHandles)
		if err != nil {
			return nil, err
		}
		draft.NotificationHandles = handles
	} else {
		// Прежние уведомления отменяем в любом случае, иначе они останутся висеть.
		s.sched.CancelAll(ctx, previous.NotificationHandles)
		draft.NotificationHandles = []string{}
	}

	return s.store.SaveEvent(ctx, draft)
}

// OnEventDeleted отменяет все дескрипторы события и удаляет запись.
func (s *Service) OnEventDeleted(ctx context.Context, ownerID int64, event *models.CalendarEvent) error {
	if event.OwnerId != ownerID {
		return ErrNotOwner
	}
	s.sched.CancelAll(ctx, event.NotificationHandles)
	return s.store.DeleteEvent(ctx, event.Id)
}

// RecomputeSchedule восстанавливает дескрипторы события из Reminders и
// StartDate. Используется, когда расписание уведомлений на стороне доставки
// было потеряно (перезагрузка устройства очищает системные будильники):
// эквивалентно RescheduleAll с пустым набором прежних дескрипторов.
func (s *Service) RecomputeSchedule(ctx context.Context, ownerID int64, event *models.CalendarEvent) (*models.CalendarEvent, error) {
	if event.OwnerId != ownerID {
		return nil, ErrNotOwner
	}
	if !s.permissionGranted(ctx, ownerID) {
		event.NotificationHandles = []string{}
		return s.store.SaveEvent(ctx, event)
	}
	handles, err := s.sched.RescheduleAll(ctx, event, nil)
	if err != nil {
		return nil, err
	}
	event.NotificationHandles = handles
	return s.store.SaveEvent(ctx, event)
}
