package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/model"
	"github.com/Freeeeeet/consultation_bot/internal/notify"
)

// BookingSuccessMessage текст успешного ответа
const BookingSuccessMessage = "Your consultation has been booked successfully. A confirmation email has been sent."

// BookingStore хранилище записей
type BookingStore interface {
	Create(ctx context.Context, b *model.ConsultationBooking) error
}

type BookingService struct {
	repo     BookingStore
	dedupe   Deduper
	mailer   notify.EmailSender
	notifyTo string
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// BookingServiceOption настройка сервиса
type BookingServiceOption func(*BookingService)

// WithClock подменяет текущее время
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) { s.now = now }
}

// WithNotifyTo адрес команды для уведомлений о новых записях
func WithNotifyTo(email string) BookingServiceOption {
	return func(s *BookingService) { s.notifyTo = email }
}

func NewBookingService(
	repo BookingStore,
	dedupe Deduper,
	mailer notify.EmailSender,
	loc *time.Location,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	if dedupe == nil {
		dedupe = NopDeduper{}
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &BookingService{
		repo:   repo,
		dedupe: dedupe,
		mailer: mailer,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate проверяет запрос в том же порядке, что и клиент: поля, email, дата, тип, слот, выходные
func (s *BookingService) Validate(req *booking.Request) (booking.Date, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Company) == "" ||
		req.ConsultationType == "" ||
		req.Date == "" ||
		req.Time == "" {
		return booking.Date{}, ErrMissingFields
	}

	if !booking.ValidEmail(strings.TrimSpace(req.Email)) {
		return booking.Date{}, ErrInvalidEmail
	}

	date, err := booking.ParseRequestDate(req.Date)
	if err != nil {
		return booking.Date{}, ErrInvalidDate
	}
	if date.Before(booking.Today(s.now().In(s.loc))) {
		return booking.Date{}, ErrDateInPast
	}

	if _, ok := booking.LookupConsultation(req.ConsultationType); !ok {
		return booking.Date{}, ErrInvalidConsultation
	}
	if _, err := booking.ParseSlot(req.Time); err != nil {
		return booking.Date{}, ErrInvalidTimeSlot
	}
	if booking.IsWeekend(date) {
		return booking.Date{}, ErrWeekend
	}

	return date, nil
}

// Book принимает запись: валидация, дедупликация, сохранение, письма.
// Ошибка письма не отменяет запись.
func (s *BookingService) Book(ctx context.Context, req *booking.Request) (*booking.Response, error) {
	date, err := s.Validate(req)
	if err != nil {
		return nil, err
	}

	resp := &booking.Response{
		Success: true,
		Message: BookingSuccessMessage,
		Booking: &booking.BookingSummary{
			ConsultationType: req.ConsultationType,
			Date:             req.Date,
			Time:             req.Time,
		},
	}

	key := dedupeKey("booking", req.Email, date.String(), req.Time)
	first, err := s.dedupe.FirstSeen(ctx, key)
	if err != nil {
		s.logger.Warn("Dedupe check failed, accepting booking", zap.Error(err))
		first = true
	}
	if !first {
		s.logger.Info("Duplicate booking ignored",
			zap.String("email", req.Email),
			zap.String("date", date.String()),
			zap.String("time", req.Time))
		return resp, nil
	}

	record := &model.ConsultationBooking{
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Company:          strings.TrimSpace(req.Company),
		Message:          strings.TrimSpace(req.Message),
		ConsultationType: string(req.ConsultationType),
		Date:             date.Midnight(time.UTC),
		TimeSlot:         req.Time,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// повтор после ошибки сохранения должен дойти до базы
		if ferr := s.dedupe.Forget(ctx, key); ferr != nil {
			s.logger.Warn("Failed to release dedupe key", zap.String("key", key), zap.Error(ferr))
		}
		return nil, fmt.Errorf("save booking: %w", err)
	}

	s.logger.Info("Consultation booked",
		zap.String("booking_id", record.ID.String()),
		zap.String("type", record.ConsultationType),
		zap.String("date", date.String()),
		zap.String("time", record.TimeSlot))

	s.sendEmails(ctx, record, date)
	return resp, nil
}

func (s *BookingService) sendEmails(ctx context.Context, record *model.ConsultationBooking, date booking.Date) {
	if s.mailer == nil {
		return
	}

	label := record.ConsultationType
	if c, ok := booking.LookupConsultation(booking.ConsultationKind(record.ConsultationType)); ok {
		label = c.Label
	}
	details := notify.BookingDetails{
		Name:             record.Name,
		Email:            record.Email,
		Company:          record.Company,
		Message:          record.Message,
		ConsultationType: label,
		Date:             date.Long(),
		Time:             record.TimeSlot,
	}

	if err := s.mailer.Send(ctx, notify.BookingConfirmation(details)); err != nil {
		s.logger.Error("Failed to send booking confirmation",
			zap.String("booking_id", record.ID.String()), zap.Error(err))
	}
	if s.notifyTo != "" {
		if err := s.mailer.Send(ctx, notify.BookingNotification(s.notifyTo, details)); err != nil {
			s.logger.Error("Failed to send booking notification",
				zap.String("booking_id", record.ID.String()), zap.Error(err))
		}
	}
}
