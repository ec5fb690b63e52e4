package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Freeeeeet/consultation_bot/internal/model"
	"github.com/Freeeeeet/consultation_bot/internal/repository/base"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(db base.DB) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(db)}
}

// Create сохраняет запись; ID генерируется, если не задан
func (r *BookingRepository) Create(ctx context.Context, booking *model.ConsultationBooking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query := `
		INSERT INTO consultation_bookings (id, name, email, company, message, consultation_type, booking_date, time_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.Name,
		booking.Email,
		booking.Company,
		booking.Message,
		booking.ConsultationType,
		booking.Date,
		booking.TimeSlot,
	).Scan(&booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("create consultation booking: %w", err)
	}

	return nil
}

// GetByID получает запись по ID; nil, если не найдена
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ConsultationBooking, error) {
	query := `
		SELECT id, name, email, company, message, consultation_type, booking_date, time_slot, created_at
		FROM consultation_bookings
		WHERE id = $1
	`

	var b model.ConsultationBooking
	err := r.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.Name,
		&b.Email,
		&b.Company,
		&b.Message,
		&b.ConsultationType,
		&b.Date,
		&b.TimeSlot,
		&b.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consultation booking by id: %w", err)
	}

	return &b, nil
}
