package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/consultation_bot/internal/model"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestBookingRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	date := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)
	b := &model.ConsultationBooking{
		Name:             "Ada",
		Email:            "ada@example.com",
		Company:          "Acme",
		ConsultationType: "discovery",
		Date:             date,
		TimeSlot:         "10:00 AM",
	}

	mock.ExpectQuery("INSERT INTO consultation_bookings").
		WithArgs(pgxmock.AnyArg(), "Ada", "ada@example.com", "Acme", "", "discovery", date, "10:00 AM").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, repo.Create(context.Background(), b))
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, created, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateError(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	mock.ExpectQuery("INSERT INTO consultation_bookings").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &model.ConsultationBooking{ID: uuid.New()})
	assert.ErrorContains(t, err, "create consultation booking")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	mock := newMock(t)
	repo := NewBookingRepository(mock)

	id := uuid.New()
	date := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM consultation_bookings").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "company", "message", "consultation_type", "booking_date", "time_slot", "created_at",
		}).AddRow(id, "Ada", "ada@example.com", "Acme", "hi", "strategy", date, "1:30 PM", date))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "strategy", got.ConsultationType)
	assert.Equal(t, "1:30 PM", got.TimeSlot)

	mock.ExpectQuery("SELECT (.+) FROM consultation_bookings").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	got, err = repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository(t *testing.T) {
	mock := newMock(t)
	repo := NewLeadRepository(mock)
	created := time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO contact_messages").
		WithArgs(pgxmock.AnyArg(), "Ada", "ada@example.com", "Acme", "", "Hello").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectQuery("INSERT INTO growth_plan_requests").
		WithArgs(pgxmock.AnyArg(), "Ada", "ada@example.com", "Acme", "10k", "Grow").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	msg := &model.ContactMessage{Name: "Ada", Email: "ada@example.com", Company: "Acme", Message: "Hello"}
	require.NoError(t, repo.CreateContact(context.Background(), msg))
	assert.Equal(t, created, msg.CreatedAt)

	plan := &model.GrowthPlanRequest{Name: "Ada", Email: "ada@example.com", Company: "Acme", Budget: "10k", Message: "Grow"}
	require.NoError(t, repo.CreateGrowthPlan(context.Background(), plan))
	assert.NotEqual(t, uuid.Nil, plan.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
