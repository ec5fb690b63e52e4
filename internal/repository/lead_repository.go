package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Freeeeeet/consultation_bot/internal/model"
	"github.com/Freeeeeet/consultation_bot/internal/repository/base"
)

// LeadRepository заявки из контактной формы и формы плана роста
type LeadRepository struct {
	*base.Repository
}

func NewLeadRepository(db base.DB) *LeadRepository {
	return &LeadRepository{Repository: base.NewRepository(db)}
}

// CreateContact сохраняет сообщение из контактной формы
func (r *LeadRepository) CreateContact(ctx context.Context, msg *model.ContactMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	query := `
		INSERT INTO contact_messages (id, name, email, company, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, msg.ID, msg.Name, msg.Email, msg.Company, msg.Subject, msg.Message).
		Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// CreateGrowthPlan сохраняет заявку на план роста
func (r *LeadRepository) CreateGrowthPlan(ctx context.Context, req *model.GrowthPlanRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	query := `
		INSERT INTO growth_plan_requests (id, name, email, company, budget, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, req.ID, req.Name, req.Email, req.Company, req.Budget, req.Message).
		Scan(&req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create growth plan request: %w", err)
	}
	return nil
}
