package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/model"
	"github.com/Freeeeeet/consultation_bot/internal/notify"
)

// Тексты успешных ответов форм
const (
	ContactSuccessMessage    = "Your message has been received. We will get back to you soon."
	GrowthPlanSuccessMessage = "Thank you! We will create your tailored growth plan and send it within 24 hours."
)

// ContactRequest тело POST /api/contact
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// GrowthPlanRequest тело POST /api/growth-plan
type GrowthPlanRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Budget  string `json:"budget"`
	Message string `json:"message"`
}

// LeadResponse ответ форм
type LeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LeadStore хранилище заявок
type LeadStore interface {
	CreateContact(ctx context.Context, msg *model.ContactMessage) error
	CreateGrowthPlan(ctx context.Context, req *model.GrowthPlanRequest) error
}

type LeadService struct {
	repo     LeadStore
	dedupe   Deduper
	mailer   notify.EmailSender
	notifyTo string
	logger   *zap.Logger
}

func NewLeadService(repo LeadStore, dedupe Deduper, mailer notify.EmailSender, notifyTo string, logger *zap.Logger) *LeadService {
	if dedupe == nil {
		dedupe = NopDeduper{}
	}
	return &LeadService{
		repo:     repo,
		dedupe:   dedupe,
		mailer:   mailer,
		notifyTo: notifyTo,
		logger:   logger,
	}
}

// validateLead общие проверки форм: все required заполнены, email корректен
func validateLead(email string, required ...string) error {
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	if !booking.ValidEmail(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// SubmitContact принимает сообщение контактной формы
func (s *LeadService) SubmitContact(ctx context.Context, req *ContactRequest) (*LeadResponse, error) {
	if err := validateLead(req.Email, req.Name, req.Email, req.Company, req.Message); err != nil {
		return nil, err
	}

	resp := &LeadResponse{Success: true, Message: ContactSuccessMessage}
	key := dedupeKey("contact", req.Email, req.Message)
	if !s.firstSeen(ctx, key) {
		return resp, nil
	}

	msg := &model.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Company: strings.TrimSpace(req.Company),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.CreateContact(ctx, msg); err != nil {
		s.forget(ctx, key)
		return nil, fmt.Errorf("save contact message: %w", err)
	}

	s.logger.Info("Contact message received", zap.String("id", msg.ID.String()), zap.String("company", msg.Company))
	s.notify(ctx, "contact", [][2]string{
		{"Name", msg.Name},
		{"Email", msg.Email},
		{"Company", msg.Company},
		{"Subject", msg.Subject},
		{"Message", msg.Message},
	})
	return resp, nil
}

// SubmitGrowthPlan принимает заявку на план роста
func (s *LeadService) SubmitGrowthPlan(ctx context.Context, req *GrowthPlanRequest) (*LeadResponse, error) {
	if err := validateLead(req.Email, req.Name, req.Email, req.Company, req.Budget, req.Message); err != nil {
		return nil, err
	}

	resp := &LeadResponse{Success: true, Message: GrowthPlanSuccessMessage}
	key := dedupeKey("growth-plan", req.Email, req.Message)
	if !s.firstSeen(ctx, key) {
		return resp, nil
	}

	plan := &model.GrowthPlanRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Company: strings.TrimSpace(req.Company),
		Budget:  strings.TrimSpace(req.Budget),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.CreateGrowthPlan(ctx, plan); err != nil {
		s.forget(ctx, key)
		return nil, fmt.Errorf("save growth plan request: %w", err)
	}

	s.logger.Info("Growth plan request received", zap.String("id", plan.ID.String()), zap.String("budget", plan.Budget))
	s.notify(ctx, "growth plan", [][2]string{
		{"Name", plan.Name},
		{"Email", plan.Email},
		{"Company", plan.Company},
		{"Budget", plan.Budget},
		{"Message", plan.Message},
	})
	return resp, nil
}

func (s *LeadService) firstSeen(ctx context.Context, key string) bool {
	first, err := s.dedupe.FirstSeen(ctx, key)
	if err != nil {
		s.logger.Warn("Dedupe check failed, accepting request", zap.Error(err))
		return true
	}
	if !first {
		s.logger.Info("Duplicate lead ignored", zap.String("key", key))
	}
	return first
}

// forget освобождает ключ после неудачного сохранения, чтобы повтор не считался дублем
func (s *LeadService) forget(ctx context.Context, key string) {
	if err := s.dedupe.Forget(ctx, key); err != nil {
		s.logger.Warn("Failed to release dedupe key", zap.String("key", key), zap.Error(err))
	}
}

func (s *LeadService) notify(ctx context.Context, form string, fields [][2]string) {
	if s.mailer == nil || s.notifyTo == "" {
		return
	}
	if err := s.mailer.Send(ctx, notify.LeadNotification(s.notifyTo, form, fields)); err != nil {
		s.logger.Error("Failed to send lead notification", zap.String("form", form), zap.Error(err))
	}
}
