package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
	"github.com/Freeeeeet/consultation_bot/internal/observability/metrics"
	"github.com/Freeeeeet/consultation_bot/internal/service"
)

const maxBodyBytes = 64 << 10

// InternalErrorMessage ответ на любую непредвиденную ошибку
const InternalErrorMessage = "Internal server error"

// BookingService принимает записи
type BookingService interface {
	Book(ctx context.Context, req *booking.Request) (*booking.Response, error)
}

// LeadService принимает заявки из форм
type LeadService interface {
	SubmitContact(ctx context.Context, req *service.ContactRequest) (*service.LeadResponse, error)
	SubmitGrowthPlan(ctx context.Context, req *service.GrowthPlanRequest) (*service.LeadResponse, error)
}

// HealthChecker проверка зависимостей для /health
type HealthChecker func(ctx context.Context) error

// Handler HTTP обработчики API
type Handler struct {
	bookings BookingService
	leads    LeadService
	health   HealthChecker
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewHandler(bookings BookingService, leads LeadService, health HealthChecker, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		bookings: bookings,
		leads:    leads,
		health:   health,
		metrics:  m,
		logger:   logger,
	}
}

// CreateBooking POST /api/booking
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	handleForm(h, w, r, "booking", &req, func(ctx context.Context) (any, error) {
		return h.bookings.Book(ctx, &req)
	})
}

// CreateContact POST /api/contact
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	handleForm(h, w, r, "contact", &req, func(ctx context.Context) (any, error) {
		return h.leads.SubmitContact(ctx, &req)
	})
}

// CreateGrowthPlan POST /api/growth-plan
func (h *Handler) CreateGrowthPlan(w http.ResponseWriter, r *http.Request) {
	var req service.GrowthPlanRequest
	handleForm(h, w, r, "growth_plan", &req, func(ctx context.Context) (any, error) {
		return h.leads.SubmitGrowthPlan(ctx, &req)
	})
}

// handleForm общий путь форм: разбор JSON, вызов сервиса, ответ.
// Битый JSON отвечает 500, как и прочие непредвиденные ошибки.
func handleForm(h *Handler, w http.ResponseWriter, r *http.Request, form string, dst any, submit func(context.Context) (any, error)) {
	start := time.Now()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.logger.Error("Failed to decode request", zap.String("form", form), zap.Error(err))
		h.metrics.ObserveSubmission(form, "error", time.Since(start))
		writeError(w, http.StatusInternalServerError, InternalErrorMessage)
		return
	}

	resp, err := submit(r.Context())
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			h.metrics.ObserveSubmission(form, "invalid", time.Since(start))
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.logger.Error("Failed to process form", zap.String("form", form), zap.Error(err))
		h.metrics.ObserveSubmission(form, "error", time.Since(start))
		writeError(w, http.StatusInternalServerError, InternalErrorMessage)
		return
	}

	h.metrics.ObserveSubmission(form, "ok", time.Since(start))
	writeJSON(w, http.StatusOK, resp)
}

// Health GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, booking.Response{Error: message})
}
