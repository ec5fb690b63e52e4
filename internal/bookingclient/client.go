package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/consultation_bot/internal/booking"
)

// DefaultTimeout верхняя граница одной отправки
const DefaultTimeout = 15 * time.Second

// BookingPath путь эндпоинта бронирования
const BookingPath = "/api/booking"

// maxResponseBody ответ сервера больше этого считается некорректным
const maxResponseBody = 1 << 20

var (
	ErrTimeout          = errors.New("booking request timed out")
	ErrMalformedReply   = errors.New("malformed booking response")
	ErrUnexpectedStatus = errors.New("unexpected booking response status")
)

// SubmitError отказ сервера в бронировании (4xx) с текстом для пользователя
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("booking rejected with status %d: %s", e.Status, e.Message)
}

// UserMessage текст, который сервер просит показать пользователю
func (e *SubmitError) UserMessage() string {
	return e.Message
}

// Submitter отправка заявки на бронирование
type Submitter interface {
	Submit(ctx context.Context, req *booking.Request) (*booking.Response, error)
}

// Client HTTP клиент эндпоинта бронирования.
// Один вызов Submit делает ровно один POST и не повторяет его.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   *zap.Logger
}

// Option настройка клиента
type Option func(*Client)

// WithTimeout задаёт таймаут одной отправки
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient подменяет транспорт
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New создаёт клиент; baseURL вида https://example.com, без /api/booking
func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		endpoint: baseURL + BookingPath,
		timeout:  DefaultTimeout,
		http:     &http.Client{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit отправляет заявку. Возвращает ответ только при 2xx и success=true.
// 4xx с полем error превращаются в *SubmitError, остальные сбои в обычные ошибки.
func (c *Client) Submit(ctx context.Context, req *booking.Request) (*booking.Response, error) {
	if req == nil {
		return nil, errors.New("nil booking request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, c.timeout, err)
		}
		c.logger.Warn("booking request failed",
			zap.String("consultation_type", string(req.ConsultationType)),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("send booking request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read booking response: %w", err)
	}

	var out booking.Response
	decodeErr := json.Unmarshal(raw, &out)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if decodeErr != nil || !out.Success {
			c.logger.Warn("malformed booking response",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", raw),
			)
			return nil, ErrMalformedReply
		}
		c.logger.Info("booking submitted",
			zap.String("consultation_type", string(req.ConsultationType)),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Duration("elapsed", time.Since(started)),
		)
		return &out, nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500 && decodeErr == nil && out.Error != "":
		c.logger.Info("booking rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("reason", out.Error),
		)
		return nil, &SubmitError{Status: resp.StatusCode, Message: out.Error}

	default:
		c.logger.Warn("booking request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("error", out.Error),
		)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}
