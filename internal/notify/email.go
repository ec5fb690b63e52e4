package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// ErrNotConfigured отправитель создан без клиента SendGrid
var ErrNotConfigured = errors.New("sendgrid client not configured")

// EmailSender отправка писем
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage письмо
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

// SendGridConfig настройки SendGrid
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender отправляет письма через SendGrid API
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewSendGridSender возвращает nil, если ключ API не задан
func NewSendGridSender(cfg SendGridConfig, logger *zap.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FromName == "" {
		cfg.FromName = "Consultations"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// NewEmailSender выбирает SendGrid при наличии ключа, иначе заглушку
func NewEmailSender(cfg SendGridConfig, logger *zap.Logger) EmailSender {
	if s := NewSendGridSender(cfg, logger); s != nil {
		return s
	}
	return NewStubEmailSender(logger)
}

// Send отправляет письмо
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s == nil || s.client == nil {
		return ErrNotConfigured
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("SendGrid send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("SendGrid returned error status",
			zap.Int("status", response.StatusCode),
			zap.String("body", response.Body),
			zap.String("to", msg.To))
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("Email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("status", response.StatusCode))
	return nil
}

// StubEmailSender только пишет в лог
type StubEmailSender struct {
	logger *zap.Logger
}

// NewStubEmailSender создаёт заглушку
func NewStubEmailSender(logger *zap.Logger) *StubEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.logger.Info("Stub email sender: would send email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

type observedSender struct {
	next    EmailSender
	observe func(error)
}

// Observed вызывает observe с результатом каждой отправки (метрики)
func Observed(next EmailSender, observe func(error)) EmailSender {
	if observe == nil {
		return next
	}
	return &observedSender{next: next, observe: observe}
}

func (s *observedSender) Send(ctx context.Context, msg EmailMessage) error {
	err := s.next.Send(ctx, msg)
	s.observe(err)
	return err
}
