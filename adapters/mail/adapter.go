// Package mail delivers confirmation messages over SMTP.
// Delivery sits entirely outside the quote core: the core hands over
// a composed confirmation and this adapter owns transport, retries,
// and failure classification. A delivery failure is a
// DELIVERY_ERROR and is never conflated with validation or pricing
// failures.
package mail

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"labquote/core/confirm"
	"labquote/internal/config"
	"labquote/internal/errors"
	"labquote/internal/logging"
)

// Deliverer sends a composed confirmation to a recipient
type Deliverer interface {
	Deliver(ctx context.Context, to string, c confirm.Confirmation) error
}

// SMTPDeliverer delivers confirmations through an SMTP relay
type SMTPDeliverer struct {
	cfg        *config.SMTP
	maxRetries uint64
	logger     *zap.Logger
}

// NewSMTPDeliverer creates a deliverer from SMTP settings
func NewSMTPDeliverer(cfg *config.SMTP, maxRetries int) *SMTPDeliverer {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &SMTPDeliverer{
		cfg:        cfg,
		maxRetries: uint64(maxRetries),
		logger:     logging.Logger,
	}
}

// Deliver sends the confirmation, retrying transient transport
// failures with exponential backoff. Retries never re-enter quote
// computation; the message is composed exactly once by the caller.
func (d *SMTPDeliverer) Deliver(ctx context.Context, to string, c confirm.Confirmation) error {
	msg := gomail.NewMsg()
	if err := msg.From(d.cfg.From); err != nil {
		return errors.Delivery("invalid sender address", err)
	}
	if err := msg.To(to); err != nil {
		return errors.Delivery("invalid recipient address", err)
	}
	if d.cfg.SupportBCC != "" {
		if err := msg.Bcc(d.cfg.SupportBCC); err != nil {
			return errors.Delivery("invalid support BCC address", err)
		}
	}
	msg.Subject(c.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, c.Text)
	msg.AddAlternativeString(gomail.TypeTextHTML, c.HTML)

	client, err := gomail.NewClient(d.cfg.Host,
		gomail.WithPort(d.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(d.cfg.User),
		gomail.WithPassword(d.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return errors.Delivery("failed to create SMTP client", err)
	}

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.InitialInterval = 500 * time.Millisecond
	retryPolicy.MaxElapsedTime = 30 * time.Second

	send := func() error {
		return client.DialAndSendWithContext(ctx, msg)
	}
	notify := func(err error, next time.Duration) {
		d.logger.Warn("confirmation delivery failed, retrying",
			zap.String("to", to),
			zap.Duration("next_attempt_in", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(send,
		backoff.WithContext(backoff.WithMaxRetries(retryPolicy, d.maxRetries), ctx),
		notify,
	); err != nil {
		return errors.Delivery("failed to send confirmation email", err)
	}

	d.logger.Info("confirmation delivered", zap.String("to", to))
	return nil
}

// NopDeliverer discards confirmations; used when delivery is
// disabled in configuration and in tests
type NopDeliverer struct{}

// Deliver implements Deliverer
func (NopDeliverer) Deliver(ctx context.Context, to string, c confirm.Confirmation) error {
	return nil
}
