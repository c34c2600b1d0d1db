// Package mail is the SMTP transport and body renderer for payment
// reminders.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/grupolom/cartera/internal/core"
)

// ErrNotConfigured is returned when a send is attempted without SMTP
// credentials in place. MapError turns it into the SMTP004 user message.
var ErrNotConfigured = errors.New("smtp credentials not configured")

// Config carries the SMTP settings a Sender needs.
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromName    string
	FromAddress string
	Timeout     time.Duration
}

// Sender implements core.Sender over SMTP with STARTTLS. Each Send opens
// its own connection and closes it when the message is accepted, so a
// Sender is safe for concurrent use by the dispatch workers.
type Sender struct {
	cfg Config
}

// NewSender creates a Sender. Missing credentials are not an error here;
// they fail the first Send so the server can still boot for dry runs.
func NewSender(cfg Config) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Sender{cfg: cfg}
}

// Send transmits one message. The context bounds the whole
// dial-auth-transmit cycle on top of the per-connection timeout.
func (s *Sender) Send(ctx context.Context, msg core.Message) error {
	if s.cfg.User == "" || s.cfg.Password == "" {
		return ErrNotConfigured
	}

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.User),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(s.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	if msg.Cc != "" {
		if err := m.Cc(msg.Cc); err != nil {
			return fmt.Errorf("cc address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// TestMessage builds the self-addressed probe used to verify SMTP settings.
func (s *Sender) TestMessage() core.Message {
	return core.Message{
		To:      s.cfg.User,
		Subject: "Prueba de configuración SMTP",
		TextBody: "Este es un mensaje de prueba. Si lo recibes, la " +
			"configuración de correo del servidor de cartera funciona.",
	}
}
