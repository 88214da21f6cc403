// Package email delivers customer notifications over SMTP. Delivery is
// asynchronous and best-effort: failures are logged, never returned to the
// operation that triggered them.
package email

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
)

// Sender sends wallet notification emails via SMTP.
type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewSender creates an email sender.
func NewSender(host, port, username, password, from string, logger *slog.Logger) *Sender {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

func (s *Sender) send(to, subject, body string) {
	go func() {
		e := email.NewEmail()
		e.From = s.from
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		addr := fmt.Sprintf("%s:%s", s.host, s.port)
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := e.Send(addr, auth); err != nil {
			s.logger.Error("failed to send email",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.String("error", err.Error()))
			return
		}
		s.logger.Info("email sent", slog.String("to", to), slog.String("subject", subject))
	}()
}

// WelcomeEmail greets a newly registered account holder.
func (s *Sender) WelcomeEmail(account domain.Account) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Welcome to Delux Euro Wallet!\n"+
			"Your account has been created with a welcome bonus of %s€.\n"+
			"\nBest regards,\nDelux Euro Wallet",
		account.FullName, account.Balance,
	)
	s.send(account.Email, "Welcome to Delux Euro Wallet", body)
}

// CardActivationCode sends the one-time code for activating a new card.
func (s *Sender) CardActivationCode(account domain.Account, card domain.Card, code string) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your %s card ending in %s has been saved.\n"+
			"Enter the following code to activate it: %s\n"+
			"\nBest regards,\nDelux Euro Wallet",
		account.FullName, card.Type, card.Last4(), code,
	)
	s.send(account.Email, "Activate your new card", body)
}

// WireReceipt notifies a recipient of an incoming transfer.
func (s *Sender) WireReceipt(recipient domain.Account, senderEmail string, amount decimal.Decimal) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"You have received a wire transfer of %s€ from %s.\n"+
			"Current balance: %s€\n"+
			"\nBest regards,\nDelux Euro Wallet",
		recipient.FullName, amount, senderEmail, recipient.Balance,
	)
	s.send(recipient.Email, "Wire Transfer Received", body)
}
