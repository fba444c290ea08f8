package utils

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"hotel-nepal/models"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func (c SMTPConfig) complete() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != ""
}

// Mailer sends booking confirmations. Without SMTP settings it only logs
// what it would have sent.
type Mailer struct {
	cfg  SMTPConfig
	log  zerolog.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg SMTPConfig, l zerolog.Logger) *Mailer {
	if cfg.FromName == "" {
		cfg.FromName = "Hotel Nepal"
	}
	return &Mailer{cfg: cfg, log: l.With().Str("component", "mailer").Logger(), send: smtp.SendMail}
}

// BookingConfirmed mails the guest a summary of a stored booking.
func (m *Mailer) BookingConfirmed(_ context.Context, b *models.Booking) error {
	if !m.cfg.complete() {
		m.log.Info().Uint("booking_id", b.ID).Str("to", MaskEmail(b.GuestEmail)).Msg("[MOCK EMAIL] booking confirmation")
		return nil
	}

	to := headerSafe(b.GuestEmail)
	from := fmt.Sprintf("%s <%s>", headerSafe(m.cfg.FromName), headerSafe(m.cfg.Username))
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	msg := bookingMessage(from, to, b)
	if err := m.send(addr, auth, m.cfg.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("send booking confirmation: %w", err)
	}
	m.log.Info().Uint("booking_id", b.ID).Str("to", MaskEmail(to)).Msg("booking confirmation sent")
	return nil
}

func bookingMessage(from, to string, b *models.Booking) []byte {
	const boundary = "----=_BOOKING_EMAIL_BOUNDARY"
	hotel := b.HotelName
	if hotel == "" {
		hotel = "your hotel"
	}
	checkIn := b.CheckInDate.Format("2006-01-02")
	checkOut := b.CheckOutDate.Format("2006-01-02")

	plainBody := fmt.Sprintf(
		"Namaste %s,\n\n"+
			"Your booking #%d at %s is %s.\n"+
			"Check-in: %s\nCheck-out: %s (%d nights)\nGuests: %d\nTotal: %.2f\n",
		b.GuestName, b.ID, hotel, b.Status, checkIn, checkOut, b.Nights, b.NumberOfGuests, b.TotalPrice,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking confirmation</title></head>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
  <h2>Booking #%d</h2>
  <p>Namaste %s,</p>
  <p>Your booking at <strong>%s</strong> is <strong>%s</strong>.</p>
  <table>
    <tr><td>Check-in</td><td>%s</td></tr>
    <tr><td>Check-out</td><td>%s (%d nights)</td></tr>
    <tr><td>Guests</td><td>%d</td></tr>
    <tr><td>Total</td><td>%.2f</td></tr>
  </table>
</body>
</html>`,
		b.ID, html.EscapeString(b.GuestName), html.EscapeString(hotel), b.Status,
		checkIn, checkOut, b.Nights, b.NumberOfGuests, b.TotalPrice,
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: Booking #%d confirmed - %s\r\n", b.ID, headerSafe(hotel))
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&sb, "--%s\r\n", boundary)
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", boundary)
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	fmt.Fprintf(&sb, "--%s--\r\n", boundary)
	return []byte(sb.String())
}

// headerSafe folds a value onto one line so it cannot start a new header.
func headerSafe(s string) string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' })
	return strings.TrimSpace(strings.Join(lines, " "))
}

// MaskEmail keeps the first and last character of the local part and the
// first character of the domain: "sita@example.com" -> "s**a@e******.com".
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	switch {
	case len(local) > 2:
		local = local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:]
	case len(local) == 2:
		local = local[:1] + "*"
	}

	domainParts := strings.Split(domain, ".")
	if len(domainParts) >= 2 && len(domainParts[0]) > 1 {
		domainParts[0] = domainParts[0][:1] + strings.Repeat("*", len(domainParts[0])-1)
	}
	return local + "@" + strings.Join(domainParts, ".")
}
