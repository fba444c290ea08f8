package utils

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-nepal/models"
)

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:             12,
		HotelName:      "Temple Tree Resort & Spa",
		GuestName:      "Sita <Sharma>",
		GuestEmail:     "sita@example.com",
		CheckInDate:    time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:   time.Date(2030, 2, 3, 0, 0, 0, 0, time.UTC),
		NumberOfGuests: 2,
		Nights:         2,
		TotalPrice:     240,
		Status:         models.StatusConfirmed,
	}
}

func TestMailer_Sends(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "smtp.local", Port: "587", Username: "bot@hotel.np", Password: "pw"}, zerolog.Nop())

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		assert.Equal(t, "bot@hotel.np", from)
		return nil
	}

	require.NoError(t, m.BookingConfirmed(context.Background(), sampleBooking()))
	assert.Equal(t, "smtp.local:587", gotAddr)
	assert.Equal(t, []string{"sita@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Booking #12 confirmed - Temple Tree Resort & Spa\r\n")
	assert.Contains(t, gotMsg, "From: Hotel Nepal <bot@hotel.np>")
	assert.Contains(t, gotMsg, "Total: 240.00")
	assert.Contains(t, gotMsg, "Sita &lt;Sharma&gt;", "html part is escaped")
}

func TestMailer_HotelNameCannotAddHeaders(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "smtp.local", Port: "587", Username: "bot@hotel.np", Password: "pw"}, zerolog.Nop())
	var gotMsg string
	m.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = string(msg)
		return nil
	}

	b := sampleBooking()
	b.HotelName = "Lakeside Inn\r\nBcc: everyone@example.com\nX-Spam: yes"
	require.NoError(t, m.BookingConfirmed(context.Background(), b))

	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	assert.Contains(t, headers, "Subject: Booking #12 confirmed - Lakeside Inn Bcc: everyone@example.com X-Spam: yes\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.NotContains(t, headers, "\nX-Spam:")
}

func TestMailer_MockWithoutSMTP(t *testing.T) {
	m := NewMailer(SMTPConfig{}, zerolog.Nop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("must not be called")
	}
	assert.NoError(t, m.BookingConfirmed(context.Background(), sampleBooking()))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "s**a@e******.com", MaskEmail("sita@example.com"))
	assert.Equal(t, "a*@b.np", MaskEmail("ab@b.np"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}
