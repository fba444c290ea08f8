// Package validation holds the request rules shared by the HTTP handlers and
// the services. Every rule stops at the first violation.
package validation

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const DateLayout = "2006-01-02"

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

// Error is a client-facing rule violation.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func fail(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func ValidEmail(s string) bool { return emailRegex.MatchString(strings.TrimSpace(s)) }

func ValidPhone(s string) bool { return phoneRegex.MatchString(strings.TrimSpace(s)) }

// ---------------------------
// Registration
// ---------------------------

type PasswordPolicy struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigit     bool
}

func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: 6, RequireUppercase: true, RequireLowercase: true, RequireDigit: true}
}

type RegistrationInput struct {
	FirstName string
	Email     string
	Password  string
	Phone     string
}

func Registration(in RegistrationInput, policy PasswordPolicy) *Error {
	if blank(in.FirstName) || blank(in.Email) || in.Password == "" {
		return fail("Name, email and password are required")
	}
	if !ValidEmail(in.Email) {
		return fail("Please provide a valid email address")
	}
	if err := Password(in.Password, policy); err != nil {
		return err
	}
	if !blank(in.Phone) && !ValidPhone(in.Phone) {
		return fail("Please provide a valid phone number")
	}
	return nil
}

// ProfilePatch checks only the fields a profile update carries.
func ProfilePatch(firstName, phone, password *string, policy PasswordPolicy) *Error {
	if firstName != nil && blank(*firstName) {
		return fail("First name cannot be empty")
	}
	if phone != nil && !blank(*phone) && !ValidPhone(*phone) {
		return fail("Please provide a valid phone number")
	}
	if password != nil {
		return Password(*password, policy)
	}
	return nil
}

func Password(pw string, policy PasswordPolicy) *Error {
	minLen := policy.MinLength
	if minLen <= 0 {
		minLen = 6
	}
	if len(pw) < minLen {
		return &Error{Status: http.StatusBadRequest, Message: "Password must be at least " + strconv.Itoa(minLen) + " characters long"}
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if policy.RequireUppercase && !upper {
		return fail("Password must contain at least one uppercase letter")
	}
	if policy.RequireLowercase && !lower {
		return fail("Password must contain at least one lowercase letter")
	}
	if policy.RequireDigit && !digit {
		return fail("Password must contain at least one number")
	}
	return nil
}

// ---------------------------
// Hotel
// ---------------------------

type HotelInput struct {
	Name          string
	Location      string
	PricePerNight *float64
	Rating        *float64
}

func Hotel(in HotelInput) *Error {
	if blank(in.Name) || blank(in.Location) || in.PricePerNight == nil {
		return fail("Name, location and price are required")
	}
	if *in.PricePerNight <= 0 {
		return fail("Price must be a positive number")
	}
	return rating(in.Rating)
}

// HotelPatch checks only the fields a partial update actually sets.
func HotelPatch(name, location *string, price, rate *float64) *Error {
	if name != nil && blank(*name) {
		return fail("Name cannot be empty")
	}
	if location != nil && blank(*location) {
		return fail("Location cannot be empty")
	}
	if price != nil && *price <= 0 {
		return fail("Price must be a positive number")
	}
	return rating(rate)
}

func rating(r *float64) *Error {
	if r != nil && (*r < 0 || *r > 5) {
		return fail("Rating must be between 0 and 5")
	}
	return nil
}

// ---------------------------
// Booking
// ---------------------------

type BookingInput struct {
	HotelID        uint
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	CheckInDate    string
	CheckOutDate   string
	NumberOfGuests *float64
	TotalPrice     *float64
}

// BookingDates is the parsed, already-valid date range of a booking.
type BookingDates struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Booking validates a booking payload against the calendar day of now.
func Booking(in BookingInput, now time.Time) (BookingDates, *Error) {
	if in.HotelID == 0 || blank(in.GuestName) || blank(in.GuestEmail) || blank(in.GuestPhone) ||
		blank(in.CheckInDate) || blank(in.CheckOutDate) || in.NumberOfGuests == nil || in.TotalPrice == nil {
		return BookingDates{}, fail("All booking fields are required")
	}
	if !ValidEmail(in.GuestEmail) {
		return BookingDates{}, fail("Please provide a valid email address")
	}
	if !ValidPhone(in.GuestPhone) {
		return BookingDates{}, fail("Please provide a valid phone number")
	}

	checkIn, err := ParseDate(in.CheckInDate)
	if err != nil {
		return BookingDates{}, fail("Invalid check-in date")
	}
	if checkIn.Before(StartOfDay(now)) {
		return BookingDates{}, fail("Check-in date cannot be in the past")
	}
	checkOut, err := ParseDate(in.CheckOutDate)
	if err != nil {
		return BookingDates{}, fail("Invalid check-out date")
	}
	if !checkOut.After(checkIn) {
		return BookingDates{}, fail("Check-out date must be after check-in date")
	}

	guests := *in.NumberOfGuests
	if guests < 1 || guests != float64(int64(guests)) {
		return BookingDates{}, fail("Number of guests must be a positive integer")
	}
	if *in.TotalPrice <= 0 {
		return BookingDates{}, fail("Total price must be a positive number")
	}
	return BookingDates{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// ParseDate accepts a plain calendar date or a full RFC 3339 timestamp and
// returns midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// StartOfDay zeroes the time of day, keeping the calendar date of t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ---------------------------
// Review
// ---------------------------

const MaxCommentLength = 1000

func Review(rate *float64, comment string) *Error {
	if rate == nil || *rate != float64(int64(*rate)) || *rate < 1 || *rate > 5 {
		return fail("Rating must be an integer between 1 and 5")
	}
	if len([]rune(comment)) > MaxCommentLength {
		return fail("Comment cannot exceed 1000 characters")
	}
	return nil
}

// ---------------------------
// Product
// ---------------------------

func Product(name string, price *float64) *Error {
	if blank(name) || price == nil {
		return fail("Product name and price are required")
	}
	if *price <= 0 {
		return fail("Price must be a positive number")
	}
	return nil
}

func ProductPatch(name *string, price *float64) *Error {
	if name != nil && blank(*name) {
		return fail("Product name cannot be empty")
	}
	if price != nil && *price <= 0 {
		return fail("Price must be a positive number")
	}
	return nil
}

// ---------------------------
// Pagination
// ---------------------------

type Page struct {
	Page  int
	Limit int
}

// Offset is zero when no pagination was requested.
func (p Page) Offset() int {
	if p.Page <= 1 || p.Limit == 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pagination parses the optional page and limit query values. A zero Limit in
// the result means "no limit".
func Pagination(page, limit string, maxLimit int) (Page, *Error) {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	var out Page
	if page != "" {
		n, ok := positiveInt(page)
		if !ok {
			return Page{}, fail("Page must be a positive integer")
		}
		out.Page = n
	}
	if limit != "" {
		n, ok := positiveInt(limit)
		if !ok {
			return Page{}, fail("Limit must be a positive integer")
		}
		if n > maxLimit {
			return Page{}, fail("Limit cannot exceed " + strconv.Itoa(maxLimit))
		}
		out.Limit = n
	}
	if out.Page > 0 && out.Limit == 0 {
		out.Limit = 10
	}
	return out, nil
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
