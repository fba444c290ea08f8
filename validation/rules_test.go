package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(f float64) *float64 { return &f }

func TestBooking_FirstFailureWins(t *testing.T) {
	now := time.Date(2030, 6, 1, 23, 59, 0, 0, time.UTC)
	base := BookingInput{
		HotelID: 1, GuestName: "Hari", GuestEmail: "hari@example.com", GuestPhone: "9800000000",
		CheckInDate: "2030-06-01", CheckOutDate: "2030-06-03",
		NumberOfGuests: fp(2), TotalPrice: fp(100),
	}

	dates, err := Booking(base, now)
	require.Nil(t, err)
	assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), dates.CheckIn)
	assert.Equal(t, time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC), dates.CheckOut)

	// bad email and bad dates together: the email rule comes first
	in := base
	in.GuestEmail = "hari"
	in.CheckInDate = "2020-01-01"
	_, err = Booking(in, now)
	require.NotNil(t, err)
	assert.Equal(t, "Please provide a valid email address", err.Message)

	in = base
	in.CheckInDate = "01/06/2030"
	_, err = Booking(in, now)
	assert.Equal(t, "Invalid check-in date", err.Message)

	in = base
	in.CheckOutDate = "2030-05-31"
	_, err = Booking(in, now)
	assert.Equal(t, "Check-out date must be after check-in date", err.Message)

	in = base
	in.NumberOfGuests = fp(0)
	_, err = Booking(in, now)
	assert.Equal(t, "Number of guests must be a positive integer", err.Message)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2030-06-01T18:45:00+05:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}

func TestPassword_Policy(t *testing.T) {
	relaxed := PasswordPolicy{MinLength: 4}
	assert.Nil(t, Password("abcd", relaxed))
	assert.NotNil(t, Password("abc", relaxed))

	strict := DefaultPasswordPolicy()
	assert.Equal(t, "Password must contain at least one lowercase letter", Password("SECRET1", strict).Message)
	assert.Equal(t, "Password must contain at least one number", Password("Secrets", strict).Message)
	assert.Nil(t, Password("Secret1", strict))
}

func TestReview(t *testing.T) {
	assert.Nil(t, Review(fp(5), "Lovely view of Phewa lake"))
	assert.NotNil(t, Review(nil, ""))
	assert.NotNil(t, Review(fp(0), ""))
	assert.NotNil(t, Review(fp(4.5), ""))

	long := make([]rune, MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Equal(t, "Comment cannot exceed 1000 characters", Review(fp(3), string(long)).Message)
}

func TestPagination(t *testing.T) {
	p, err := Pagination("", "", 100)
	require.Nil(t, err)
	assert.Equal(t, Page{}, p)

	p, err = Pagination("3", "", 100)
	require.Nil(t, err)
	assert.Equal(t, Page{Page: 3, Limit: 10}, p)
	assert.Equal(t, 20, p.Offset())

	_, err = Pagination("0", "", 100)
	assert.Equal(t, "Page must be a positive integer", err.Message)

	_, err = Pagination("1", "500", 100)
	assert.Equal(t, "Limit cannot exceed 100", err.Message)
}

func TestProduct(t *testing.T) {
	assert.Nil(t, Product("Tea", fp(2)))
	assert.Equal(t, "Product name and price are required", Product(" ", fp(2)).Message)
	assert.Equal(t, "Price must be a positive number", Product("Tea", fp(0)).Message)

	empty := ""
	assert.NotNil(t, ProductPatch(&empty, nil))
	assert.Nil(t, ProductPatch(nil, nil))
}

func TestProfilePatch(t *testing.T) {
	policy := DefaultPasswordPolicy()
	empty, bad, weak, good := " ", "call me", "short", "Namaste123"

	assert.Nil(t, ProfilePatch(nil, nil, nil, policy))
	assert.Equal(t, "First name cannot be empty", ProfilePatch(&empty, nil, nil, policy).Message)
	assert.Equal(t, "Please provide a valid phone number", ProfilePatch(nil, &bad, nil, policy).Message)
	assert.Nil(t, ProfilePatch(nil, &empty, nil, policy), "blank phone clears it")
	assert.NotNil(t, ProfilePatch(nil, nil, &weak, policy))
	assert.Nil(t, ProfilePatch(nil, nil, &good, policy))
}
