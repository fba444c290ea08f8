package validation

import (
	"net/http"
	"regexp"
)

// The denylist is a blunt heuristic. It rejects payloads that look like
// script or SQL injection attempts; it does not prove anything is safe.
// Parameterized queries in the store layer are the actual boundary.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*script[^>]*>[\s\S]*?<\s*/\s*script\s*>`),
	regexp.MustCompile(`(?i)<\s*script\b`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
	regexp.MustCompile(`(?i)'\s*or\s+'?\d+'?\s*=\s*'?\d+`),
	regexp.MustCompile(`(?i)\bor\s+1\s*=\s*1\b`),
	regexp.MustCompile(`(?i)\bunion\s+(all\s+)?select\b`),
	regexp.MustCompile(`(?i)\bdrop\s+table\b`),
	regexp.MustCompile(`(?i);\s*(delete|insert|update)\s+`),
	regexp.MustCompile(`'\s*--`),
}

const UnsafeInputMessage = "Input contains potentially unsafe content"

func IsUnsafe(s string) bool {
	for _, re := range unsafePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// CheckUnsafe fails on the first value matching the denylist.
func CheckUnsafe(values ...string) *Error {
	for _, v := range values {
		if IsUnsafe(v) {
			return &Error{Status: http.StatusBadRequest, Message: UnsafeInputMessage}
		}
	}
	return nil
}
