package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var roleAllowed = map[string]bool{
	"":         true, // role is optional
	"admin":    true,
	"manager":  true,
	"employee": true,
	"partner":  true,
	"client":   true,
}

// ValidateSenderRole checks the sender role against the known set.
// Unknown roles are not an error for the pipeline (they map to the
// neutral tone) but the API rejects obviously bogus values early.
func ValidateSenderRole(role string) error {
	if !roleAllowed[strings.ToLower(strings.TrimSpace(role))] {
		return fmt.Errorf("invalid sender role: %s (allowed: admin, manager, employee, partner, client)", role)
	}
	return nil
}

var messageIDPattern = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)

// ValidateMessageID validates record ID format (uuid).
func ValidateMessageID(id string) error {
	if id == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if !messageIDPattern.MatchString(strings.ToLower(id)) {
		return fmt.Errorf("invalid message ID format")
	}
	return nil
}

// SanitizeString removes null bytes and control characters.
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit clamps the pagination limit.
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
