package validation

import (
	"team-management.backend/internal/domain/entities"
	domainerrors "team-management.backend/internal/domain/errors"
)

// Messages reported for rejected phone numbers.
// The length message keeps its historical "10" although the enforced minimum is 8.
const (
	MsgPhoneDigitsOnly = "Phone number should contain only digits."
	MsgPhoneLength     = "Phone number must be between 10 and 15 digits."
)

// ValidatePhoneNumber accepts strings of 8 to 15 ASCII digits (E.164 caps numbers at 15).
// The digits-only rule is checked first; the empty string fails it.
func ValidatePhoneNumber(value string) error {
	field := entities.TeamMemberSchema.PhoneNumber.Name
	if !isDigits(value) {
		return domainerrors.NewValidationError(field, MsgPhoneDigitsOnly)
	}
	n := len(value)
	if n < entities.TeamMemberSchema.PhoneMinDigits || n > entities.TeamMemberSchema.PhoneMaxDigits {
		return domainerrors.NewValidationError(field, MsgPhoneLength)
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
