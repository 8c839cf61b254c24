package validation

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"team-management.backend/internal/domain/entities"
	domainerrors "team-management.backend/internal/domain/errors"
)

const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email address."

	// MsgInvalidChoice takes the rejected value
	MsgInvalidChoice = "%q is not a valid choice."
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateTeamMember checks a member against TeamMemberSchema before it is written.
// Fields are checked in schema order and the first failure is returned as a
// *errors.ValidationError. Callers must not persist the member when this returns an error.
func ValidateTeamMember(m *entities.TeamMember) error {
	s := entities.TeamMemberSchema

	if err := checkText(s.FirstName, m.FirstName); err != nil {
		return err
	}
	if err := checkText(s.LastName, m.LastName); err != nil {
		return err
	}
	// ValidatePhoneNumber owns the length bound so over-long numbers get its message.
	if s.PhoneNumber.Required && m.PhoneNumber == "" {
		return domainerrors.NewValidationError(s.PhoneNumber.Name, MsgRequired)
	}
	if err := ValidatePhoneNumber(m.PhoneNumber); err != nil {
		return err
	}
	if err := checkText(s.Email, m.Email); err != nil {
		return err
	}
	if err := getValidator().Var(m.Email, "email"); err != nil {
		return domainerrors.NewValidationError(s.Email.Name, MsgInvalidEmail)
	}
	if !m.Role.IsValid() {
		return domainerrors.NewValidationError(s.Role.Name, fmt.Sprintf(MsgInvalidChoice, string(m.Role)))
	}
	return nil
}

func checkText(spec entities.FieldSpec, value string) error {
	if spec.Required && value == "" {
		return domainerrors.NewValidationError(spec.Name, MsgRequired)
	}
	if spec.MaxLength > 0 && utf8.RuneCountInString(value) > spec.MaxLength {
		return domainerrors.NewValidationError(spec.Name,
			fmt.Sprintf("Ensure this field has no more than %d characters.", spec.MaxLength))
	}
	return nil
}
