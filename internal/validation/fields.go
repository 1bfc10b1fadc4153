// Package validation checks CV field formats and export readiness.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldViolation describes one failed check on a named field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field violations for one document or request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, v.Field, v.Message))
	}
	return sb.String()
}

// ValidateEmail checks email format. Empty values pass; presence is an
// export-readiness concern, not a format one.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// ValidatePhone checks that a phone number has 7 to 15 digits after common
// punctuation is removed. Empty values pass.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	stripped := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "", ".", "").Replace(phone)
	if len(stripped) != len(cleaned) {
		return fmt.Errorf("phone number contains invalid characters: %s", phone)
	}
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return fmt.Errorf("phone number must have 7 to 15 digits: %s", phone)
	}
	return nil
}

// ValidateLinkedIn checks a LinkedIn profile reference. Both full URLs and
// bare handles like "linkedin.com/in/ada" are accepted. Empty values pass.
func ValidateLinkedIn(value string) error {
	if value == "" {
		return nil
	}
	if !strings.Contains(strings.ToLower(value), "linkedin.com") {
		return fmt.Errorf("linkedin must reference linkedin.com: %s", value)
	}
	return validateProfileURL(value, "linkedin")
}

// ValidateGitHub checks a GitHub profile reference. Empty values pass.
func ValidateGitHub(value string) error {
	if value == "" {
		return nil
	}
	if !strings.Contains(strings.ToLower(value), "github.com") {
		return fmt.Errorf("github must reference github.com: %s", value)
	}
	return validateProfileURL(value, "github")
}

func validateProfileURL(value, field string) error {
	candidate := value
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	if err := validate.Var(candidate, "url"); err != nil {
		return fmt.Errorf("invalid %s URL: %s", field, value)
	}
	return nil
}
