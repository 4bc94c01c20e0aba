package signup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Validation error types surfaced to clients so they can show targeted
// field-level messages.
const (
	ErrTypeLength            = "length"
	ErrTypeNumbers           = "numbers"
	ErrTypeSpecialCharacters = "special-characters"
	ErrTypeFormat            = "format"
	ErrTypeMissingAt         = "missing-at"
	ErrTypeInvalidLocal      = "invalid-local"
	ErrTypeInvalidDomain     = "invalid-domain"
)

// ValidationError describes why a single form field was rejected.
type ValidationError struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	digitRe        = regexp.MustCompile(`\d`)
	lettersSpaceRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	localPartRe    = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	localEdgeRe    = regexp.MustCompile(`^[._-]|[._-]$`)
	domainCharsRe  = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)
	domainEdgeRe   = regexp.MustCompile(`^[.-]|[.-]$`)
	domainLabelRe  = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	tldRe          = regexp.MustCompile(`^[a-zA-Z]+$`)
	letterRe       = regexp.MustCompile(`[a-zA-Z]`)
	passSymbolRe   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	nonDigitRe     = regexp.MustCompile(`\D`)
)

// ValidateName accepts display names made of letters and spaces with at
// least two letters once spaces are stripped.
func ValidateName(name string) *ValidationError {
	trimmed := strings.TrimSpace(name)

	if len(trimmed) < 2 {
		return &ValidationError{Field: "name", Type: ErrTypeLength, Message: "Name must be at least 2 characters long"}
	}
	if digitRe.MatchString(trimmed) {
		return &ValidationError{Field: "name", Type: ErrTypeNumbers, Message: "Name cannot contain numbers"}
	}
	if !lettersSpaceRe.MatchString(trimmed) {
		return &ValidationError{Field: "name", Type: ErrTypeSpecialCharacters, Message: "Name cannot contain special characters"}
	}
	lettersOnly := strings.ReplaceAll(trimmed, " ", "")
	if len(lettersOnly) < 2 {
		return &ValidationError{Field: "name", Type: ErrTypeLength, Message: "Name must be at least 2 characters long"}
	}
	return nil
}

// ValidatePhone requires at least ten digits once formatting characters are
// stripped.
func ValidatePhone(phone string) *ValidationError {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		return &ValidationError{Field: "phone", Type: ErrTypeLength, Message: "Phone number must have at least 10 digits"}
	}
	return nil
}

// ValidateEmail checks the local and domain parts separately so the error
// type tells the client which half is wrong.
func ValidateEmail(email string) *ValidationError {
	trimmed := strings.TrimSpace(email)

	if len(trimmed) < 3 {
		return &ValidationError{Field: "email", Type: ErrTypeFormat, Message: "Email is too short"}
	}
	if !strings.Contains(trimmed, "@") {
		return &ValidationError{Field: "email", Type: ErrTypeMissingAt, Message: "Email must contain an @ symbol"}
	}

	parts := strings.Split(trimmed, "@")
	if len(parts) != 2 {
		return &ValidationError{Field: "email", Type: ErrTypeFormat, Message: "Email must contain exactly one @ symbol"}
	}
	local, domain := parts[0], parts[1]

	invalidLocal := &ValidationError{Field: "email", Type: ErrTypeInvalidLocal, Message: "The part before @ is invalid"}
	if local == "" || !localPartRe.MatchString(local) {
		return invalidLocal
	}
	if strings.Contains(local, "..") || localEdgeRe.MatchString(local) {
		return invalidLocal
	}

	invalidDomain := &ValidationError{Field: "email", Type: ErrTypeInvalidDomain, Message: "The part after @ is invalid"}
	if len(domain) < 3 || !strings.Contains(domain, ".") {
		return invalidDomain
	}
	if !domainCharsRe.MatchString(domain) || strings.Contains(domain, "..") || domainEdgeRe.MatchString(domain) {
		return invalidDomain
	}

	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" || !domainLabelRe.MatchString(label) {
			return invalidDomain
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 || !tldRe.MatchString(tld) {
		return invalidDomain
	}
	return nil
}

// NormalizeUsername forces the leading @ marker and strips any @ typed into
// the body, mirroring the input mask on the client.
func NormalizeUsername(input string) string {
	if input == "" {
		return "@"
	}
	if !strings.HasPrefix(input, "@") {
		return "@" + strings.ReplaceAll(input, "@", "")
	}
	return "@" + strings.ReplaceAll(input[1:], "@", "")
}

// UsernameBackspaceAllowed reports whether a backspace may be applied. The
// leading @ is not deletable.
func UsernameBackspaceAllowed(current string) bool {
	return len(current) > 1
}

// ValidateUsername requires the @ marker plus at least four characters
// after it.
func ValidateUsername(username string) *ValidationError {
	if !strings.HasPrefix(username, "@") || len(username) < 5 {
		return &ValidationError{
			Field:   "username",
			Type:    ErrTypeLength,
			Message: "Username must have at least 4 characters after the @ symbol",
		}
	}
	return nil
}

// PasswordStrength reports which password rules the candidate satisfies.
type PasswordStrength struct {
	HasMinLength   bool `json:"hasMinLength"`
	HasLetter      bool `json:"hasLetter"`
	HasNumber      bool `json:"hasNumber"`
	HasSpecialChar bool `json:"hasSpecialChar"`
}

func (s PasswordStrength) Valid() bool {
	return s.HasMinLength && s.HasLetter && s.HasNumber && s.HasSpecialChar
}

func CheckPassword(password string) PasswordStrength {
	return PasswordStrength{
		HasMinLength:   len(password) >= 8,
		HasLetter:      letterRe.MatchString(password),
		HasNumber:      digitRe.MatchString(password),
		HasSpecialChar: passSymbolRe.MatchString(password),
	}
}

// ValidatePassword requires eight characters with a letter, a number and a
// special character.
func ValidatePassword(password string) *ValidationError {
	if !CheckPassword(password).Valid() {
		return &ValidationError{
			Field:   "password",
			Type:    ErrTypeFormat,
			Message: "Password must be at least 8 characters with a letter, a number and a special character",
		}
	}
	return nil
}

// FormatPhoneE164 normalizes user phone input to E.164. Bare ten-digit
// numbers are treated as North American.
func FormatPhoneE164(raw string) (string, error) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) == 10 {
		return "+1" + digits, nil
	}

	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return "", fmt.Errorf("invalid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
