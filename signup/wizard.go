package signup

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Step identifies a screen in the sign-up flow.
type Step string

const (
	StepClosed      Step = "closed"
	StepAccountInfo Step = "account_info"
	StepUsername    Step = "username"
	StepPassword    Step = "password"
	StepWelcome     Step = "welcome"
)

// forwardSteps and backwardSteps are the only legal transitions. Anything
// not in the tables is rejected.
var forwardSteps = map[Step]Step{
	StepAccountInfo: StepUsername,
	StepUsername:    StepPassword,
	StepPassword:    StepWelcome,
	StepWelcome:     StepClosed,
}

var backwardSteps = map[Step]Step{
	StepUsername: StepAccountInfo,
	StepPassword: StepUsername,
}

// ErrAlreadyRegistered is returned by an AccountCreator when the chosen
// email, phone or username is taken.
var ErrAlreadyRegistered = errors.New("user already registered")

// ErrInvalidTransition is returned for a step change the tables do not allow.
var ErrInvalidTransition = errors.New("invalid step transition")

// Registration is the finished output of the wizard, ready for account
// creation.
type Registration struct {
	Name        string
	Email       string
	Phone       string
	Username    string
	Password    string
	DateOfBirth time.Time
}

// AccountCreator persists a completed registration. Implementations return
// ErrAlreadyRegistered (possibly wrapped) when the identity is taken.
type AccountCreator interface {
	CreateAccount(ctx context.Context, reg Registration) error
}

// FormState holds everything the user has entered so far. Backward
// navigation keeps it intact; only Close wipes it.
type FormState struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Month    string `json:"month"`
	Day      string `json:"day"`
	Year     string `json:"year"`
	Username string `json:"username"`
	UseEmail bool   `json:"useEmail"`
}

// Wizard drives one user's sign-up session through the account info,
// username, password and welcome steps. It is not safe for concurrent use;
// callers serialize access per session.
type Wizard struct {
	step          Step
	form          FormState
	creator       AccountCreator
	switchToLogin bool
}

func NewWizard(creator AccountCreator) *Wizard {
	return &Wizard{step: StepClosed, creator: creator}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Form() FormState { return w.form }

func (w *Wizard) SwitchToLogin() bool { return w.switchToLogin }

// Open starts (or restarts) the flow at the account info step with a blank
// form.
func (w *Wizard) Open() {
	w.form = FormState{}
	w.switchToLogin = false
	w.step = StepAccountInfo
}

// Close abandons the flow from any step and wipes all entered data.
func (w *Wizard) Close() {
	w.form = FormState{}
	w.switchToLogin = false
	w.step = StepClosed
}

func (w *Wizard) SetName(name string) {
	w.form.Name = name
}

func (w *Wizard) SetPhone(phone string) {
	w.form.Phone = phone
}

func (w *Wizard) SetEmail(email string) {
	w.form.Email = email
}

// SetMonth clears the dependent day and year selections so a stale
// February 30th can never be assembled.
func (w *Wizard) SetMonth(month string) {
	w.form.Month = month
	w.form.Day = ""
	w.form.Year = ""
}

// SetDay clears the dependent year selection.
func (w *Wizard) SetDay(day string) {
	w.form.Day = day
	w.form.Year = ""
}

func (w *Wizard) SetYear(year string) {
	w.form.Year = year
}

// ToggleContactMethod flips between phone and email sign-up and clears both
// fields so no half-entered value crosses over.
func (w *Wizard) ToggleContactMethod() {
	w.form.UseEmail = !w.form.UseEmail
	w.form.Phone = ""
	w.form.Email = ""
}

// InputUsername applies the @-mask to raw input and stores the result.
func (w *Wizard) InputUsername(input string) {
	w.form.Username = NormalizeUsername(input)
}

// Next validates the current step and advances. The password and welcome
// steps have their own exits (SubmitPassword, Finish).
func (w *Wizard) Next() error {
	switch w.step {
	case StepAccountInfo:
		if err := w.validateAccountInfo(); err != nil {
			return err
		}
	case StepUsername:
		if err := ValidateUsername(w.form.Username); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: cannot advance from %s", ErrInvalidTransition, w.step)
	}
	w.step = forwardSteps[w.step]
	return nil
}

// Back returns to the previous step without touching the form, so data
// survives backward navigation.
func (w *Wizard) Back() error {
	prev, ok := backwardSteps[w.step]
	if !ok {
		return fmt.Errorf("%w: cannot go back from %s", ErrInvalidTransition, w.step)
	}
	w.step = prev
	return nil
}

// SubmitPassword finishes the flow: it validates the password and the terms
// checkbox, then attempts account creation. A taken identity flips the
// switch-to-login flag instead of erroring the session away.
func (w *Wizard) SubmitPassword(ctx context.Context, password string, termsAccepted bool) error {
	if w.step != StepPassword {
		return fmt.Errorf("%w: cannot submit password from %s", ErrInvalidTransition, w.step)
	}
	if !termsAccepted {
		return &ValidationError{Field: "terms", Type: ErrTypeFormat, Message: "You must accept the terms to continue"}
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	reg := Registration{
		Name:     w.form.Name,
		Username: w.form.Username,
		Password: password,
	}
	if w.form.UseEmail {
		reg.Email = w.form.Email
	} else {
		formatted, err := FormatPhoneE164(w.form.Phone)
		if err != nil {
			return &ValidationError{Field: "phone", Type: ErrTypeFormat, Message: "Phone number could not be normalized"}
		}
		reg.Phone = formatted
	}
	dob, err := w.dateOfBirth()
	if err != nil {
		return &ValidationError{Field: "dateOfBirth", Type: ErrTypeFormat, Message: "Date of birth is not a valid date"}
	}
	reg.DateOfBirth = dob

	if err := w.creator.CreateAccount(ctx, reg); err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			w.switchToLogin = true
		}
		return err
	}

	w.step = StepWelcome
	return nil
}

// Finish acknowledges the welcome screen and closes the session.
func (w *Wizard) Finish() error {
	if w.step != StepWelcome {
		return fmt.Errorf("%w: cannot finish from %s", ErrInvalidTransition, w.step)
	}
	w.Close()
	return nil
}

func (w *Wizard) validateAccountInfo() error {
	if err := ValidateName(w.form.Name); err != nil {
		return err
	}
	if w.form.UseEmail {
		if err := ValidateEmail(w.form.Email); err != nil {
			return err
		}
	} else {
		if err := ValidatePhone(w.form.Phone); err != nil {
			return err
		}
	}
	if w.form.Month == "" || w.form.Day == "" || w.form.Year == "" {
		return &ValidationError{Field: "dateOfBirth", Type: ErrTypeFormat, Message: "Date of birth is incomplete"}
	}
	if _, err := w.dateOfBirth(); err != nil {
		return &ValidationError{Field: "dateOfBirth", Type: ErrTypeFormat, Message: "Date of birth is not a valid date"}
	}
	return nil
}

var monthsByName = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

func (w *Wizard) dateOfBirth() (time.Time, error) {
	month, ok := monthsByName[w.form.Month]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", w.form.Month)
	}
	var day, year int
	if _, err := fmt.Sscanf(w.form.Day, "%d", &day); err != nil {
		return time.Time{}, err
	}
	if _, err := fmt.Sscanf(w.form.Year, "%d", &year); err != nil {
		return time.Time{}, err
	}

	dob := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (June 31 becomes July 1); reject that.
	if dob.Day() != day || dob.Month() != month || dob.Year() != year {
		return time.Time{}, fmt.Errorf("nonexistent calendar date")
	}
	return dob, nil
}
