package signup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	created []Registration
	err     error
}

func (f *fakeCreator) CreateAccount(ctx context.Context, reg Registration) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, reg)
	return nil
}

func filledWizard(creator AccountCreator) *Wizard {
	w := NewWizard(creator)
	w.Open()
	w.SetName("Jane Doe")
	w.SetPhone("(604) 555-0199")
	w.SetMonth("March")
	w.SetDay("14")
	w.SetYear("1998")
	return w
}

func TestWizardHappyPath(t *testing.T) {
	creator := &fakeCreator{}
	w := filledWizard(creator)

	require.Equal(t, StepAccountInfo, w.Step())
	require.NoError(t, w.Next())
	require.Equal(t, StepUsername, w.Step())

	w.InputUsername("janedoe")
	require.NoError(t, w.Next())
	require.Equal(t, StepPassword, w.Step())

	require.NoError(t, w.SubmitPassword(context.Background(), "Str0ng!pass", true))
	require.Equal(t, StepWelcome, w.Step())

	require.NoError(t, w.Finish())
	assert.Equal(t, StepClosed, w.Step())

	require.Len(t, creator.created, 1)
	reg := creator.created[0]
	assert.Equal(t, "Jane Doe", reg.Name)
	assert.Equal(t, "@janedoe", reg.Username)
	assert.Equal(t, "+16045550199", reg.Phone)
	assert.Empty(t, reg.Email)
	assert.Equal(t, 1998, reg.DateOfBirth.Year())
}

func TestWizardBackPreservesData(t *testing.T) {
	w := filledWizard(&fakeCreator{})
	require.NoError(t, w.Next())
	w.InputUsername("janedoe")
	require.NoError(t, w.Next())

	require.NoError(t, w.Back())
	require.Equal(t, StepUsername, w.Step())
	require.NoError(t, w.Back())
	require.Equal(t, StepAccountInfo, w.Step())

	form := w.Form()
	assert.Equal(t, "Jane Doe", form.Name)
	assert.Equal(t, "(604) 555-0199", form.Phone)
	assert.Equal(t, "March", form.Month)
	assert.Equal(t, "@janedoe", form.Username)
}

func TestWizardMonthChangeClearsDayAndYear(t *testing.T) {
	w := filledWizard(&fakeCreator{})

	w.SetMonth("June")
	form := w.Form()
	assert.Equal(t, "June", form.Month)
	assert.Empty(t, form.Day)
	assert.Empty(t, form.Year)
}

func TestWizardDayChangeClearsYear(t *testing.T) {
	w := filledWizard(&fakeCreator{})

	w.SetDay("20")
	form := w.Form()
	assert.Equal(t, "March", form.Month)
	assert.Equal(t, "20", form.Day)
	assert.Empty(t, form.Year)
}

func TestWizardToggleContactMethodClearsBothFields(t *testing.T) {
	w := filledWizard(&fakeCreator{})
	w.SetEmail("jane@example.com")

	w.ToggleContactMethod()
	form := w.Form()
	assert.True(t, form.UseEmail)
	assert.Empty(t, form.Phone)
	assert.Empty(t, form.Email)

	w.ToggleContactMethod()
	assert.False(t, w.Form().UseEmail)
}

func TestWizardValidatesAccountInfo(t *testing.T) {
	w := NewWizard(&fakeCreator{})
	w.Open()

	w.SetName("A1")
	err := w.Next()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, ErrTypeNumbers, vErr.Type)
	assert.Equal(t, StepAccountInfo, w.Step())

	w.SetName("Jane Doe")
	w.SetPhone("555")
	err = w.Next()
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone", vErr.Field)

	w.SetPhone("6045550199")
	err = w.Next()
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dateOfBirth", vErr.Field)
}

func TestWizardRejectsImpossibleDate(t *testing.T) {
	w := NewWizard(&fakeCreator{})
	w.Open()
	w.SetName("Jane Doe")
	w.SetPhone("6045550199")
	w.SetMonth("June")
	w.SetDay("31")
	w.SetYear("1998")

	err := w.Next()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dateOfBirth", vErr.Field)
}

func TestWizardShortUsernameRejected(t *testing.T) {
	w := filledWizard(&fakeCreator{})
	require.NoError(t, w.Next())

	w.InputUsername("abc")
	err := w.Next()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)

	w.InputUsername("abcd")
	assert.NoError(t, w.Next())
}

func TestWizardPasswordStepRequirements(t *testing.T) {
	w := filledWizard(&fakeCreator{})
	require.NoError(t, w.Next())
	w.InputUsername("janedoe")
	require.NoError(t, w.Next())

	err := w.SubmitPassword(context.Background(), "Str0ng!pass", false)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "terms", vErr.Field)

	err = w.SubmitPassword(context.Background(), "weakpass", true)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password", vErr.Field)
	assert.Equal(t, StepPassword, w.Step())
}

func TestWizardAlreadyRegisteredFlagsSwitchToLogin(t *testing.T) {
	creator := &fakeCreator{err: ErrAlreadyRegistered}
	w := filledWizard(creator)
	require.NoError(t, w.Next())
	w.InputUsername("janedoe")
	require.NoError(t, w.Next())

	err := w.SubmitPassword(context.Background(), "Str0ng!pass", true)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.True(t, w.SwitchToLogin())
	// Session stays on the password step so the client can offer login.
	assert.Equal(t, StepPassword, w.Step())
}

func TestWizardCloseWipesEverything(t *testing.T) {
	w := filledWizard(&fakeCreator{})
	require.NoError(t, w.Next())
	w.InputUsername("janedoe")

	w.Close()
	assert.Equal(t, StepClosed, w.Step())
	assert.Equal(t, FormState{}, w.Form())
	assert.False(t, w.SwitchToLogin())
}

func TestWizardInvalidTransitions(t *testing.T) {
	w := NewWizard(&fakeCreator{})

	assert.True(t, errors.Is(w.Next(), ErrInvalidTransition))
	assert.True(t, errors.Is(w.Back(), ErrInvalidTransition))
	assert.True(t, errors.Is(w.Finish(), ErrInvalidTransition))

	w.Open()
	assert.True(t, errors.Is(w.Back(), ErrInvalidTransition))
	assert.True(t, errors.Is(w.SubmitPassword(context.Background(), "x", true), ErrInvalidTransition))
}
