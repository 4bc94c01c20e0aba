package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string
	}{
		{"valid simple", "Jane", ""},
		{"valid with spaces", "  Jane Doe  ", ""},
		{"too short", "J", ErrTypeLength},
		{"empty", "", ErrTypeLength},
		{"contains digits", "A1", ErrTypeNumbers},
		{"contains symbols", "Jane!", ErrTypeSpecialCharacters},
		{"spaces only around one letter", " J ", ErrTypeLength},
		{"two letters split by space", "J D", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantType == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, "name", err.Field)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType string
	}{
		{"valid", "user@example.com", ""},
		{"valid with dots", "first.last@mail.example.co", ""},
		{"too short", "a@", ErrTypeFormat},
		{"no at", "userexample.com", ErrTypeMissingAt},
		{"two ats", "a@b@c.com", ErrTypeFormat},
		{"local starts with dot", ".user@example.com", ErrTypeInvalidLocal},
		{"local consecutive dots", "us..er@example.com", ErrTypeInvalidLocal},
		{"local bad characters", "us er@example.com", ErrTypeInvalidLocal},
		{"domain too short", "user@bc", ErrTypeInvalidDomain},
		{"domain without dot", "user@example", ErrTypeInvalidDomain},
		{"domain leading dash", "user@-example.com", ErrTypeInvalidDomain},
		{"numeric tld", "user@example.123", ErrTypeInvalidDomain},
		{"one letter tld", "user@example.c", ErrTypeInvalidDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if tt.wantType == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantType, err.Type)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.Nil(t, ValidatePhone("6045550199"))
	assert.Nil(t, ValidatePhone("(604) 555-0199"))
	assert.Nil(t, ValidatePhone("+1 604 555 0199"))
	assert.NotNil(t, ValidatePhone("555-0199"))
	assert.NotNil(t, ValidatePhone(""))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "@", NormalizeUsername(""))
	assert.Equal(t, "@jane", NormalizeUsername("jane"))
	assert.Equal(t, "@jane", NormalizeUsername("@jane"))
	// Stray @ in the body is stripped.
	assert.Equal(t, "@jane", NormalizeUsername("ja@ne"))
	assert.Equal(t, "@jane", NormalizeUsername("@ja@ne"))
}

func TestUsernameBackspaceAllowed(t *testing.T) {
	// The leading @ marker is not deletable.
	assert.False(t, UsernameBackspaceAllowed("@"))
	assert.True(t, UsernameBackspaceAllowed("@j"))
}

func TestValidateUsername(t *testing.T) {
	assert.NotNil(t, ValidateUsername("@abc"))
	assert.Nil(t, ValidateUsername("@abcd"))
	assert.Nil(t, ValidateUsername("@jane_doe"))
	assert.NotNil(t, ValidateUsername("jane_doe"))
	assert.NotNil(t, ValidateUsername("@"))
}

func TestCheckPassword(t *testing.T) {
	s := CheckPassword("abc123!x")
	assert.True(t, s.Valid())

	s = CheckPassword("abc12345")
	assert.False(t, s.Valid())
	assert.True(t, s.HasMinLength)
	assert.True(t, s.HasLetter)
	assert.True(t, s.HasNumber)
	assert.False(t, s.HasSpecialChar)

	s = CheckPassword("ab1!")
	assert.False(t, s.HasMinLength)

	s = CheckPassword("12345678!")
	assert.False(t, s.HasLetter)

	assert.Nil(t, ValidatePassword("Str0ng!pass"))
	assert.NotNil(t, ValidatePassword("weakpass"))
}

func TestFormatPhoneE164(t *testing.T) {
	t.Run("bare ten digits default to North America", func(t *testing.T) {
		got, err := FormatPhoneE164("6045550199")
		require.NoError(t, err)
		assert.Equal(t, "+16045550199", got)
	})

	t.Run("formatting characters are ignored", func(t *testing.T) {
		got, err := FormatPhoneE164("(604) 555-0199")
		require.NoError(t, err)
		assert.Equal(t, "+16045550199", got)
	})

	t.Run("existing plus prefix is kept", func(t *testing.T) {
		got, err := FormatPhoneE164("+14155552671")
		require.NoError(t, err)
		assert.Equal(t, "+14155552671", got)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := FormatPhoneE164("123")
		assert.Error(t, err)
	})
}
