package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode is a one-time code or token sent to an identifier.
// Purpose "signup" carries a 6-digit code, purpose "reset" an opaque token.
type VerificationCode struct {
	gorm.Model
	UserID     uint       `json:"userId" gorm:"not null;index"`
	Identifier string     `json:"identifier" gorm:"not null;index"` // email address or E.164 phone
	Code       string     `json:"-" gorm:"not null"`
	Channel    string     `json:"channel" gorm:"type:varchar(10)"` // "email" or "sms"
	Purpose    string     `json:"purpose" gorm:"type:varchar(10)"` // "signup" or "reset"
	ExpiresAt  time.Time  `json:"expiresAt" gorm:"not null"`
	ConsumedAt *time.Time `json:"consumedAt"`
}

func (v *VerificationCode) Usable() bool {
	return v.ConsumedAt == nil && time.Now().Before(v.ExpiresAt)
}
