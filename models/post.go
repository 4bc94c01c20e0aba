package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Post is a community help request.
type Post struct {
	gorm.Model
	Title             string         `json:"title" gorm:"not null"`
	Description       string         `json:"description" gorm:"type:text"`
	Pictures          pq.StringArray `json:"pictures" gorm:"type:text[]"`
	Categories        pq.StringArray `json:"categories" gorm:"type:text[]"`
	Location          string         `json:"location"` // Human-readable address
	LocationLat       *float64       `json:"locationLat" gorm:"type:decimal(10,8)"`
	LocationLng       *float64       `json:"locationLng" gorm:"type:decimal(11,8)"`
	LocationType      string         `json:"locationType" gorm:"type:varchar(20);default:in-person"` // "online" or "in-person"
	LocationRadius    int            `json:"locationRadius" gorm:"default:0"`                        // miles
	LocationPrivacy   string         `json:"locationPrivacy" gorm:"type:varchar(20);default:exact"`  // "exact", "approximate" or "hidden"
	ShowExactLocation bool           `json:"showExactLocation" gorm:"default:true"`
	Urgency           string         `json:"urgency" gorm:"type:varchar(50)"`
	IsPaid            bool           `json:"isPaid" gorm:"default:false"`
	PaymentType       string         `json:"paymentType" gorm:"type:varchar(10)"` // "hourly" or "total"
	PaymentAmount     *float64       `json:"paymentAmount"`
	ContactType       string         `json:"contactType" gorm:"type:varchar(10)"` // "email" or "phone"
	ContactInfo       string         `json:"contactInfo"`
	UserID            uint           `json:"userId" gorm:"not null;index"`
	User              User           `json:"user" gorm:"foreignKey:UserID"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}
