package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor products are sourced from.
type Supplier struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ContactEmail *string   `gorm:"column:contact_email"`
	WebsiteURL   *string   `gorm:"column:website_url"`
	Notes        *string   `gorm:"column:notes"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
