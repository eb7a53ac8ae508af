package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is a missing-person report. UserID is set once at creation and
// never updated.
type Complaint struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Age              int       `gorm:"not null" json:"age"`
	Gender           string    `gorm:"size:50;not null" json:"gender"`
	LastSeenLocation string    `gorm:"size:500;not null" json:"lastSeenLocation"`
	DateMissing      string    `gorm:"size:50;not null" json:"dateMissing"`
	ContactNumber    string    `gorm:"size:50;not null" json:"contactNumber"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Image            string    `gorm:"type:text" json:"image,omitempty"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;<-:create" json:"user"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	User             User      `gorm:"foreignKey:UserID" json:"-"`
}

func (c *Complaint) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
