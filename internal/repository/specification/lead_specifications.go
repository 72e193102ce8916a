package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByContactID struct {
	ContactID uuid.UUID
}

func (s ByContactID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("contact_id = ?", s.ContactID)
}
