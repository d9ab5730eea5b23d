package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Farmer struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Username    string `json:"username"`
	UsernameKey string `gorm:"uniqueIndex" json:"-"` // UsernameKeyOf(Username)
	Phone       string `gorm:"index" json:"phone"`   // empty until linked
	Name        string `json:"name"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UsernameKeyOf folds a username for lookups. Folding happens in Go because
// sqlite's LOWER only handles ASCII.
func UsernameKeyOf(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (f *Farmer) BeforeCreate(*gorm.DB) error {
	f.UsernameKey = UsernameKeyOf(f.Username)
	return nil
}

// Linked reports whether a phone number has been bound to the farmer.
func (f *Farmer) Linked() bool { return f.Phone != "" }
