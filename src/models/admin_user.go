package models

import "spenden/src/types"

// AdminUser is the dashboard allow-list. A session whose email has no row
// here is authenticated but not authorized.
type AdminUser struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `json:"name,omitempty"`

	types.Timestamps
}
