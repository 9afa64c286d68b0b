// internal/domain/operator/entity.go
package operator

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator is a person who can sign in to a terminal: an admin, supervisor or
// cashier. Operators authenticate with a short PIN, stored hashed.
type Operator struct {
	ID        string         `json:"id" gorm:"type:uuid;primary_key"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Role      string         `json:"role" gorm:"not null;default:'cashier'"`
	PINHash   string         `json:"-" gorm:"not null"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns a UUID primary key
func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
