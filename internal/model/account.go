package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is the business profile of an identity and owns every client,
// product and service. It is created empty at registration.
type Account struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UpdateAccountRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=20,digits"`
}

// Apply overlays the supplied fields.
func (r *UpdateAccountRequest) Apply(a *Account) {
	if r.FullName != nil {
		a.FullName = *r.FullName
	}
	if r.Phone != nil {
		a.Phone = *r.Phone
	}
}
