package model

import (
	"strings"

	"github.com/google/uuid"
)

type Client struct {
	Base
	SoftDelete
	OwnerID  uuid.UUID `json:"user" db:"owner_id"`
	FullName string    `json:"full_name" db:"full_name" validate:"notblank,max=255"`
	Phone    string    `json:"phone" db:"phone" validate:"notblank,max=20,digits"`
	Email    string    `json:"email" db:"email" validate:"notblank,max=255,email"`
}

// ClientInput is the writable part of a client. Nil fields are left
// untouched on update.
type ClientInput struct {
	FullName *string `json:"full_name" create:"required"`
	Phone    *string `json:"phone" create:"required"`
	Email    *string `json:"email" create:"required"`
}

// Apply overlays the supplied fields onto c.
func (in *ClientInput) Apply(c *Client) {
	if in.FullName != nil {
		c.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
}

// MsgClientEmailTaken is reported under the reserved message key.
const MsgClientEmailTaken = "This email address is already registered for one of your clients."
