package user

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// User is the owner of tracked applications
type User struct {
	ID        kernel.UserID `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Email     string        `db:"email" json:"email"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// CreateUserRequest - DTO for creating a new user
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Email string `json:"email" validate:"required,email"`
}
