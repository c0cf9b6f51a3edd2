package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User domain object defining a user
type User struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Email      string    `gorm:"index;unique" json:"email"`
	Password   string    `json:"-"`
	EmailToken uuid.UUID `json:"-"`
	Validated  bool      `json:"validated"`
}

type userContextKey int

var userKey userContextKey

// NewContextWithUser returns a new [context.Context] that carries the user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in the ctx, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
