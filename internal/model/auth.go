package model

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccessToken records an issued bearer token by its JWT ID so that logout
// can revoke every outstanding token of a user at once.
type AccessToken struct {
	JTI       string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	CreatedAt time.Time `json:"-"`
}

func (AccessToken) TableName() string {
	return "access_tokens"
}

type ContextKey string

const PrincipalKey ContextKey = "principal"
