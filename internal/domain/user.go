package domain

import "time"

type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	Email          *string   `json:"email,omitempty" db:"email"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type UserUpdate struct {
	Email   *string
	IsAdmin *bool
}

func (u UserUpdate) Apply(user *User) {
	if u.Email != nil {
		user.Email = u.Email
	}
	if u.IsAdmin != nil {
		user.IsAdmin = *u.IsAdmin
	}
}
