package model

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Book struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Author      string    `json:"author" db:"author"`
	Tags        []string  `json:"tags" db:"tags"`
	UserID      string    `json:"userId" db:"user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Review struct {
	ID        string    `json:"id" db:"id"`
	Data      string    `json:"data" db:"data"`
	UserID    string    `json:"userId" db:"user_id"`
	BookID    string    `json:"bookId" db:"book_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type Paging struct {
	Skip  int
	Limit int
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type CreateBookRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Tags        []string `json:"tags" validate:"dive,required"`
	UserID      string   `json:"userId" validate:"required"`
}

type CreateReviewRequest struct {
	Data   string `json:"data" validate:"required"`
	UserID string `json:"userId" validate:"required"`
	BookID string `json:"bookId" validate:"required"`
}

type UpsertUserRequest struct {
	UserID   string `json:"-" param:"userId" validate:"required"`
	Username string `json:"username" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=ADMIN USER"`
}

type BooksResponse struct {
	Data []Book `json:"data"`
}

type BookResponse struct {
	Data *Book `json:"data"`
}

type ReviewsResponse struct {
	Data []Review `json:"data"`
}

type ReviewCreatedResponse struct {
	Review Review `json:"review"`
}

type UserResponse struct {
	Data *User `json:"data"`
}
