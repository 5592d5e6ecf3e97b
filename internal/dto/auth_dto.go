package dto

import "github.com/Lloyd952/horror-haven/internal/model"

type RegisterInput struct {
	Username  string `json:"username" binding:"required,max=12"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LogoutInput struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int64       `json:"expires_in"`
	User      *model.User `json:"user"`
}
