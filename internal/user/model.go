package user

import "github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

type CreateUserRequest struct {
	TelegramName string       `json:"telegram_name" binding:"required,max=64" example:"alice_tg"`
	FullName     string       `json:"full_name" binding:"required,max=255" example:"Alice A"`
	Role         *models.Role `json:"role,omitempty" swaggertype:"string" enums:"Administrator,Client"`
}

type UpdateUserRequest struct {
	TelegramName string      `json:"telegram_name" binding:"required,max=64"`
	FullName     string      `json:"full_name" binding:"required,max=255"`
	Role         *models.Role `json:"role" binding:"required" swaggertype:"string" enums:"Administrator,Client"`
}

type TokenRequest struct {
	TelegramName string `json:"telegram_name" binding:"required" example:"alice_tg"`
	APIKey       string `json:"api_key" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         models.User `json:"user"`
}
