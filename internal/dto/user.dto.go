package dto

import "github.com/BruksfildServices01/uniease-api/internal/models"

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}

type AuthDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}
