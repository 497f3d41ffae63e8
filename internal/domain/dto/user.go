package dto

import "event-manager-api/internal/domain/entity"

type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=50,nospaces"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role" validate:"required,assignablerole"`
}

// UserUpdate carries partial semantics: nil fields stay untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50,nospaces"`
	Password *string `json:"password" validate:"omitempty,password"`
	Role     *string `json:"role" validate:"omitempty,assignablerole"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}
}

func NewUserResponses(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, NewUserResponse(&users[i]))
	}
	return responses
}
