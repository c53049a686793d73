package mapper

import (
	"strings"

	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
)

// UserFromRequest leaves Password as given; hashing happens in the service.
func UserFromRequest(req *dto.UserRequest) *domain.User {
	return &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
}

func UserToResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

func UsersToResponse(users []*domain.User) []dto.UserResponse {
	res := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, UserToResponse(u))
	}

	return res
}

// ApplyUserUpdate copies every non-nil, non-blank field of req onto u.
func ApplyUserUpdate(req *dto.UserUpdateRequest, u *domain.User) {
	if present(req.Name) {
		u.Name = *req.Name
	}
	if present(req.Email) {
		u.Email = *req.Email
	}
	if present(req.Phone) {
		u.Phone = *req.Phone
	}
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
