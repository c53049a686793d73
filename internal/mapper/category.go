package mapper

import (
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
)

func CategoryFromRequest(req *dto.CategoryRequest) *domain.Category {
	return &domain.Category{Name: req.Name}
}

func CategoryToResponse(c *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name}
}

func CategoriesToResponse(categories []*domain.Category) []dto.CategoryResponse {
	res := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryToResponse(c))
	}

	return res
}
