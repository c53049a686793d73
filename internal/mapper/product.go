package mapper

import (
	"github.com/sakashimaa/go-pet-project/backoffice/internal/domain"
	"github.com/sakashimaa/go-pet-project/backoffice/internal/dto"
)

// ProductFromRequest does not resolve categories; the caller attaches them.
func ProductFromRequest(req *dto.ProductRequest) *domain.Product {
	return &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImgURL:      req.ImgURL,
	}
}

func ProductToResponse(p *domain.Product) dto.ProductResponse {
	categories := make([]dto.CategoryResponse, 0, len(p.Categories))
	for i := range p.Categories {
		categories = append(categories, CategoryToResponse(&p.Categories[i]))
	}

	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImgURL:      p.ImgURL,
		Categories:  categories,
	}
}

func ProductsToResponse(products []*domain.Product) []dto.ProductResponse {
	res := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, ProductToResponse(p))
	}

	return res
}

// ApplyProductUpdate copies every non-nil, non-blank field of req onto p.
// categories replaces the whole set when non-empty; it must already be resolved from req.CategoriesID.
func ApplyProductUpdate(req *dto.ProductUpdateRequest, categories []domain.Category, p *domain.Product) {
	if present(req.Name) {
		p.Name = *req.Name
	}
	if present(req.Description) {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if present(req.ImgURL) {
		p.ImgURL = req.ImgURL
	}
	if len(categories) > 0 {
		p.Categories = categories
	}
}
