package catalog

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog reads to the API layer.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	ListByCategory(ctx context.Context, category string) ([]ProductDTO, error)
	Get(ctx context.Context, slug string) (*ProductDTO, error)
	Search(ctx context.Context, query string) ([]ProductDTO, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service on top of the repository.
func NewService(repo *Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return toDTOs(products), nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]ProductDTO, error) {
	if strings.TrimSpace(category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	products, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products by category")
	}
	return toDTOs(products), nil
}

func (s *service) Get(ctx context.Context, slug string) (*ProductDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) Search(ctx context.Context, query string) ([]ProductDTO, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query must be at least 2 characters")
	}
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "searching products")
	}
	return toDTOs(products), nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}
