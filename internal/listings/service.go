package listings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// defaultSearchLimit bounds how many candidates a search pulls before scoring.
const defaultSearchLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateListingRequest) (*Listing, error) {
	l := &Listing{
		ID:                  uuid.New(),
		Title:               req.Title,
		Address:             req.Address,
		City:                req.City,
		Locality:            req.Locality,
		Size:                req.Size,
		Price:               req.Price,
		PropertyType:        req.PropertyType,
		Parking:             req.Parking,
		IsFeatured:          req.IsFeatured,
		SecurityDeposit:     req.SecurityDeposit,
		Footfall:            req.Footfall,
		Infrastructure:      req.Infrastructure,
		CompetitorCount:     req.CompetitorCount,
		PreferredCategories: req.PreferredCategories,
		CreatedAt:           time.Now(),
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	return s.repo.Search(ctx, filter, defaultSearchLimit)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
