package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
)

var ErrStadiumNameRequired = errors.New("stadium name is required")

type StadiumService interface {
	Create(ctx context.Context, input StadiumInput) (*models.Stadium, error)
	GetByID(ctx context.Context, id int) (*models.Stadium, error)
	List(ctx context.Context) ([]*models.Stadium, error)
	Update(ctx context.Context, id int, input StadiumInput) (*models.Stadium, error)
	Delete(ctx context.Context, id int) error
}

type StadiumInput struct {
	Name string  `json:"name"`
	City *string `json:"city,omitempty"`
}

type stadiumService struct {
	stadiumRepo repositories.StadiumRepository
}

func NewStadiumService(stadiumRepo repositories.StadiumRepository) StadiumService {
	return &stadiumService{stadiumRepo: stadiumRepo}
}

func (s *stadiumService) Create(ctx context.Context, input StadiumInput) (*models.Stadium, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStadiumNameRequired
	}

	stadium := &models.Stadium{Name: name, City: input.City}
	if err := s.stadiumRepo.Create(ctx, stadium); err != nil {
		return nil, fmt.Errorf("failed to create stadium: %w", err)
	}
	return stadium, nil
}

func (s *stadiumService) GetByID(ctx context.Context, id int) (*models.Stadium, error) {
	stadium, err := s.stadiumRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStadiumNotFound) {
			return nil, ErrStadiumNotFound
		}
		return nil, fmt.Errorf("failed to get stadium %d: %w", id, err)
	}
	return stadium, nil
}

func (s *stadiumService) List(ctx context.Context) ([]*models.Stadium, error) {
	stadiums, err := s.stadiumRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stadiums: %w", err)
	}
	return stadiums, nil
}

func (s *stadiumService) Update(ctx context.Context, id int, input StadiumInput) (*models.Stadium, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStadiumNameRequired
	}

	stadium := &models.Stadium{ID: id, Name: name, City: input.City}
	if err := s.stadiumRepo.Update(ctx, stadium); err != nil {
		if errors.Is(err, repositories.ErrStadiumNotFound) {
			return nil, ErrStadiumNotFound
		}
		return nil, fmt.Errorf("failed to update stadium %d: %w", id, err)
	}
	return stadium, nil
}

func (s *stadiumService) Delete(ctx context.Context, id int) error {
	if err := s.stadiumRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStadiumNotFound):
			return ErrStadiumNotFound
		case errors.Is(err, repositories.ErrStadiumInUse):
			return ErrStadiumInUse
		}
		return fmt.Errorf("failed to delete stadium %d: %w", id, err)
	}
	return nil
}
