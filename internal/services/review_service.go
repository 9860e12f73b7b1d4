package services

import (
	"errors"
	"fmt"
	"strings"

	"shopadmin/internal/domain"
	"shopadmin/internal/repos"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods}
}

func (s *ReviewService) List(productID int64) ([]domain.ProductReview, error) {
	return s.Reviews.List(productID)
}

func (s *ReviewService) Create(rv domain.ProductReview) (domain.ProductReview, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return domain.ProductReview{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	if rv.User <= 0 {
		return domain.ProductReview{}, fmt.Errorf("%w: user is required", ErrInvalid)
	}
	if _, err := s.Prods.Get(rv.Product); err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return domain.ProductReview{}, fmt.Errorf("%w: product %d does not exist", ErrInvalid, rv.Product)
		}
		return domain.ProductReview{}, err
	}
	rv.Comment = strings.TrimSpace(rv.Comment)
	id, err := s.Reviews.Create(rv)
	if err != nil {
		return domain.ProductReview{}, err
	}
	return s.Reviews.Get(id)
}
