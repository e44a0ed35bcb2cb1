package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/errs"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/model"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/repository"
	"github.com/Astemirdum/bookreview-service/pkg/kafka"
)

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	publisher kafka.Publisher
}

func NewService(repo repository.Repository, publisher kafka.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		publisher: publisher,
	}
}

func (s *Service) ListBooks(ctx context.Context, paging model.Paging) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, paging)
}

func (s *Service) GetBook(ctx context.Context, id string) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

// CreateBook inserts the book only when the referenced user exists and is an ADMIN.
func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	user, err := s.repo.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Book{}, errs.ErrUnauthorized
		}
		return model.Book{}, errors.Wrap(err, "get user")
	}
	if !user.IsAdmin() {
		return model.Book{}, errs.ErrUnauthorized
	}

	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, kafka.Event{
		Type:      kafka.EventBookCreated,
		EntityID:  book.ID,
		UserID:    book.UserID,
		BookID:    book.ID,
		Timestamp: book.CreatedAt,
	})
	return book, nil
}

func (s *Service) ListReviews(ctx context.Context, bookID string) ([]model.Review, error) {
	return s.repo.ListReviews(ctx, bookID)
}

func (s *Service) CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error) {
	review, err := s.repo.CreateReview(ctx, req)
	if err != nil {
		return model.Review{}, err
	}
	s.publish(ctx, kafka.Event{
		Type:      kafka.EventReviewCreated,
		EntityID:  review.ID,
		UserID:    review.UserID,
		BookID:    review.BookID,
		Timestamp: review.CreatedAt,
	})
	return review, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) UpsertUser(ctx context.Context, req model.UpsertUserRequest) (model.User, error) {
	user, err := s.repo.UpsertUser(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	s.publish(ctx, kafka.Event{
		Type:      kafka.EventUserUpserted,
		EntityID:  user.ID,
		UserID:    user.ID,
		Timestamp: user.UpdatedAt,
	})
	return user, nil
}

// publish never fails the request, the row is already written.
func (s *Service) publish(ctx context.Context, event kafka.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
