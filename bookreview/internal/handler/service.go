package handler

import (
	"context"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/model"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookReviewService interface {
	ListBooks(ctx context.Context, paging model.Paging) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	ListReviews(ctx context.Context, bookID string) ([]model.Review, error)
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UpsertUser(ctx context.Context, req model.UpsertUserRequest) (model.User, error)
}

var _ BookReviewService = (*service.Service)(nil)
