package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/model"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/repository"
)

type Writer interface {
	UpsertUser(ctx context.Context, req model.UpsertUserRequest) (model.User, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error)
}

var _ Writer = (repository.Repository)(nil)

type Summary struct {
	Users   int
	Books   int
	Reviews int
}

type Seeder struct {
	reset func(ctx context.Context) error
	repo  Writer
	log   *zap.Logger
}

func New(reset func(ctx context.Context) error, repo Writer, log *zap.Logger) *Seeder {
	return &Seeder{reset: reset, repo: repo, log: log.Named("seed")}
}

// NewFromPool wires the seeder to the repository and truncates through the same pool.
func NewFromPool(db *pgxpool.Pool, log *zap.Logger) (*Seeder, error) {
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return nil, err
	}
	return New(func(ctx context.Context) error { return Truncate(ctx, db) }, repo, log), nil
}

func Truncate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `truncate table reviews, books, users`)
	return err
}

// Run wipes all three tables and inserts the demo catalog.
// Rows of one kind are inserted concurrently.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	s.log.Info("clearing existing data")
	if err := s.reset(ctx); err != nil {
		return Summary{}, errors.Wrap(err, "reset")
	}

	createdUsers := make([]model.User, len(users))
	gg, gctx := errgroup.WithContext(ctx)
	for i := range users {
		i := i
		gg.Go(func() error {
			u, err := s.repo.UpsertUser(gctx, users[i])
			createdUsers[i] = u
			return errors.Wrapf(err, "user %s", users[i].Username)
		})
	}
	if err := gg.Wait(); err != nil {
		return Summary{}, err
	}
	s.log.Info("created users", zap.Int("count", len(createdUsers)))

	createdBooks := make([]model.Book, len(books))
	gg, gctx = errgroup.WithContext(ctx)
	for i := range books {
		i := i
		gg.Go(func() error {
			req := books[i].CreateBookRequest
			req.UserID = createdUsers[books[i].creator].ID
			b, err := s.repo.CreateBook(gctx, req)
			createdBooks[i] = b
			return errors.Wrapf(err, "book %s", req.Name)
		})
	}
	if err := gg.Wait(); err != nil {
		return Summary{}, err
	}
	s.log.Info("created books", zap.Int("count", len(createdBooks)))

	gg, gctx = errgroup.WithContext(ctx)
	for i := range reviews {
		i := i
		gg.Go(func() error {
			_, err := s.repo.CreateReview(gctx, model.CreateReviewRequest{
				Data:   reviews[i].data,
				UserID: createdUsers[reviews[i].author].ID,
				BookID: createdBooks[reviews[i].book].ID,
			})
			return errors.Wrap(err, "review")
		})
	}
	if err := gg.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Users: len(users), Books: len(books), Reviews: len(reviews)}
	s.log.Info("seeding completed",
		zap.Int("users", summary.Users),
		zap.Int("books", summary.Books),
		zap.Int("reviews", summary.Reviews))
	return summary, nil
}
