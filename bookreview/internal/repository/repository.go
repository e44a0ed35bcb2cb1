package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/bookreview/internal/errs"
	"github.com/Astemirdum/bookreview-service/bookreview/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	ListBooks(ctx context.Context, paging model.Paging) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	ListReviews(ctx context.Context, bookID string) ([]model.Review, error)
	CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	UpsertUser(ctx context.Context, req model.UpsertUserRequest) (model.User, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db pool")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName   = `users`
	booksTableName   = `books`
	reviewsTableName = `reviews`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	userColumns   = []string{"id", "username", "role", "created_at", "updated_at"}
	bookColumns   = []string{"id", "name", "description", "author", "tags", "user_id", "created_at", "updated_at"}
	reviewColumns = []string{"id", "data", "user_id", "book_id", "created_at", "updated_at"}
)

func returning(columns []string) string {
	return "returning " + strings.Join(columns, ", ")
}

func (r *repository) ListBooks(ctx context.Context, paging model.Paging) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("created_at desc", "id").
		Limit(uint64(paging.Limit)).
		Offset(uint64(paging.Skip)).
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id string) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	query, args, err := qb.Insert(booksTableName).
		Columns(bookColumns...).
		Values(uuid.NewString(), req.Name, req.Description, req.Author, tags, req.UserID, now, now).
		Suffix(returning(bookColumns)).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			// creator row disappeared between the role check and the insert
			return model.Book{}, errs.ErrUnauthorized
		}
		r.log.Error("CreateBook", zap.String("q", query), zap.Error(err))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListReviews(ctx context.Context, bookID string) ([]model.Review, error) {
	query, args, err := qb.Select(reviewColumns...).
		From(reviewsTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		return nil, errors.Wrap(err, "pgx.CollectRows")
	}
	return reviews, nil
}

func (r *repository) CreateReview(ctx context.Context, req model.CreateReviewRequest) (model.Review, error) {
	now := time.Now().UTC()
	query, args, err := qb.Insert(reviewsTableName).
		Columns(reviewColumns...).
		Values(uuid.NewString(), req.Data, req.UserID, req.BookID, now, now).
		Suffix(returning(reviewColumns)).
		ToSql()
	if err != nil {
		return model.Review{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Review{}, err
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		r.log.Error("CreateReview", zap.String("q", query), zap.Error(err))
		return model.Review{}, err
	}
	return review, nil
}

func (r *repository) GetUser(ctx context.Context, id string) (model.User, error) {
	query, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) UpsertUser(ctx context.Context, req model.UpsertUserRequest) (model.User, error) {
	q := `
insert into users (id, username, role)
values (@id, @username, @role)
on conflict (id) do update
    set username   = excluded.username,
        role       = excluded.role,
        updated_at = now()
` + returning(userColumns)
	args := pgx.NamedArgs{
		"id":       req.UserID,
		"username": req.Username,
		"role":     string(req.Role),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return model.User{}, err
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		r.log.Error("UpsertUser", zap.String("id", req.UserID), zap.Error(err))
		return model.User{}, err
	}
	return user, nil
}
