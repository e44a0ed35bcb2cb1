package view

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/bookreview-service/client/api"
	"github.com/Astemirdum/bookreview-service/client/catalog"
)

const (
	catalogLimit = 50
	homeLimit    = 6
	// reviews carry no rating yet, every book shows the same score
	displayRating = "4.0"
)

var (
	ErrLoginRequired = errors.New("you must be logged in")
	ErrAdminRequired = errors.New("only ADMIN users can add books")
	ErrBookNotFound  = errors.New("book not found")
	ErrEmptyReview   = errors.New("review text is required")
)

//go:generate mockgen -source=view.go -destination=mocks/mock.go

type BookAPI interface {
	ListBooks(ctx context.Context, skip, limit int) ([]api.Book, error)
	GetBook(ctx context.Context, id string) (*api.Book, error)
	CreateBook(ctx context.Context, req api.CreateBookRequest) (api.Book, error)
	ListReviews(ctx context.Context, bookID string) ([]api.Review, error)
	CreateReview(ctx context.Context, req api.CreateReviewRequest) (api.Review, error)
}

type Session interface {
	Current() (api.User, bool)
	IsAdmin() bool
	UpdateProfile(ctx context.Context, username string, role api.Role) (bool, error)
}

type View struct {
	books   BookAPI
	session Session
	out     io.Writer
	log     *zap.Logger
}

func New(books BookAPI, session Session, out io.Writer, log *zap.Logger) *View {
	return &View{
		books:   books,
		session: session,
		out:     out,
		log:     log.Named("view"),
	}
}

func (v *View) Home(ctx context.Context) error {
	books, err := v.books.ListBooks(ctx, 0, homeLimit)
	if err != nil {
		return errors.Wrap(err, "load latest books")
	}
	if u, ok := v.session.Current(); ok {
		fmt.Fprintf(v.out, "Welcome back, %s!\n\n", u.Username)
	}
	fmt.Fprintln(v.out, "Latest books")
	return v.bookTable(books, nil)
}

func (v *View) Catalog(ctx context.Context, b *catalog.Browser) error {
	books, err := v.books.ListBooks(ctx, 0, catalogLimit)
	if err != nil {
		return errors.Wrap(err, "load books")
	}
	filtered := b.Filter(books)

	if tags := catalog.AllTags(books); len(tags) > 0 {
		fmt.Fprintf(v.out, "Tags: %s\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(v.out, "Showing %d of %d books\n", len(filtered), len(books))
	if len(filtered) == 0 {
		fmt.Fprintln(v.out, "No books found. Try adjusting your search or filters.")
		return nil
	}
	return v.bookTable(filtered, b)
}

func (v *View) Detail(ctx context.Context, id string) error {
	var (
		book    *api.Book
		reviews []api.Review
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = v.books.GetBook(gCtx, id)
		return errors.Wrap(err, "load book")
	})
	g.Go(func() error {
		var err error
		reviews, err = v.books.ListReviews(gCtx, id)
		return errors.Wrap(err, "load reviews")
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}
	v.log.Debug("book detail", zap.String("id", id), zap.Int("reviews", len(reviews)))

	fmt.Fprintf(v.out, "%s\nby %s\n\n", book.Name, book.Author)
	fmt.Fprintf(v.out, "Rating: %s (%d reviews)\n", displayRating, len(reviews))
	if len(book.Tags) > 0 {
		fmt.Fprintf(v.out, "Tags: %s\n", strings.Join(book.Tags, ", "))
	}
	fmt.Fprintf(v.out, "\n%s\n\n", book.Description)

	fmt.Fprintf(v.out, "Reviews (%d)\n", len(reviews))
	if len(reviews) == 0 {
		fmt.Fprintln(v.out, "No reviews yet. Be the first to review this book!")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(v.out, "- %s, %s: %s\n", readerLabel(r.UserID), formatDate(r), r.Data)
	}
	return nil
}

func (v *View) SubmitReview(ctx context.Context, bookID, text string) (api.Review, error) {
	u, ok := v.session.Current()
	if !ok {
		return api.Review{}, ErrLoginRequired
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return api.Review{}, ErrEmptyReview
	}
	r, err := v.books.CreateReview(ctx, api.CreateReviewRequest{Data: text, UserID: u.ID, BookID: bookID})
	if err != nil {
		return api.Review{}, errors.Wrap(err, "submit review")
	}
	fmt.Fprintln(v.out, "Review added successfully!")
	return r, nil
}

type NewBook struct {
	Name        string
	Author      string
	Description string
	Tags        []string
}

func (v *View) AddBook(ctx context.Context, nb NewBook) (api.Book, error) {
	u, ok := v.session.Current()
	if !ok {
		return api.Book{}, ErrLoginRequired
	}
	if !v.session.IsAdmin() {
		return api.Book{}, ErrAdminRequired
	}
	book, err := v.books.CreateBook(ctx, api.CreateBookRequest{
		Name:        strings.TrimSpace(nb.Name),
		Description: strings.TrimSpace(nb.Description),
		Author:      strings.TrimSpace(nb.Author),
		Tags:        cleanTags(nb.Tags),
		UserID:      u.ID,
	})
	if err != nil {
		return api.Book{}, errors.Wrap(err, "add book")
	}
	fmt.Fprintf(v.out, "Book %q added with id %s\n", book.Name, book.ID)
	return book, nil
}

// profileStats are shown until reviews and favorites are tracked per user.
var profileStats = struct {
	Reviews   int
	Favorites int
}{Reviews: 12, Favorites: 8}

func (v *View) Profile() error {
	u, ok := v.session.Current()
	if !ok {
		return ErrLoginRequired
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "ID:\t%s\n", u.ID)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Member since:\t%s\n", u.CreatedAt.Format("January 2006"))
	}
	fmt.Fprintf(tw, "Reviews:\t%d\n", profileStats.Reviews)
	fmt.Fprintf(tw, "Favorites:\t%d\n", profileStats.Favorites)
	return tw.Flush()
}

func (v *View) EditProfile(ctx context.Context, username string, role api.Role) error {
	ok, err := v.session.UpdateProfile(ctx, username, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLoginRequired
	}
	fmt.Fprintln(v.out, "Profile updated successfully!")
	return v.Profile()
}

func (v *View) bookTable(books []api.Book, b *catalog.Browser) error {
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tAUTHOR\tTAGS")
	for _, book := range books {
		fav := ""
		if b != nil && b.IsFavorite(book.ID) {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", fav, book.ID, book.Name, book.Author, shortTags(book.Tags, 3))
	}
	return tw.Flush()
}

func shortTags(tags []string, n int) string {
	if len(tags) <= n {
		return strings.Join(tags, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(tags[:n], ", "), len(tags)-n)
}

// readerLabel shows the last four characters of the user id.
func readerLabel(userID string) string {
	if r := []rune(userID); len(r) > 4 {
		userID = string(r[len(r)-4:])
	}
	return "Reader #" + userID
}

func formatDate(r api.Review) string {
	if r.CreatedAt.IsZero() {
		return "recently"
	}
	return r.CreatedAt.Format("Jan 2, 2006")
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
