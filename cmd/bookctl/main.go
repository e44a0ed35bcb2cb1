package main

import (
	"context"
	"flag"
	"fmt"
	stdLog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/Astemirdum/bookreview-service/client/api"
	"github.com/Astemirdum/bookreview-service/client/catalog"
	"github.com/Astemirdum/bookreview-service/client/config"
	"github.com/Astemirdum/bookreview-service/client/identity"
	"github.com/Astemirdum/bookreview-service/client/view"
	"github.com/Astemirdum/bookreview-service/pkg/logger"
)

const usage = `usage: bookctl <command> [flags]

commands:
  home                                  latest books
  books [-search s] [-tag t]... [-sort name|author|newest] [-fav id]...
  book <id>                             book details and reviews
  review <bookId> <text>                post a review as the current user
  add-book -name n -author a -description d [-tag t]...   (ADMIN only)
  login <username> [password]
  logout
  profile                               show the current user
  profile-edit [-username u] [-role ADMIN|USER]
`

type stringsFlag []string

func (s *stringsFlag) String() string { return strings.Join(*s, ",") }

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	_ = godotenv.Load() //nolint:errcheck
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		stdLog.Fatal("config ", err)
	}
	log := logger.NewLogger(cfg.Log(), "bookctl")
	defer log.Sync() //nolint:errcheck

	client := api.New(cfg.APIURL, api.WithLogger(log))
	session := identity.NewStore(identity.NewFileStorage(cfg.StateDir), client, log)
	if err := session.Load(); err != nil {
		stdLog.Fatal(err)
	}
	v := view.New(client, session, os.Stdout, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, v, session, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, v *view.View, session *identity.Store, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	switch cmd {
	case "home":
		return v.Home(ctx)

	case "books":
		var tags, favs stringsFlag
		search := fs.String("search", "", "search in name, author and description")
		sortKey := fs.String("sort", string(catalog.SortName), "name, author or newest")
		fs.Var(&tags, "tag", "show books with this tag (repeatable)")
		fs.Var(&favs, "fav", "mark a book id as favorite (repeatable)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		b := catalog.NewBrowser()
		b.Search = *search
		if err := b.SetSort(*sortKey); err != nil {
			return err
		}
		for _, t := range tags {
			b.ToggleTag(t)
		}
		for _, id := range favs {
			b.ToggleFavorite(id)
		}
		return v.Catalog(ctx, b)

	case "book":
		if len(args) != 1 {
			return errors.New("book: expected <id>")
		}
		return v.Detail(ctx, args[0])

	case "review":
		if len(args) < 2 {
			return errors.New("review: expected <bookId> <text>")
		}
		_, err := v.SubmitReview(ctx, args[0], strings.Join(args[1:], " "))
		return err

	case "add-book":
		var tags stringsFlag
		name := fs.String("name", "", "book title")
		author := fs.String("author", "", "book author")
		description := fs.String("description", "", "book description")
		fs.Var(&tags, "tag", "book tag (repeatable)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		_, err := v.AddBook(ctx, view.NewBook{Name: *name, Author: *author, Description: *description, Tags: tags})
		return err

	case "login":
		if len(args) < 1 {
			return errors.New("login: expected <username>")
		}
		password := ""
		if len(args) > 1 {
			password = args[1]
		}
		u, err := session.Login(args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", u.Username, u.Role)
		return nil

	case "logout":
		if err := session.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil

	case "profile":
		return v.Profile()

	case "profile-edit":
		username := fs.String("username", "", "new username")
		role := fs.String("role", "", "ADMIN or USER")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return v.EditProfile(ctx, *username, api.Role(strings.ToUpper(*role)))
	}
	fmt.Fprint(os.Stderr, usage)
	return errors.Errorf("unknown command %q", cmd)
}
