package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Astemirdum/bookreview-service/client/api"
)

type SortKey string

const (
	SortName   SortKey = "name"
	SortAuthor SortKey = "author"
	SortNewest SortKey = "newest"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(s)); k {
	case SortName, SortAuthor, SortNewest:
		return k, nil
	case "":
		return SortName, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Browser is the in-memory browse state of one session.
type Browser struct {
	Search    string
	tags      []string
	sortKey   SortKey
	favorites []string
}

func NewBrowser() *Browser {
	return &Browser{sortKey: SortName}
}

func (b *Browser) SortKey() SortKey { return b.sortKey }

func (b *Browser) SetSort(key string) error {
	k, err := ParseSortKey(key)
	if err != nil {
		return err
	}
	b.sortKey = k
	return nil
}

func (b *Browser) SelectedTags() []string {
	return append([]string(nil), b.tags...)
}

func (b *Browser) ToggleTag(tag string) {
	b.tags = toggle(b.tags, tag)
}

func (b *Browser) ToggleFavorite(bookID string) {
	b.favorites = toggle(b.favorites, bookID)
}

func (b *Browser) IsFavorite(bookID string) bool {
	return indexOf(b.favorites, bookID) >= 0
}

func (b *Browser) Favorites() []string {
	return append([]string(nil), b.favorites...)
}

// ClearFilters resets search and tags. Sort and favorites are kept.
func (b *Browser) ClearFilters() {
	b.Search = ""
	b.tags = nil
}

// Filter returns the books matching the search text and any selected tag,
// ordered by the current sort key. The input slice is not modified.
func (b *Browser) Filter(books []api.Book) []api.Book {
	query := strings.ToLower(b.Search)
	out := make([]api.Book, 0, len(books))
	for _, book := range books {
		if !matchesSearch(book, query) || !b.matchesTags(book) {
			continue
		}
		out = append(out, book)
	}

	switch b.sortKey {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := out[i].CreatedAt, out[j].CreatedAt
			if ti.IsZero() || tj.IsZero() {
				return !ti.IsZero() && tj.IsZero()
			}
			return ti.After(tj)
		})
	case SortAuthor:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Author, out[j].Author) < 0
		})
	default:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

func matchesSearch(book api.Book, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(book.Name), query) ||
		strings.Contains(strings.ToLower(book.Author), query) ||
		strings.Contains(strings.ToLower(book.Description), query)
}

func (b *Browser) matchesTags(book api.Book) bool {
	if len(b.tags) == 0 {
		return true
	}
	for _, t := range book.Tags {
		if indexOf(b.tags, t) >= 0 {
			return true
		}
	}
	return false
}

// AllTags returns the distinct tags of books in sorted order.
func AllTags(books []api.Book) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, book := range books {
		for _, t := range book.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

func toggle(list []string, v string) []string {
	if i := indexOf(list, v); i >= 0 {
		return append(list[:i:i], list[i+1:]...)
	}
	return append(list, v)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
