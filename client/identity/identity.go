package identity

import (
	"context"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/client/api"
)

const storageKey = "currentUser"

var (
	ErrEmptyUsername = errors.New("username is required")

	// same set as \s in a browser: ASCII space, Unicode space separators,
	// line and paragraph separators and the BOM
	whitespace = regexp.MustCompile(`[\s\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
)

//go:generate mockgen -source=identity.go -destination=mocks/mock.go

type UserUpdater interface {
	UpdateUser(ctx context.Context, id string, req api.UpdateUserRequest) (api.User, error)
}

// Store holds the identity the client acts as. There is no real
// authentication: the identity is derived from the username alone.
type Store struct {
	mu      sync.RWMutex
	current *api.User

	storage Storage
	users   UserUpdater
	now     func() time.Time
	log     *zap.Logger
}

func NewStore(storage Storage, users UserUpdater, log *zap.Logger) *Store {
	return &Store{
		storage: storage,
		users:   users,
		now:     time.Now,
		log:     log.Named("identity"),
	}
}

// Load restores a previously persisted identity. A missing or corrupt
// entry leaves the store logged out.
func (s *Store) Load() error {
	raw, err := s.storage.Get(storageKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "read identity")
	}
	var u api.User
	if err := json.Unmarshal(raw, &u); err != nil {
		s.log.Warn("drop corrupt identity", zap.Error(err))
		return s.storage.Delete(storageKey)
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	return nil
}

// Login fabricates an identity from the username. The password is not checked.
func (s *Store) Login(username, _ string) (api.User, error) {
	if strings.TrimSpace(username) == "" {
		return api.User{}, ErrEmptyUsername
	}
	lower := strings.ToLower(username)
	role := api.RoleUser
	if lower == "admin" {
		role = api.RoleAdmin
	}
	u := api.User{
		ID:        UserID(username),
		Username:  username,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.persist(u); err != nil {
		return api.User{}, err
	}
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	s.log.Debug("logged in", zap.String("id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return errors.Wrap(s.storage.Delete(storageKey), "remove identity")
}

// UpdateProfile sends the profile to the server and adopts the stored
// result. Blank fields keep their current value. It reports false when
// nobody is logged in.
func (s *Store) UpdateProfile(ctx context.Context, username string, role api.Role) (bool, error) {
	cur, ok := s.Current()
	if !ok {
		return false, nil
	}
	if strings.TrimSpace(username) == "" {
		username = cur.Username
	}
	if role == "" {
		role = cur.Role
	}
	updated, err := s.users.UpdateUser(ctx, cur.ID, api.UpdateUserRequest{Username: username, Role: role})
	if err != nil {
		return false, errors.Wrap(err, "update profile")
	}
	if err := s.persist(updated); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.current = &updated
	s.mu.Unlock()
	return true, nil
}

func (s *Store) Current() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return api.User{}, false
	}
	return *s.current, true
}

func (s *Store) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.Role == api.RoleAdmin
}

func (s *Store) persist(u api.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "encode identity")
	}
	return errors.Wrap(s.storage.Set(storageKey, raw), "save identity")
}

// UserID lowercases the username and turns whitespace runs into dashes.
func UserID(username string) string {
	return whitespace.ReplaceAllString(strings.ToLower(username), "-")
}
