package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rl1809/luxestore/internal/core/domain"
	"github.com/rl1809/luxestore/internal/port"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Matches local@domain.tld with no whitespace. Same loose shape the
// storefront always accepted; not an RFC validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService owns the registered-user list and the current session.
// The registry is persisted as one JSON document; per-user cart and
// wishlist snapshots live inside each record and are only written
// through the sync coordinator.
type UserService struct {
	store      port.KeyValueStore
	notifier   port.Notifier
	celebrator port.Celebrator
	coord      *SyncCoordinator
	now        func() time.Time

	mu      sync.Mutex
	users   []domain.User
	current *domain.User // copy of the active record, nil when guest
	lastID  int64
}

// NewUserService loads the registry from the store. The prefixed key
// is authoritative; the legacy unprefixed key is read as a fallback so
// data written by either storefront variant still loads. Corrupt
// documents yield an empty registry.
func NewUserService(ctx context.Context, store port.KeyValueStore, notifier port.Notifier, celebrator port.Celebrator) *UserService {
	s := &UserService{
		store:      store,
		notifier:   notifier,
		celebrator: celebrator,
		now:        time.Now,
	}
	if !readDoc(ctx, store, keyUsers, &s.users) {
		readDoc(ctx, store, keyLegacyUsers, &s.users)
	}
	for _, u := range s.users {
		if u.ID > s.lastID {
			s.lastID = u.ID
		}
	}
	return s
}

func (s *UserService) AttachCoordinator(c *SyncCoordinator) {
	s.coord = c
}

// Register creates a user, persists the registry, opens a session and
// fires the celebration effect. The working ledgers are left alone; a
// fresh account starts with empty snapshots and picks up the guest
// cart on its first mutation.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := s.validateSignup(name, email, password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.findByEmail(email) != nil {
		s.mu.Unlock()
		s.notifier.Notify(errorMessage(ErrEmailTaken), port.NotifyError)
		return nil, ErrEmailTaken
	}

	user := domain.User{
		ID:        s.nextID(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: s.now(),
		Cart:      []domain.CartLine{},
		Wishlist:  []domain.WishlistEntry{},
	}
	s.users = append(s.users, user)
	if err := s.persistRegistry(ctx); err != nil {
		s.users = s.users[:len(s.users)-1]
		s.mu.Unlock()
		return nil, err
	}
	s.setCurrent(ctx, user)
	s.mu.Unlock()

	s.notifier.Notify(fmt.Sprintf("Welcome to LuxeStore, %s!", name), port.NotifySuccess)
	s.celebrator.Celebrate()
	return cloneUser(user), nil
}

// Login matches the stored email and password exactly. On success it
// opens a session and pulls the user's saved cart and wishlist into
// the working ledgers.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, s.validationError("Please fill in all fields.")
	}
	if !emailPattern.MatchString(email) {
		return nil, s.validationError("Please enter a valid email address.")
	}

	s.mu.Lock()
	var match *domain.User
	for i := range s.users {
		if s.users[i].Email == email && s.users[i].Password == password {
			match = &s.users[i]
			break
		}
	}
	if match == nil {
		s.mu.Unlock()
		s.notifier.Notify(errorMessage(ErrInvalidCredentials), port.NotifyError)
		return nil, ErrInvalidCredentials
	}
	user := *match
	s.setCurrent(ctx, user)
	s.mu.Unlock()

	s.notifier.Notify(fmt.Sprintf("Welcome back, %s!", user.Name), port.NotifySuccess)
	if s.coord != nil {
		s.coord.PullIntoWorkingState(ctx, &user)
	}
	return cloneUser(user), nil
}

// Logout drops the session token and wipes the working ledgers. The
// working state is not flushed back first; every mutation already
// pushed it, so nothing newer than the last push exists to lose.
func (s *UserService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.store.Delete(ctx, keySession)
	s.mu.Unlock()

	s.notifier.Notify("Successfully logged out.", port.NotifySuccess)
	if s.coord != nil {
		s.coord.ClearWorkingState(ctx)
	}
}

// RestoreSession rebinds a persisted session token to its user on
// startup. Malformed tokens and tokens naming an unknown user are
// deleted and leave the session empty; restore never fails the caller.
func (s *UserService) RestoreSession(ctx context.Context) *domain.User {
	raw, ok, err := s.store.Get(ctx, keySession)
	if err != nil || !ok {
		return nil
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.store.Delete(ctx, keySession)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == sess.UserID {
			user := s.users[i]
			s.current = &user
			return cloneUser(user)
		}
	}
	s.store.Delete(ctx, keySession)
	return nil
}

// SaveWorkingState overwrites the current user's durable cart and
// wishlist snapshots and persists the whole registry. This is the only
// write path from working state to durable state; guests are a no-op.
func (s *UserService) SaveWorkingState(ctx context.Context, lines []domain.CartLine, entries []domain.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	for i := range s.users {
		if s.users[i].ID == s.current.ID {
			s.users[i].Cart = append([]domain.CartLine{}, lines...)
			s.users[i].Wishlist = append([]domain.WishlistEntry{}, entries...)
			updated := s.users[i]
			s.current = &updated
			return s.persistRegistry(ctx)
		}
	}
	return nil
}

// CurrentUser returns a copy of the active user, or nil for guests.
func (s *UserService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return cloneUser(*s.current)
}

// IsAuthenticated reports whether a session is active.
func (s *UserService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *UserService) validateSignup(name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return s.validationError("Please fill in all fields.")
	}
	if !emailPattern.MatchString(email) {
		return s.validationError("Please enter a valid email address.")
	}
	if len(password) < 6 {
		return s.validationError("Password must be at least 6 characters long.")
	}
	return nil
}

func (s *UserService) validationError(msg string) error {
	s.notifier.Notify(msg, port.NotifyError)
	return fmt.Errorf("%w: %s", ErrValidationFailed, msg)
}

// findByEmail is a case-sensitive exact match, the same comparison the
// registry has always used. Callers hold s.mu.
func (s *UserService) findByEmail(email string) *domain.User {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i]
		}
	}
	return nil
}

// nextID assigns timestamp-based ids, bumped past the last one handed
// out so same-millisecond registrations stay unique. Callers hold s.mu.
func (s *UserService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// setCurrent activates a session for user and persists the session
// token. Callers hold s.mu.
func (s *UserService) setCurrent(ctx context.Context, user domain.User) {
	u := user
	s.current = &u
	writeDoc(ctx, s.store, keySession, domain.Session{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

func (s *UserService) persistRegistry(ctx context.Context) error {
	return writeDoc(ctx, s.store, keyUsers, s.users)
}

func cloneUser(u domain.User) *domain.User {
	u.Cart = append([]domain.CartLine(nil), u.Cart...)
	u.Wishlist = append([]domain.WishlistEntry(nil), u.Wishlist...)
	return &u
}
