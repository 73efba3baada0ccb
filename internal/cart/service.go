package cart

import (
	"context"
	"sync"

	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
)

// Store persists cart lines between requests.
type Store interface {
	Load(ctx context.Context, userID string) ([]Line, error)
	Save(ctx context.Context, userID string, lines []Line) error
	Clear(ctx context.Context, userID string) error
}

// Snapshot is the cart state returned to callers: the ordered lines
// plus totals derived from them.
type Snapshot struct {
	Lines  []Line
	Totals Totals
}

// Service owns one cart per user. Mutations on the same user are
// serialized through a per-user mutex so concurrent requests cannot
// interleave a load-mutate-save cycle; different users never contend.
type Service struct {
	store Store
	logg  *logger.Logger

	mu    sync.Mutex
	users map[string]*userEntry
}

type userEntry struct {
	mu   sync.Mutex
	cart *Cart
}

// NewService builds a cart service on top of the given store.
func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{
		store: store,
		logg:  logg,
		users: make(map[string]*userEntry),
	}
}

// Get returns the current cart snapshot for the user.
func (s *Service) Get(ctx context.Context, userID string) (Snapshot, error) {
	return s.with(ctx, userID, func(c *Cart) {})
}

// Add puts one unit of the item in the user's cart.
func (s *Service) Add(ctx context.Context, userID string, item Item) (Snapshot, error) {
	if item.Slug == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "item slug is required")
	}
	return s.with(ctx, userID, func(c *Cart) { c.Add(item) })
}

// Decrement removes one unit of the slug from the user's cart.
func (s *Service) Decrement(ctx context.Context, userID, slug string) (Snapshot, error) {
	return s.with(ctx, userID, func(c *Cart) { c.Decrement(slug) })
}

// Remove drops the slug's line entirely.
func (s *Service) Remove(ctx context.Context, userID, slug string) (Snapshot, error) {
	return s.with(ctx, userID, func(c *Cart) { c.Remove(slug) })
}

// SetQuantity overwrites the quantity of an existing line.
func (s *Service) SetQuantity(ctx context.Context, userID, slug string, quantity int) (Snapshot, error) {
	return s.with(ctx, userID, func(c *Cart) { c.SetQuantity(slug, quantity) })
}

// Clear empties the user's cart and deletes the persisted copy.
func (s *Service) Clear(ctx context.Context, userID string) error {
	entry := s.entry(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.cart = New()
	if err := s.store.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

// with runs a mutation against the user's cart under its lock, saving
// the result back to the store before returning the snapshot.
func (s *Service) with(ctx context.Context, userID string, fn func(c *Cart)) (Snapshot, error) {
	if userID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	entry := s.entry(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.cart == nil {
		lines, err := s.store.Load(ctx, userID)
		if err != nil {
			return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
		}
		entry.cart = Restore(lines)
	}

	before := entry.cart.Lines()
	fn(entry.cart)
	after := entry.cart.Lines()

	if !linesEqual(before, after) {
		if err := s.store.Save(ctx, userID, after); err != nil {
			return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
		}
	}

	return Snapshot{Lines: after, Totals: entry.cart.Totals()}, nil
}

func (s *Service) entry(userID string) *userEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.users[userID]
	if !ok {
		entry = &userEntry{}
		s.users[userID] = entry
	}
	return entry
}

func linesEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
