package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/timbermart/backend/internal/domain/catalog"
	"github.com/timbermart/backend/internal/domain/session"
)

// SessionStore persists per-session shopper state as one document keyed by
// session ID. Load returns a fresh empty state for unknown sessions.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (*session.State, error)
	Save(ctx context.Context, sessionID string, state *session.State) error
}

// StoreService manages the cart and favorites for one shopper session.
// Entries hold catalog snapshots taken at add time, so later catalog edits
// or deletions never rewrite what a session already holds.
type StoreService struct {
	store       SessionStore
	productRepo catalog.ProductRepository
}

// NewStoreService creates a new StoreService
func NewStoreService(store SessionStore, productRepo catalog.ProductRepository) *StoreService {
	return &StoreService{store: store, productRepo: productRepo}
}

// CartResponse is the cart representation returned to clients
type CartResponse struct {
	Items []session.ProductSnapshot `json:"items"`
	Total string                    `json:"total"`
}

func toCartResponse(cart session.Cart) CartResponse {
	items := cart
	if items == nil {
		items = session.Cart{}
	}
	return CartResponse{Items: items, Total: cart.Total().String()}
}

// FavoritesResponse is the favorites representation returned to clients
type FavoritesResponse struct {
	Items []session.ProductSnapshot `json:"items"`
}

func toFavoritesResponse(favorites session.Favorites) FavoritesResponse {
	items := favorites
	if items == nil {
		items = session.Favorites{}
	}
	return FavoritesResponse{Items: items}
}

// GetCart returns the session's current cart
func (s *StoreService) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response := toCartResponse(state.Cart)
	return &response, nil
}

// AddToCart snapshots the product and appends it to the cart. Adding the
// same product again adds another entry.
func (s *StoreService) AddToCart(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	snap, err := s.snapshot(ctx, productID)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Cart = state.Cart.Add(snap)
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	response := toCartResponse(state.Cart)
	return &response, nil
}

// RemoveFromCart drops every cart entry for the product. Removing a product
// that is not in the cart succeeds and changes nothing.
func (s *StoreService) RemoveFromCart(ctx context.Context, sessionID string, productID uuid.UUID) (*CartResponse, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Cart = state.Cart.Remove(productID)
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	response := toCartResponse(state.Cart)
	return &response, nil
}

// GetFavorites returns the session's favorites in insertion order
func (s *StoreService) GetFavorites(ctx context.Context, sessionID string) (*FavoritesResponse, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response := toFavoritesResponse(state.Favorites)
	return &response, nil
}

// ToggleFavorite marks the product if absent, unmarks it if present
func (s *StoreService) ToggleFavorite(ctx context.Context, sessionID string, productID uuid.UUID) (*FavoritesResponse, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Unmarking needs no catalog lookup; only a new mark takes a snapshot
	if state.Favorites.Contains(productID) {
		state.Favorites = state.Favorites.Toggle(session.ProductSnapshot{ProductID: productID})
	} else {
		snap, err := s.snapshot(ctx, productID)
		if err != nil {
			return nil, err
		}
		state.Favorites = state.Favorites.Toggle(snap)
	}

	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	response := toFavoritesResponse(state.Favorites)
	return &response, nil
}

func (s *StoreService) snapshot(ctx context.Context, productID uuid.UUID) (session.ProductSnapshot, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return session.ProductSnapshot{}, err
	}

	return session.ProductSnapshot{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Brand:     product.Brand,
		Price:     product.Price,
		Unit:      product.Unit,
		ImageURL:  product.ImageURL,
	}, nil
}
