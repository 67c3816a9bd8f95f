package token

import (
	"context"

	"uptime-monitor/internals/store"
)

type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) Create(ctx context.Context, t Token) error {
	return store.CreateJSON(ctx, r.store, store.Tokens, t.ID, t)
}

func (r *Repository) Get(ctx context.Context, id string) (Token, error) {
	var t Token
	if err := store.ReadJSON(ctx, r.store, store.Tokens, id, &t); err != nil {
		return Token{}, err
	}
	return t, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.Tokens, id)
}
