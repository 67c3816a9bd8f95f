package check

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

func (r *Repository) Create(ctx context.Context, c Check) error {
	return store.CreateJSON(ctx, r.store, store.Checks, c.ID, c)
}

func (r *Repository) Get(ctx context.Context, id string) (Check, error) {
	var c Check
	if err := store.ReadJSON(ctx, r.store, store.Checks, id, &c); err != nil {
		return Check{}, err
	}
	return c, nil
}

func (r *Repository) Update(ctx context.Context, c Check) error {
	return store.UpdateJSON(ctx, r.store, store.Checks, c.ID, c)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, store.Checks, id)
}

func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	return r.store.List(ctx, store.Checks)
}
