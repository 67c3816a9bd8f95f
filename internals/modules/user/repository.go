package user

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

func (r *Repository) Create(ctx context.Context, u User) error {
	return store.CreateJSON(ctx, r.store, store.Users, u.Phone, u)
}

func (r *Repository) Get(ctx context.Context, phone string) (User, error) {
	var u User
	if err := store.ReadJSON(ctx, r.store, store.Users, phone, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *Repository) Update(ctx context.Context, u User) error {
	return store.UpdateJSON(ctx, r.store, store.Users, u.Phone, u)
}

func (r *Repository) Delete(ctx context.Context, phone string) error {
	return r.store.Delete(ctx, store.Users, phone)
}
