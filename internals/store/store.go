// Package store defines the keyed record persistence shared by the API layer
// and the monitoring core. Records are opaque JSON documents addressed by
// (collection, key).
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	Checks = "checks"
	Users  = "users"
	Tokens = "tokens"
)

// Store is implemented by pkg/filestore, pkg/redisstore and pkg/db.
//
// Create fails with apperror.AlreadyExists when the key is taken; Read,
// Update and Delete fail with apperror.NotFound when it is missing. List
// returns an empty slice for an empty or unknown collection.
type Store interface {
	Create(ctx context.Context, collection, key string, data []byte) error
	Read(ctx context.Context, collection, key string) ([]byte, error)
	Update(ctx context.Context, collection, key string, data []byte) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]string, error)
}

// CreateJSON marshals v and creates it under key.
func CreateJSON(ctx context.Context, s Store, collection, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, key, err)
	}
	return s.Create(ctx, collection, key, data)
}

// ReadJSON reads key and unmarshals it into v.
func ReadJSON(ctx context.Context, s Store, collection, key string, v any) error {
	data, err := s.Read(ctx, collection, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, key, err)
	}
	return nil
}

// UpdateJSON marshals v and overwrites the existing record under key.
func UpdateJSON(ctx context.Context, s Store, collection, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, key, err)
	}
	return s.Update(ctx, collection, key, data)
}
