package redisstore

import (
	"context"
	"errors"
	"fmt"

	"uptime-monitor/pkg/apperror"

	"github.com/redis/go-redis/v9"
)

// Records of one collection live in a single hash: records:{collection}
// maps key -> JSON document.

const updateIfExistsScript = `
local key = KEYS[1]
local field = ARGV[1]
local value = ARGV[2]

if redis.call("HEXISTS", key, field) == 0 then
	return 0
end

redis.call("HSET", key, field, value)
return 1
`

var updateIfExists = redis.NewScript(updateIfExistsScript)

func collectionKey(collection string) string {
	return fmt.Sprintf("records:%s", collection)
}

func (c *Client) Create(ctx context.Context, collection, key string, data []byte) error {
	const op string = "store.redis.create"

	// HSETNX is not retried: a lost reply would turn our own write into
	// AlreadyExists on the second attempt.
	created, err := c.rdb.HSetNX(ctx, collectionKey(collection), key, data).Result()
	if err != nil {
		return apperror.New(apperror.Dependency, op, err)
	}
	if !created {
		return &apperror.Error{Kind: apperror.AlreadyExists, Op: op, Message: "record already exists"}
	}
	return nil
}

func (c *Client) Read(ctx context.Context, collection, key string) ([]byte, error) {
	const op string = "store.redis.read"

	var data []byte
	err := retry(ctx, 3, func() error {
		var err error
		data, err = c.rdb.HGet(ctx, collectionKey(collection), key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, apperror.New(apperror.Dependency, op, err)
	}
	if data == nil {
		return nil, &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
	}
	return data, nil
}

func (c *Client) Update(ctx context.Context, collection, key string, data []byte) error {
	const op string = "store.redis.update"

	var updated int64
	err := retry(ctx, 3, func() error {
		var err error
		updated, err = updateIfExists.Run(ctx, c.rdb, []string{collectionKey(collection)}, key, data).Int64()
		return err
	})
	if err != nil {
		return apperror.New(apperror.Dependency, op, err)
	}
	if updated == 0 {
		return &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, collection, key string) error {
	const op string = "store.redis.delete"

	// single attempt, for the same reason as Create
	removed, err := c.rdb.HDel(ctx, collectionKey(collection), key).Result()
	if err != nil {
		return apperror.New(apperror.Dependency, op, err)
	}
	if removed == 0 {
		return &apperror.Error{Kind: apperror.NotFound, Op: op, Message: "record not found"}
	}
	return nil
}

func (c *Client) List(ctx context.Context, collection string) ([]string, error) {
	const op string = "store.redis.list"

	var keys []string
	err := retry(ctx, 3, func() error {
		var err error
		keys, err = c.rdb.HKeys(ctx, collectionKey(collection)).Result()
		return err
	})
	if err != nil {
		return nil, apperror.New(apperror.Dependency, op, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}
