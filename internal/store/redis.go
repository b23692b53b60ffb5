package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldData    = "data"
	fieldVersion = "version"
)

// Redis stores each collection as a hash {data, version} under Prefix+key.
// Put uses WATCH/MULTI so the version check and write are atomic.
type Redis struct {
	Client *redis.Client
	Prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{Client: client, Prefix: prefix}
}

func (r *Redis) key(k string) string { return r.Prefix + k }

func (r *Redis) Get(ctx context.Context, key string) (Record, error) {
	vals, err := r.Client.HMGet(ctx, r.key(key), fieldData, fieldVersion).Result()
	if err != nil {
		return Record{}, err
	}
	if len(vals) != 2 || vals[0] == nil {
		return Record{}, ErrNotFound
	}
	data, _ := vals[0].(string)
	var version int64
	if s, ok := vals[1].(string); ok {
		version, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Record{}, err
		}
	}
	return Record{Data: []byte(data), Version: version}, nil
}

func (r *Redis) Put(ctx context.Context, key string, data []byte, version int64) (int64, error) {
	k := r.key(key)
	next := version + 1
	err := r.Client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, k, fieldVersion).Int64()
		if errors.Is(err, redis.Nil) {
			current = 0
		} else if err != nil {
			return err
		}
		if current != version {
			return ErrVersionConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, fieldData, string(data), fieldVersion, next)
			return nil
		})
		return err
	}, k)
	if errors.Is(err, redis.TxFailedErr) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, r.key(key)).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}
