// Package embedding turns skill tags into fixed-length vectors.
package embedding

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces the vector keys when no prefix is configured.
const DefaultRedisPrefix = "recommender"

// importBatchSize caps the number of HSET commands per pipeline round trip.
const importBatchSize = 1000

// RedisStore serves tag vectors from a Redis hash so several service
// replicas can share one vector table.
//
// Layout:
//
//	<prefix>:vectors  hash  tag -> little-endian float64 values
//	<prefix>:meta     hash  dim -> vector length
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	dim    atomic.Int64
}

// NewRedisStore connects to addr, which is either host:port or a
// redis:// / rediss:// URL, and loads the stored dimension if any.
func NewRedisStore(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	opts, err := parseRedisAddr(addr)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	s, err := NewRedisStoreFromClient(ctx, client, prefix)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(ctx context.Context, client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	s := &RedisStore{client: client, prefix: prefix}

	dim, err := client.HGet(ctx, s.metaKey(), "dim").Int()
	switch {
	case errors.Is(err, redis.Nil):
		// Nothing imported yet.
	case err != nil:
		return nil, fmt.Errorf("failed to read vector dimension: %w", err)
	default:
		s.dim.Store(int64(dim))
	}
	return s, nil
}

func parseRedisAddr(addr string) (*redis.Options, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	if !strings.Contains(addr, "://") {
		return &redis.Options{Addr: addr}, nil
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return opts, nil
}

func (s *RedisStore) vectorsKey() string { return s.prefix + ":vectors" }
func (s *RedisStore) metaKey() string    { return s.prefix + ":meta" }

// Dimension returns the stored vector length, or 0 when nothing was imported.
func (s *RedisStore) Dimension() int {
	return int(s.dim.Load())
}

// Lookup fetches and decodes the vector for tag.
func (s *RedisStore) Lookup(ctx context.Context, tag string) (Vector, error) {
	dim := s.Dimension()
	if dim == 0 {
		return nil, fmt.Errorf("redis store %q holds no vectors", s.prefix)
	}
	raw, err := s.client.HGet(ctx, s.vectorsKey(), tag).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &UnknownTagError{Tag: tag}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vector for tag %q: %w", tag, err)
	}
	if len(raw) != dim*8 {
		return nil, &DimensionError{Tag: tag, Want: dim, Got: len(raw) / 8}
	}
	return decodeVector(raw), nil
}

// Import replaces the stored table with the vectors of m.
func (s *RedisStore) Import(ctx context.Context, m *Model) error {
	if err := s.client.Del(ctx, s.vectorsKey(), s.metaKey()).Err(); err != nil {
		return fmt.Errorf("failed to clear vectors: %w", err)
	}

	tags := m.Tags()
	for start := 0; start < len(tags); start += importBatchSize {
		end := min(start+importBatchSize, len(tags))
		_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, tag := range tags[start:end] {
				pipe.HSet(ctx, s.vectorsKey(), tag, encodeVector(m.vectors[tag]))
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to import vectors %d-%d: %w", start, end, err)
		}
	}

	if err := s.client.HSet(ctx, s.metaKey(), "dim", m.Dimension()).Err(); err != nil {
		return fmt.Errorf("failed to store vector dimension: %w", err)
	}
	s.dim.Store(int64(m.Dimension()))
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Vectors are stored at full precision so Redis lookups match the Model exactly.
func encodeVector(vec Vector) []byte {
	buf := make([]byte, len(vec)*8)
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

func decodeVector(raw []byte) Vector {
	vec := make(Vector, len(raw)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return vec
}
