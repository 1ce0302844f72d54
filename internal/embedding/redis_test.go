package embedding

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), mr.Addr(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_ImportAndLookup(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	assert.Equal(t, 0, s.Dimension())

	require.NoError(t, s.Import(ctx, newTestModel(t)))
	assert.Equal(t, 3, s.Dimension())

	vec, err := s.Lookup(ctx, "devops")
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 1, 0}, vec)
}

func TestRedisStore_UnknownTag(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Import(ctx, newTestModel(t)))

	_, err := s.Lookup(ctx, "COBOL")
	var unknown *UnknownTagError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "COBOL", unknown.Tag)
}

func TestRedisStore_EmptyStore(t *testing.T) {
	s, _ := newTestRedisStore(t)

	_, err := s.Lookup(context.Background(), "Docker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds no vectors")
}

func TestRedisStore_ReopenSeesDimension(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Import(ctx, newTestModel(t)))

	reopened, err := NewRedisStore(ctx, "redis://"+mr.Addr(), "test")
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	assert.Equal(t, 3, reopened.Dimension())
	vec, err := reopened.Lookup(ctx, "CI/CD")
	require.NoError(t, err)
	assert.Equal(t, Vector{0, 0, 1}, vec)
}

func TestRedisStore_CorruptVector(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Import(ctx, newTestModel(t)))

	mr.HSet("test:vectors", "Docker", "abc")

	_, err := s.Lookup(ctx, "Docker")
	var dimErr *DimensionError
	require.True(t, errors.As(err, &dimErr))
}

func TestRedisStore_ImportReplacesPreviousTable(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()
	require.NoError(t, s.Import(ctx, newTestModel(t)))

	small, err := NewModel(2, map[string]Vector{"Go": {0.5, -0.5}})
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, small))

	assert.Equal(t, 2, s.Dimension())
	_, err = s.Lookup(ctx, "Docker")
	assert.ErrorIs(t, err, ErrUnknownTag)

	vec, err := s.Lookup(ctx, "Go")
	require.NoError(t, err)
	assert.Equal(t, Vector{0.5, -0.5}, vec)
}

func TestParseRedisAddr(t *testing.T) {
	opts, err := parseRedisAddr("localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	opts, err = parseRedisAddr("redis://:secret@cache:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = parseRedisAddr("")
	assert.Error(t, err)

	_, err = parseRedisAddr("http://cache:6379")
	assert.Error(t, err)
}

func TestVectorEncoding(t *testing.T) {
	vec := Vector{0.5, -2, 0, 1024, 0.1, 1e-300}
	raw := encodeVector(vec)
	assert.Len(t, raw, len(vec)*8)
	assert.Equal(t, vec, decodeVector(raw))
}

func TestRedisStore_MatchesModelExactly(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	m, err := NewModel(3, map[string]Vector{
		"Docker": {0.1, 0.2, 0.3},
		"R":      {1.0 / 3, -0.7, 123456.789012345},
	})
	require.NoError(t, err)
	require.NoError(t, s.Import(ctx, m))

	for _, tag := range m.Tags() {
		want, err := m.Lookup(ctx, tag)
		require.NoError(t, err)
		got, err := s.Lookup(ctx, tag)
		require.NoError(t, err)
		assert.Equal(t, want, got, tag)
	}

	fromModel, err := NewEmbedder(m).Embed(ctx, []string{"Docker", "R"})
	require.NoError(t, err)
	fromRedis, err := NewEmbedder(s).Embed(ctx, []string{"Docker", "R"})
	require.NoError(t, err)
	assert.Equal(t, fromModel, fromRedis)
}
