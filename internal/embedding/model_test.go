package embedding

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModel = `4 3
Docker 1 0 0
Kubernetes 0 1 0.5
Data Analysis 0.25 0.25 0.5

CI/CD -1 0 1e-1
`

func TestReadModel_Valid(t *testing.T) {
	m, err := ReadModel(strings.NewReader(sampleModel))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Dimension())
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{"CI/CD", "Data Analysis", "Docker", "Kubernetes"}, m.Tags())

	vec, err := m.Lookup(context.Background(), "Data Analysis")
	require.NoError(t, err)
	assert.Equal(t, Vector{0.25, 0.25, 0.5}, vec)

	vec, err = m.Lookup(context.Background(), "CI/CD")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0, 0.1}, vec, 1e-12)
}

func TestReadModel_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		msg   string
	}{
		{name: "empty", input: "", line: 1, msg: "missing header"},
		{name: "bad header", input: "3\n", line: 1, msg: "header"},
		{name: "zero dimension", input: "1 0\n", line: 1, msg: "invalid dimension"},
		{name: "short entry", input: "1 3\nGo 1 2\n", line: 2, msg: "expected token"},
		{name: "bad value", input: "1 2\nGo 1 x\n", line: 2, msg: "invalid value"},
		{name: "NaN value", input: "1 2\nGo 1 NaN\n", line: 2, msg: "non-finite"},
		{name: "count mismatch", input: "2 2\nGo 1 1\n", line: 2, msg: "declares 2 entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadModel(strings.NewReader(tt.input))
			require.Error(t, err)

			var formatErr *ModelFormatError
			require.True(t, errors.As(err, &formatErr), "expected ModelFormatError, got %v", err)
			assert.Equal(t, tt.line, formatErr.Line)
			assert.Contains(t, formatErr.Error(), tt.msg)
		})
	}
}

func TestReadModel_DuplicateKeepsFirst(t *testing.T) {
	m, err := ReadModel(strings.NewReader("2 1\nGo 1\nGo 2\n"))
	require.NoError(t, err)

	vec, err := m.Lookup(context.Background(), "Go")
	require.NoError(t, err)
	assert.Equal(t, Vector{1}, vec)
	assert.Equal(t, 1, m.Len())
}

func TestLoadModel_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.vec")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0644))

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Len())
}

func TestLoadModel_FileNotFound(t *testing.T) {
	_, err := LoadModel("/nonexistent/model.vec")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open model file")
}

func TestModel_LookupIsCaseSensitive(t *testing.T) {
	m := newTestModel(t)

	_, err := m.Lookup(context.Background(), "kubernetes")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestModel_LookupReturnsCopy(t *testing.T) {
	m := newTestModel(t)
	ctx := context.Background()

	vec, err := m.Lookup(ctx, "Docker")
	require.NoError(t, err)
	vec[0] = 42

	again, err := m.Lookup(ctx, "Docker")
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 0, 0}, again)
}

func TestNewModel_Validation(t *testing.T) {
	_, err := NewModel(0, nil)
	assert.Error(t, err)

	_, err = NewModel(2, map[string]Vector{"Go": {1, 2, 3}})
	var dimErr *DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, "Go", dimErr.Tag)
}
