package embedding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// maxLineSize bounds a single model line; 300 floats fit well within it.
const maxLineSize = 1 << 20

// Model is an immutable in-memory vector table. It is safe for concurrent lookups.
type Model struct {
	dim     int
	vectors map[string]Vector
}

// NewModel builds a model from the given vectors, copying them.
func NewModel(dim int, vectors map[string]Vector) (*Model, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("model dimension must be positive, got %d", dim)
	}
	m := &Model{dim: dim, vectors: make(map[string]Vector, len(vectors))}
	for tag, vec := range vectors {
		if len(vec) != dim {
			return nil, &DimensionError{Tag: tag, Want: dim, Got: len(vec)}
		}
		m.vectors[tag] = append(Vector(nil), vec...)
	}
	return m, nil
}

// LoadModel reads a text vector model from disk.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	m, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	return m, nil
}

// ReadModel parses the fastText/word2vec text format: a "<count> <dim>" header
// followed by one "<token> <v1> ... <vdim>" entry per line. The token is
// everything before the last dim fields, so it may contain spaces.
// Repeated tokens keep their first vector.
func ReadModel(r io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &ModelFormatError{Line: 1, Message: "failed to read header", Cause: err}
		}
		return nil, &ModelFormatError{Line: 1, Message: "missing header"}
	}
	count, dim, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	m := &Model{dim: dim, vectors: make(map[string]Vector, count)}
	lineNo := 1
	entries := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < dim+1 {
			return nil, &ModelFormatError{Line: lineNo, Message: fmt.Sprintf("expected token and %d values, got %d fields", dim, len(fields))}
		}
		split := len(fields) - dim
		token := strings.Join(fields[:split], " ")

		vec := make(Vector, dim)
		for i, raw := range fields[split:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ModelFormatError{Line: lineNo, Message: fmt.Sprintf("invalid value %q", raw), Cause: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ModelFormatError{Line: lineNo, Message: fmt.Sprintf("non-finite value %q", raw)}
			}
			vec[i] = v
		}
		entries++
		if _, exists := m.vectors[token]; !exists {
			m.vectors[token] = vec
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ModelFormatError{Line: lineNo + 1, Message: "failed to read entry", Cause: err}
	}
	if entries != count {
		return nil, &ModelFormatError{Line: lineNo, Message: fmt.Sprintf("header declares %d entries, found %d", count, entries)}
	}
	return m, nil
}

func parseHeader(line string) (count, dim int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, &ModelFormatError{Line: 1, Message: "header must be \"<count> <dim>\""}
	}
	count, err = strconv.Atoi(fields[0])
	if err != nil || count < 0 {
		return 0, 0, &ModelFormatError{Line: 1, Message: fmt.Sprintf("invalid entry count %q", fields[0]), Cause: err}
	}
	dim, err = strconv.Atoi(fields[1])
	if err != nil || dim <= 0 {
		return 0, 0, &ModelFormatError{Line: 1, Message: fmt.Sprintf("invalid dimension %q", fields[1]), Cause: err}
	}
	return count, dim, nil
}

// Lookup returns a copy of the vector stored for tag.
func (m *Model) Lookup(_ context.Context, tag string) (Vector, error) {
	vec, ok := m.vectors[tag]
	if !ok {
		return nil, &UnknownTagError{Tag: tag}
	}
	return append(Vector(nil), vec...), nil
}

// Dimension returns the vector length of the model.
func (m *Model) Dimension() int {
	return m.dim
}

// Len returns the number of distinct tags in the model.
func (m *Model) Len() int {
	return len(m.vectors)
}

// Tags returns every tag in the model in lexical order.
func (m *Model) Tags() []string {
	tags := make([]string, 0, len(m.vectors))
	for tag := range m.vectors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
