package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/jonathan/task-recommender/internal/metrics"
	"github.com/jonathan/task-recommender/internal/ranking"
	"github.com/jonathan/task-recommender/internal/schemas"
	"github.com/jonathan/task-recommender/internal/server/middleware"
	"github.com/jonathan/task-recommender/internal/types"
	docschemas "github.com/jonathan/task-recommender/schemas"
)

// Output formats for ranked tasks.
const (
	formatObject = "object"
	formatTuple  = "tuple"
)

// rankOptions are the query parameters shared by the ranking endpoints.
type rankOptions struct {
	limit   int
	explain bool
	format  string
}

// handleRecommend ranks the submitted tasks for one worker.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseRankOptions(r, s.limit)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	var req types.RecommendRequest
	if err := s.decodeBody(w, r, docschemas.RecommendRequest, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failRequest(w, r, err)
		return
	}

	candidates, err := s.score(r.Context(), *req.Worker, req.Tasks)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}
	metrics.RecordRankRequest(metrics.OutcomeSuccess)

	candidates = ranking.Top(candidates, opts.limit)
	s.jsonResponse(w, http.StatusOK, renderCandidates(candidates, opts))
}

// handleRecommendBatch ranks one task list for several workers.
func (s *Server) handleRecommendBatch(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseRankOptions(r, s.limit)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}
	if opts.explain {
		s.failRequest(w, r, &ErrBadRequest{Message: "explain is not supported for batch requests"})
		return
	}

	var req types.BatchRequest
	if err := s.decodeBody(w, r, docschemas.BatchRequest, &req); err != nil {
		s.failRequest(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failRequest(w, r, err)
		return
	}

	start := time.Now()
	results, err := s.ranker.RankMany(r.Context(), req.Workers, req.Tasks, s.concurrency)
	metrics.ObserveRankDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, embedding.ErrUnknownTag) {
			metrics.RecordUnknownTag()
		}
		s.failRequest(w, r, err)
		return
	}
	metrics.RecordRankRequest(metrics.OutcomeSuccess)

	kept := 0
	out := make([]any, len(results))
	for i, ranked := range results {
		kept += len(ranked)
		out[i] = renderEntities(ranking.Top(ranked, opts.limit), opts.format)
	}
	metrics.RecordCandidates(len(req.Workers)*len(req.Tasks), kept)

	s.jsonResponse(w, http.StatusOK, out)
}

// handleUserRecommendations ranks the open quest board tasks for a stored user.
func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.failRequest(w, r, &ErrBadRequest{Message: "invalid user ID", Cause: err})
		return
	}

	defaultLimit := s.limit
	if defaultLimit == 0 {
		defaultLimit = DefaultUserLimit
	}
	opts, err := s.parseRankOptions(r, defaultLimit)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	worker, err := s.store.WorkerProfile(r.Context(), userID)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}
	tasks, err := s.store.ListAvailableTasks(r.Context())
	if err != nil {
		s.failRequest(w, r, err)
		return
	}

	entities := make([]types.Entity, len(tasks))
	for i, t := range tasks {
		entities[i] = t.Entity()
	}

	candidates, err := s.score(r.Context(), worker, entities)
	if err != nil {
		s.failRequest(w, r, err)
		return
	}
	metrics.RecordRankRequest(metrics.OutcomeSuccess)

	candidates = ranking.Top(candidates, opts.limit)
	out := make([]types.UserRecommendation, len(candidates))
	for i, c := range candidates {
		out[i] = tasks[c.Index].UserRecommendation()
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// score ranks tasks for worker and records metrics for the attempt.
func (s *Server) score(ctx context.Context, worker types.Entity, tasks []types.Entity) ([]ranking.Candidate, error) {
	start := time.Now()
	candidates, err := s.ranker.Score(ctx, worker, tasks)
	metrics.ObserveRankDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, embedding.ErrUnknownTag) {
			metrics.RecordUnknownTag()
		}
		return nil, err
	}
	metrics.RecordCandidates(len(tasks), len(candidates))
	return candidates, nil
}

// decodeBody validates the body against the named schema and decodes it into dst.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, schema string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &ErrBadRequest{Message: "failed to read request body", Cause: err}
	}
	if err := schemas.Validate(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrBadRequest{Message: "invalid request body", Cause: err}
	}
	return nil
}

func (s *Server) parseRankOptions(r *http.Request, defaultLimit int) (rankOptions, error) {
	q := r.URL.Query()
	opts := rankOptions{limit: defaultLimit, format: formatObject}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, &ErrBadRequest{Message: fmt.Sprintf("limit must be a non-negative integer, got %q", v)}
		}
		opts.limit = n
	}
	if v := q.Get("explain"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, &ErrBadRequest{Message: fmt.Sprintf("explain must be a boolean, got %q", v)}
		}
		opts.explain = b
	}
	if v := q.Get("format"); v != "" {
		if v != formatObject && v != formatTuple {
			return opts, &ErrBadRequest{Message: fmt.Sprintf("format must be %q or %q, got %q", formatObject, formatTuple, v)}
		}
		opts.format = v
	}
	if opts.explain && opts.format == formatTuple {
		return opts, &ErrBadRequest{Message: "explain cannot be combined with format=tuple"}
	}
	return opts, nil
}

// failRequest logs, counts and writes an error reply.
func (s *Server) failRequest(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	metrics.RecordRankRequest(outcome(err))

	event := logx.Log.Debug()
	if status >= http.StatusInternalServerError {
		event = logx.Log.Error()
	}
	event.Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Int("status", status).
		Msg("request failed")

	s.jsonResponse(w, status, errorBody(err, status))
}

func renderCandidates(candidates []ranking.Candidate, opts rankOptions) any {
	if opts.explain {
		out := make([]types.Recommendation, len(candidates))
		for i, c := range candidates {
			out[i] = c.Recommendation()
		}
		return out
	}
	return renderEntities(ranking.Entities(candidates), opts.format)
}

func renderEntities(entities []types.Entity, format string) any {
	if format == formatTuple {
		out := make([][]any, len(entities))
		for i, e := range entities {
			out[i] = e.Tuple()
		}
		return out
	}
	if entities == nil {
		return []types.Entity{}
	}
	return entities
}
