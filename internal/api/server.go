package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"exsolver/internal/config"
	"exsolver/internal/corpus"
	"exsolver/internal/extract"
	"exsolver/internal/models"
	"exsolver/internal/resolver"
	"exsolver/internal/similarity"
	"exsolver/internal/util"
	"exsolver/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
	"go.uber.org/zap"
)

// SolutionStore is the persistence the API needs for resolved exercises.
type SolutionStore interface {
	Insert(ctx context.Context, s models.Solution) (models.Solution, error)
	Get(ctx context.Context, solutionID string) (models.Solution, error)
	List(ctx context.Context, limit int) ([]models.Solution, error)
}

// WorkflowStarter is the part of the Temporal client used to start runs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options tclient.StartWorkflowOptions, workflow interface{}, args ...interface{}) (tclient.WorkflowRun, error)
}

// Deps are the collaborators of the server. Solutions and Temporal may be
// nil; the endpoints that need them then answer 503.
type Deps struct {
	Corpus    *corpus.Repository
	Resolver  *resolver.Resolver
	Solutions SolutionStore
	Temporal  WorkflowStarter
	Metrics   http.Handler
	Log       *zap.Logger
}

type Server struct {
	cfg       config.Config
	corpus    *corpus.Repository
	resolver  *resolver.Resolver
	solutions SolutionStore
	temporal  WorkflowStarter
	metrics   http.Handler
	log       *zap.Logger
}

var errUnavailable = errors.New("service unavailable")

func NewServer(cfg config.Config, d Deps) *Server {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:       cfg,
		corpus:    d.Corpus,
		resolver:  d.Resolver,
		solutions: d.Solutions,
		temporal:  d.Temporal,
		metrics:   d.Metrics,
		log:       log.Named("api"),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /resolve", s.handleResolve)
	mux.HandleFunc("POST /resolve/async", s.handleResolveAsync)
	mux.HandleFunc("GET /examples", s.handleExamples)
	mux.HandleFunc("GET /examples/{id}", s.handleExample)
	mux.HandleFunc("POST /examples/upload", s.handleUpload)
	mux.HandleFunc("POST /examples/reload", s.handleReload)
	mux.HandleFunc("GET /solutions", s.handleSolutions)
	mux.HandleFunc("GET /solutions/{id}", s.handleSolution)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"examples":  s.corpus.Len(),
		"loaded_at": s.corpus.LoadedAt(),
	})
}

type resolveRequest struct {
	ProblemText   string   `json:"problem_text"`
	TopN          int      `json:"top_n,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
	Persist       bool     `json:"persist,omitempty"`
	Title         string   `json:"title,omitempty"`
	ExerciseID    string   `json:"exercise_id,omitempty"`
}

type resolveResponse struct {
	resolver.Result
	SolutionID string `json:"solution_id,omitempty"`
}

func decodeResolveRequest(r *http.Request) (resolveRequest, error) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid json: %w", err)
	}
	req.ProblemText = strings.TrimSpace(req.ProblemText)
	if req.ProblemText == "" {
		return req, fmt.Errorf("problem_text is required")
	}
	if req.TopN < 0 || (req.MinSimilarity != nil && (*req.MinSimilarity < 0 || *req.MinSimilarity >= 1)) {
		return req, fmt.Errorf("top_n must be positive and min_similarity within [0,1)")
	}
	return req, nil
}

func (s *Server) options(req resolveRequest) similarity.Options {
	opts := similarity.Options{TopN: s.cfg.TopN, MinSimilarity: s.cfg.MinSimilarity}
	if req.TopN > 0 {
		opts.TopN = req.TopN
	}
	if req.MinSimilarity != nil {
		opts.MinSimilarity = *req.MinSimilarity
	}
	return opts
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeResolveRequest(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if req.Persist && s.solutions == nil {
		writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("solution store: %w", errUnavailable))
		return
	}

	res := s.resolver.Resolve(req.ProblemText, s.options(req))
	out := resolveResponse{Result: res}
	if req.Persist && res.Success {
		saved, err := s.solutions.Insert(r.Context(), res.Solution(uuid.NewString(), req.ExerciseID, req.Title, req.ProblemText))
		if err != nil {
			s.log.Error("persist solution", zap.Error(err))
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		out.SolutionID = saved.SolutionID
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResolveAsync(w http.ResponseWriter, r *http.Request) {
	req, err := decodeResolveRequest(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if s.temporal == nil {
		writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("temporal: %w", errUnavailable))
		return
	}
	opts := s.options(req)
	workflowID := "resolve-" + uuid.NewString()
	run, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}, workflows.ResolveExerciseWorkflow, workflows.ResolveExerciseInput{
		ExerciseID:    req.ExerciseID,
		Title:         req.Title,
		ProblemText:   req.ProblemText,
		TopN:          opts.TopN,
		MinSimilarity: opts.MinSimilarity,
	})
	if err != nil {
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": run.GetID(), "run_id": run.GetRunID()})
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	all := s.corpus.All()
	out := make([]models.ExampleSummary, 0, len(all))
	for _, ex := range all {
		out = append(out, ex.Summary())
	}
	writeJSON(w, http.StatusOK, map[string]any{"examples": out, "loaded_at": s.corpus.LoadedAt()})
}

type exampleDetail struct {
	models.ExampleSummary
	ProblemText  string       `json:"problem_text"`
	SolutionText string       `json:"solution_text"`
	Extracted    extract.Data `json:"extracted"`
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	ex, err := s.corpus.Get(r.PathValue("id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, exampleDetail{
		ExampleSummary: ex.Summary(),
		ProblemText:    ex.ProblemText,
		SolutionText:   ex.SolutionText,
		Extracted:      ex.Problem,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes()); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided: %w", err))
		return
	}
	defer f.Close()

	ex, err := s.corpus.Save(r.Context(), fh.Filename, f)
	if err != nil {
		writeErr(w, uploadStatus(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, ex.Summary())
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, util.ErrUnsupportedDocument):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, util.ErrNoExtractableText), errors.Is(err, util.ErrEmptyProblem):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.corpus.Reload(r.Context()); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"examples": s.corpus.Len(), "loaded_at": s.corpus.LoadedAt()})
}

func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	if s.solutions == nil {
		writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("solution store: %w", errUnavailable))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	list, err := s.solutions.List(r.Context(), limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"solutions": list})
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	if s.solutions == nil {
		writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("solution store: %w", errUnavailable))
		return
	}
	sol, err := s.solutions.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, util.ErrSolutionNotFound) {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sol)
}
