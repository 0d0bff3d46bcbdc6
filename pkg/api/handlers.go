package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/evaluation"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/exportstore"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/ledger"
)

// Server exposes the evaluation service over HTTP.
type Server struct {
	svc     *evaluation.Service
	records ledger.Store       // optional
	exports exportstore.Store  // optional
	logger  *slog.Logger
}

// NewServer wires the handlers. The ledger and export store may be nil;
// the corresponding endpoints then answer 404 or 503.
func NewServer(svc *evaluation.Service, records ledger.Store, exports exportstore.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		svc:     svc,
		records: records,
		exports: exports,
		logger:  logger.With("component", "api"),
	}
}

// Routes builds the full handler chain.
func (s *Server) Routes(limiter RateLimiter, validator *JWTValidator) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.HandleHealth)
	mux.HandleFunc("/readyz", s.HandleHealth)
	mux.HandleFunc("/v1/evaluate", s.HandleEvaluate)
	mux.HandleFunc("/v1/evaluations/", s.HandleEvaluations)
	mux.HandleFunc("/v1/catalog", s.HandleCatalog)

	var h http.Handler = mux
	h = Auth(validator)(h)
	if limiter != nil {
		h = limiter.Middleware(h)
	}
	h = Logging(s.logger)(h)
	h = RequestID(h)
	return h
}

// HandleHealth handles /healthz and /readyz.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": inference.Version,
	})
}

// HandleEvaluate handles POST /v1/evaluate.
func (s *Server) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteMethodNotAllowed(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req evaluation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}

	eval, err := s.svc.Evaluate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrEmptySystemID):
			WriteBadRequest(w, "Missing required field: system_id")
		case errors.Is(err, evaluation.ErrInvalidFact):
			WriteBadRequest(w, err.Error())
		case errors.Is(err, inference.ErrAmbiguousException):
			WriteUnprocessable(w, "Contradictory judicial authorization facts")
		default:
			WriteInternal(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, eval)
}

// HandleEvaluations handles GET /v1/evaluations/{id} and
// POST /v1/evaluations/{id}/export.
func (s *Server) HandleEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		WriteError(w, http.StatusServiceUnavailable, "Service Unavailable", "No evaluation ledger configured")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/evaluations/")
	if rest == "" {
		WriteNotFound(w, "Missing evaluation id")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/export"); ok {
		s.handleExport(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w)
		return
	}

	rec, err := s.records.Get(r.Context(), rest)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			WriteNotFound(w, "No such evaluation")
			return
		}
		WriteInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		WriteMethodNotAllowed(w)
		return
	}
	if s.exports == nil {
		WriteError(w, http.StatusServiceUnavailable, "Service Unavailable", "No export store configured")
		return
	}

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			WriteNotFound(w, "No such evaluation")
			return
		}
		WriteInternal(w, err)
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		WriteInternal(w, err)
		return
	}
	if err := s.exports.Put(r.Context(), rec.ID, payload); err != nil {
		WriteInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"key":         rec.ID,
		"result_hash": rec.ResultHash,
	})
}

// HandleCatalog handles GET /v1/catalog.
func (s *Server) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w)
		return
	}

	cat := s.svc.Catalog()
	type ruleInfo struct {
		ID    string `json:"id"`
		Group string `json:"group"`
	}
	rules := make([]ruleInfo, 0, len(cat.Rules))
	for _, rule := range cat.Rules {
		rules = append(rules, ruleInfo{ID: rule.ID, Group: string(rule.Group)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"version":        cat.Version,
		"min_engine":     cat.MinEngine,
		"engine_version": inference.Version,
		"rules":          rules,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
