package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/internal/presentation/graph"
	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/domain"
	"github.com/aretw0/automaton/pkg/ports"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Hard ceilings on enumeration requests. The frontier can grow with |alphabet|^length.
const (
	DefaultMaxResultsCap = 1000
	DefaultMaxLengthCap  = 64
)

// Server serves the automaton JSON API.
type Server struct {
	store    ports.DefinitionStore
	hooks    domain.LifecycleHooks
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	streams  *StreamManager

	maxResults    int
	maxLength     int
	maxResultsCap int
	maxLengthCap  int
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables the /definitions endpoints.
func WithStore(store ports.DefinitionStore) Option {
	return func(s *Server) { s.store = store }
}

// WithLifecycleHooks observes every apply, run and enumeration made by the server.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) { s.hooks = hooks }
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithEnumerationDefaults sets the limits used when a request omits them.
func WithEnumerationDefaults(maxResults, maxLength int) Option {
	return func(s *Server) {
		s.maxResults = maxResults
		s.maxLength = maxLength
	}
}

// NewServer creates a Server with the given options.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:        slog.Default(),
		maxResults:    automaton.DefaultMaxResults,
		maxLength:     automaton.DefaultMaxLength,
		maxResultsCap: DefaultMaxResultsCap,
		maxLengthCap:  DefaultMaxLengthCap,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams returns the change event broadcaster.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Handler()
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)

	r.Post("/validate", s.Validate)
	r.Post("/run", s.Run)
	r.Post("/enumerate", s.Enumerate)

	r.Get("/examples", s.ListExamples)
	r.Get("/examples/{name}", s.GetExample)

	if s.store != nil {
		r.Route("/definitions", func(r chi.Router) {
			r.Get("/", s.ListDefinitions)
			r.Post("/", s.CreateDefinition)
			r.Get("/{name}", s.GetDefinition)
			r.Put("/{name}", s.PutDefinition)
			r.Delete("/{name}", s.DeleteDefinition)
			r.Get("/{name}/graph", s.GetDefinitionGraph)
		})
		r.Get("/events", s.SubscribeEvents)
	}

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) workbench() *automaton.Workbench {
	return automaton.NewWorkbench(
		automaton.WithLifecycleHooks(s.hooks),
		automaton.WithLogger(s.logger),
		automaton.WithName("http"),
	)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":         "automaton-http",
		"version":     automaton.Version,
		"store":       s.store != nil,
		"max_results": s.maxResults,
		"max_length":  s.maxLength,
	})
}

// Validate handles POST /validate. Invalid definitions are a 200 with valid=false.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var raw rawDefinition
	if !s.decode(w, r, &raw) {
		return
	}
	def, err := toDefinition(raw)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	if err := s.workbench().Apply(r.Context(), def); err != nil {
		apiErr := toAPIError(err)
		writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Error: &apiErr})
		return
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

// Run handles POST /run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}
	def, err := toDefinition(body.Definition)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	wb := s.workbench()
	if err := wb.Apply(r.Context(), def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var res *domain.Result
	if body.Symbols != nil {
		res, err = wb.Run(r.Context(), body.Symbols)
	} else {
		res, err = wb.RunString(r.Context(), body.Input)
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(res))
}

// Enumerate handles POST /enumerate.
func (s *Server) Enumerate(w http.ResponseWriter, r *http.Request) {
	var body EnumerateRequest
	if !s.decode(w, r, &body) {
		return
	}
	def, err := toDefinition(body.Definition)
	if err != nil {
		s.badRequest(w, err)
		return
	}

	n, l := s.maxResults, s.maxLength
	if body.MaxResults != nil {
		n = *body.MaxResults
	}
	if body.MaxLength != nil {
		l = *body.MaxLength
	}
	if n > s.maxResultsCap || l > s.maxLengthCap {
		s.badRequest(w, fmt.Errorf("%w: max_results <= %d and max_length <= %d",
			domain.ErrInvalidLimits, s.maxResultsCap, s.maxLengthCap))
		return
	}

	wb := s.workbench()
	if err := wb.Apply(r.Context(), def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	words, err := wb.Enumerate(r.Context(), n, l)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EnumerateResponse{Strings: words, MaxResults: n, MaxLength: l})
}

// ListExamples handles GET /examples.
func (s *Server) ListExamples(w http.ResponseWriter, r *http.Request) {
	out := []ExampleSummary{}
	for _, e := range catalog.Entries() {
		out = append(out, ExampleSummary{Name: e.Name, Description: e.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetExample handles GET /examples/{name}.
func (s *Server) GetExample(w http.ResponseWriter, r *http.Request) {
	def, err := catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ToRecord(def))
}

// ListDefinitions handles GET /definitions.
func (s *Server) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DefinitionsResponse{Names: names})
}

// GetDefinition handles GET /definitions/{name}.
func (s *Server) GetDefinition(w http.ResponseWriter, r *http.Request) {
	def, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.ToRecord(def))
}

// PutDefinition handles PUT /definitions/{name}. Only valid definitions are stored.
func (s *Server) PutDefinition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.saveBody(w, r, name) {
		writeJSON(w, http.StatusOK, CreatedResponse{Name: name})
	}
}

// CreateDefinition handles POST /definitions, storing the body under a generated name.
func (s *Server) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	name := uuid.NewString()
	if s.saveBody(w, r, name) {
		w.Header().Set("Location", "/definitions/"+name)
		writeJSON(w, http.StatusCreated, CreatedResponse{Name: name})
	}
}

func (s *Server) saveBody(w http.ResponseWriter, r *http.Request, name string) bool {
	var raw rawDefinition
	if !s.decode(w, r, &raw) {
		return false
	}
	def, err := toDefinition(raw)
	if err != nil {
		s.badRequest(w, err)
		return false
	}

	wb := automaton.NewWorkbench(
		automaton.WithStore(s.store),
		automaton.WithLifecycleHooks(s.hooks),
		automaton.WithLogger(s.logger),
		automaton.WithName("http"),
	)
	if err := wb.Apply(r.Context(), def); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return false
	}
	if err := wb.Save(r.Context(), name); err != nil {
		s.storeError(w, err)
		return false
	}

	s.streams.Broadcast(ChangeEvent{Type: "saved", Name: name})
	return true
}

// DeleteDefinition handles DELETE /definitions/{name}.
func (s *Server) DeleteDefinition(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.storeError(w, err)
		return
	}
	s.streams.Broadcast(ChangeEvent{Type: "deleted", Name: name})
	w.WriteHeader(http.StatusNoContent)
}

// GetDefinitionGraph handles GET /definitions/{name}/graph.
// With ?input=..., the run of that input is highlighted.
func (s *Server) GetDefinitionGraph(w http.ResponseWriter, r *http.Request) {
	def, err := s.store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.storeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		res, err := automaton.RunString(def, r.URL.Query().Get("input"))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		overlay = graph.OverlayFromResult(res)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, graph.GenerateMermaid(def, overlay)); err != nil {
		s.logger.Error("graph response write failed", "err", err)
	}
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.logger.Debug("bad request", "err", err)
	writeError(w, http.StatusBadRequest, err)
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.logger.Error("store operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: toAPIError(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
