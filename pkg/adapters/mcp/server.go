package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/automaton"
	"github.com/aretw0/automaton/internal/presentation/graph"
	"github.com/aretw0/automaton/pkg/catalog"
	"github.com/aretw0/automaton/pkg/codec"
	"github.com/aretw0/automaton/pkg/domain"
)

// ValidateResponse is the structured result of validate_definition.
type ValidateResponse struct {
	Valid bool   `json:"valid" jsonschema_description:"Whether the definition satisfies every structural rule"`
	Kind  string `json:"kind,omitempty" jsonschema_description:"Error kind of the first violation"`
	Error string `json:"error,omitempty" jsonschema_description:"Human readable description of the violation"`
}

// RunResponse is the structured result of run_input.
type RunResponse struct {
	Accepted   bool         `json:"accepted" jsonschema_description:"Whether the input is accepted"`
	FinalState string       `json:"final_state" jsonschema_description:"Last state reached"`
	Stalled    bool         `json:"stalled" jsonschema_description:"True when the run stopped on a missing transition"`
	Trace      domain.Trace `json:"trace" jsonschema_description:"One step per consumed symbol"`
	Explain    string       `json:"explain" jsonschema_description:"Plain text rendering of the trace"`
}

// EnumerateResponse is the structured result of enumerate_accepted.
type EnumerateResponse struct {
	Strings []string `json:"strings" jsonschema_description:"Accepted strings, shortest first"`
}

// Server exposes the automaton engine as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	maxResults int
	maxLength  int
}

// Option configures the Server.
type Option func(*Server)

// WithLifecycleHooks observes every apply, run and enumeration made through the tools.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) { s.hooks = hooks }
}

// WithLogger sets the server logger. It must not write to stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithEnumerationDefaults sets the limits used when a tool call omits them.
func WithEnumerationDefaults(maxResults, maxLength int) Option {
	return func(s *Server) {
		s.maxResults = maxResults
		s.maxLength = maxLength
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{
		mcpServer:  server.NewMCPServer("automaton-mcp", automaton.Version),
		logger:     slog.Default(),
		maxResults: automaton.DefaultMaxResults,
		maxLength:  automaton.DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves on the given port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const definitionHelp = "Automaton definition as a JSON or YAML object with states, alphabet, " +
	"initial_state, accepting_states and transitions (state -> symbol -> state)"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("validate_definition",
		mcp.WithDescription("Check an automaton definition against the structural rules and report the first violation."),
		mcp.WithString("definition", mcp.Required(), mcp.Description(definitionHelp)),
		mcp.WithOutputSchema[ValidateResponse](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("run_input",
		mcp.WithDescription("Simulate an input string on an automaton and return the step-by-step trace."),
		mcp.WithString("definition", mcp.Required(), mcp.Description(definitionHelp)),
		mcp.WithString("input", mcp.Description("Input string. Split per character when every symbol is one character, otherwise on commas or spaces")),
		mcp.WithString("symbols", mcp.Description("JSON array of symbols, used instead of input when given")),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.handleRun))

	s.mcpServer.AddTool(mcp.NewTool("enumerate_accepted",
		mcp.WithDescription("List accepted strings in shortlex order, shortest first."),
		mcp.WithString("definition", mcp.Required(), mcp.Description(definitionHelp)),
		mcp.WithNumber("max_results", mcp.Description(fmt.Sprintf("Maximum number of strings (default %d)", s.maxResults))),
		mcp.WithNumber("max_length", mcp.Description(fmt.Sprintf("Maximum string length in symbols (default %d)", s.maxLength))),
		mcp.WithOutputSchema[EnumerateResponse](),
	), mcp.NewStructuredToolHandler(s.handleEnumerate))

	s.mcpServer.AddTool(mcp.NewTool("list_examples",
		mcp.WithDescription("List the built-in sample automata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type summary struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		out := []summary{}
		for _, e := range catalog.Entries() {
			out = append(out, summary{e.Name, e.Description})
		}
		jsonBytes, _ := json.Marshal(out)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_example",
		mcp.WithDescription("Return the definition of a built-in sample automaton."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Example name, see list_examples")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := catalog.Get(request.GetString("name", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(domain.ToRecord(def))
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render an automaton as a Mermaid flowchart, optionally highlighting the run of an input."),
		mcp.WithString("definition", mcp.Required(), mcp.Description(definitionHelp)),
		mcp.WithString("input", mcp.Description("Input whose run is highlighted")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		def, err := parseDefinition(request.GetString("definition", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var overlay *graph.GraphOverlay
		if input, ok := request.GetArguments()["input"].(string); ok {
			res, err := automaton.RunString(def, input)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			overlay = graph.OverlayFromResult(res)
		} else if err := automaton.Validate(def); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(def, overlay)), nil
	})
}

func (s *Server) workbench() *automaton.Workbench {
	return automaton.NewWorkbench(
		automaton.WithLifecycleHooks(s.hooks),
		automaton.WithLogger(s.logger),
		automaton.WithName("mcp"),
	)
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	raw, _ := args["definition"].(string)
	def, err := parseDefinition(raw)
	if err != nil {
		return ValidateResponse{}, err
	}

	if err := s.workbench().Apply(ctx, def); err != nil {
		resp := ValidateResponse{Valid: false, Error: err.Error()}
		var defErr *domain.DefinitionError
		if errors.As(err, &defErr) {
			resp.Kind = string(defErr.Kind)
		}
		return resp, nil
	}
	return ValidateResponse{Valid: true}, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunResponse, error) {
	raw, _ := args["definition"].(string)
	def, err := parseDefinition(raw)
	if err != nil {
		return RunResponse{}, err
	}

	wb := s.workbench()
	if err := wb.Apply(ctx, def); err != nil {
		return RunResponse{}, err
	}

	var res *domain.Result
	if symStr, ok := args["symbols"].(string); ok && symStr != "" {
		var symbols []string
		if err := json.Unmarshal([]byte(symStr), &symbols); err != nil {
			return RunResponse{}, fmt.Errorf("symbols must be a JSON array of strings: %w", err)
		}
		res, err = wb.Run(ctx, symbols)
	} else {
		input, _ := args["input"].(string)
		res, err = wb.RunString(ctx, input)
	}
	if err != nil {
		return RunResponse{}, err
	}

	trace := res.Trace
	if trace == nil {
		trace = domain.Trace{}
	}
	return RunResponse{
		Accepted:   res.Accepted,
		FinalState: res.FinalState,
		Stalled:    res.Stalled(),
		Trace:      trace,
		Explain:    res.Explain(),
	}, nil
}

func (s *Server) handleEnumerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EnumerateResponse, error) {
	raw, _ := args["definition"].(string)
	def, err := parseDefinition(raw)
	if err != nil {
		return EnumerateResponse{}, err
	}
	n, err := intArg(args, "max_results", s.maxResults)
	if err != nil {
		return EnumerateResponse{}, err
	}
	l, err := intArg(args, "max_length", s.maxLength)
	if err != nil {
		return EnumerateResponse{}, err
	}

	wb := s.workbench()
	if err := wb.Apply(ctx, def); err != nil {
		return EnumerateResponse{}, err
	}
	words, err := wb.Enumerate(ctx, n, l)
	if err != nil {
		return EnumerateResponse{}, err
	}
	return EnumerateResponse{Strings: words}, nil
}

func (s *Server) registerResources() {
	for _, e := range catalog.Entries() {
		uri := "automaton://examples/" + e.Name
		s.mcpServer.AddResource(mcp.NewResource(uri, e.Description,
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			jsonBytes, err := json.Marshal(domain.ToRecord(e.Definition()))
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(jsonBytes),
				},
			}, nil
		})
	}
}

// parseDefinition accepts JSON or YAML; YAML is a superset of JSON.
func parseDefinition(raw string) (*domain.Definition, error) {
	if raw == "" {
		return nil, errors.New("definition is required")
	}
	rec, err := codec.Decode([]byte(raw), codec.YAML)
	if err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return domain.FromRecord(rec), nil
}

func intArg(args map[string]interface{}, key string, def int) (int, error) {
	switch v := args[key].(type) {
	case nil:
		return def, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}
