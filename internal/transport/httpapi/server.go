package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"

	"planner-agent/internal/application/port/input"
	"planner-agent/internal/application/port/output"
	"planner-agent/internal/domain/entity"
	"planner-agent/internal/usecase/orchestrator"
)

// Server exposes goal processing over HTTP. One goal is generated at a time:
// a /query arriving while another is in flight gets 429.
type Server struct {
	processor input.GoalProcessor
	stop      *orchestrator.StopToken
	logger    output.LoggerPort
	metrics   http.Handler

	mu         sync.Mutex
	generating bool
	history    []QueryResponse
}

func NewServer(processor input.GoalProcessor, stop *orchestrator.StopToken, logger output.LoggerPort, metricsHandler http.Handler) *Server {
	return &Server{
		processor: processor,
		stop:      stop,
		logger:    logger,
		metrics:   metricsHandler,
	}
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Done      string                  `json:"done"`
	Answer    string                  `json:"answer"`
	Reasoning string                  `json:"reasoning"`
	Success   string                  `json:"success"`
	Blocks    map[string]entity.Block `json:"blocks"`
	Status    string                  `json:"status"`
	UID       string                  `json:"uid"`
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	requestLogger := httplog.NewLogger("planner-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})
	r.Use(httplog.RequestLogger(requestLogger))

	r.Post("/query", s.handleQuery)
	r.Get("/latest_answer", s.handleLatestAnswer)
	r.Get("/health", s.handleHealth)
	r.Get("/is_active", s.handleIsActive)
	r.Get("/stop", s.handleStop)
	if s.metrics != nil {
		r.Get("/metrics", s.metrics.ServeHTTP)
	}

	return r
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing query"})
		return
	}

	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		s.logger.Warn("Query rejected, another query is being processed")
		writeJSON(w, http.StatusTooManyRequests, QueryResponse{
			Done:   "false",
			Status: "busy",
			UID:    uuid.NewString(),
		})
		return
	}
	s.generating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	s.logger.Info("Processing query", "query", req.Query)
	result, err := s.processor.Process(r.Context(), req.Query)
	if err != nil {
		// Faults never leak detail to the client.
		s.logger.Error("Query processing fault", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "An unexpected error occurred processing the query.",
		})
		return
	}

	resp := QueryResponse{
		Done:      "true",
		Answer:    result.Answer,
		Reasoning: result.Reasoning,
		Success:   strconv.FormatBool(result.Success),
		Blocks:    blocksJSON(result.Blocks),
		Status:    "Ready",
		UID:       uuid.NewString(),
	}

	s.mu.Lock()
	s.history = append(s.history, resp)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatestAnswer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "No answer available"})
		return
	}
	writeJSON(w, http.StatusOK, s.history[len(s.history)-1])
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleIsActive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := s.generating
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

// handleStop requests a cooperative stop: the running goal finishes its
// in-flight task before the loop exits.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.stop.Stop()
	s.logger.Info("Stop requested")
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func blocksJSON(blocks []entity.Block) map[string]entity.Block {
	result := make(map[string]entity.Block, len(blocks))
	for i, block := range blocks {
		result[strconv.Itoa(i)] = block
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
