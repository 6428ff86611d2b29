package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/internal/repositories/history"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config    *config.Config
	Logger    logger.Logger
	Publisher publisher.Publisher
	History   history.Repository
}

const maxHistory = 100

// Server exposes liveness, the report of the last run and recent publish history.
type Server struct {
	http      *http.Server
	publisher publisher.Publisher
	history   history.Repository
	logger    logger.Logger
}

func New(opts Opts) *Server {
	s := &Server{
		publisher: opts.Publisher,
		history:   opts.History,
		logger:    opts.Logger.WithComponent("http"),
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if opts.LC != nil {
		opts.LC.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go s.serve()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return s.http.Shutdown(ctx)
			},
		})
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.healthCheckHandler).Methods(http.MethodGet)
	r.HandleFunc("/status", s.statusHandler).Methods(http.MethodGet)
	r.HandleFunc("/history", s.historyHandler).Methods(http.MethodGet)
	return r
}

func (s *Server) serve() {
	s.logger.Info(fmt.Sprintf("Starting server on %s", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server failed", "error", err)
	}
}

func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check request received", "method", r.Method, "url", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	report, ok := s.publisher.LastReport()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Error("Failed to write status", "error", err)
	}
}

// historyHandler lists the latest publish results, newest first. ?limit= caps
// the count at maxHistory.
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistory)
	}

	records, err := s.history.Latest(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to read publish history", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []domain.PublishRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		s.logger.Error("Failed to write history", "error", err)
	}
}

var Module = fx.Module("http_server",
	fx.Provide(New),
	fx.Invoke(func(*Server) {}),
)
