package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
	"github.com/yasunstudio/sppg-app-sub005/internal/httpx"
	"github.com/yasunstudio/sppg-app-sub005/internal/predict"
)

const predictionFailureMessage = "Failed to generate quality predictions"

// Store is the read side of the data store the predictor consumes.
type Store interface {
	Historical(ctx context.Context, domain contracts.Domain, since time.Time) ([]contracts.HistoricalRecord, error)
	Live(ctx context.Context, domain contracts.Domain, ids []string) ([]contracts.LiveCondition, error)
}

// EnvironmentProvider supplies the per-run ambient snapshot. A failure here
// must not abort the run; the engine tolerates a missing snapshot.
type EnvironmentProvider interface {
	Snapshot() (contracts.EnvironmentalSnapshot, error)
}

// AlertSink receives generated alerts for downstream notification delivery.
type AlertSink interface {
	Publish(ctx context.Context, alerts []contracts.Alert)
}

type Server struct {
	store  Store
	env    EnvironmentProvider
	engine *predict.Engine
	alerts AlertSink
	now    func() time.Time
}

func NewServer(store Store, env EnvironmentProvider, engine *predict.Engine, alerts AlertSink) *Server {
	return &Server{
		store:  store,
		env:    env,
		engine: engine,
		alerts: alerts,
		now:    time.Now,
	}
}

// WithClock replaces the server clock. Intended for tests.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "quality-predictor"})
	})

	router.Post("/v1/quality/predictions", s.handlePredict)

	return router
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req contracts.PredictionRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Failure(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	req.Normalize()

	now := s.now()
	lookback := time.Duration(req.PredictionHorizon*4) * 24 * time.Hour
	since := now.Add(-lookback)

	var (
		history []contracts.HistoricalRecord
		live    []contracts.LiveCondition
	)

	// Historical and live loads are independent reads.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		history, err = s.store.Historical(ctx, req.TargetType, since)
		return err
	})
	g.Go(func() error {
		var err error
		live, err = s.store.Live(ctx, req.TargetType, req.TargetIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Printf("quality-predictor load error: %v", err)
		httpx.Failure(w, http.StatusInternalServerError, predictionFailureMessage)
		return
	}

	var env *contracts.EnvironmentalSnapshot
	if req.EnvironmentalEnabled() && s.env != nil {
		snapshot, err := s.env.Snapshot()
		if err != nil {
			log.Printf("quality-predictor environment unavailable: %v", err)
		} else {
			env = &snapshot
		}
	}

	predictions := s.engine.Predict(history, live, env, req.RiskThreshold)
	alerts := predict.BuildAlerts(predictions, req.RiskThreshold, now)
	recommendations := predict.BuildRecommendations(predictions)
	summary := predict.Summarize(predictions)

	if s.alerts != nil && len(alerts) > 0 {
		s.alerts.Publish(r.Context(), alerts)
	}

	httpx.Success(w, contracts.PredictionResult{
		TargetType:        req.TargetType,
		PredictionHorizon: req.PredictionHorizon,
		Predictions:       predictions,
		Alerts:            alerts,
		Recommendations:   recommendations,
		Summary:           summary,
	})
}
