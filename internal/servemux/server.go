package servemux

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/albapepper/puckline-data/internal/config"
	"github.com/albapepper/puckline-data/internal/gateway"
	"github.com/albapepper/puckline-data/internal/ingest"
	"github.com/albapepper/puckline-data/internal/router"
)

// NewRouter builds the chi router wrapping the query dispatch and the
// on-demand ingestion triggers, mirroring internal/api/server.go's
// middleware stack (request id, real IP, gzip, CORS).
func NewRouter(gw *gateway.Gateway, rt *router.Router, orch *ingest.Orchestrator, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))

	c := corslib.New(corslib.Options{
		AllowedOrigins: cfg.CORSAllowOrigins,
		AllowedMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	r.Use(c.Handler)

	h := &handlers{gw: gw, router: rt, orch: orch}

	r.Get("/health", h.health)
	r.Post("/query", h.query)
	r.Get("/games/today", h.gamesToday)
	r.Get("/injuries", h.injuries)
	r.Post("/updates/run", h.updatesRun)
	r.Post("/updates/daily", h.updatesDaily)

	return r
}

type handlers struct {
	gw     *gateway.Gateway
	router *router.Router
	orch   *ingest.Orchestrator
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type queryRequest struct {
	router.Classification
}

func (h *handlers) query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	_, markdown, err := h.router.Dispatch(r.Context(), req.Classification, time.Now())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "dispatch_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"context": markdown})
}

func (h *handlers) gamesToday(w http.ResponseWriter, r *http.Request) {
	games, err := h.gw.GamesForDate(r.Context(), time.Now().Truncate(24*time.Hour))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "games_lookup_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, games)
}

func (h *handlers) injuries(w http.ResponseWriter, r *http.Request) {
	team, ok := router.NormalizeTeam(r.URL.Query().Get("team"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "unknown_team", "team query parameter did not resolve to a known code")
		return
	}
	rows, err := h.gw.InjuriesForTeam(r.Context(), team)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "injuries_lookup_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h *handlers) updatesRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.orch.Startup(r.Context(), time.Now())
	if err != nil {
		if err == ingest.ErrAlreadyRunning {
			WriteError(w, http.StatusConflict, "already_running", "an ingestion job is already running")
			return
		}
		WriteError(w, http.StatusInternalServerError, "startup_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusAccepted, result)
}

func (h *handlers) updatesDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.orch.Daily(r.Context(), time.Now())
	if err != nil {
		if err == ingest.ErrAlreadyRunning {
			WriteError(w, http.StatusConflict, "already_running", "an ingestion job is already running")
			return
		}
		WriteError(w, http.StatusInternalServerError, "daily_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusAccepted, result)
}
