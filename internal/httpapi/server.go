package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"advisord/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Resources(ctx context.Context) (types.ResourcesInfo, error)
	Fit(ctx context.Context, req types.FitRequest) types.FitResponse
	ModelFit(ctx context.Context, modelID string) (types.FitResponse, error)
	LastFit() (types.FitResponse, bool)
	ClassifyMessage(rec types.MessageRecord) types.DispositionResponse
	RecoverMessage(ctx context.Context, rec types.MessageRecord) types.DispositionResponse
	UIState() types.UIState
	CloseTroubleshooting()
	Events() []types.EventRecord
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ModelsResponse{Models: svc.ListModels()})
	})

	r.Get("/models/{id}/fit", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := handlerContext(r)
		defer cancel()
		resp, err := svc.ModelFit(ctx, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		observeFit(resp.Tier)
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/resources", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := handlerContext(r)
		defer cancel()
		info, err := svc.Resources(ctx)
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, info)
	})

	r.Post("/fit", func(w http.ResponseWriter, r *http.Request) {
		var req types.FitRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.RequiredRAM < 0 || req.TotalRAM < 0 {
			writeJSONError(w, http.StatusBadRequest, "ram values must not be negative")
			return
		}
		ctx, cancel := handlerContext(r)
		defer cancel()
		resp := svc.Fit(ctx, req)
		observeFit(resp.Tier)
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/fit/last", func(w http.ResponseWriter, r *http.Request) {
		resp, ok := svc.LastFit()
		if !ok {
			writeJSONError(w, http.StatusNotFound, "no fit assessment yet")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/messages/classify", func(w http.ResponseWriter, r *http.Request) {
		var rec types.MessageRecord
		if !decodeJSON(w, r, &rec) {
			return
		}
		resp := svc.ClassifyMessage(rec)
		observeDisposition("classify", resp.Disposition)
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/messages/recover", func(w http.ResponseWriter, r *http.Request) {
		var rec types.MessageRecord
		if !decodeJSON(w, r, &rec) {
			return
		}
		if strings.TrimSpace(rec.ID) == "" {
			writeJSONError(w, http.StatusBadRequest, "message id is required")
			return
		}
		resp := svc.RecoverMessage(actionContext(), rec)
		observeDisposition("recover", resp.Disposition)
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/ui/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.UIState())
	})

	r.Delete("/ui/troubleshooting", func(w http.ResponseWriter, r *http.Request) {
		svc.CloseTroubleshooting()
		writeJSON(w, http.StatusOK, svc.UIState())
	})

	r.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.EventsResponse{Events: svc.Events()})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("probing"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSON enforces a JSON content type and the body size limit. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Oversized bodies also land here; report 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger().Error().Err(err).Msg("encode response")
	}
}
