package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appletters "github.com/avdeyev/mailtriage/internal/application/letters"
	domain "github.com/avdeyev/mailtriage/internal/domain/letters"
	"github.com/avdeyev/mailtriage/internal/infra/textsource"
	"github.com/avdeyev/mailtriage/internal/middleware"
)

// maxUploadBytes bounds uploaded document size.
const maxUploadBytes = 10 << 20

type Router struct {
	svc *appletters.Service
}

// Options carries the cross-cutting wiring for the HTTP surface.
type Options struct {
	CORSOrigins []string
	APIKeys     []string
	Health      map[string]middleware.HealthChecker
}

func NewRouter(svc *appletters.Service, opts Options) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(30, 10))

	mux.Get("/health", middleware.HealthHandler(opts.Health))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/letters", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/analyze-file", r.wrap(r.handleAnalyzeFile))
		rt.Get("/history", r.wrap(r.handleHistory))
		rt.Get("/page", r.wrap(r.handlePage))
		rt.Get("/{id}", r.wrap(r.handleGet))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrEmptyText):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, textsource.ErrUnsupportedType):
				http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			case errors.Is(err, textsource.ErrUnreadable):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// POST /v1/letters/analyze
// Body: {"text": "...", "sender_role": "manager"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text       string `json:"text"`
		SenderRole string `json:"sender_role"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ErrEmptyText
	}
	if err := middleware.ValidateSenderRole(body.SenderRole); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	msg, err := r.svc.Analyze(req.Context(), appletters.AnalyzeCommand{
		Text:       middleware.SanitizeString(body.Text),
		SenderRole: body.SenderRole,
	})
	if err != nil {
		return err
	}
	trackAnalysis(msg)
	return writeJSON(w, msg)
}

// POST /v1/letters/analyze-file
// Multipart form: file=<upload>, sender_role=<optional>
func (r *Router) handleAnalyzeFile(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return textsource.ErrUnreadable
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return textsource.ErrUnreadable
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return textsource.ErrUnreadable
	}

	if err := middleware.ValidateSenderRole(req.FormValue("sender_role")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}

	msg, err := r.svc.AnalyzeUpload(req.Context(), appletters.UploadCommand{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		SenderRole:  req.FormValue("sender_role"),
	})
	if err != nil {
		return err
	}
	trackAnalysis(msg)
	return writeJSON(w, msg)
}

// GET /v1/letters/history?limit=20
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.History(req.Context(), limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Message{}
	}
	return writeJSON(w, list)
}

// GET /v1/letters/page?page=&page_size=
func (r *Router) handlePage(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.Repo.Paginate(req.Context(), page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Message{}
	}
	return writeJSON(w, list)
}

// GET /v1/letters/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateMessageID(id); err != nil {
		// A non-uuid id cannot name a record.
		http.Error(w, "not found", http.StatusNotFound)
		return nil
	}

	msg, err := r.svc.Get(req.Context(), domain.MessageID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, msg)
}

func trackAnalysis(msg *domain.Message) {
	middleware.IncrementAnalyses()
	if msg.Analysis.Degraded {
		middleware.IncrementAnalysesDegraded()
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
