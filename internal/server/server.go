package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"zipshipping/internal/errors"
	"zipshipping/internal/postcode"
	"zipshipping/internal/rate"
	"zipshipping/internal/store"
)

type Server struct {
	store    store.Store
	provider string
	cache    *postcode.Cache
	log      *zap.Logger
}

// Options configures the handler. Zero values fall back to in-memory defaults.
type Options struct {
	Store    store.Store
	Provider string
	Cache    *postcode.Cache
	Logger   *zap.Logger
}

func New(st store.Store) http.Handler {
	return NewWithOptions(Options{Store: st})
}

func NewWithOptions(opts Options) http.Handler {
	s := &Server{store: opts.Store, provider: opts.Provider, cache: opts.Cache, log: opts.Logger}
	if s.store == nil {
		s.store = store.NewMemory()
	}
	if s.cache == nil {
		s.cache = postcode.NewCache(0)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/rates", s.handleGetRates)
	r.Route("/methods", func(r chi.Router) {
		r.Get("/", s.handleListMethods)
		r.Get("/{instanceID}", s.handleGetMethod)
		r.Put("/{instanceID}", s.handlePutMethod)
		r.Post("/{instanceID}/rates", s.handleCalculate)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type MethodsResponse struct {
	Methods []string         `json:"methods"`
	Fields  []rate.FormField `json:"fields"`
}

func (s *Server) handleListMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MethodsResponse{Methods: rate.Names(), Fields: rate.FormFields()})
}

type MethodResponse struct {
	InstanceID int           `json:"instance_id"`
	Settings   rate.Settings `json:"settings"`
}

func (s *Server) handleGetMethod(w http.ResponseWriter, r *http.Request) {
	id, err := instanceParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := store.Load(r.Context(), s.store, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MethodResponse{InstanceID: id, Settings: cfg.Settings()})
}

// handlePutMethod validates settings before saving so that rate calculation never sees a bad cost.
func (s *Server) handlePutMethod(w http.ResponseWriter, r *http.Request) {
	id, err := instanceParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var in rate.Settings
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, err)
		return
	}
	cfg, err := rate.FromSettings(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), id, cfg.Settings()); err != nil {
		s.writeError(w, errors.Internal("save settings", err))
		return
	}
	s.log.Info("method settings saved", zap.Int("instance_id", id), zap.Bool("enabled", cfg.Enabled))
	writeJSON(w, http.StatusOK, MethodResponse{InstanceID: id, Settings: cfg.Settings()})
}

type RatesResponse struct {
	Rates []rate.Offer `json:"rates"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	id, err := instanceParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var pkg rate.Package
	if err := decodeJSON(r, &pkg); err != nil {
		s.writeError(w, err)
		return
	}
	s.calculate(w, r, id, pkg)
}

// handleGetRates is the query-string form: /rates?postcode=11000&instance=1
func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := 0
	if v := strings.TrimSpace(q.Get("instance")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, errors.Input("instance must be an integer"))
			return
		}
		id = n
	}
	s.calculate(w, r, id, rate.Package{Destination: rate.Destination{
		Postcode: q.Get("postcode"),
		Country:  q.Get("country"),
	}})
}

func (s *Server) calculate(w http.ResponseWriter, r *http.Request, id int, pkg rate.Package) {
	cfg, err := store.Load(r.Context(), s.store, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	m := rate.NewByName(s.provider, cfg, rate.WithCache(s.cache), rate.WithLogger(s.log))
	offers := m.Calculate(pkg)
	if offers == nil {
		offers = []rate.Offer{}
	}
	writeJSON(w, http.StatusOK, RatesResponse{Rates: offers})
}

// codeKey overrides the error code written for an INPUT_ERROR.
const codeKey = "code"

func instanceParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "instanceID"))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, errors.Input("instance id must be a non-negative integer").WithContext("instance_id", raw)
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid json", err).WithContext(codeKey, "invalid_json")
	}
	return nil
}

// writeError maps typed errors onto the JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		s.log.Error("request failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	switch e.Type {
	case errors.TypeInput:
		code, _ := e.Context[codeKey].(string)
		if code == "" {
			code = "invalid_request"
		}
		writeErrorJSON(w, http.StatusBadRequest, code, e.Message)
	case errors.TypeInvalidCostFormat:
		writeErrorJSON(w, http.StatusUnprocessableEntity, "invalid_cost_format", "cost must be a non-negative decimal number")
	case errors.TypeNotFound:
		writeErrorJSON(w, http.StatusNotFound, "resource_not_found", e.Message)
	default:
		s.log.Error("request failed", zap.Error(err))
		writeErrorJSON(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
		)
	})
}
