package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dayanaadylkhanova/slot-refresh/internal/engine"
	"github.com/dayanaadylkhanova/slot-refresh/internal/entity"
	"github.com/dayanaadylkhanova/slot-refresh/pkg/duration"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// JournalReader — порт чтения журнала отправок (реализует postgres.Store).
type JournalReader interface {
	QueryRange(ctx context.Context, from, to time.Time) ([]entity.DispatchRecord, error)
}

type Server struct {
	log     *zap.Logger
	addr    string
	eng     engine.CoordinatorPort
	journal JournalReader
	httpSrv *http.Server
}

func NewServer(log *zap.Logger, addr string, eng engine.CoordinatorPort, journal JournalReader) *Server {
	s := &Server{log: log, addr: addr, eng: eng, journal: journal}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	r.Post("/slots/{slotID}/refresh", s.handleRefresh())
	r.Delete("/slots/{slotID}/interval", s.handleCancelInterval())

	r.Put("/config/buffer-interval", s.handleSetBufferInterval())
	r.Delete("/config/buffer-interval", func(w http.ResponseWriter, r *http.Request) {
		s.eng.ClearBufferInterval()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Put("/config/buffer-barrier", s.handleSetBufferBarrier())
	r.Delete("/config/buffer-barrier", func(w http.ResponseWriter, r *http.Request) {
		s.eng.ClearBufferBarrier()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Put("/config/refresh-interval", s.handleSetRefreshInterval())
	r.Delete("/config/refresh-interval", func(w http.ResponseWriter, r *http.Request) {
		s.eng.ClearRefreshInterval()
		w.WriteHeader(http.StatusNoContent)
	})
	r.Put("/config/priority/{mechanism}", s.handleSetPriority())
	r.Get("/config", s.handleConfig())

	r.Post("/dispatches", s.handleDispatchLog())

	s.httpSrv = &http.Server{Addr: addr, Handler: r}
	return s
}

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// handleRefresh: без "every" — единичная заявка на рефреш (202);
// с "every" — регистрация повторяющегося интервала слота.
func (s *Server) handleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slotID")
		if slot == "" {
			http.Error(w, "invalid slotID", http.StatusBadRequest)
			return
		}

		var req entity.RefreshRequest
		if err := decodeOptional(r.Body, &req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Every == nil {
			s.eng.RequestRefresh(slot)
			w.WriteHeader(http.StatusAccepted)
			return
		}

		every, err := duration.Parse(req.Every)
		if err != nil || every <= 0 {
			http.Error(w, "invalid every", http.StatusBadRequest)
			return
		}
		if err := s.eng.RequestRefreshEvery(slot, every); err != nil {
			if errors.Is(err, engine.ErrDuplicateInterval) {
				http.Error(w, "slot already has an interval", http.StatusConflict)
				return
			}
			s.log.Error("register interval", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCancelInterval() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := chi.URLParam(r, "slotID")
		if slot == "" {
			http.Error(w, "invalid slotID", http.StatusBadRequest)
			return
		}
		if err := s.eng.CancelInterval(slot); err != nil {
			if errors.Is(err, engine.ErrNoInterval) {
				http.Error(w, "slot has no interval", http.StatusNotFound)
				return
			}
			s.log.Error("cancel interval", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetBufferInterval() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := decodeDuration(w, r)
		if !ok {
			return
		}
		s.eng.SetBufferInterval(d)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetRefreshInterval() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := decodeDuration(w, r)
		if !ok {
			return
		}
		s.eng.SetRefreshInterval(d)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetBufferBarrier() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.BarrierRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Count <= 0 {
			http.Error(w, "count must be > 0", http.StatusBadRequest)
			return
		}
		oneShot := true
		if req.OneShot != nil {
			oneShot = *req.OneShot
		}
		s.eng.SetBufferBarrier(req.Count, oneShot)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleSetPriority() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mech, err := engine.ParseMechanism(chi.URLParam(r, "mechanism"))
		if err != nil {
			http.Error(w, "unknown mechanism", http.StatusBadRequest)
			return
		}
		var req entity.PriorityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || req.Weight == nil {
			http.Error(w, "invalid weight", http.StatusBadRequest)
			return
		}
		if err := s.eng.SetPriority(mech, *req.Weight); err != nil {
			http.Error(w, "invalid weight", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.eng.Status())
	}
}

func (s *Server) handleDispatchLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.DispatchLogRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		from, err := parseISO(req.From)
		if err != nil {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return
		}
		to, err := parseISO(req.To)
		if err != nil {
			http.Error(w, "invalid to", http.StatusBadRequest)
			return
		}
		if !to.After(from) {
			http.Error(w, "to must be after from", http.StatusBadRequest)
			return
		}
		recs, err := s.journal.QueryRange(r.Context(), from, to)
		if err != nil {
			s.log.Error("query journal", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entity.DispatchLogResponse{Dispatches: recs})
	}
}

// decodeOptional допускает пустое тело запроса.
func decodeOptional(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeDuration(w http.ResponseWriter, r *http.Request) (time.Duration, bool) {
	var req entity.ConfigValueRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return 0, false
	}
	d, err := duration.Parse(req.Value)
	if err != nil || d <= 0 {
		http.Error(w, "invalid value", http.StatusBadRequest)
		return 0, false
	}
	return d, true
}

func parseISO(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("bad time")
}
