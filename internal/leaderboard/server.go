package leaderboard

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/vovakirdan/hexroute/internal/events"
	"github.com/vovakirdan/hexroute/internal/storage"
)

// DefaultAddr is the address the leaderboard API listens on.
const DefaultAddr = ":3001"

const (
	maxBodyBytes = 4 << 10
	maxNameLen   = 64
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

// EntryStore is the persistence the server needs.
type EntryStore interface {
	SubmitEntry(operatorName, timeCompleted string, durationSeconds int) (storage.LeaderboardEntry, error)
	TopEntries(limit int) ([]storage.LeaderboardEntry, error)
	Stats() (storage.Stats, error)
}

// Server exposes the leaderboard over HTTP.
type Server struct {
	store    EntryStore
	bus      *events.Bus
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server backed by store. Accepted entries are
// published on bus for the live feed.
func NewServer(store EntryStore, bus *events.Bus, logger *log.Logger) *Server {
	if bus == nil {
		bus = events.NewBus()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/api/leaderboard", s.handleList)
	router.POST("/api/leaderboard", s.handleSubmit)
	router.GET("/api/leaderboard/stats", s.handleStats)
	router.GET("/api/leaderboard/live", s.handleLive)
	router.GET("/healthz", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return withCORS(s.withLogging(router))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting leaderboard API", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping leaderboard API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	entries, err := s.store.TopEntries(storage.DefaultLimit)
	if err != nil {
		s.internalError(w, err)
		return
	}

	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = Ranked{
			Rank:          i + 1,
			OperatorName:  e.OperatorName,
			TimeCompleted: e.TimeCompleted,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var sub Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid JSON body"})
		return
	}

	sub.OperatorName = strings.TrimSpace(sub.OperatorName)
	sub.TimeCompleted = strings.TrimSpace(sub.TimeCompleted)
	if sub.OperatorName == "" || sub.TimeCompleted == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields"})
		return
	}
	if len([]rune(sub.OperatorName)) > maxNameLen || sub.DurationSeconds < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid field values"})
		return
	}

	entry, err := s.store.SubmitEntry(sub.OperatorName, sub.TimeCompleted, sub.DurationSeconds)
	if err != nil {
		s.internalError(w, err)
		return
	}

	s.logger.Info("Entry accepted", "operator", entry.OperatorName, "time", entry.TimeCompleted)
	s.bus.Publish(events.EntryAccepted{
		ID:              entry.ID,
		OperatorName:    entry.OperatorName,
		TimeCompleted:   entry.TimeCompleted,
		DurationSeconds: entry.DurationSeconds,
		CreatedAt:       entry.CreatedAt,
	})
	writeJSON(w, http.StatusCreated, recordFromEntry(entry))
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	st, err := s.store.Stats()
	if err != nil {
		s.internalError(w, err)
		return
	}

	out := Stats{TotalOperatives: st.TotalOperatives}
	if st.FastestBreach != "" {
		fastest := st.FastestBreach
		out.FastestBreach = &fastest
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLive streams every accepted entry to a websocket client.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := s.bus.Subscribe(events.DefaultBuffer)
	defer sub.Close()

	// The read side only exists to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case evt := <-sub.Events():
			entry, ok := evt.(events.EntryAccepted)
			if !ok {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(entry); err != nil {
				s.logger.Debug("Live client write failed", "error", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("Leaderboard request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack is needed by the websocket upgrade.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("leaderboard: response writer cannot hijack")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
