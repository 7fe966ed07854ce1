// Package server is the thin transport shim over the ledger core. It
// exposes load, dump, and clear over HTTP JSON, matches credentials, and
// serializes access to the ledger — the core itself provides no locking.
package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/daybook-dev/daybook/internal/dates"
	"github.com/daybook-dev/daybook/internal/hints"
	"github.com/daybook-dev/daybook/internal/ledger"
)

// Credentials is the single username/password pair the server accepts.
type Credentials struct {
	Username string
	Password string
}

func (c Credentials) match(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username))
	p := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password))
	return u&p == 1
}

// Server owns the ledger instance and the HTTP surface around it.
type Server struct {
	mux    *http.ServeMux
	ledger *ledger.Ledger
	hints  *hints.Table
	creds  Credentials
	log    *logrus.Logger

	mu sync.Mutex
}

// New wires a server around an existing ledger. table may be nil when no
// hints file is configured.
func New(led *ledger.Ledger, table *hints.Table, creds Credentials, log *logrus.Logger) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		ledger: led,
		hints:  table,
		creds:  creds,
		log:    log,
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /v1/ping", s.auth(s.handlePing))
	s.mux.HandleFunc("POST /v1/load", s.auth(s.handleLoad))
	s.mux.HandleFunc("POST /v1/dump", s.auth(s.handleDump))
	s.mux.HandleFunc("POST /v1/clear", s.auth(s.handleClear))
	s.mux.Handle("GET /metrics", metricsHandler())

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return requestID(logging(s.log, instrument(s.mux)))
}

// auth matches basic-auth credentials before dispatching. The core
// assumes it is already authorized; this is the only credential check.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !s.creds.match(username, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="daybook"`)
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "bad credentials"})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// LoadRequest is the payload for /v1/load.
type LoadRequest struct {
	// ThisName substitutes the "this" placeholder and names the batch's
	// perspective. Empty means an unattributed raw import.
	ThisName string `json:"this_name"`

	// Rows is a canonical CSV document including the header row.
	Rows string `json:"rows"`

	SkipInvalid bool `json:"skip_invalid"`
}

// DupeEntry describes one merged duplicate in a load response.
type DupeEntry struct {
	Date                string `json:"date"`
	Src                 string `json:"src"`
	Dest                string `json:"dest"`
	Amount              string `json:"amount"`
	OriginalPerspective string `json:"original_perspective"`
	ActualPerspective   string `json:"actual_perspective"`
}

// LoadResponse reports how a batch reconciled.
type LoadResponse struct {
	Count      int         `json:"count"`
	Duplicates []DupeEntry `json:"duplicates"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad request: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.ledger.Load(strings.NewReader(req.Rows), req.ThisName, s.hints, req.SkipInvalid)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	resp := LoadResponse{Count: len(ts), Duplicates: []DupeEntry{}}
	for _, d := range s.ledger.ReportDupes(ts) {
		resp.Duplicates = append(resp.Duplicates, DupeEntry{
			Date:                d.Transaction.Date.Format(dates.Format),
			Src:                 d.Transaction.Src.Name,
			Dest:                d.Transaction.Dest.Name,
			Amount:              d.Transaction.Amount.String(),
			OriginalPerspective: d.OriginalPerspective,
			ActualPerspective:   d.ActualPerspective,
		})
	}

	transactionsLoaded.Add(float64(len(ts) - len(resp.Duplicates)))
	duplicatesDetected.Add(float64(len(resp.Duplicates)))

	writeJSON(w, http.StatusOK, resp)
}

// DumpRequest is the payload for /v1/dump. Empty fields are dont-cares.
type DumpRequest struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Accounts []string `json:"accounts"`
	Types    []string `json:"types"`
	Tags     []string `json:"tags"`
}

func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	var req DumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad request: " + err.Error()})
		return
	}

	f := ledger.Filter{Accounts: req.Accounts, Types: req.Types, Tags: req.Tags}
	var err error
	if req.Start != "" {
		if f.Start, err = dates.Parse(req.Start); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
	}
	if req.End != "" {
		if f.End, err = dates.Parse(req.End); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
	}

	s.mu.Lock()
	out := s.ledger.Dump(f.Predicate())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ledger.Clear()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.WithField("addr", addr).Info("daybookd listening")
	return srv.ListenAndServe()
}
