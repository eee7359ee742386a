// Package api serves computed routing results over HTTP.
// All endpoints are read-only GETs; the result set is recomputed in
// batch, never mutated through the API.
// See design doc Section 3.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

// Server serves one computation run's results.
type Server struct {
	Hubs        []trade.Hub
	Assignments map[world.ProvinceID]trade.HubID
	Upstreams   map[trade.HubID][]trade.HubID
	Routes      map[trade.HubPair]trade.Route
	RunID       string
	Port        int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("API listening", "addr", addr)
	handler := s.Handler()
	go func() {
		if err := http.ListenAndServe(addr, handler); err != nil {
			slog.Error("API server stopped", "error", err)
		}
	}()
}

// Handler returns the full endpoint mux, usable directly in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/hubs", s.handleHubs)
	mux.HandleFunc("/assignments", s.handleAssignments)
	mux.HandleFunc("/upstreams", s.handleUpstreams)
	mux.HandleFunc("/routes", s.handleRoutes)
	mux.HandleFunc("/routes/", s.handleRoutePath)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"run_id":      s.RunID,
		"hubs":        len(s.Hubs),
		"assignments": len(s.Assignments),
		"routes":      len(s.Routes),
	})
}

func (s *Server) handleHubs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Hubs)
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Assignments)
}

func (s *Server) handleUpstreams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Upstreams)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	// Struct-keyed maps don't encode; flatten to a sorted list.
	routes := make([]trade.Route, 0, len(s.Routes))
	for _, route := range s.Routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].From != routes[j].From {
			return routes[i].From < routes[j].From
		}
		return routes[i].To < routes[j].To
	})
	writeJSON(w, routes)
}

// handleRoutePath serves /routes/{from}/{to}: the hex-level path for
// one ordered hub pair.
func (s *Server) handleRoutePath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/routes/"), "/")
	if len(parts) != 2 {
		http.Error(w, "expected /routes/{from}/{to}", http.StatusBadRequest)
		return
	}
	from, err1 := strconv.ParseUint(parts[0], 10, 32)
	to, err2 := strconv.ParseUint(parts[1], 10, 32)
	if err1 != nil || err2 != nil {
		http.Error(w, "hub ids must be integers", http.StatusBadRequest)
		return
	}
	pair := trade.HubPair{From: trade.HubID(from), To: trade.HubID(to)}
	route, ok := s.Routes[pair]
	if !ok {
		http.Error(w, "no route for pair", http.StatusNotFound)
		return
	}
	writeJSON(w, route)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
