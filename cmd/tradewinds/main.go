// Command tradewinds generates a synthetic hex world, builds the
// movement-cost graph, assigns every land province to its nearest
// trade hub, derives inter-hub routes, and persists the results.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tradewinds/internal/api"
	"github.com/talgya/tradewinds/internal/persistence"
	"github.com/talgya/tradewinds/internal/routing"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed    = flag.Int64("seed", 42, "world seed (0 = random)")
		cols    = flag.Int("cols", 96, "grid columns")
		rows    = flag.Int("rows", 64, "grid rows")
		markets = flag.Int("markets", 12, "named market sites")
		dbPath  = flag.String("db", "data/tradewinds.db", "SQLite output path")
		port    = flag.Int("port", 0, "API port (0 = don't serve)")
		mode    = flag.String("routes", "both", "route derivation: tree, flat, or both")
	)
	flag.Parse()

	cfg := world.DefaultGenConfig()
	cfg.Seed = *seed
	cfg.Cols = *cols
	cfg.Rows = *rows
	cfg.Markets = *markets

	// ── World ─────────────────────────────────────────────────────────
	slog.Info("generating world", "seed", cfg.Seed, "cols", cfg.Cols, "rows", cfg.Rows)
	proj := world.DefaultProjector(cfg)
	w := world.Generate(cfg, proj)

	for t, c := range world.TerrainCounts(w.Tiles) {
		slog.Info("terrain", "type", world.TerrainName(t), "count", c)
	}
	slog.Info("world ready",
		"tiles", humanize.Comma(int64(len(w.Tiles))),
		"markets", len(w.Markets),
		"river_crossings", w.Rivers.Len())

	// ── Graph ─────────────────────────────────────────────────────────
	start := time.Now()
	builder := &routing.Builder{
		Proj:     proj,
		Rivers:   w.Rivers,
		Currents: world.DefaultCurrents(),
	}
	graph := builder.Build(w.Tiles)
	slog.Info("graph built",
		"nodes", humanize.Comma(int64(graph.NodeCount())),
		"edges", humanize.Comma(int64(graph.EdgeCount())),
		"elapsed", time.Since(start))

	// ── Hubs ──────────────────────────────────────────────────────────
	hubs := make([]trade.Hub, len(w.Markets))
	for i, m := range w.Markets {
		hubs[i] = trade.Hub{
			ID:       trade.HubID(m.Province),
			Province: m.Province,
			Name:     m.Name,
			Pos:      m.Pos,
			Terminal: m.Coastal, // coastal markets are flow sinks
		}
	}

	// ── Assignment + routes ───────────────────────────────────────────
	start = time.Now()
	assignments := trade.Assign(graph, hubs)
	slog.Info("provinces assigned",
		"assigned", humanize.Comma(int64(len(assignments))),
		"elapsed", time.Since(start))

	upstreams := map[trade.HubID][]trade.HubID{}
	if *mode == "tree" || *mode == "both" {
		upstreams = trade.DeriveUpstream(graph, hubs)
		slog.Info("upstream chains derived", "hubs", len(upstreams))
	}

	routes := map[trade.HubPair]trade.Route{}
	if *mode == "flat" || *mode == "both" {
		start = time.Now()
		routes = trade.Routes(graph, hubs)
		slog.Info("flat route table built",
			"pairs", len(routes), "elapsed", time.Since(start))
	}

	// ── Persist ───────────────────────────────────────────────────────
	var runID string
	if *dbPath != "" {
		db, err := persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		runID, err = db.SaveResults(hubs, assignments, upstreams, routes)
		if err != nil {
			slog.Error("failed to save results", "error", err)
			os.Exit(1)
		}
		slog.Info("results saved", "path", *dbPath, "run", runID)
	}

	// ── Serve ─────────────────────────────────────────────────────────
	if *port > 0 {
		srv := &api.Server{
			Hubs:        hubs,
			Assignments: assignments,
			Upstreams:   upstreams,
			Routes:      routes,
			RunID:       runID,
			Port:        *port,
		}
		srv.Start()
		select {} // serve until killed
	}
}
