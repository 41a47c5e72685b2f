// Command courtsim runs the CROWNFALL court intrigue simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/crownfall/internal/advisors"
	"github.com/talgya/crownfall/internal/engine"
	"github.com/talgya/crownfall/internal/entropy"
	"github.com/talgya/crownfall/internal/persistence"
	"github.com/talgya/crownfall/internal/politics"
	"github.com/talgya/crownfall/internal/tuning"
)

const saveEvery = 10 // turns between auto-saves

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("CROWNFALL — Court Intrigue Simulation")

	seed := int64(42)
	if s := os.Getenv("COURTSIM_SEED"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = parsed
		}
	}
	dbPath := "data/crownfall.db"

	// ── Tuning ────────────────────────────────────────────────────────
	cfg := tuning.Default()
	if path := os.Getenv("COURTSIM_TUNING"); path != "" {
		var err error
		cfg, err = tuning.Load(path)
		if err != nil {
			slog.Error("failed to load tuning", "path", path, "error", err)
			os.Exit(1)
		}
		slog.Info("tuning loaded", "path", path)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Load or Generate Court ────────────────────────────────────────
	src := entropy.NewSeeded(seed)
	spawner := advisors.NewSpawner(src)
	spawner.SetMemoryCapacity(cfg.MemoryCapacity)

	var court *engine.Court

	if db.HasCourt() {
		slog.Info("found saved court, loading...")

		snap, err := db.LoadCourt()
		if err != nil {
			slog.Error("failed to load court", "error", err)
			os.Exit(1)
		}
		court = engine.Restore(snap, src, cfg)

		var maxID advisors.AdvisorID
		for _, a := range court.Advisors {
			if a.ID > maxID {
				maxID = a.ID
			}
		}
		spawner.SetNextID(maxID + 1)

		slog.Info("court restored",
			"civilization", court.Civilization,
			"turn", court.Turn,
			"advisors", len(court.Advisors),
			"leader", court.Leader.Name,
		)
	} else {
		slog.Info("no saved court found, assembling a new one...")

		council := spawner.SpawnCouncil(8)
		leader := &politics.Leader{
			Name:       "Queen Maerwen",
			Legitimacy: 0.7,
			Popularity: 0.6,
			Paranoia:   0.3,
			Style:      politics.StyleConsultative,
		}
		court = engine.NewCourt("Valdria", leader, council, src, cfg)

		court.AddFaction(politics.NewFaction("Old Guard", politics.FactionCourt, advisors.IdeologyTraditionalist))
		court.AddFaction(politics.NewFaction("Reform League", politics.FactionPopulist, advisors.IdeologyReformist))
		court.AddFaction(politics.NewFaction("War Party", politics.FactionMilitary, advisors.IdeologyMilitarist))

		for _, a := range council {
			slog.Info("council member seated",
				"name", a.Name,
				"role", a.Role,
				"loyalty", fmt.Sprintf("%.2f", a.Loyalty),
				"ambition", fmt.Sprintf("%.2f", a.Personality.Ambition),
				"ideology", a.Personality.Ideology,
			)
		}

		if err := db.SaveCourt(court.Snapshot()); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Runner ────────────────────────────────────────────────────────
	runner := engine.NewRunner()
	runner.Turn = court.Turn

	runner.OnTurn = func(turn uint64) {
		res, err := court.ProcessTurn()
		if err != nil {
			slog.Error("turn failed", "turn", turn, "error", err)
			runner.Stop()
			return
		}

		for _, n := range res.Exposed {
			slog.Info("conspiracy exposed", "type", n.Type, "leader_id", n.LeaderID)
		}
		if res.Coup != nil {
			slog.Info("coup attempt resolved",
				"success", res.Coup.Success,
				"conspirators", len(res.Coup.Conspirators),
				"old_leader", res.Coup.OldLeader,
			)
		}
		if res.Succession != nil {
			slog.Info("succession crisis resolved", "new_leader", res.Succession.Name)
		}

		if turn%saveEvery == 0 {
			if err := db.SaveCourt(court.Snapshot()); err != nil {
				slog.Error("auto-save failed", "turn", turn, "error", err)
			}
			if err := db.SaveEvents(court.Events); err != nil {
				slog.Error("event save failed", "turn", turn, "error", err)
			} else {
				court.Events = court.Events[:0]
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	s := court.Summarize()
	fmt.Printf("\n%s: %d advisors serve %s (legitimacy %.2f, %s).\n",
		s.Civilization, s.AdvisorCount, s.Leader, s.LeaderLegitimacy, s.Stability)
	if court.Turn > 0 {
		fmt.Printf("Resuming from turn %d\n", court.Turn)
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	runner.Run()

	// Final save on shutdown.
	slog.Info("final save...")
	if err := db.SaveCourt(court.Snapshot()); err != nil {
		slog.Error("final save failed", "error", err)
	}
	if err := db.SaveEvents(court.Events); err != nil {
		slog.Error("event save failed", "error", err)
	}

	s = court.Summarize()
	fmt.Printf("Simulation stopped at turn %d. Court stability: %s, temperature %.2f.\n",
		s.Turn, s.Stability, s.Temperature)
}
