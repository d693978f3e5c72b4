// Command zonemeter wires the Photon capture, framing, decoding and
// statistics layers together into a long-running process: load config,
// build the logger, build the pipeline, and drain it until SIGINT/SIGTERM.
//
// Actual packet capture is intentionally left to an external mechanism
// (spec §1, §6); this binary owns the channel capture pushes into and
// everything downstream of it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zonemeter/zonemeter/internal/capture"
	"github.com/zonemeter/zonemeter/internal/config"
	"github.com/zonemeter/zonemeter/internal/meter"
	"github.com/zonemeter/zonemeter/internal/pipeline"
	"github.com/zonemeter/zonemeter/internal/schema"
	"github.com/zonemeter/zonemeter/internal/telemetry"
	"github.com/zonemeter/zonemeter/internal/world"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              Zone Meter  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       passive Photon traffic observer       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main process logic ─────────────────────────────────────────────

func run() error {
	cfgPath := "config/zonemeter.toml"
	if p := os.Getenv("ZONEMETER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	printSection("schema")
	items, err := loadItemTable(cfg.Schema)
	if err != nil {
		return fmt.Errorf("item table: %w", err)
	}
	printOK(fmt.Sprintf("item table loaded (%d entries)", items.Len()))

	printSection("capture")
	printOK(fmt.Sprintf("filtering Photon port %d", cfg.Capture.PhotonPort))
	fmt.Println()

	// This binary opens no network interfaces and nothing in it sends on
	// this channel: it owns only the receiving end, which shutdown closes
	// (spec §1, §6).
	packets := make(chan capture.UdpPacket, cfg.Capture.QueueSize)
	src := capture.NewChanSource(packets)

	pl := pipeline.New(src, cfg.Capture.PhotonPort, items, meter.RealClock(), log,
		pipeline.WithMaxPendingFragments(cfg.Capture.MaxPendingFrags),
		pipeline.WithSubscriber(func(evt world.GameEvent) {
			log.Debug("event", zap.Int("kind", int(evt.Kind)))
		}),
	)

	ctx, stop := newSignalContext()
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		pl.Run()
	}()

	printReady("zonemeter running, press Ctrl+C to stop")
	log.Info("zonemeter started", zap.Uint16("photon_port", cfg.Capture.PhotonPort))

	<-ctx.Done()
	log.Info("shutdown signal received")

	close(packets)
	<-done
	log.Info("zonemeter stopped")
	return nil
}

// loadConfig loads cfg from path, falling back to built-in defaults when
// the file doesn't exist (no config has been provisioned yet).
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func loadItemTable(cfg config.SchemaConfig) (*schema.ItemTable, error) {
	if cfg.ItemTablePath == "" {
		return schema.DefaultItemTable()
	}
	return schema.LoadItemTable(cfg.ItemTablePath)
}

func newSignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
