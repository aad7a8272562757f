package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/ridepool/app"
	"github.com/example/ridepool/config"
	"github.com/example/ridepool/core/match"
	"github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/infra/ids"
	"github.com/example/ridepool/infra/logger"
	"github.com/example/ridepool/internal/eventbus"
)

var (
	snapshotPath string
	requestPath  string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run a single matching decision against a fleet snapshot",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "fleet snapshot JSON file")
	matchCmd.Flags().StringVar(&requestPath, "request", "", "booking request JSON file")
	_ = matchCmd.MarkFlagRequired("snapshot")
	_ = matchCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var snap model.Snapshot
	if err := readJSONFile(snapshotPath, &snap); err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var req model.BookingRequest
	if err := readJSONFile(requestPath, &req); err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	log := logger.New("match")
	provider, err := app.BuildProvider(cfg.Routing, metrics.NopSink{}, log)
	if err != nil {
		return err
	}
	bus := eventbus.New()
	defer bus.Close()

	engine, err := match.NewEngine(provider, ids.UUIDAllocator{}, metrics.NopSink{}, bus, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	result := engine.Match(ctx, req, snap, cfg.Matching)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
