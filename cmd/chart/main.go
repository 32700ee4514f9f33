package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"orderbook-pricechart/internal/chart"
	"orderbook-pricechart/internal/config"
	"orderbook-pricechart/internal/domain"
	"orderbook-pricechart/internal/history"
	"orderbook-pricechart/internal/normalization"
	"orderbook-pricechart/internal/reporting"
	"orderbook-pricechart/internal/storage"
	chstore "orderbook-pricechart/internal/storage/clickhouse"
	pgstore "orderbook-pricechart/internal/storage/postgres"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Optional YAML config file")
	input := flag.String("input", "", "Price history CSV path (default price_history.csv)")
	output := flag.String("output", "", "Output PNG path (default price_chart.png)")
	dpi := flag.Int("dpi", 0, "Raster resolution (default 150)")
	summary := flag.Bool("summary", false, "Also write PRICE_SUMMARY.md and PRICE_SUMMARY.csv")
	summaryDir := flag.String("summary-dir", "", "Directory for summary files (default .)")
	postgresDSN := flag.String("postgres-dsn", "", "Read history from PostgreSQL instead of CSV")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "Read history from ClickHouse instead of CSV")
	runID := flag.String("run-id", "", "Run identifier when reading from a store")
	openChart := flag.Bool("open", false, "Open the rendered chart with the OS viewer")
	flag.Parse()

	logger := log.New(os.Stdout, "[chart] ", log.LstdFlags)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *input, *output, *dpi, *summary, *summaryDir, *postgresDSN, *clickhouseDSN, *runID)

	ctx := context.Background()

	// Load observations
	points, source, err := loadHistory(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading price history: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Loaded %d observations from %s", len(points), source)

	// Rescale into chart units
	series, err := normalization.BuildSeries(points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error normalizing history: %v\n", err)
		os.Exit(1)
	}

	// Render
	renderer := chart.NewRenderer(chart.Options{
		WidthInches:  cfg.Chart.WidthInches,
		HeightInches: cfg.Chart.HeightInches,
		DPI:          cfg.Chart.DPI,
	})
	if err := renderer.RenderFile(series, cfg.Chart.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved chart to %s\n", cfg.Chart.Output)

	// Summary report
	if cfg.Summary.Enabled {
		if err := writeSummary(cfg, points, source); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved summary to %s\n", filepath.Join(cfg.Summary.Dir, "PRICE_SUMMARY.md"))
	}

	if *openChart {
		if err := openFile(cfg.Chart.Output); err != nil {
			logger.Printf("Could not open chart viewer: %v", err)
		}
	}
}

// loadConfig loads the YAML config or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// applyFlagOverrides lets CLI flags win over config file values.
func applyFlagOverrides(cfg *config.Config, input, output string, dpi int, summary bool, summaryDir, postgresDSN, clickhouseDSN, runID string) {
	if input != "" {
		cfg.Chart.Input = input
	}
	if output != "" {
		cfg.Chart.Output = output
	}
	if dpi != 0 {
		cfg.Chart.DPI = dpi
	}
	if summary {
		cfg.Summary.Enabled = true
	}
	if summaryDir != "" {
		cfg.Summary.Dir = summaryDir
	}
	if postgresDSN != "" {
		cfg.Storage.PostgresDSN = postgresDSN
	}
	if clickhouseDSN != "" {
		cfg.Storage.ClickHouseDSN = clickhouseDSN
	}
	if runID != "" {
		cfg.Storage.RunID = runID
	}
}

// loadHistory reads observations from the configured store, or from CSV when
// no run ID is set. Returns the points and a human-readable source label.
func loadHistory(ctx context.Context, cfg *config.Config, logger *log.Logger) ([]*domain.PricePoint, string, error) {
	if cfg.Storage.RunID == "" {
		points, err := history.ReadFile(cfg.Chart.Input)
		return points, cfg.Chart.Input, err
	}

	store, label, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, "", err
	}
	defer cleanup()

	points, err := store.GetByRunID(ctx, cfg.Storage.RunID)
	if err != nil {
		return nil, "", fmt.Errorf("load run %q: %w", cfg.Storage.RunID, err)
	}
	return points, fmt.Sprintf("%s:%s", label, cfg.Storage.RunID), nil
}

// openStore connects to whichever database the config names.
// ClickHouse wins when both DSNs are set (it holds the analytical copy).
func openStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.PriceHistoryStore, string, func(), error) {
	if cfg.Storage.ClickHouseDSN != "" {
		conn, err := chstore.NewConn(ctx, cfg.Storage.ClickHouseDSN)
		if err != nil {
			return nil, "", nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		logger.Printf("Reading history from ClickHouse")
		return chstore.NewPriceHistoryStore(conn), "clickhouse", func() { conn.Close() }, nil
	}

	if cfg.Storage.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, "", nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Printf("Reading history from PostgreSQL")
		return pgstore.NewPriceHistoryStore(pool), "postgres", pool.Close, nil
	}

	return nil, "", nil, fmt.Errorf("run-id %q set but no database DSN given", cfg.Storage.RunID)
}

// writeSummary renders the markdown and CSV summaries next to the chart.
func writeSummary(cfg *config.Config, points []*domain.PricePoint, source string) error {
	if err := os.MkdirAll(cfg.Summary.Dir, 0o755); err != nil {
		return fmt.Errorf("create summary dir: %w", err)
	}

	report := reporting.NewGenerator().Generate(points, source, cfg.Chart.Output)

	mdPath := filepath.Join(cfg.Summary.Dir, "PRICE_SUMMARY.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", mdPath, err)
	}

	csvPath := filepath.Join(cfg.Summary.Dir, "PRICE_SUMMARY.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	return nil
}

// openFile hands the rendered PNG to the platform's default viewer.
func openFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
