package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"orderbook-pricechart/internal/history"
	chstore "orderbook-pricechart/internal/storage/clickhouse"
	pgstore "orderbook-pricechart/internal/storage/postgres"
)

func main() {
	// Parse flags
	input := flag.String("input", "price_history.csv", "Price history CSV path")
	runID := flag.String("run-id", "", "Run identifier to store the history under (required)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	flag.Parse()

	logger := log.New(os.Stdout, "[ingest] ", log.LstdFlags)

	// Validate flags
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "Error: --run-id is required")
		os.Exit(1)
	}
	if *postgresDSN == "" && *clickhouseDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of --postgres-dsn or --clickhouse-dsn is required")
		os.Exit(1)
	}

	ctx := context.Background()

	points, err := history.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading price history: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Read %d observations from %s", len(points), *input)

	if *postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := pgstore.NewPriceHistoryStore(pool)
		if err := store.InsertBulk(ctx, *runID, points); err != nil {
			fmt.Fprintf(os.Stderr, "Error inserting into postgres: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("Stored run %q in PostgreSQL", *runID)
	}

	if *clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, *clickhouseDSN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to clickhouse: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close()

		store := chstore.NewPriceHistoryStore(conn)
		if err := store.InsertBulk(ctx, *runID, points); err != nil {
			fmt.Fprintf(os.Stderr, "Error inserting into clickhouse: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("Stored run %q in ClickHouse", *runID)
	}

	fmt.Printf("Ingested %d observations as run %q\n", len(points), *runID)
}
