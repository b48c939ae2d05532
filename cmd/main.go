package main

import (
	"cine-trivia/ingest"
	"cine-trivia/scheduler"
	"cine-trivia/storage"
	"cine-trivia/tmdb"
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// Initialize logger with timestamp
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Cine Trivia importer...")

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "./data"
	}

	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		log.Fatal("TMDB_API_KEY is required")
	}

	// Initialize storage; a failure here aborts before any work begins
	sqliteStorage := storage.NewSQLiteStorage(dataPath)
	if err := sqliteStorage.Initialize(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer sqliteStorage.Close()

	ingestCfg := ingest.DefaultConfig()
	if pages := os.Getenv("MAX_PAGES"); pages != "" {
		if n, err := strconv.Atoi(pages); err == nil && n > 0 {
			ingestCfg.MaxPages = n
		} else {
			log.Printf("Invalid MAX_PAGES '%s', using default %d", pages, ingestCfg.MaxPages)
		}
	}

	// Discovery spaces its listing and external-id calls; enrichment issues
	// many calls per title and paces itself between titles instead.
	discoveryCfg := tmdb.DefaultConfig(apiKey)
	discoveryCfg.Region = os.Getenv("TMDB_REGION")
	discoveryClient := tmdb.NewClient(discoveryCfg)

	enrichmentCfg := tmdb.DefaultConfig(apiKey)
	enrichmentCfg.CallDelay = 0
	enrichmentClient := tmdb.NewClient(enrichmentCfg)

	importJob := ingest.NewCatalogImportJob(discoveryClient, sqliteStorage, ingestCfg)
	enrichJob := ingest.NewEnrichmentJob(enrichmentClient, sqliteStorage, ingestCfg)
	pipelineJob := ingest.NewPipelineJob(importJob, enrichJob, sqliteStorage)

	runMode := os.Getenv("RUN_MODE")

	if runMode == "scheduler" {
		log.Println("Starting in scheduler mode")

		sched := scheduler.NewScheduler()
		if err := sched.AddDailyJob(pipelineJob); err != nil {
			log.Fatalf("Failed to schedule catalog pipeline: %v", err)
		}

		sched.Start()
		log.Println("Scheduler started. Catalog will be refreshed daily at 4:00 AM")

		// Run the job once at startup if specified
		if os.Getenv("RUN_AT_STARTUP") == "true" {
			log.Println("Running initial catalog refresh at startup")
			if err := sched.RunJobNow(pipelineJob.Name()); err != nil {
				log.Printf("Error running initial job: %v", err)
			}
		}

		displayDatabaseStats(sqliteStorage)

		// Set up signal handling for graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		log.Println("Application running. Press Ctrl+C to exit")

		sig := <-quit
		log.Printf("Received signal %s, shutting down...", sig)

		sched.Stop()
	} else {
		log.Println("Running in single execution mode")

		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Hour)
		defer cancel()

		if err := pipelineJob.Run(ctx); err != nil {
			log.Fatalf("Error running catalog pipeline: %v", err)
		}

		displayDatabaseStats(sqliteStorage)
	}

	log.Println("Application exiting")
}

// displayDatabaseStats shows database statistics
func displayDatabaseStats(db *storage.SQLiteStorage) {
	stats, err := db.GetStats()
	if err != nil {
		log.Printf("Error getting database stats: %v", err)
		return
	}

	log.Println("Database Statistics")
	log.Printf("Ranked movies: %d", stats["popular_movies"])
	log.Printf("Ranked TV shows: %d", stats["popular_tv"])
	log.Printf("Enriched movies: %d", stats["movie_details"])
	log.Printf("Enriched TV shows: %d", stats["tv_details"])
	log.Printf("People: %d", stats["people"])
}
