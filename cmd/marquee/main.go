package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/marqueehq/marquee/internal/cache"
	"github.com/marqueehq/marquee/internal/catalog"
	"github.com/marqueehq/marquee/internal/config"
	"github.com/marqueehq/marquee/internal/logger"
	"github.com/marqueehq/marquee/internal/models"
	"github.com/marqueehq/marquee/internal/service"
	"github.com/marqueehq/marquee/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use env DATABASE_URL / TMDB_API_KEY")
	tagSlug := flag.String("tag", "", "Identity tag slug to generate a list for")
	ownerID := flag.Int64("owner", 1, "Owner id for the generated list")
	limit := flag.Int("limit", 12, "Number of titles to collect")
	includeAdult := flag.Bool("include-adult", false, "Include adult titles in discovery")
	language := flag.String("language", "", "Language/region hint (overrides config)")
	visibility := flag.String("visibility", models.VisibilityPublic, "List visibility: public, unlisted, or private")
	title := flag.String("title", "", "Optional list title override")
	description := flag.String("description", "", "Optional list description override")
	enqueue := flag.Bool("enqueue", false, "Enqueue the generation as a background job instead of running inline (requires REDIS_URL)")
	worker := flag.Bool("worker", false, "Run the background generation worker (requires REDIS_URL)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run migrations.
	absMigrations, err := filepath.Abs("migrations")
	if err != nil {
		absMigrations = "migrations"
	}
	if _, err := os.Stat(absMigrations); err != nil {
		if exe, e := os.Executable(); e == nil {
			absMigrations = filepath.Join(filepath.Dir(exe), "migrations")
		}
	}
	if err := store.RunMigrations(cfg.DatabaseURL, "file://"+absMigrations); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	// Connect to Redis if REDIS_URL is configured.
	var rds *cache.Redis
	var appStore store.Store = pg
	if cfg.RedisURL != "" {
		rds, err = cache.New(cfg.RedisURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "redis: %v\n", err)
			os.Exit(1)
		}
		defer rds.Close()

		if err := rds.Ping(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "redis ping: %v\n", err)
			os.Exit(1)
		}

		appStore = store.NewCachedStore(pg, rds, log)
		log.Info("redis connected (caching enabled)")
	} else {
		log.Info("redis disabled (REDIS_URL not set)")
	}

	tmdb, err := catalog.NewClient(cfg.TMDBAPIKey, catalog.ClientOptions{
		BaseURL:  cfg.TMDBBaseURL,
		Language: cfg.TMDBLanguage,
		Timeout:  cfg.TMDBTimeout,
		Logger:   log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmdb: %v\n", err)
		os.Exit(1)
	}

	generator := service.NewGenerator(appStore, tmdb, log)

	switch {
	case *worker:
		if rds == nil {
			fmt.Fprintln(os.Stderr, "worker mode requires REDIS_URL")
			os.Exit(1)
		}
		runGenerationWorker(ctx, rds, generator, log)

	case *enqueue:
		if rds == nil {
			fmt.Fprintln(os.Stderr, "enqueue mode requires REDIS_URL")
			os.Exit(1)
		}
		if *tagSlug == "" {
			fmt.Fprintln(os.Stderr, "enqueue mode requires -tag")
			os.Exit(1)
		}
		job := cache.GenerationJob{
			TagSlug:      *tagSlug,
			OwnerID:      *ownerID,
			Limit:        *limit,
			IncludeAdult: *includeAdult,
			Language:     *language,
			Visibility:   *visibility,
		}
		if err := cache.Enqueue(ctx, rds, cache.GenerationQueue, job); err != nil {
			fmt.Fprintf(os.Stderr, "enqueue: %v\n", err)
			os.Exit(1)
		}
		log.Info("generation job enqueued", "tag", *tagSlug)

	case *tagSlug != "":
		list, err := generator.Generate(ctx, service.GenerateOptions{
			TagSlug:      *tagSlug,
			OwnerID:      *ownerID,
			Limit:        *limit,
			IncludeAdult: *includeAdult,
			Language:     *language,
			Visibility:   *visibility,
			Title:        *title,
			Description:  *description,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate: %v\n", err)
			os.Exit(1)
		}
		entries, err := appStore.ListEntries(ctx, list.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list entries: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s (%s): %d items\n", list.Title, list.Slug, len(entries))
		for _, e := range entries {
			fmt.Printf("%3d. %s\n", e.Position, e.Item.Title)
		}

	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -tag <slug>, -enqueue, or -worker")
		os.Exit(1)
	}
}

// runGenerationWorker continuously dequeues generation jobs from Redis and
// processes them. A per-tag lock skips jobs whose tag is already being
// generated. It stops when ctx is cancelled (graceful shutdown).
func runGenerationWorker(ctx context.Context, rds *cache.Redis, generator *service.Generator, log *logger.Logger) {
	log.Info("generation worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info("generation worker stopping")
			return
		default:
		}

		job, err := cache.Dequeue(ctx, rds, cache.GenerationQueue, 5*time.Second)
		if err != nil {
			log.Error("dequeue failed", "err", err)
			time.Sleep(2 * time.Second)
			continue
		}
		if job == nil {
			continue // timeout, loop back to check ctx
		}

		unlock, err := cache.TryLock(ctx, rds, cache.GenerationLockKey(job.TagSlug), 5*time.Minute)
		if err != nil {
			if errors.Is(err, cache.ErrLocked) {
				log.Info("generation already in progress, skipping", "tag", job.TagSlug)
				continue
			}
			log.Error("lock failed", "tag", job.TagSlug, "err", err)
			continue
		}

		limit := job.Limit
		if limit <= 0 {
			limit = 12
		}
		log.Info("processing generation job", "tag", job.TagSlug, "owner", job.OwnerID, "limit", limit)
		_, err = generator.Generate(ctx, service.GenerateOptions{
			TagSlug:      job.TagSlug,
			OwnerID:      job.OwnerID,
			Limit:        limit,
			IncludeAdult: job.IncludeAdult,
			Language:     job.Language,
			Visibility:   job.Visibility,
		})
		unlock()
		if err != nil {
			log.Error("generation failed", "tag", job.TagSlug, "err", err)
		}
	}
}
