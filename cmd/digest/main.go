package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/drewk/recruiting-copilot/internal/analysis"
	"github.com/drewk/recruiting-copilot/internal/ashby"
	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/digest"
	"github.com/drewk/recruiting-copilot/internal/domain"
	"github.com/drewk/recruiting-copilot/internal/gem"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/drewk/recruiting-copilot/internal/recommend"
	"github.com/drewk/recruiting-copilot/internal/repository"
	"github.com/drewk/recruiting-copilot/internal/trends"
)

// The digest job is meant to run once a day from cron: refresh the sourcing
// snapshot, analyze the pipeline, persist today's recommendations and email
// the brief.
func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "copilot-digest",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	dryRun := flag.Bool("dry-run", false, "Render the digest to stdout instead of sending it")
	skipGem := flag.Bool("skip-gem", false, "Skip refreshing the Gem sourcing snapshot")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	appLogger.WithFields(logger.Fields{
		"dry_run":  *dryRun,
		"skip_gem": *skipGem,
	}).Info("Starting daily digest run")

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	snapshotRepo := repository.NewSnapshotRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Refresh the sourcing snapshot from Gem
	if !*skipGem {
		if cfg.Gem.APIKey == "" {
			appLogger.Warn("No Gem API key configured, skipping sourcing refresh")
		} else {
			gemClient := gem.NewClient(&cfg.Gem, cfg.Pipeline.SequenceRoles, cfg.Pipeline.SequenceSenders)
			stats, err := gemClient.GetOutreachStats(ctx)
			if err != nil {
				appLogger.WithError(err).Warn("Failed to refresh Gem stats, continuing with stored data")
			} else {
				today := time.Now().UTC().Format(domain.DateLayout)
				if _, err := snapshotRepo.Upsert(ctx, today, stats); err != nil {
					appLogger.WithError(err).Warn("Failed to store Gem snapshot")
				}
			}
		}
	}

	// Analyze the pipeline
	ashbyClient := ashby.NewClient(&cfg.Ashby, cfg.Pipeline.ActiveRoles)
	analyzer := analysis.NewAnalyzer(ashbyClient, &cfg.Pipeline, appLogger)

	snapshot, err := analyzer.Analyze(ctx)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to analyze pipeline")
	}

	// Persist today's recommendations
	trendService := trends.NewService(snapshotRepo)
	recommendService := recommend.NewService(
		recommend.NewEngine(&cfg.Pipeline),
		snapshotRepo,
		trendService,
		recommendationRepo,
		appLogger,
	)

	saved, err := recommendService.SaveDaily(ctx, snapshot)
	if err != nil {
		appLogger.WithError(err).Warn("Failed to save recommendations")
	} else {
		appLogger.WithFields(logger.Fields{"count": saved}).Info("Recommendations saved")
	}

	// Render and deliver the digest
	renderer := digest.NewRenderer(cfg.Pipeline.WeeklyCapacity)

	if *dryRun {
		digestService := digest.NewService(renderer, nil, recommendService, appLogger)
		msg, err := digestService.Render(ctx, snapshot)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to render digest")
		}
		fmt.Println(msg.Subject)
		fmt.Println()
		fmt.Println(msg.Text)
		return
	}

	digestService := digest.NewService(renderer, digest.NewSender(cfg.Email), recommendService, appLogger)
	emailID, err := digestService.SendDaily(ctx, snapshot)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to send digest")
	}

	appLogger.WithFields(logger.Fields{"email_id": emailID}).Info("Digest sent")
}
