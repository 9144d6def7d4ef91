package core

import (
	"context"
	"fmt"
	"os"

	"coach/config"
	"coach/pkg/ai"
	"coach/pkg/export"
	"coach/pkg/plan"
	"coach/pkg/s3client"
	"coach/pkg/search"
	"coach/pkg/strava"

	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"
)

func Bootstrap(ctx context.Context, config config.Config) error {
	log.Info("🦾 Bootstrapping...")

	// plan store
	Store = plan.NewStore(config.Store.SnapshotPath)
	if err := Store.Load(); err != nil {
		log.Warnf("fail to load plan store snapshot: %v", err)
	} else if config.Store.SnapshotPath != "" {
		log.Infof("plan store loaded: %v record(s)", Store.Len())
	}

	// outbound clients
	stravaClient, err := strava.New(config.Strava)
	if err != nil {
		return fmt.Errorf("failed to init strava client: %w", err)
	}
	log.Info("strava client registered")

	searchClient, err := search.New(config.Search)
	if err != nil {
		return fmt.Errorf("failed to init search client: %w", err)
	}
	log.Info("search client registered")

	// optional S3 archive for exported plans
	var s3Client *s3.S3
	if config.Export.S3Bucket != "" {
		s3Client, err = s3client.Init(os.Getenv("AWS_ACCESS_KEY"), os.Getenv("AWS_SECRET_KEY"), config.Export.S3Region)
		if err != nil {
			return fmt.Errorf("failed to init s3 client: %w", err)
		}
		S3Client = s3Client
		S3Bucket = config.Export.S3Bucket
		log.Infof("s3 archive registered (bucket '%v')", config.Export.S3Bucket)
	}
	exporter := export.NewExporter(config.Export.OutputDir, s3Client, config.Export.S3Bucket)

	// planner agent
	belt := ai.NewPlannerBelt(stravaClient, searchClient, exporter)
	Planner, err = ai.NewPlannerAgent(config.Planner, belt)
	if err != nil {
		return fmt.Errorf("failed to register planner agent: %w", err)
	}
	log.Infof("planner agent registered (model '%v')", config.Planner.Model)

	return nil
}
