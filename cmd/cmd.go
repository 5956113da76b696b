package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/xhad/ltcc/internal/types"
	cfgPkg "github.com/xhad/ltcc/pkg/config"
	"github.com/xhad/ltcc/pkg/export"
	"github.com/xhad/ltcc/pkg/logging"
	"github.com/xhad/ltcc/pkg/processor"
	"github.com/xhad/ltcc/pkg/scraper"
	"github.com/xhad/ltcc/pkg/script"
	"github.com/xhad/ltcc/pkg/store"
	"go.uber.org/zap"
)

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func newLogger(cfg cfgPkg.Logging) (*zap.Logger, func(), error) {
	logger, closer, err := logging.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return logger, func() {
		_ = logger.Sync()
		closer.Close()
	}, nil
}

func runMakeWget(opts WgetOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, func(c *cfgPkg.Config) {
		if opts.URL != "" {
			c.Collector.URL = opts.URL
		}
		if opts.DataDir != "" {
			c.Collector.DataDir = opts.DataDir
		}
	})
	if err != nil {
		return err
	}

	logger, done, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var collector types.LinkCollector = scraper.NewWithConfig(scraper.ScraperConfig{
		IndexURL:  cfg.Collector.URL,
		RateLimit: cfg.Collector.RateLimit,
		Timeout:   time.Duration(cfg.Collector.TimeoutSec) * time.Second,
		UserAgent: cfg.Collector.UserAgent,
		Logger:    logger,
	})

	color.Blue("\nCollecting report links from %s\n", cfg.Collector.URL)
	spinner := getSpinner(" Fetching index page...")
	links, err := collector.CollectLinks(ctx, cfg.Collector.URL)
	spinner.Finish()
	if err != nil {
		return fmt.Errorf("failed to collect links: %w", err)
	}
	color.Green("\n✓ Found %d report links\n", len(links))

	if err := script.WriteFile(cfg.Collector.ScriptName, links, cfg.Collector.DataDir); err != nil {
		return err
	}
	logger.Info("wrote download script",
		zap.String("script", cfg.Collector.ScriptName),
		zap.String("data_dir", cfg.Collector.DataDir),
		zap.Int("links", len(links)))
	color.Green("✓ Wrote %s (downloads into %s)\n", cfg.Collector.ScriptName, cfg.Collector.DataDir)

	return nil
}

func runParseXML(opts ParseOptions) error {
	cfg, err := loadConfig(opts.ConfigPath, func(c *cfgPkg.Config) {
		if opts.Dir != "" {
			c.Collector.DataDir = opts.Dir
		}
		if opts.DBUrl != "" {
			c.Database.URL = opts.DBUrl
		}
		if opts.Workers != 0 {
			c.Extractor.Workers = opts.Workers
		}
	})
	if err != nil {
		return err
	}

	logger, done, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer done()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bar *progressbar.ProgressBar
	proc, err := processor.NewWithConfig(processor.ProcessorConfig{
		Dir:           cfg.Collector.DataDir,
		MinBoldNodes:  cfg.Extractor.MinBoldNodes,
		Workers:       cfg.Extractor.Workers,
		LabelVariants: cfg.Extractor.LabelVariants,
		Logger:        logger,
		OnProgress: func(string) {
			bar.Add(1)
		},
	})
	if err != nil {
		return err
	}

	paths, err := proc.ListDocuments()
	if err != nil {
		return err
	}

	color.Blue("\nParsing %d documents in %s\n", len(paths), cfg.Collector.DataDir)
	bar = getProgressBar(len(paths), " Parsing documents")

	records, err := proc.Process(ctx)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("failed to parse documents: %w", err)
	}
	color.Green("\n✓ Parsed %d documents\n", len(records))

	if err := export.WriteCSVFile(opts.OutName, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.OutName, err)
	}
	color.Green("✓ Wrote %s\n", opts.OutName)

	if cfg.Database.URL == "" {
		return nil
	}

	var recordStore types.RecordStore
	recordStore, err = store.NewWithConfig(ctx, store.StoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		BatchSize:  cfg.Database.BatchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	defer recordStore.Close()

	if err := recordStore.Store(ctx, records); err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}
	logger.Info("stored records", zap.String("table", cfg.Database.TableName), zap.Int("count", len(records)))
	color.Green("✓ Stored %d records in %s\n", len(records), cfg.Database.TableName)

	return nil
}
