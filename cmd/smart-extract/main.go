package main

import (
	"context"
	"flag"
	"log"
	"os"

	"smart-extract/config"
	"smart-extract/extract"
	"smart-extract/gcs"
	"smart-extract/history"
	"smart-extract/logging"
	"smart-extract/notify"
	"smart-extract/smartrecruiters"
	"smart-extract/utils"
)

func main() {
	var cfgFile, reportID string
	flag.StringVar(&cfgFile, "config", "config.yaml", "Config file, relative to project root")
	flag.StringVar(&reportID, "report", "", "Run a single report id instead of the configured list")
	flag.Parse()

	utils.LogToFile("extract.log")

	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed %s: %v", cfgFile, err)
	}
	if reportID != "" {
		cfg.SmartRecruiters.Reports = []string{reportID}
	}
	if cfg.SmartRecruiters.Token == "" {
		log.Fatal("Missing SmartRecruiters token (config or SMARTTOKEN)")
	}
	if cfg.GCS.Bucket == "" {
		log.Fatal("Missing GCS bucket (config or GCS_BUCKET_NAME)")
	}
	if len(cfg.SmartRecruiters.Reports) == 0 {
		log.Fatal("No report ids configured (config or REPORT_IDS)")
	}

	os.MkdirAll(cfg.Server.LogDir, 0755)
	reportLogger := logging.NewLoggerOrDie(cfg.Server.LogDir, "report.log")
	defer reportLogger.Close()

	ctx := context.Background()
	uploader, err := gcs.NewUploader(ctx, cfg.GCS.Bucket, cfg.GCS.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed GCS client: %v", err)
	}
	defer uploader.Close()

	var store *history.Store
	if cfg.History.Backend != "" && cfg.History.Backend != "none" {
		store, err = history.Open(cfg.History.Backend, cfg.History.DSN)
		if err != nil {
			log.Fatalf("Failed history store: %v", err)
		}
		defer store.Close()
	}

	var mailer *notify.Mailer
	if cfg.Mail.Enabled {
		mailer = &notify.Mailer{
			Host: cfg.Mail.Host,
			Port: cfg.Mail.Port,
			From: cfg.Mail.From,
			To:   cfg.Mail.To,
		}
	}

	p := &extract.Pipeline{
		Client:   smartrecruiters.NewClient(cfg.SmartRecruiters.BaseURL, cfg.SmartRecruiters.Token),
		Uploader: uploader,
		Store:    store,
		Mailer:   mailer,
		Cfg:      cfg,
		Logger:   reportLogger,
	}

	log.Printf("Extracting %d report(s) to bucket %s ...", len(cfg.SmartRecruiters.Reports), cfg.GCS.Bucket)
	if err := p.RunAll(ctx); err != nil {
		log.Fatalf("Extraction aborted: %v", err)
	}
	log.Println("Extraction finished.")
}
