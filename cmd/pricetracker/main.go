package main

import (
	"os"
	"time"

	cli "github.com/jawher/mow.cli"
	log "github.com/sirupsen/logrus"

	"github.com/geniass/price-tracker/pkg/catalog"
	"github.com/geniass/price-tracker/pkg/config"
	"github.com/geniass/price-tracker/pkg/extract"
	"github.com/geniass/price-tracker/pkg/history"
	"github.com/geniass/price-tracker/pkg/scraper"
	"github.com/geniass/price-tracker/pkg/tracker"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()

	app := cli.App("pricetracker", "Record today's price of every product in a catalog")
	logLevel := app.StringOpt("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	app.Before = func() {
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
		log.SetLevel(level)
	}

	app.Command("run", "fetch prices for products not yet recorded today and append them to the history", func(cmd *cli.Cmd) {
		catalogPath := cmd.StringOpt("catalog", cfg.CatalogPath, "csv file with product,url rows")
		historyPath := cmd.StringOpt("history", cfg.HistoryPath, "csv file prices are appended to")
		strict := cmd.BoolOpt("strict", cfg.Strict, "abort the whole run, writing nothing, when one product fails")
		chart := cmd.BoolOpt("chart", false, "render the price chart after the run")
		chartPath := cmd.StringOpt("output", cfg.ChartPath, "html file the chart is written to")

		cmd.Action = func() {
			entries, err := catalog.Load(*catalogPath)
			if err != nil {
				log.Fatal(err)
			}
			log.Infof("Loaded %d products from %s", len(entries), *catalogPath)

			store := history.NewStore(*historyPath, cfg.LegacyEmptyHistory)
			t := tracker.Tracker{
				Fetcher: scraper.NewScraper(scraper.Options{
					UserAgent: cfg.UserAgent,
					CacheDir:  cfg.CacheDir,
					Timeout:   cfg.Timeout,
					Delay:     cfg.Delay,
				}),
				Extractor: extract.Default,
				History:   store,
				Strict:    *strict,
			}

			summary, err := t.Run(entries)
			if err != nil {
				log.Fatal(err)
			}
			log.WithFields(log.Fields{
				"checked":    summary.Checked,
				"duplicates": summary.Duplicates,
				"no_price":   summary.NoPrice,
				"failed":     summary.Failed,
				"appended":   len(summary.Appended),
			}).Infof("Run finished, history saved to %s", *historyPath)

			if *chart {
				if err := writeChart(store, *chartPath, time.Now()); err != nil {
					log.Fatal(err)
				}
			}
		}
	})

	app.Command("chart", "render the price history as an html chart", func(cmd *cli.Cmd) {
		historyPath := cmd.StringOpt("history", cfg.HistoryPath, "csv file with recorded prices")
		chartPath := cmd.StringOpt("output", cfg.ChartPath, "html file the chart is written to")

		cmd.Action = func() {
			store := history.NewStore(*historyPath, cfg.LegacyEmptyHistory)
			if err := writeChart(store, *chartPath, time.Now()); err != nil {
				log.Fatal(err)
			}
		}
	})

	app.Command("serve", "serve the price chart over http, re-reading the history on every request", func(cmd *cli.Cmd) {
		historyPath := cmd.StringOpt("history", cfg.HistoryPath, "csv file with recorded prices")
		addr := cmd.StringOpt("addr", cfg.ServeAddr, "address to listen on")

		cmd.Action = func() {
			store := history.NewStore(*historyPath, cfg.LegacyEmptyHistory)
			log.Infof("Serving price chart on %s", *addr)
			if err := serve(*addr, store); err != nil {
				log.Fatal(err)
			}
		}
	})

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
