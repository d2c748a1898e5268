package main

import (
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/geniass/price-tracker/pkg/history"
	"github.com/geniass/price-tracker/pkg/web"
)

const chartTitle = "Price history"

func writeChart(store *history.Store, path string, now time.Time) error {
	records, err := store.Records()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.Warnf("No prices in %s yet, the chart will be empty", store.Path)
	}

	err = renderToFile(path, func(w io.Writer) error {
		return web.RenderChart(w, web.ChartContext{
			BaseContext: web.BaseContext{Title: chartTitle, LastUpdated: now},
			Chart:       web.NewChart(records),
		})
	})
	if err != nil {
		return err
	}

	log.WithField("file", path).Info("Chart written")
	return nil
}

func renderToFile(path string, renderFunc func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := renderFunc(f); err != nil {
		return err
	}
	return f.Close()
}

func chartHandler(store *history.Store) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		records, err := store.Records()
		if err != nil {
			log.WithError(err).Error("Failed to read history")
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}

		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := web.RenderChart(rw, web.ChartContext{
			BaseContext: web.BaseContext{Title: chartTitle, LastUpdated: time.Now()},
			Chart:       web.NewChart(records),
		}); err != nil {
			log.WithError(err).Error("Failed to render chart")
			rw.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
}

func serve(addr string, store *history.Store) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", chartHandler(store))
	return http.ListenAndServe(addr, mux)
}
