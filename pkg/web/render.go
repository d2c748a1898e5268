package web

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates
var templatesFs embed.FS

type BaseContext struct {
	Title       string
	LastUpdated time.Time
}

func (c BaseContext) FormattedLastUpdated() string {
	return c.LastUpdated.Local().Format("2006-01-02T15:04:05 MST")
}

type ChartContext struct {
	BaseContext
	Chart
}

func RenderChart(w io.Writer, c ChartContext) error {
	t, err := template.ParseFS(templatesFs, "templates/chart.html.tpl")
	if err != nil {
		return err
	}
	t, err = t.ParseFS(templatesFs, "templates/common/*")
	if err != nil {
		return err
	}

	return t.Execute(w, c)
}
