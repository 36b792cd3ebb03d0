package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jessevdk/go-flags"

	"github.com/marketedgeglobal/marketintelligence/internal/config"
	"github.com/marketedgeglobal/marketintelligence/internal/models"
	"github.com/marketedgeglobal/marketintelligence/internal/report"
)

type options struct {
	Input       string `short:"i" long:"input" description:"Path to input JSON document"`
	PayloadJSON string `long:"payload-json" description:"Inline JSON payload (takes precedence over --input)"`
	Config      string `short:"c" long:"config" description:"Path to YAML config override"`
	OutputDir   string `short:"o" long:"output-dir" default:"reports" description:"Output directory for generated reports"`
	Format      string `short:"f" long:"format" choice:"markdown" choice:"html" choice:"both" default:"both" description:"Report format to generate"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	doc, err := readInput(opts)
	if err != nil {
		log.Fatalf("Input error: %v", err)
	}

	now := time.Now().UTC()
	rep, recordErrs, err := report.Generate(doc, now, cfg)
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}

	for _, rerr := range recordErrs {
		log.Printf("Skipped: %v", rerr)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		log.Fatalf("Renderer setup failed: %v", err)
	}

	stamp := now.Format("20060102")
	var written []string

	if opts.Format == "markdown" || opts.Format == "both" {
		path := filepath.Join(opts.OutputDir, "report_"+stamp+".md")
		md, err := renderer.Markdown(rep)
		if err != nil {
			log.Fatalf("Markdown rendering failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		written = append(written, path)
	}

	if opts.Format == "html" || opts.Format == "both" {
		path := filepath.Join(opts.OutputDir, "report_"+stamp+".html")
		html, err := renderer.HTML(rep)
		if err != nil {
			log.Fatalf("HTML rendering failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		marker := filepath.Join(opts.OutputDir, "latest-report.txt")
		if err := os.WriteFile(marker, []byte(written[len(written)-1]+"\n"), 0o644); err != nil {
			log.Printf("Failed to update latest marker: %v", err)
		}
	}

	printSummary(rep)

	for _, path := range written {
		log.Printf("Generated report: %s", path)
	}
	log.Printf("Opportunities included: %d, records skipped: %d", rep.TotalCount(), len(recordErrs))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.LoadFile(path)
}

func readInput(opts options) ([]byte, error) {
	if opts.PayloadJSON != "" {
		return []byte(opts.PayloadJSON), nil
	}
	if opts.Input != "" {
		return os.ReadFile(opts.Input)
	}
	return nil, &flags.Error{Type: flags.ErrRequired, Message: "either --input or --payload-json is required"}
}

func printSummary(rep *report.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Country", "Opportunities", "High", "Medium", "Low"})

	for _, country := range rep.Countries() {
		bucket := rep.ByCountry(country)
		var high, medium, low int
		for _, opp := range bucket {
			switch opp.PriorityBand {
			case models.BandHigh:
				high++
			case models.BandMedium:
				medium++
			case models.BandLow:
				low++
			}
		}
		t.AppendRow(table.Row{string(country), len(bucket), high, medium, low})
	}
	t.AppendFooter(table.Row{"Total", rep.TotalCount(), "", "", ""})
	t.Render()
}
