package report

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/marketedgeglobal/marketintelligence/internal/ingest"
)

//go:embed templates/report.md.tmpl templates/report.html.tmpl
var templateFS embed.FS

// Renderer produces the Markdown and HTML renditions of a Report. It only
// reads the report; descriptions may contain markup from RSS-relayed sources,
// so the HTML output sanitizes them and the Markdown output flattens them to
// plain text.
type Renderer struct {
	md     *texttemplate.Template
	html   *htmltemplate.Template
	policy *bluemonday.Policy
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{policy: bluemonday.UGCPolicy()}

	md, err := texttemplate.New("report.md.tmpl").Funcs(texttemplate.FuncMap{
		"plain":   plainText,
		"fmtDate": fmtDate,
	}).ParseFS(templateFS, "templates/report.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse markdown template: %w", err)
	}
	r.md = md

	html, err := htmltemplate.New("report.html.tmpl").Funcs(htmltemplate.FuncMap{
		"sanitize": r.sanitize,
		"fmtDate":  fmtDate,
	}).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	r.html = html

	return r, nil
}

// Markdown renders the country/sector/type grouped report.
func (r *Renderer) Markdown(rep *Report) (string, error) {
	var buf strings.Builder
	if err := r.md.Execute(&buf, rep); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the priority-banded report.
func (r *Renderer) HTML(rep *Report) (string, error) {
	var buf strings.Builder
	if err := r.html.Execute(&buf, rep); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) sanitize(html string) htmltemplate.HTML {
	return htmltemplate.HTML(r.policy.Sanitize(html))
}

func plainText(html string) string {
	return ingest.TruncateText(ingest.HTMLToText(html), 400)
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
