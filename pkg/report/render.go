// SPDX-FileCopyrightText: 2026 Panoptes contributors
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/panoptes-k8s/panoptes/pkg/rule"
)

const (
	tmplReportName = "report"
	tmplReportPath = "templates/html/report.html"
	tmplStylesPath = "templates/html/_styles.tpl"
)

var (
	//go:embed templates/html/*
	files embed.FS
)

// HTMLRenderer renders Panoptes reports in html format.
type HTMLRenderer struct {
	templates map[string]*template.Template
}

// NewHTMLRenderer creates a HTMLRenderer.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	convTimeFunc := func(time time.Time) string {
		return time.Format("01-02-2006")
	}
	yamlFormat := func(m map[string]any) string {
		yaml, err := yaml.Marshal(m)
		if err != nil {
			return err.Error()
		}
		return string(yaml)
	}
	templates := make(map[string]*template.Template)

	parsedReport, err := template.New(tmplReportName+".html").Funcs(template.FuncMap{
		"getStatuses":        rule.Statuses,
		"statusIcon":         rule.StatusIcon,
		"statusDescription":  rule.StatusDescription,
		"time":               convTimeFunc,
		"yamlFormat":         yamlFormat,
		"rulesetSummaryText": rulesetSummaryText,
		"rulesWithStatus":    rulesWithStatus,
		"sortedMapKeys":      sortedKeys[string],
	}).ParseFS(files, tmplReportPath, tmplStylesPath)
	if err != nil {
		return nil, err
	}
	templates[tmplReportName] = parsedReport

	return &HTMLRenderer{
		templates: templates,
	}, nil
}

// Render writes a Panoptes report in html format into the passed writer.
func (r *HTMLRenderer) Render(w io.Writer, report any) error {
	switch rep := report.(type) {
	case *Report:
		return r.templates[tmplReportName].Execute(w, rep)
	default:
		return fmt.Errorf("unsupported report type: %T", report)
	}
}
