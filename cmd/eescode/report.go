package main

import (
	"fmt"
	"html/template"
	"io"
	"time"
)

type reportData struct {
	GeneratedAt time.Time
	Source      string
	Passed      int
	Results     []checkResult
}

var (
	reportFuncs = template.FuncMap{
		"statusBadge": statusBadgeClass,
		// rich text comes from the HTML styler, which escapes all code text
		"markup": func(s string) template.HTML { return template.HTML(s) },
	}
	reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplateHTML))
)

func statusBadgeClass(status checkStatus) string {
	switch status {
	case statusPassed:
		return "bg-emerald-500/10 text-emerald-200 border border-emerald-500/30"
	case statusFailed:
		return "bg-rose-500/10 text-rose-200 border border-rose-500/30"
	default:
		return "bg-slate-800 text-slate-300 border border-slate-700"
	}
}

func writeReport(w io.Writer, source string, results []checkResult) error {
	data := reportData{GeneratedAt: time.Now(), Source: source, Results: results}
	for _, r := range results {
		if r.Status == statusPassed {
			data.Passed++
		}
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>EES Code Check</title>
<script src="https://cdn.tailwindcss.com?plugins=forms,typography"></script>
</head>
<body class="bg-slate-950 text-slate-100">
  <div class="mx-auto max-w-5xl space-y-6 px-4 py-10">
    <header class="space-y-2">
      <h1 class="text-3xl font-semibold tracking-tight">EES Code Check</h1>
      <p class="text-sm text-slate-400">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} from <span class="font-mono text-slate-200">{{.Source}}</span>: {{.Passed}} of {{len .Results}} passed</p>
    </header>
    {{range .Results}}
    <article class="rounded-lg border border-slate-800 bg-slate-900/80 p-4 shadow-sm">
      <div class="flex items-start justify-between">
        <h2 class="text-lg font-semibold text-slate-100">{{.Entry.Name}}</h2>
        <span class="inline-flex items-center rounded-full px-2.5 py-1 text-xs font-medium tracking-wide {{statusBadge .Status}}">{{.Status}}</span>
      </div>
      <pre class="mt-2 whitespace-pre-wrap font-mono text-sm text-slate-300">{{.Entry.Code}}</pre>
      {{if .RichText}}
      <p class="mt-2 font-mono text-sm">{{markup .RichText}}</p>
      {{end}}
      {{if .Parts}}
      <table class="mt-2 w-full text-left text-xs">
        <tr class="text-slate-400"><th>name</th><th>type</th><th>expression</th></tr>
        {{range .Parts}}
        <tr><td>{{.Name}}</td><td>{{.Type}}</td><td class="font-mono">{{.Expression}}</td></tr>
        {{end}}
      </table>
      {{end}}
      {{if .Error}}
      <pre class="mt-2 whitespace-pre-wrap rounded border border-rose-700/40 bg-rose-950/30 p-3 text-xs text-rose-100 overflow-x-auto">{{.Error}}</pre>
      {{end}}
    </article>
    {{end}}
  </div>
</body>
</html>`
