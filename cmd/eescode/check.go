package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eescode/eescode/pkg/analyzer"
	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/splitter"
	v "github.com/eescode/eescode/pkg/validator"
	"gopkg.in/yaml.v3"
)

const (
	modeExpression = "expression"
	modeSplit      = "split"
)

type batchEntry struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
	Mode string `yaml:"mode,omitempty"`
	// Fails marks entries that are expected to be rejected.
	Fails bool `yaml:"fails,omitempty"`
}

func (e batchEntry) Validate() error {
	return v.All(
		v.NotEmpty(e.Name, "name"),
		v.MatchesAllowed(e.Mode, []string{"", modeExpression, modeSplit}, "mode of "+e.Name),
	)
}

type batchFile struct {
	Entries []batchEntry `yaml:"entries"`
}

func (b *batchFile) Validate() error {
	names := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		names[i] = e.Name
	}
	return v.All(
		v.Each(b.Entries),
		v.NoDuplicates(names, "entry names"),
	)
}

func loadBatch(path string) (*batchFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var batch batchFile
	if err := dec.Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &batch, nil
}

type checkStatus string

const (
	statusPassed checkStatus = "passed"
	statusFailed checkStatus = "failed"
)

type checkResult struct {
	Entry  batchEntry
	Status checkStatus
	// RichText is the HTML rendering of a parsed expression entry.
	RichText string
	Parts    []splitter.Part
	Error    string
}

// runCheck runs every entry of a batch file. It fails if any entry does not
// behave as declared; the results are returned either way.
func runCheck(a *analyzer.Analyzer, path string, styler ast.Styler) ([]checkResult, error) {
	batch, err := loadBatch(path)
	if err != nil {
		return nil, err
	}

	var results []checkResult
	failed := 0
	for _, e := range batch.Entries {
		res := checkResult{Entry: e, Status: statusPassed}
		var err error
		if e.Mode == modeSplit {
			res.Parts, err = a.GetCodeParts(e.Code)
		} else {
			var line *ast.Line
			if line, err = a.ParseString(e.Code); line != nil {
				res.RichText = ast.RichText(line, styler)
			}
		}
		if err != nil {
			res.Error = err.Error()
		}

		switch {
		case err != nil && !e.Fails:
			slog.Error("check failed", "entry", e.Name, "error", err)
			res.Status = statusFailed
		case err == nil && e.Fails:
			slog.Error("check failed", "entry", e.Name, "error", "expected an error")
			res.Status = statusFailed
			res.Error = "expected an error"
		default:
			slog.Info("checked", "entry", e.Name)
		}
		if res.Status == statusFailed {
			failed++
		}
		results = append(results, res)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d entries failed", failed, len(batch.Entries))
	}
	return results, nil
}
