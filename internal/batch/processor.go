// Package batch drives extraction and synthesis over many files at once.
// Each file's pipeline is independent; per-worker results are merged after
// the fact, so workers share nothing while running.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mark3labs/docs2openapi/internal/doctree"
	"github.com/mark3labs/docs2openapi/internal/extract"
	"github.com/mark3labs/docs2openapi/internal/model"
	"github.com/mark3labs/docs2openapi/internal/openapi"
	"github.com/mark3labs/docs2openapi/internal/render"
	"github.com/mark3labs/docs2openapi/internal/validate"
)

// Status classifies the outcome of one file.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the per-file result.
type Outcome struct {
	Path     string        `json:"path"`
	Status   Status        `json:"status"`
	Reason   string        `json:"reason,omitempty"`
	Method   string        `json:"method,omitempty"`
	Params   int           `json:"params,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// maxReportErrors bounds the error list kept on the aggregate report.
const maxReportErrors = 50

// Report aggregates a whole batch run.
type Report struct {
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Methods   []string  `json:"methods,omitempty"`
	Fastest   string    `json:"fastest,omitempty"`
	Slowest   string    `json:"slowest,omitempty"`
	Params    int       `json:"total_parameters"`
	Errors    []string  `json:"errors,omitempty"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Options configures a batch run.
type Options struct {
	Workers  int    // concurrent workers, default 4
	OutDir   string // output directory; empty means no files are written
	Format   string // openapi (default), yaml, json, or markdown
	Validate bool   // validate synthesized specs and run the schema self-check
	Logger   *slog.Logger
}

// Processor runs the per-document pipeline over batches of files.
type Processor struct {
	opts  Options
	log   *slog.Logger
	synth *openapi.Synthesizer
	md    *render.Renderer
}

func New(opts Options) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Format == "" {
		opts.Format = "openapi"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		opts:  opts,
		log:   log,
		synth: openapi.NewSynthesizer(),
		md:    render.New(),
	}
}

// ProcessDir runs the pipeline over every HTML file under dir.
func (p *Processor) ProcessDir(ctx context.Context, dir string) (*Report, error) {
	files, err := ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return p.ProcessFiles(ctx, files)
}

// ProcessFiles runs the pipeline over the given files with a worker pool.
// No file's failure aborts the others.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) (*Report, error) {
	started := time.Now()

	if p.opts.OutDir != "" {
		if err := os.MkdirAll(p.opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	paths := make(chan string, len(files))
	outcomes := make(chan Outcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < p.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				default:
				}
				outcomes <- p.processFile(ctx, path)
			}
		}()
	}

	for _, f := range files {
		paths <- f
	}
	close(paths)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var collected []Outcome
	for o := range outcomes {
		collected = append(collected, o)
	}

	return p.buildReport(started, collected), nil
}

// processFile is the whole per-document pipeline: read, parse, extract,
// validate, synthesize, write.
func (p *Processor) processFile(ctx context.Context, path string) Outcome {
	begin := time.Now()
	out := Outcome{Path: path}
	defer func() { out.Elapsed = time.Since(begin) }()

	raw, err := os.ReadFile(path)
	if err != nil {
		return fail(out, fmt.Sprintf("read file: %v", err))
	}

	tree, err := doctree.Parse(bytes.NewReader(raw))
	if err != nil {
		return fail(out, fmt.Sprintf("parse html: %v", err))
	}

	res := extract.Extract(tree)
	if res.Skipped {
		p.log.Debug("skipping file", "path", path, "note", res.SkipNote)
		out.Status = StatusSkipped
		out.Reason = res.SkipNote
		return out
	}
	out.Warnings = res.Warnings

	if v := validate.Document(res.Doc); !v.OK {
		return fail(out, v.Reason)
	} else if len(v.Warnings) > 0 {
		out.Warnings = append(out.Warnings, v.Warnings...)
	}

	out.Method = res.Doc.Method.Name
	out.Params = res.Doc.Request.Len() + res.Doc.Response.Len()

	spec, err := p.synth.Synthesize(res.Doc)
	if err != nil {
		return fail(out, fmt.Sprintf("synthesize: %v", err))
	}

	if p.opts.Validate {
		if err := openapi.Check(ctx, spec); err != nil {
			return fail(out, fmt.Sprintf("spec check: %v", err))
		}
		issues, err := validate.SelfCheck(res.Doc)
		if err != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("self-check: %v", err))
		}
		for _, issue := range issues {
			out.Warnings = append(out.Warnings, fmt.Sprintf("self-check %s: %s", issue.Field, issue.Description))
		}
	}

	if p.opts.OutDir != "" {
		if err := p.writeOutput(res.Doc, spec, path); err != nil {
			return fail(out, fmt.Sprintf("write output: %v", err))
		}
	}

	out.Status = StatusSuccess
	return out
}

func fail(out Outcome, reason string) Outcome {
	out.Status = StatusFailed
	out.Reason = reason
	return out
}

func (p *Processor) writeOutput(doc *model.ParsedDocument, spec *openapi.Document, srcPath string) error {
	name := doc.Method.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	}
	name = strings.ReplaceAll(name, ".", "_")

	var data []byte
	var ext string
	var err error
	switch p.opts.Format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		ext = ".json"
	case "yaml":
		data, err = yaml.Marshal(doc)
		ext = ".yaml"
	case "markdown":
		data, err = p.md.Endpoint(doc)
		ext = ".md"
	default: // openapi
		data, err = spec.ToYAML()
		ext = ".yaml"
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.opts.OutDir, name+ext), data, 0o644)
}

// buildReport merges independent per-file outcomes into the aggregate
// report, sorted by path so repeated runs produce identical reports.
func (p *Processor) buildReport(started time.Time, outcomes []Outcome) *Report {
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Path < outcomes[j].Path })

	report := &Report{
		Started:  started,
		Finished: time.Now(),
		Total:    len(outcomes),
		Outcomes: outcomes,
	}
	var fastest, slowest time.Duration
	for _, o := range outcomes {
		if report.Fastest == "" || o.Elapsed < fastest {
			report.Fastest, fastest = o.Path, o.Elapsed
		}
		if report.Slowest == "" || o.Elapsed > slowest {
			report.Slowest, slowest = o.Path, o.Elapsed
		}
		switch o.Status {
		case StatusSuccess:
			report.Succeeded++
			report.Methods = append(report.Methods, o.Method)
			report.Params += o.Params
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
			if len(report.Errors) < maxReportErrors {
				report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", o.Path, o.Reason))
			}
		}
	}

	p.log.Info("batch finished",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"elapsed", report.Finished.Sub(report.Started))
	return report
}

// Save writes the report as JSON into the output directory.
func (r *Report) Save(outDir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "batch_report.json"), data, 0o644)
}
