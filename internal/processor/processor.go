package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/rapwiz/internal"
	"codeberg.org/snonux/rapwiz/internal/batch"
	"codeberg.org/snonux/rapwiz/internal/cli"
	"codeberg.org/snonux/rapwiz/internal/export"
	"codeberg.org/snonux/rapwiz/internal/lyrics"
)

// stdinName is the title used for lyrics read from standard input.
const stdinName = "stdin"

// Processor handles the analysis workflow of the CLI
type Processor struct {
	flags    *cli.Flags
	analyzer *lyrics.Analyzer
	out      io.Writer
	in       io.Reader
	logger   *slog.Logger
}

// NewProcessor creates a new lyrics processor writing reports to out
func NewProcessor(flags *cli.Flags, analyzer *lyrics.Analyzer, out io.Writer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		flags:    flags,
		analyzer: analyzer,
		out:      out,
		in:       os.Stdin,
		logger:   logger.With("component", "processor"),
	}
}

// SongReport is the outcome of analyzing one song.
type SongReport struct {
	Title  string         `json:"title"`
	Result *lyrics.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`

	err error
}

// ProcessInput analyzes a single lyrics file. An empty path or "-" reads
// standard input.
func (p *Processor) ProcessInput(ctx context.Context, path string) error {
	title := path
	var (
		content []byte
		err     error
	)
	if path == "" || path == "-" {
		title = stdinName
		content, err = io.ReadAll(p.in)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read lyrics: %w", err)
	}

	text := string(content)
	if batch.IsHTML(path) {
		if text, err = batch.HTMLToText(bytes.NewReader(content)); err != nil {
			return err
		}
	}

	report := p.analyze(ctx, title, text)
	if report.err != nil {
		return report.err
	}

	if p.flags.Format == "json" {
		if err := p.writeJSON(report.Result); err != nil {
			return err
		}
	} else {
		p.writeText(report)
	}

	return p.export(ctx, []SongReport{report})
}

// ProcessBatch analyzes every song of the batch file. Songs that fail are
// reported and counted; they do not stop the batch.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	songs, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}
	if len(songs) == 0 {
		return fmt.Errorf("no songs found in %s", p.flags.BatchFile)
	}

	reports, err := p.analyzeAll(ctx, songs)
	if err != nil {
		return err
	}

	if p.flags.Format == "json" {
		if err := p.writeJSON(reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			p.writeText(report)
		}
		p.writeSummary(reports)
	}

	return p.export(ctx, reports)
}

func (p *Processor) analyzeAll(ctx context.Context, songs []batch.SongEntry) ([]SongReport, error) {
	reports := make([]SongReport, len(songs))

	workers := p.flags.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, song := range songs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = p.analyze(gctx, song.Title, song.Lyrics)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}
	return reports, nil
}

func (p *Processor) analyze(ctx context.Context, title, text string) SongReport {
	start := time.Now()
	result, err := p.analyzer.Analyze(ctx, text)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, lyrics.ErrNoHebrewText) {
			level = slog.LevelWarn
		}
		p.logger.Log(ctx, level, "analysis failed", slog.String("title", title), slog.Any("error", err))
		return SongReport{Title: title, Error: err.Error(), err: err}
	}

	p.logger.Debug("analyzed song",
		slog.String("title", title),
		slog.String("scheme", result.RhymeScheme),
		slog.Duration("took", time.Since(start)))

	return SongReport{Title: title, Result: result}
}

// export stores all successful reports when an export DSN is configured.
func (p *Processor) export(ctx context.Context, reports []SongReport) error {
	if p.flags.ExportDSN == "" {
		return nil
	}

	store, err := export.Open(ctx, p.flags.ExportDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	saved := 0
	for i, report := range reports {
		if report.Result == nil {
			continue
		}
		id := internal.GenerateReportID(fmt.Sprintf("%s#%d", report.Title, i+1))
		err := store.SaveReport(ctx, export.Report{
			ID:        id,
			Title:     report.Title,
			CreatedAt: time.Now(),
			Result:    report.Result,
		})
		if err != nil {
			return fmt.Errorf("failed to export %q: %w", report.Title, err)
		}
		saved++
	}

	p.logger.Info("exported reports", slog.Int("count", saved), slog.String("driver", store.Driver()))
	return nil
}

// errNoExportDSN is returned when stored reports are requested without a
// database to read them from.
var errNoExportDSN = errors.New("no report database configured, use --export <dsn>")

// ListReports prints the reports stored in the export database, newest
// first.
func (p *Processor) ListReports(ctx context.Context) error {
	if p.flags.ExportDSN == "" {
		return errNoExportDSN
	}

	store, err := export.Open(ctx, p.flags.ExportDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	reports, err := store.ListReports(ctx)
	if err != nil {
		return err
	}

	if p.flags.Format == "json" {
		return p.writeJSON(reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(p.out, "No stored reports")
		return nil
	}
	for _, r := range reports {
		fmt.Fprintf(p.out, "%s  %s  %-12s %3d lines  %s\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.RhymeScheme, r.Statistics.TotalLines, r.Title)
	}
	return nil
}

// ShowReport prints one stored report in the configured format.
func (p *Processor) ShowReport(ctx context.Context, id string) error {
	if p.flags.ExportDSN == "" {
		return errNoExportDSN
	}

	store, err := export.Open(ctx, p.flags.ExportDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.LoadResult(ctx, id)
	if err != nil {
		return err
	}

	if p.flags.Format == "json" {
		return p.writeJSON(result)
	}
	p.writeText(SongReport{Title: id, Result: result})
	return nil
}

func (p *Processor) writeJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
