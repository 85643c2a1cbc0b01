package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/siteglean/siteglean"
	"github.com/siteglean/siteglean/crawl"
	"github.com/siteglean/siteglean/fs"
	sggoquery "github.com/siteglean/siteglean/goquery"
	sghttp "github.com/siteglean/siteglean/http"
	"github.com/siteglean/siteglean/pipeline"
	"github.com/siteglean/siteglean/plugins"
	sgslog "github.com/siteglean/siteglean/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteglean"),
		kong.Description("Extract structured marketing data from websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	extractor := buildExtractor(logger)
	writer := fs.NewWriter(cli.Out)

	concurrency := cli.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, rawURL := range cli.URLs {
		g.Go(func() error {
			result, err := extractor.Extract(gctx, siteglean.ExtractInput{
				URL:           rawURL,
				MaxPages:      cli.MaxPages,
				MaxDepth:      cli.MaxDepth,
				Timeout:       cli.Timeout,
				RespectRobots: cli.RespectRobots,
				Mode:          siteglean.SiteMapMode(cli.Mode),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", rawURL, err)
			}
			path, err := writer.WriteResult(result)
			if err != nil {
				return fmt.Errorf("%s: %w", rawURL, err)
			}
			fmt.Fprintf(stdout, "%s -> %s (pages %d, confidence %.3f)\n",
				rawURL, path, len(result.Content.Pages), result.Confidence.Overall)
			return nil
		})
	}
	return g.Wait()
}

// buildExtractor wires the production pipeline.
func buildExtractor(logger *slog.Logger) siteglean.Extractor {
	fetcher := sgslog.NewLoggingFetcher(sghttp.NewFetcher(), logger)
	seeder := sgslog.NewLoggingSeeder(sghttp.NewSeeder(fetcher), logger)
	limiter := crawl.NewHostLimiter(crawl.DefaultMinDelay)

	crawler := crawl.NewCrawler(
		fetcher,
		sghttp.NewRobots(fetcher),
		seeder,
		limiter,
		sggoquery.NewParser(),
	)

	extractor := pipeline.NewExtractor(
		crawler,
		plugins.NewRegistry(),
		sghttp.NewStylesheetCache(fetcher),
	)
	return sgslog.NewLoggingExtractor(extractor, logger)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	MaxPages      int           `help:"Page limit for the crawl (clamped by mode)"`
	MaxDepth      int           `default:"3" help:"Link-following depth limit"`
	Timeout       time.Duration `short:"t" default:"10s" help:"Fetch timeout per request"`
	Mode          string        `default:"template_samples" enum:"template_samples,marketing_only,all_urls" help:"Crawl mode"`
	RespectRobots bool          `help:"Honor robots.txt disallow rules"`
	Out           string        `short:"o" default:"." help:"Output directory for result JSON files"`
	Concurrency   int           `short:"c" default:"2" help:"Concurrent site extractions"`
	Verbose       bool          `short:"v" help:"Verbose logging"`
	URLs          []string      `arg:"" required:"" name:"urls" help:"Site URLs to extract"`
}
