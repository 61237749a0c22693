package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/config"
	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/graphio"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

var summaryStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#00FF00")).
	Padding(0, 1)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	input := flag.String("input", "", "Path to edge-list file")
	sortBy := flag.String("sort-by", "", "Vertex metadata key to order community membership by")
	descending := flag.Bool("desc", false, "Sort membership descending instead of ascending")
	reportEvery := flag.Int("report-every", 0, "Merges between progress reports")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	metricsListen := flag.String("metrics-listen", "", "Serve Prometheus metrics on this address")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	applyFlags(&cfg, *input, *sortBy, *descending, *reportEvery, *logLevel, *metricsListen)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	reg := metrics.NewRegistry()
	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsListen, mux); err != nil {
				logger.Error("metrics server stopped", logging.Error(err))
			}
		}()
	}

	g, err := graphio.ReadEdgeList(cfg.Input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", cfg.Input, err)
	}
	fmt.Fprintf(os.Stderr, "Loaded %d vertices, %d edges from %s\n",
		g.VertexCount(), g.EdgeCount(), cfg.Input)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := community.Detect(g, community.Options{
		ReportEvery: cfg.ReportEvery,
		Logger:      logger,
		Metrics:     reg,
		Cancelled: func() bool {
			select {
			case <-ctx.Done():
				return true
			default:
				return false
			}
		},
		OnProgress: func(done, total int) {
			if total > 0 {
				fmt.Fprintf(os.Stderr, "\rMerging... %d/%d", done, total)
			}
		},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr)
		log.Fatalf("Detection failed: %v", err)
	}
	fmt.Fprint(os.Stderr, "\r")

	if cfg.SortBy != "" {
		for _, c := range result.Communities {
			sorted, err := graph.SortByMetadata(c.Vertices(), cfg.SortBy, cfg.Ascending)
			if err != nil {
				log.Fatalf("Failed to sort membership by %q: %v", cfg.SortBy, err)
			}
			copy(c.Vertices(), sorted)
		}
	}

	if err := graphio.WriteCommunities(os.Stdout, result.Communities); err != nil {
		log.Fatalf("Failed to write communities: %v", err)
	}

	summary := fmt.Sprintf(
		"Run        %s\nVertices   %d\nEdges      %d\nCommunities %d\nMerges     %d\nModularity %.4f\nElapsed    %v",
		result.RunID, g.VertexCount(), g.EdgeCount(),
		len(result.Communities), result.Merges, result.Modularity, result.Duration,
	)
	fmt.Fprintln(os.Stderr, summaryStyle.Render(summary))
}

// applyFlags overlays explicitly provided flags onto the config.
func applyFlags(cfg *config.Config, input, sortBy string, descending bool, reportEvery int, logLevel, metricsListen string) {
	if input != "" {
		cfg.Input = input
	}
	if sortBy != "" {
		cfg.SortBy = sortBy
	}
	if descending {
		cfg.Ascending = false
	}
	if reportEvery > 0 {
		cfg.ReportEvery = reportEvery
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricsListen != "" {
		cfg.MetricsListen = metricsListen
	}
}
