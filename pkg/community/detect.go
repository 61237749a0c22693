package community

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

// DefaultReportEvery is how many merges pass between progress reports and
// cancellation polls.
const DefaultReportEvery = 100

// Options configures a detection run. The zero value is valid: no progress
// reporting, no cancellation, no logging, no metrics.
type Options struct {
	// ReportEvery is the merge interval between OnProgress calls and
	// Cancelled polls. Values < 1 mean DefaultReportEvery.
	ReportEvery int

	// OnProgress, when set, receives (merges done, vertex count) every
	// ReportEvery merges. At most |V|-1 merges can happen.
	OnProgress func(done, total int)

	// Cancelled, when set, is polled every ReportEvery merges. Returning true
	// stops the run; partial state is discarded.
	Cancelled func() bool

	// Logger receives run lifecycle and progress events. Nil disables logging.
	Logger logging.Logger

	// Metrics receives run counters and timings. Nil disables metrics.
	Metrics *metrics.Registry
}

// Result is the outcome of a completed detection run.
type Result struct {
	// RunID uniquely identifies this run in logs and downstream systems.
	RunID string

	// Communities is the final partition, ordered by community ID.
	Communities []*Community

	// Merges is the number of merges performed.
	Merges int

	// Modularity is Newman's Q of the final partition.
	Modularity float64

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Detect partitions the graph's vertices into communities by greedy
// modularity maximization (Clauset-Newman-Moore with the Wakita-Tsurumi heap
// arrangement). Merging stops at the first strictly negative modularity gain;
// a gain of exactly zero still merges.
//
// Detection is single-threaded and deterministic for identical input graphs.
// deltaQ values are float32 throughout; tie-breaks fall to heap insertion
// order and, within a row, to the lowest neighbor ID.
//
// Returns ErrNilGraph for a nil graph and ErrCancelled (wrapped) when
// Options.Cancelled reports true; the partial partition is discarded.
func Detect(g *graph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	reportEvery := opts.ReportEvery
	if reportEvery < 1 {
		reportEvery = DefaultReportEvery
	}

	runID := uuid.NewString()
	logger = logger.With(logging.Component("detector"), logging.RunID(runID))

	total := g.VertexCount()
	logger.Info("detection started",
		logging.Vertices(total),
		logging.Edges(g.EdgeCount()),
	)
	if opts.Metrics != nil {
		opts.Metrics.RecordGraph(total, g.EdgeCount())
	}

	start := time.Now()
	e := newEngine(g)

	for {
		if e.merges%reportEvery == 0 {
			if opts.Cancelled != nil && opts.Cancelled() {
				duration := time.Since(start)
				logger.Warn("detection cancelled",
					logging.Merges(e.merges),
					logging.Duration("elapsed", duration),
				)
				if opts.Metrics != nil {
					opts.Metrics.RecordDetection("cancelled", duration, e.merges, 0)
				}
				return nil, fmt.Errorf("detect run %s: %w", runID, ErrCancelled)
			}
			if opts.OnProgress != nil {
				opts.OnProgress(e.merges, total)
			}
			if opts.Metrics != nil {
				if _, q, ok := e.heap.Peek(); ok {
					opts.Metrics.SetBestDeltaQ(float64(q))
				}
			}
			logger.Debug("detection progress",
				logging.Merges(e.merges),
				logging.Communities(len(e.live)),
			)
		}
		if !e.step() {
			break
		}
	}

	communities := e.communities()
	result := &Result{
		RunID:       runID,
		Communities: communities,
		Merges:      e.merges,
		Modularity:  Modularity(g, communities),
		Duration:    time.Since(start),
	}

	logger.Info("detection finished",
		logging.Merges(result.Merges),
		logging.Communities(len(communities)),
		logging.Modularity(result.Modularity),
		logging.Duration("elapsed", result.Duration),
	)
	if opts.Metrics != nil {
		opts.Metrics.RecordDetection("success", result.Duration, result.Merges, len(communities))
		opts.Metrics.SetModularity(result.Modularity)
	}

	return result, nil
}
