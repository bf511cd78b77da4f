package heredity

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

type options struct {
	model   *Model
	workers int
	logger  *slog.Logger
}

// Option configures Infer.
type Option func(*options)

// WithModel replaces DefaultModel.
func WithModel(m *Model) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithWorkers sets how many goroutines evaluate configurations. Values below
// 1 mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger receives progress messages. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Result is the posterior of every person in a pedigree.
type Result struct {
	// Configurations is the number of configurations evaluated.
	Configurations uint64

	names []string
	dists map[string]Distribution
}

// Names returns the people in pedigree order.
func (r *Result) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get returns the posterior of the named person.
func (r *Result) Get(name string) (Distribution, bool) {
	d, ok := r.dists[name]
	return d, ok
}

// NewResult pairs the distributions of a normalized table with the names of
// the people they belong to.
func NewResult(p *Pedigree, t *Table) *Result {
	r := &Result{
		names: make([]string, p.Len()),
		dists: make(map[string]Distribution, p.Len()),
	}
	for i, person := range p.people {
		r.names[i] = person.Name
		r.dists[person.Name] = t.Distributions[i]
	}
	return r
}

// Infer computes every person's posterior gene and trait distribution by
// evaluating every configuration consistent with the evidence.
//
// The trait subsets are dealt out to the workers round robin. Each worker
// accumulates into its own table and the tables are summed in worker order,
// so a given worker count always produces bit-identical results.
func Infer(ctx context.Context, p *Pedigree, opts ...Option) (*Result, error) {
	o := options{
		model:   DefaultModel(),
		workers: runtime.NumCPU(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}
	if o.model == nil {
		o.model = DefaultModel()
	}

	start := time.Now()
	o.logger.Info("starting inference",
		"people", p.Len(),
		"configurations", ConfigurationCount(p),
		"workers", o.workers)

	tables := make([]*Table, o.workers)
	seen := make([]uint64, o.workers)

	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < o.workers; w++ {
		w := w
		g.Go(func() error {
			cr, err := p.NewConfigurationReaderPartition(w, o.workers)
			if err != nil {
				return err
			}
			table, err := evaluate(gCtx, o.model, p, cr)
			if err != nil {
				return err
			}
			tables[w] = table
			seen[w] = cr.ConfigurationsSeen
			o.logger.Debug("worker finished",
				"worker", w,
				"trait_subsets", cr.TraitSubsetsSeen,
				"configurations", cr.ConfigurationsSeen)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewTable(p.Len())
	var configurations uint64
	for w, table := range tables {
		if err := total.Merge(table); err != nil {
			return nil, err
		}
		configurations += seen[w]
	}

	if err := total.Normalize(); err != nil {
		return nil, err
	}

	o.logger.Info("finished inference",
		"configurations", configurations,
		"elapsed", time.Since(start))

	r := NewResult(p, total)
	r.Configurations = configurations

	return r, nil
}

// cancelCheckInterval is how many configurations a worker evaluates between
// checks of its context, beyond the check at each new trait subset.
const cancelCheckInterval = 1 << 16

// evaluate drains cr into a fresh table.
func evaluate(ctx context.Context, m *Model, p *Pedigree, cr *ConfigurationReader) (*Table, error) {
	table := NewTable(p.Len())

	for c := cr.Read(); c != nil; c = cr.Read() {
		if cr.NewTraitSubset() || cr.ConfigurationsSeen%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		table.Update(*c, m.JointProbability(p, *c))
	}

	return table, nil
}
