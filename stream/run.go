package stream

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-bandwidth/internal/kernel"
)

// sumGuardIndex is the element of a saved before Sum and restored after it.
// Sum only reads a, so restoring must be a no-op; the guard keeps a[10]
// stable if a kernel implementation ever writes through its read operand.
const sumGuardIndex = 10

// Result is everything one run produced.
type Result struct {
	Config         Config
	Implementation string // kernel variant that ran
	Threads        int    // workers each kernel actually ran on
	Record         *Record
	Stats          []KernelStats
	Validation     Validation
	Arrays         *Arrays
	Elapsed        time.Duration // wall time of the timing loop
}

// RunOption configures Run.
type RunOption func(*runner)

// WithLogger sets the logger for progress messages. The default discards them.
func WithLogger(l *zap.Logger) RunOption {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

type runner struct {
	cfg     Config
	logger  *zap.Logger
	kernels *kernel.Set
	arrays  *Arrays
	record  *Record
}

// Run validates cfg, allocates and initializes the arrays, times cfg.NTimes
// repetitions of the kernel sequence, aggregates the timings and checks the
// final arrays.
//
// A validation mismatch is not an error: it is reported in
// Result.Validation. ctx is checked between repetitions; a kernel in progress
// always completes.
func Run(ctx context.Context, cfg Config, opts ...RunOption) (*Result, error) {
	r := &runner{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	set, err := kernel.New(cfg.Implementation, cfg.Threads)
	if err != nil {
		return nil, &Error{Kind: KindConfig, Op: "Run", Message: "cannot select kernels", Err: err}
	}
	r.kernels = set
	threads := set.Width(cfg.Size)
	r.logger.Info("selected kernels",
		zap.String("implementation", set.Name()),
		zap.Stringer("simd", set.Level()),
		zap.Stringer("cpu", set.Features()),
		zap.Int("threads", threads),
		zap.Int("requested_threads", set.Workers()))

	r.arrays, err = NewArrays(cfg.Size, cfg.Alignment)
	if err != nil {
		return nil, err
	}
	r.logger.Info("allocated arrays",
		zap.Int("elements", cfg.Size),
		zap.Int("alignment", cfg.Alignment),
		zap.Float64("total_mib", float64(cfg.Bytes())/(1<<20)))

	r.initialize()

	start := time.Now()
	if err := r.loop(ctx); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	stats, err := Aggregate(r.record, cfg.Size)
	if err != nil {
		return nil, err
	}

	v := Check(cfg, r.arrays)
	if v.OK {
		r.logger.Info("solution validates", zap.Float64("epsilon", v.Epsilon))
	} else {
		r.logger.Warn("validation failed",
			zap.String("array", v.Array),
			zap.Float64("expected", v.Expected),
			zap.Float64("observed", v.Observed))
	}

	return &Result{
		Config:         cfg,
		Implementation: set.Name(),
		Threads:        threads,
		Record:         r.record,
		Stats:          stats,
		Validation:     v,
		Arrays:         r.arrays,
		Elapsed:        elapsed,
	}, nil
}

// initialize fills the arrays with the initial constants. Each Fill joins its
// workers, so all writes are done before the first kernel starts.
func (r *runner) initialize() {
	iv := r.cfg.Initial
	r.kernels.Fill(r.arrays.A, iv.A)
	r.kernels.Fill(r.arrays.B, iv.B)
	r.kernels.Fill(r.arrays.C, iv.C)
	r.kernels.Fill(r.arrays.D, iv.D)
}

// loop runs the kernel sequence cfg.NTimes times and fills r.record.
func (r *runner) loop(ctx context.Context) error {
	var (
		k      = r.kernels
		a      = r.arrays.A
		b      = r.arrays.B
		c      = r.arrays.C
		d      = r.arrays.D
		scalar = r.cfg.Scalar
		guard  = len(a) > sumGuardIndex
	)
	r.record = NewRecord(r.cfg.NTimes)

	for rep := range r.cfg.NTimes {
		if err := ctx.Err(); err != nil {
			return err
		}

		r.record.Set(Init, rep, k.Init(b, scalar))

		var saved float64
		if guard {
			saved = a[sumGuardIndex]
		}
		_, dt := k.Sum(a)
		r.record.Set(Sum, rep, dt)
		if guard {
			a[sumGuardIndex] = saved
		}

		r.record.Set(Copy, rep, k.Copy(c, a))
		r.record.Set(Update, rep, k.Update(a, scalar))
		r.record.Set(Triad, rep, k.Triad(a, b, c, scalar))
		r.record.Set(Daxpy, rep, k.Daxpy(a, b, scalar))
		r.record.Set(STriad, rep, k.STriad(a, b, c, d))
		r.record.Set(SDaxpy, rep, k.SDaxpy(a, b, c))

		r.logger.Debug("repetition done", zap.Int("rep", rep), zap.Bool("warmup", rep == 0))
	}
	return nil
}
