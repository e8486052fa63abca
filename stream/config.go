package stream

import (
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/cwbudde/algo-bandwidth/internal/alloc"
)

// Reference configuration.
const (
	DefaultSize      = 20_000_000
	DefaultNTimes    = 10
	DefaultScalar    = 3.0
	DefaultAlignment = alloc.CacheLineSize
	DefaultEpsilon   = 1e-8
)

// InitialValues are the constants every element of each array starts with.
type InitialValues struct {
	A float64 `mapstructure:"a" yaml:"a"`
	B float64 `mapstructure:"b" yaml:"b"`
	C float64 `mapstructure:"c" yaml:"c"`
	D float64 `mapstructure:"d" yaml:"d"`
}

// Config is shared by the timing loop and the validator so both replay the
// same constants.
type Config struct {
	// Size is the number of float64 elements per array.
	Size int `mapstructure:"size" yaml:"size"`

	// NTimes is the number of repetitions of the kernel sequence, warm-up included.
	NTimes int `mapstructure:"ntimes" yaml:"ntimes"`

	// Scalar is the constant used by Init, Update, Triad and Daxpy.
	Scalar float64 `mapstructure:"scalar" yaml:"scalar"`

	// Alignment is the byte boundary every array starts on.
	Alignment int `mapstructure:"alignment" yaml:"alignment"`

	// Threads is the kernel fan-out width; 0 means GOMAXPROCS.
	Threads int `mapstructure:"threads" yaml:"threads"`

	// Implementation names the kernel variant: "auto", "generic" or "simd".
	Implementation string `mapstructure:"implementation" yaml:"implementation"`

	// Epsilon is the relative error tolerance of the validator.
	Epsilon float64 `mapstructure:"epsilon" yaml:"epsilon"`

	Initial InitialValues `mapstructure:"initial" yaml:"initial"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Size:           DefaultSize,
		NTimes:         DefaultNTimes,
		Scalar:         DefaultScalar,
		Alignment:      DefaultAlignment,
		Implementation: "auto",
		Epsilon:        DefaultEpsilon,
		Initial: InitialValues{
			A: 2.0,
			B: 2.0,
			C: 0.5,
			D: 1.0,
		},
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithSize sets the array length.
func WithSize(n int) Option {
	return func(cfg *Config) { cfg.Size = n }
}

// WithNTimes sets the repetition count.
func WithNTimes(n int) Option {
	return func(cfg *Config) { cfg.NTimes = n }
}

// WithScalar sets the kernel scalar.
func WithScalar(s float64) Option {
	return func(cfg *Config) { cfg.Scalar = s }
}

// WithThreads sets the kernel fan-out width.
func WithThreads(n int) Option {
	return func(cfg *Config) { cfg.Threads = n }
}

// WithImplementation selects the kernel variant.
func WithImplementation(name string) Option {
	return func(cfg *Config) { cfg.Implementation = name }
}

// NewConfig applies opts to DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports every problem with cfg at once. The returned error matches
// ErrDegenerate.
func (c Config) Validate() error {
	var err error

	if c.Size < 1 {
		err = multierr.Append(err, fmt.Errorf("size must be >= 1, got %d", c.Size))
	}
	if c.NTimes < 2 {
		err = multierr.Append(err, fmt.Errorf("ntimes must be >= 2 (repetition 0 is discarded), got %d", c.NTimes))
	}
	if c.Alignment < 8 || c.Alignment&(c.Alignment-1) != 0 {
		err = multierr.Append(err, fmt.Errorf("alignment must be a power of two >= 8, got %d", c.Alignment))
	}
	if c.Threads < 0 {
		err = multierr.Append(err, fmt.Errorf("threads must be >= 0, got %d", c.Threads))
	}
	if !(c.Epsilon > 0) || math.IsInf(c.Epsilon, 0) {
		err = multierr.Append(err, fmt.Errorf("epsilon must be positive and finite, got %g", c.Epsilon))
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"scalar", c.Scalar},
		{"initial.a", c.Initial.A},
		{"initial.b", c.Initial.B},
		{"initial.c", c.Initial.C},
		{"initial.d", c.Initial.D},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			err = multierr.Append(err, fmt.Errorf("%s must be finite, got %g", v.name, v.value))
		}
	}

	// Only a config that passed every other check is replayed.
	if err == nil {
		if e := Expected(c); !isFinite(e.A) || !isFinite(e.B) || !isFinite(e.C) || !isFinite(e.D) {
			err = fmt.Errorf("expected sums overflow float64 (%g %g %g %g); lower ntimes, size or scalar",
				e.A, e.B, e.C, e.D)
		}
	}

	if err != nil {
		return &Error{Kind: KindConfig, Op: "Validate", Message: "invalid configuration", Err: err}
	}
	return nil
}

// Bytes returns the memory footprint of the four arrays.
func (c Config) Bytes() int64 {
	return 4 * int64(c.Size) * elementSize
}
