// Command streambench measures sustainable memory bandwidth with eight
// streaming kernels and checks the result against a closed-form replay.
//
// Usage:
//
//	streambench [flags]
//
// Examples:
//
//	streambench
//	streambench -n 100000000 -t 20 --threads 8
//	streambench --impl generic --format yaml
//	OMP_NUM_THREADS=4 streambench --verbose
//	streambench --config bench.yaml --print-config
//
// Settings resolve flag > environment (STREAMBENCH_*) > config file > default.
// Exit status is 0 on success, 1 on a configuration or allocation error and 2
// when the solution fails validation in strict mode.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-bandwidth/internal/kernel"
	"github.com/cwbudde/algo-bandwidth/internal/logutil"
	"github.com/cwbudde/algo-bandwidth/stream"
)

const envPrefix = "STREAMBENCH"

const (
	exitOK         = 0
	exitError      = 1
	exitValidation = 2
)

// exitCodeError carries a non-default exit status out of RunE.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the command line args and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(viper.New())
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !stream.IsKind(err, stream.KindValidation) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	return exitError
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "streambench",
		Short:         "Measure sustainable memory bandwidth",
		Long:          "streambench times eight simple vector kernels over large arrays and reports the best-case bandwidth of each.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	def := stream.DefaultConfig()
	f := cmd.Flags()
	f.IntP("size", "n", def.Size, "elements per array")
	f.IntP("ntimes", "t", def.NTimes, "repetitions of the kernel sequence, the first is a warm-up")
	f.Float64("scalar", def.Scalar, "scalar used by Init, Update, Triad and Daxpy")
	f.Int("alignment", def.Alignment, "byte alignment of each array (power of two)")
	f.Int("threads", def.Threads, "kernel fan-out width, 0 uses GOMAXPROCS")
	f.String("impl", def.Implementation,
		"kernel implementation: auto or one of "+strings.Join(kernel.Available(), ", "))
	f.Float64("epsilon", def.Epsilon, "relative tolerance of the validator")
	f.String("format", "table", "report format: table or yaml")
	f.Bool("strict", true, "exit with status 2 when validation fails")
	f.BoolP("verbose", "v", false, "print expected and observed sums of every array")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("config", "", "YAML config file")
	f.Bool("print-config", false, "print the effective configuration as YAML and exit")

	bindings := map[string]string{
		"size":           "size",
		"ntimes":         "ntimes",
		"scalar":         "scalar",
		"alignment":      "alignment",
		"threads":        "threads",
		"implementation": "impl",
		"epsilon":        "epsilon",
		"format":         "format",
		"strict":         "strict",
		"verbose":        "verbose",
		"log_level":      "log-level",
		"config":         "config",
		"print_config":   "print-config",
	}
	for key, flag := range bindings {
		// Only fails for a nil flag.
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	v.SetDefault("initial.a", def.Initial.A)
	v.SetDefault("initial.b", def.Initial.B)
	v.SetDefault("initial.c", def.Initial.C)
	v.SetDefault("initial.d", def.Initial.D)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("threads", envPrefix+"_THREADS", "OMP_NUM_THREADS")

	return cmd
}

// loadConfig reads the optional config file and decodes every setting into a
// stream.Config.
func loadConfig(v *viper.Viper, path string) (stream.Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return stream.Config{}, &stream.Error{
				Kind:    stream.KindConfig,
				Op:      "loadConfig",
				Message: "cannot read " + path,
				Err:     err,
			}
		}
	}

	cfg := stream.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return stream.Config{}, &stream.Error{
			Kind:    stream.KindConfig,
			Op:      "loadConfig",
			Message: "cannot decode settings",
			Err:     err,
		}
	}
	return cfg, nil
}

func run(ctx context.Context, v *viper.Viper, stdout io.Writer) error {
	if err := logutil.InitLogger(v.GetString("log_level")); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := logutil.GetLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(v, v.GetString("config"))
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Info("loaded config file", zap.String("path", used))
	}

	if v.GetBool("print_config") {
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	format := strings.ToLower(v.GetString("format"))
	if format != "table" && format != "yaml" {
		return &stream.Error{Kind: stream.KindConfig, Op: "run", Message: fmt.Sprintf("unknown format %q", format)}
	}

	res, err := stream.Run(ctx, cfg, stream.WithLogger(logger))
	if err != nil {
		if stream.IsKind(err, stream.KindMemory) {
			logger.Error("allocation failed", zap.Error(err))
		}
		return err
	}
	logger.Info("run complete", zap.Duration("elapsed", res.Elapsed))

	if format == "yaml" {
		err = stream.WriteYAML(stdout, res)
	} else {
		err = stream.WriteReport(stdout, res, v.GetBool("verbose"))
	}
	if err != nil {
		return err
	}

	if verr := res.Validation.Err(); verr != nil {
		if v.GetBool("strict") {
			return &exitCodeError{code: exitValidation, err: verr}
		}
		logger.Warn("validation failed, continuing in non-strict mode", zap.Error(verr))
	}
	return nil
}
