package stream

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// HLine separates the sections of the text report.
const HLine = "-------------------------------------------------------------\n"

// TableHeader is the column header of the results table.
const TableHeader = "Function      Rate (MB/s)   Avg time     Min time     Max time\n"

// errWriter remembers the first write error so the formatting code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// WriteHeader writes the thread announcement that precedes the table.
func WriteHeader(w io.Writer, threads int, implementation string) error {
	ew := &errWriter{w: w}
	ew.printf(HLine)
	ew.printf("Running with %d threads (%s kernels)\n", threads, implementation)
	return ew.err
}

// WriteTable writes the results table: a separator, the header, one row per
// kernel and a closing separator.
func WriteTable(w io.Writer, stats []KernelStats) error {
	ew := &errWriter{w: w}
	ew.printf(HLine)
	ew.printf(TableHeader)
	for _, s := range stats {
		ew.printf("%s%11.4f  %11.4f  %11.4f  %11.4f\n", s.Label, s.Bandwidth(), s.Avg, s.Min, s.Max)
	}
	ew.printf(HLine)
	return ew.err
}

// WriteValidation writes the validator verdict. verbose adds the expected and
// observed sums of all four arrays.
func WriteValidation(w io.Writer, v Validation, verbose bool) error {
	ew := &errWriter{w: w}
	if verbose {
		e, o := v.ExpectedSums, v.ObservedSums
		ew.printf("Results Comparison: \n")
		ew.printf("        Expected  : %f %f %f %f \n", e.A, e.B, e.C, e.D)
		ew.printf("        Observed  : %f %f %f %f \n", o.A, o.B, o.C, o.D)
	}
	if v.OK {
		ew.printf("Solution Validates\n")
		return ew.err
	}
	ew.printf("Failed Validation on array %s[]\n", v.Array)
	ew.printf("        Expected  : %f \n", v.Expected)
	ew.printf("        Observed  : %f \n", v.Observed)
	return ew.err
}

// WriteReport writes the full text report for res.
func WriteReport(w io.Writer, res *Result, verbose bool) error {
	if err := WriteHeader(w, res.Threads, res.Implementation); err != nil {
		return err
	}
	if err := WriteTable(w, res.Stats); err != nil {
		return err
	}
	return WriteValidation(w, res.Validation, verbose)
}

type yamlKernel struct {
	Name    string  `yaml:"name"`
	RateMBs float64 `yaml:"rate_mb_s"`
	AvgTime float64 `yaml:"avg_time_s"`
	MinTime float64 `yaml:"min_time_s"`
	MaxTime float64 `yaml:"max_time_s"`
	StdDev  float64 `yaml:"stddev_s"`
	CV      float64 `yaml:"cv"`
	MinRep  int     `yaml:"min_rep"`
	MaxRep  int     `yaml:"max_rep"`
	Bytes   int64   `yaml:"bytes"`
	Samples int     `yaml:"samples"`
}

type yamlValidation struct {
	OK       bool    `yaml:"ok"`
	Array    string  `yaml:"array,omitempty"`
	Expected float64 `yaml:"expected,omitempty"`
	Observed float64 `yaml:"observed,omitempty"`
	Epsilon  float64 `yaml:"epsilon"`
	Sums     struct {
		Expected Sums `yaml:"expected"`
		Observed Sums `yaml:"observed"`
	} `yaml:"sums"`
}

type yamlReport struct {
	Implementation string         `yaml:"implementation"`
	Threads        int            `yaml:"threads"`
	Config         Config         `yaml:"config"`
	Kernels        []yamlKernel   `yaml:"kernels"`
	Validation     yamlValidation `yaml:"validation"`
}

// WriteYAML writes res as a YAML document.
func WriteYAML(w io.Writer, res *Result) error {
	doc := yamlReport{
		Implementation: res.Implementation,
		Threads:        res.Threads,
		Config:         res.Config,
		Kernels:        make([]yamlKernel, 0, len(res.Stats)),
	}
	for _, s := range res.Stats {
		doc.Kernels = append(doc.Kernels, yamlKernel{
			Name:    s.Kind.String(),
			RateMBs: s.Bandwidth(),
			AvgTime: s.Avg,
			MinTime: s.Min,
			MaxTime: s.Max,
			StdDev:  s.StdDev,
			CV:      s.CV,
			MinRep:  s.MinRep,
			MaxRep:  s.MaxRep,
			Bytes:   s.Bytes,
			Samples: s.Samples,
		})
	}

	v := res.Validation
	doc.Validation = yamlValidation{
		OK:       v.OK,
		Array:    v.Array,
		Expected: v.Expected,
		Observed: v.Observed,
		Epsilon:  v.Epsilon,
	}
	doc.Validation.Sums.Expected = v.ExpectedSums
	doc.Validation.Sums.Observed = v.ObservedSums

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
