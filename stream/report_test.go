package stream

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func copyStats() []KernelStats {
	return []KernelStats{{
		Kind:    Copy,
		Label:   Copy.Label(),
		Bytes:   Copy.Bytes(1_000_000),
		Avg:     0.011,
		Min:     0.010,
		Max:     0.012,
		CV:      0.05,
		MinRep:  4,
		MaxRep:  7,
		Samples: 9,
	}}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, copyStats()); err != nil {
		t.Fatal(err)
	}

	want := HLine + TableHeader +
		"Copy:         1600.0000       0.0110       0.0100       0.0120\n" +
		HLine
	if got := buf.String(); got != want {
		t.Fatalf("table mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, 4, "generic"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), HLine+"Running with 4 threads (generic kernels)\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteValidation(t *testing.T) {
	pass := compare(Sums{A: 188, B: 12, C: 44, D: 4}, Sums{A: 188, B: 12, C: 44, D: 4}, 1e-8)
	fail := compare(Sums{A: 188, B: 12, C: 44, D: 4}, Sums{A: 188, B: 13, C: 44, D: 4}, 1e-8)

	tests := []struct {
		name    string
		v       Validation
		verbose bool
		want    string
	}{
		{"pass", pass, false, "Solution Validates\n"},
		{
			"fail", fail, false,
			"Failed Validation on array b[]\n" +
				"        Expected  : 12.000000 \n" +
				"        Observed  : 13.000000 \n",
		},
		{
			"pass verbose", pass, true,
			"Results Comparison: \n" +
				"        Expected  : 188.000000 12.000000 44.000000 4.000000 \n" +
				"        Observed  : 188.000000 12.000000 44.000000 4.000000 \n" +
				"Solution Validates\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteValidation(&buf, tt.v, tt.verbose); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func sampleResult() *Result {
	cfg := NewConfig(WithSize(1_000_000), WithNTimes(10))
	return &Result{
		Config:         cfg,
		Implementation: "generic",
		Threads:        2,
		Stats:          copyStats(),
		Validation:     compare(Sums{A: 1, B: 2, C: 3, D: 4}, Sums{A: 1, B: 2, C: 3, D: 4}, cfg.Epsilon),
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, sampleResult(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, HLine+"Running with 2 threads") {
		t.Fatalf("unexpected start:\n%s", out)
	}
	if !strings.HasSuffix(out, HLine+"Solution Validates\n") {
		t.Fatalf("unexpected end:\n%s", out)
	}
	if strings.Count(out, HLine) != 3 {
		t.Fatalf("want 3 separators:\n%s", out)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Implementation string `yaml:"implementation"`
		Threads        int    `yaml:"threads"`
		Config         Config `yaml:"config"`
		Kernels        []struct {
			Name    string  `yaml:"name"`
			Rate    float64 `yaml:"rate_mb_s"`
			CV      float64 `yaml:"cv"`
			MinRep  int     `yaml:"min_rep"`
			MaxRep  int     `yaml:"max_rep"`
			Samples int     `yaml:"samples"`
		} `yaml:"kernels"`
		Validation struct {
			OK    bool   `yaml:"ok"`
			Array string `yaml:"array"`
		} `yaml:"validation"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}

	if doc.Implementation != "generic" || doc.Threads != 2 {
		t.Fatalf("header fields: %+v", doc)
	}
	if doc.Config.Size != 1_000_000 || doc.Config.Initial.C != 0.5 {
		t.Fatalf("config: %+v", doc.Config)
	}
	if len(doc.Kernels) != 1 || doc.Kernels[0].Name != "Copy" || doc.Kernels[0].Samples != 9 {
		t.Fatalf("kernels: %+v", doc.Kernels)
	}
	if k := doc.Kernels[0]; k.CV != 0.05 || k.MinRep != 4 || k.MaxRep != 7 {
		t.Fatalf("spread fields: %+v", k)
	}
	if doc.Kernels[0].Rate < 1599.999 || doc.Kernels[0].Rate > 1600.001 {
		t.Fatalf("rate = %v", doc.Kernels[0].Rate)
	}
	if !doc.Validation.OK || doc.Validation.Array != "" {
		t.Fatalf("validation: %+v", doc.Validation)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestWriteErrorsPropagate(t *testing.T) {
	if err := WriteTable(failingWriter{}, copyStats()); !errors.Is(err, errWrite) {
		t.Fatalf("WriteTable: %v", err)
	}
	if err := WriteReport(failingWriter{}, sampleResult(), true); !errors.Is(err, errWrite) {
		t.Fatalf("WriteReport: %v", err)
	}
	if err := WriteYAML(failingWriter{}, sampleResult()); err == nil {
		t.Fatal("WriteYAML: expected error")
	}
}
