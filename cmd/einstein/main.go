// Package main provides the einstein CLI, which runs tensor scenarios written
// in indicial notation.
//
// Usage:
//
//	einstein [flags] run FILE...
//	einstein functions
//	einstein version
//
// The log level, log format and output directory default to
// $EINSTEIN_LOG_LEVEL, $EINSTEIN_LOG_DEV and $EINSTEIN_OUT.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/xyproto/env/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/einstein/internal/functions"
	"github.com/born-ml/einstein/internal/scenario"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "einstein - tensor algebra in indicial notation")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Usage: einstein [flags] <command> [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run FILE...  Run scenario files and print the resulting tensors")
	fmt.Fprintln(w, "  functions    List the functions usable in statements")
	fmt.Fprintln(w, "  version      Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("einstein", flag.ContinueOnError)
	fs.SetOutput(stderr)
	level := fs.Int("v", env.Int("EINSTEIN_LOG_LEVEL", 0), "log verbosity; 1 logs every statement")
	dev := fs.Bool("dev", env.Bool("EINSTEIN_LOG_DEV"), "human-readable development logs")
	tol := fs.Float64("tol", 1e-9, "absolute tolerance for expected values")
	out := fs.String("out", env.Str("EINSTEIN_OUT"), "directory to save each scenario's tensors to, as NAME.safetensors")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	switch fs.Arg(0) {
	case "version":
		fmt.Fprintf(stdout, "einstein %s\n", version)
		return 0
	case "functions":
		fmt.Fprintln(stdout, strings.Join(functions.Names(), "\n"))
		return 0
	case "run":
	default:
		usage(stderr, fs)
		return 2
	}

	files := fs.Args()[1:]
	if len(files) == 0 {
		fmt.Fprintln(stderr, "run: no scenario files")
		return 2
	}

	zl, err := newZap(*level, *dev)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer zl.Sync() //nolint:errcheck
	log := zapr.NewLogger(zl).WithName("einstein")

	runner := scenario.NewRunner(scenario.WithLogger(log), scenario.WithTolerance(*tol))
	failed := 0
	for _, path := range files {
		if !runFile(runner, log, path, *out, stdout) {
			failed++
		}
	}
	if failed > 0 {
		log.Info("done", "files", len(files), "failed", failed)
		return 1
	}
	return 0
}

func runFile(runner *scenario.Runner, log logr.Logger, path, out string, stdout io.Writer) bool {
	report, err := runner.RunFile(path)
	if report != nil {
		fmt.Fprint(stdout, report)
	}
	if err != nil {
		log.Error(err, "scenario failed", "file", path)
		return false
	}
	if out == "" {
		return true
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".safetensors"
	if err := report.Save(filepath.Join(out, name)); err != nil {
		log.Error(err, "saving results", "file", path)
		return false
	}
	log.V(1).Info("saved", "file", path, "to", name)
	return true
}

// newZap builds the zap logger behind logr. Verbosity n enables logr's V(n),
// which zapr maps to zap level -n.
func newZap(level int, dev bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-level))
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.DisableStacktrace = !dev
	return cfg.Build()
}
