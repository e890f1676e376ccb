package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/safetensors"
)

// Result is the final content of one declared tensor.
type Result struct {
	Name   string
	Values []float64
	Text   string
}

// Report is the outcome of running a scenario.
type Report struct {
	Name    string
	Results []Result

	entries map[string]safetensors.Entry
}

// Runner executes scenario files.
type Runner struct {
	log logr.Logger
	tol float64
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Statements are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithTolerance sets the absolute tolerance used to compare expected values.
func WithTolerance(tol float64) Option {
	return func(r *Runner) { r.tol = tol }
}

// NewRunner returns a Runner with a discarding logger and tolerance 1e-9.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{log: logr.Discard(), tol: 1e-9}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile loads and runs the scenario at path.
func (r *Runner) RunFile(path string) (*Report, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return r.Run(f)
}

// Run declares the tensors of f, executes its statements in order and checks
// the expected values. Statement and expectation failures are all reported.
func (r *Runner) Run(f *File) (*Report, error) {
	log := r.log.WithName("scenario").WithValues("name", f.Name)
	log.Info("running", "tensors", len(f.Tensors), "statements", len(f.Statements))

	names := sortedKeys(f.Tensors)
	vars := make(map[string]variable, len(names))
	for _, name := range names {
		v, err := declare(name, f.Tensors[name], f.dir)
		if err != nil {
			return nil, err
		}
		vars[name] = v
	}

	var errs error
	for n, st := range f.Statements {
		if err := r.exec(log.WithValues("statement", n), st, vars); err != nil {
			errs = multierr.Append(errs, errors.WithMessagef(err, "statement %d", n))
		}
	}

	errs = multierr.Append(errs, r.check(f.Expect, vars))

	report := &Report{Name: f.Name, entries: make(map[string]safetensors.Entry)}
	for _, name := range names {
		v := vars[name]
		if v.values == nil {
			continue
		}
		res := Result{Name: name, Values: v.values(), Text: v.text()}
		log.Info("result", "tensor", name, "value", res.Text)
		report.Results = append(report.Results, res)
		report.entries[name] = v.entry()
	}
	return report, errs
}

// exec runs one statement and matches its error against the declared one.
func (r *Runner) exec(log logr.Logger, st Statement, vars map[string]variable) error {
	log.V(1).Info("executing", "do", st.Text)
	err := execStatement(st.Text, vars)

	if st.Error == "" {
		return err
	}
	want, ok := errorNames[st.Error]
	if !ok {
		return errors.Wrapf(ErrUnknownName, "error %s", st.Error)
	}
	if err == nil {
		return errors.Wrapf(ErrExpectation, "%q succeeded, want %s", st.Text, st.Error)
	}
	if !errors.Is(err, want) {
		return errors.Wrapf(ErrExpectation, "%q failed with %v, want %s", st.Text, err, st.Error)
	}
	log.V(1).Info("failed as expected", "error", err.Error())
	return nil
}

func execStatement(text string, vars map[string]variable) error {
	st, err := parseStatement(text, vars)
	if err != nil {
		return err
	}
	if st.fill != nil {
		return expr.Fill(st.target, *st.fill)
	}
	return expr.Assign(st.target, st.rhs)
}

// check compares the expected values with the tensors' contents.
func (r *Runner) check(expect map[string][]float64, vars map[string]variable) error {
	var errs error
	opt := cmpopts.EquateApprox(0, r.tol)
	for _, name := range sortedKeys(expect) {
		v, ok := vars[name]
		if !ok || v.values == nil {
			errs = multierr.Append(errs, errors.Wrapf(ErrUnknownName, "expected tensor %s", name))
			continue
		}
		if diff := cmp.Diff(expect[name], v.values(), opt); diff != "" {
			errs = multierr.Append(errs, errors.Wrapf(ErrExpectation, "%s (-want +got):\n%s", name, diff))
		}
	}
	return errs
}

// String renders the report as one "name = value" line per tensor.
func (rep *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", rep.Name)
	for _, res := range rep.Results {
		fmt.Fprintf(&b, "%s = %s\n", res.Name, res.Text)
	}
	return b.String()
}

// Save writes every dense tensor of the report to a SafeTensors file at path,
// with the scenario name as metadata.
func (rep *Report) Save(path string) error {
	return safetensors.WriteFile(path, rep.entries, map[string]string{"scenario": rep.Name})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
