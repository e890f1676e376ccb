// Package scenario runs tensor computations described in YAML files: a set of
// tensor declarations, a list of indicial-notation statements such as
// "C(i,j) = A(i,k) * B(k,j)", and the values expected afterwards.
//
// Example file:
//
//	name: matrix product
//	tensors:
//	  A: {type: float64, shape: [2, 2], data: [1, 2, 3, 4]}
//	  B: {type: float64, shape: [2, 2], data: [1, 0, 1, 1]}
//	  C: {type: float64, shape: [2, 2]}
//	statements:
//	  - C(i,j) = A(i,k) * B(k,j)
//	expect:
//	  C: [3, 2, 7, 4]
package scenario

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is a parsed scenario file.
type File struct {
	Name       string                 `yaml:"name"`
	Tensors    map[string]Declaration `yaml:"tensors"`
	Statements []Statement            `yaml:"statements"`
	Expect     map[string][]float64   `yaml:"expect"`

	// dir resolves relative load paths; empty means the working directory.
	dir string
}

// Declaration describes one tensor. Kind selects a constant tensor
// ("delta" or "levi_civita") of the given Rank. Load reads the tensor named
// Key (default: the declaration's name) from a SafeTensors file; the type
// defaults to the stored one. Otherwise the tensor is dense storage of Shape,
// initialized from Data, Fill or Random, or zero.
type Declaration struct {
	Type   string    `yaml:"type"`
	Load   string    `yaml:"load"`
	Key    string    `yaml:"key"`
	Shape  []int     `yaml:"shape"`
	Data   []float64 `yaml:"data"`
	Fill   *float64  `yaml:"fill"`
	Random *Random   `yaml:"random"`
	Kind   string    `yaml:"kind"`
	Rank   int       `yaml:"rank"`
}

// Random fills a tensor with integers drawn uniformly from [Min, Max].
type Random struct {
	Seed int64 `yaml:"seed"`
	Min  int   `yaml:"min"`
	Max  int   `yaml:"max"`
}

// Statement is one line of a scenario. In YAML it is either a plain string or
// a mapping {do: ..., error: ...} naming the error the statement must fail
// with, e.g. "MismatchedFreeIndex".
type Statement struct {
	Text  string `yaml:"do"`
	Error string `yaml:"error"`
}

// UnmarshalYAML accepts both forms of a statement.
func (s *Statement) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Text = node.Value
		return nil
	}
	type plain Statement
	return node.Decode((*plain)(s))
}

// Parse decodes a scenario file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "scenario: decoding yaml")
	}
	return &f, nil
}

// Load reads and decodes the scenario file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario: reading %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	if f.Name == "" {
		f.Name = path
	}
	f.dir = filepath.Dir(path)
	return f, nil
}
