// Package functions lifts scalar math functions into expression nodes.
// Every function accepts numeric arguments of any type and evaluates in
// float64.
//
// Example:
//
//	s, err := expr.Apply(functions.Sin, x) // sin(X(i))
package functions

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/mathext"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/tensor"
)

// float64Result accepts numeric arguments and yields float64.
func float64Result(name string) func([]tensor.DataType) (tensor.DataType, error) {
	return func(args []tensor.DataType) (tensor.DataType, error) {
		for i, dt := range args {
			if !dt.IsNumeric() {
				return 0, errors.Wrapf(tensor.ErrIncompatibleElementType, "%s: argument %d is %s", name, i, dt)
			}
		}
		return tensor.Float64, nil
	}
}

// Unary lifts f into an expr.Func of one argument.
func Unary(name string, f func(float64) float64) expr.Func {
	return expr.Func{
		Name:   name,
		Arity:  1,
		Result: float64Result(name),
		Eval: func(args []tensor.Value) tensor.Value {
			return tensor.ValueOf(f(args[0].Float64()))
		},
	}
}

// Binary lifts f into an expr.Func of two arguments.
func Binary(name string, f func(a, b float64) float64) expr.Func {
	return expr.Func{
		Name:   name,
		Arity:  2,
		Result: float64Result(name),
		Eval: func(args []tensor.Value) tensor.Value {
			return tensor.ValueOf(f(args[0].Float64(), args[1].Float64()))
		},
	}
}

// Ternary lifts f into an expr.Func of three arguments.
func Ternary(name string, f func(a, b, c float64) float64) expr.Func {
	return expr.Func{
		Name:   name,
		Arity:  3,
		Result: float64Result(name),
		Eval: func(args []tensor.Value) tensor.Value {
			return tensor.ValueOf(f(args[0].Float64(), args[1].Float64(), args[2].Float64()))
		},
	}
}

// Elementary functions from the math package.
var (
	Abs   = Unary("abs", math.Abs)
	Exp   = Unary("exp", math.Exp)
	Exp2  = Unary("exp2", math.Exp2)
	Expm1 = Unary("expm1", math.Expm1)
	Log   = Unary("log", math.Log)
	Log10 = Unary("log10", math.Log10)
	Log2  = Unary("log2", math.Log2)
	Log1p = Unary("log1p", math.Log1p)
	Pow   = Binary("pow", math.Pow)
	Sqrt  = Unary("sqrt", math.Sqrt)
	Cbrt  = Unary("cbrt", math.Cbrt)
	Hypot = Binary("hypot", math.Hypot)

	Sin   = Unary("sin", math.Sin)
	Cos   = Unary("cos", math.Cos)
	Tan   = Unary("tan", math.Tan)
	Asin  = Unary("asin", math.Asin)
	Acos  = Unary("acos", math.Acos)
	Atan  = Unary("atan", math.Atan)
	Atan2 = Binary("atan2", math.Atan2)
	Sinh  = Unary("sinh", math.Sinh)
	Cosh  = Unary("cosh", math.Cosh)
	Tanh  = Unary("tanh", math.Tanh)
	Asinh = Unary("asinh", math.Asinh)
	Acosh = Unary("acosh", math.Acosh)
	Atanh = Unary("atanh", math.Atanh)

	Erf    = Unary("erf", math.Erf)
	Erfc   = Unary("erfc", math.Erfc)
	Gamma  = Unary("gamma", math.Gamma)
	Lgamma = Unary("lgamma", func(x float64) float64 {
		lg, _ := math.Lgamma(x)
		return lg
	})
)

// Special functions from gonum's mathext. Elliptic integrals take the
// modulus k, not the parameter m = k².
var (
	Beta    = Binary("beta", mathext.Beta)
	Digamma = Unary("digamma", mathext.Digamma)

	// Zeta is the Riemann zeta function.
	Zeta = Unary("zeta", func(x float64) float64 { return mathext.Zeta(x, 1) })

	// HurwitzZeta is ζ(x, q).
	HurwitzZeta = Binary("hurwitz_zeta", mathext.Zeta)

	// CompleteK is the complete elliptic integral of the first kind K(k).
	CompleteK = Unary("comp_ellint_1", func(k float64) float64 { return mathext.CompleteK(k * k) })

	// CompleteE is the complete elliptic integral of the second kind E(k).
	CompleteE = Unary("comp_ellint_2", func(k float64) float64 { return mathext.CompleteE(k * k) })

	// EllipticF is the incomplete elliptic integral of the first kind F(k, φ).
	EllipticF = Binary("ellint_1", func(k, phi float64) float64 { return mathext.EllipticF(phi, k*k) })

	// EllipticE is the incomplete elliptic integral of the second kind E(k, φ).
	EllipticE = Binary("ellint_2", func(k, phi float64) float64 { return mathext.EllipticE(phi, k*k) })

	RegIncBeta  = Ternary("reg_inc_beta", mathext.RegIncBeta)
	GammaIncReg = Binary("gamma_inc_reg", mathext.GammaIncReg)
)

var registry = map[string]expr.Func{}

func init() {
	for _, f := range []expr.Func{
		Abs, Exp, Exp2, Expm1, Log, Log10, Log2, Log1p, Pow, Sqrt, Cbrt, Hypot,
		Sin, Cos, Tan, Asin, Acos, Atan, Atan2, Sinh, Cosh, Tanh, Asinh, Acosh, Atanh,
		Erf, Erfc, Gamma, Lgamma,
		Beta, Digamma, Zeta, HurwitzZeta, CompleteK, CompleteE, EllipticF, EllipticE,
		RegIncBeta, GammaIncReg,
	} {
		registry[f.Name] = f
	}
}

// Lookup returns the function registered under name.
func Lookup(name string) (expr.Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered function names in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	sort.Strings(names)
	return names
}
