package expr

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/loop"
	"github.com/born-ml/einstein/internal/tensor"
)

// sink returns the writable source of target.
func sink(target *Tensor) (Sink, error) {
	if target == nil {
		return nil, errors.Wrap(ErrNilNode, "assignment target")
	}
	s, ok := target.src.(Sink)
	if !ok {
		return nil, errors.Wrapf(ErrNotAssignable, "%T", target.src)
	}
	if err := index.CheckTarget(target.m); err != nil {
		return nil, err
	}
	return s, nil
}

// Assign evaluates rhs at every coordinate of target and stores the result:
// target(free...) = Σ rhs over the contracted symbols.
//
// Every check runs before any element is written, so a failed assignment
// leaves the target unchanged. Symbols of target absent from rhs broadcast.
// The storage behind target must not be read by rhs.
func Assign(target *Tensor, rhs Node) error {
	s, err := sink(target)
	if err != nil {
		return err
	}
	if rhs == nil {
		return errors.Wrap(ErrNilNode, "right-hand side")
	}

	tm, rm := target.m, rhs.Map()
	if err := multierr.Combine(
		index.CheckCommon(tm, rm),
		index.CheckSummation(tm, rm, rhs.Contracting),
	); err != nil {
		return errors.WithMessagef(err, "%s = %s", tm, rm)
	}
	free := tm.Symbols()
	if err := rhs.validate(free); err != nil {
		return errors.WithMessagef(err, "%s = %s", tm, rm)
	}
	if err := tensor.AssignableTo(rhs.DType(), target.DType()); err != nil {
		return err
	}

	loop.Run(tm.Extents(), nil, func(coords []int) {
		s.SetValue(target.storage(coords), rhs.Sum(free, coords))
	})
	return nil
}

// Fill stores v at every coordinate of target.
func Fill(target *Tensor, v tensor.Value) error {
	s, err := sink(target)
	if err != nil {
		return err
	}
	if err := tensor.AssignableTo(v.DType(), target.DType()); err != nil {
		return err
	}
	loop.Run(target.m.Extents(), nil, func(coords []int) {
		s.SetValue(target.storage(coords), v)
	})
	return nil
}

// Reduce evaluates an expression whose every symbol is contracted, such as
// u(i)*v(i), to a single value.
func Reduce(n Node) (tensor.Value, error) {
	if n == nil {
		return tensor.Value{}, errors.Wrap(ErrNilNode, "reduce")
	}
	m := n.Map()
	if err := index.CheckSummation(index.Map{}, m, n.Contracting); err != nil {
		return tensor.Value{}, errors.WithMessagef(err, "reducing %s", m)
	}
	if err := n.validate(nil); err != nil {
		return tensor.Value{}, errors.WithMessagef(err, "reducing %s", m)
	}
	return n.Sum(nil, nil), nil
}
