// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package symshape

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/symshape/graph"
	"github.com/gomlx/symshape/passes"
	"github.com/gomlx/symshape/types/shapes"
)

// UnsupportedOperandError reports a call-site operand symbolic analysis
// cannot model: a list of tensors. Callers match it with errors.As and skip
// the call site; nothing aborts.
type UnsupportedOperandError struct {
	Schema       graph.Schema
	OperandIndex int
}

func (e *UnsupportedOperandError) Error() string {
	return fmt.Sprintf("operand #%d of %s is a list of tensors, which symbolic shape analysis does not model",
		e.OperandIndex, e.Schema)
}

// AnalyzerOption configures an Analyzer at construction.
type AnalyzerOption func(*Analyzer)

// WithRounds overrides the simplification round budget for one analysis.
// Values below 1 are ignored.
func WithRounds(rounds int) AnalyzerOption {
	return func(a *Analyzer) {
		if rounds >= 1 {
			a.rounds = rounds
		}
	}
}

// partialInput is a program input bound to a tensor operand whose rank, but
// not every dimension, is known. Reads of it resolve one use at a time as
// simplification exposes them.
type partialInput struct {
	input *graph.Value
	shape shapes.Shape
}

// Analyzer partially evaluates one shape-compute program against the
// operand facts of one call site. It owns a private clone of the program
// and specializes it destructively; the registered original is never
// touched.
//
// An Analyzer is single-use and not safe for concurrent use; build one per
// call site.
type Analyzer struct {
	schema     graph.Schema
	fn         *graph.Graph
	rounds     int
	roundsUsed int
	partial    []partialInput
}

// NewAnalyzer prepares the analysis of fn at the call site n: it clones fn
// and binds each operand to the corresponding program input.
//
// Operand binding, per operand kind:
//   - tensor with a complete shape: the input becomes a []int constant now;
//   - tensor with known rank but unknown dimensions: recorded, its rank and
//     known dimensions are substituted into reads every round;
//   - tensor of unknown rank: stays symbolic;
//   - list of tensors: analysis fails with *UnsupportedOperandError;
//   - anything else produced by a host constant: the input becomes that
//     literal; other values stay symbolic.
//
// An operand-count mismatch with the program is a host-graph defect and
// returns an error rather than panicking: propagation drivers skip such
// call sites and keep going.
func NewAnalyzer(n *graph.Node, fn *graph.Graph, opts ...AnalyzerOption) (*Analyzer, error) {
	a := &Analyzer{
		schema: n.Schema(),
		fn:     fn.Clone(),
		rounds: defaultRounds(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if got, want := n.NumInputs(), a.fn.NumInputs(); got != want {
		return nil, errors.Errorf("call site of %s has %d operands, shape function %q takes %d",
			a.schema, got, fn.Name(), want)
	}
	for i, operand := range n.Inputs() {
		if err := a.bindOperand(i, operand); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *Analyzer) bindOperand(i int, operand *graph.Value) error {
	input := a.fn.Inputs()[i]
	if tensor, ok := operand.Type().(*graph.TensorType); ok {
		shape := tensor.Shape
		switch {
		case shape.IsComplete():
			a.fn.ReplaceWithConstant(input, shape.Clone().Dimensions)
		case shape.HasRank():
			a.partial = append(a.partial, partialInput{input: input, shape: shape.Clone()})
		}
		return nil
	}
	if graph.IsTensorList(operand.Type()) {
		return errors.WithStack(&UnsupportedOperandError{Schema: a.schema, OperandIndex: i})
	}
	if literal, ok := operand.ConstantValue(); ok {
		a.fn.ReplaceWithConstant(input, literal)
	}
	return nil
}

// Run simplifies the specialized program and extracts the output shape.
//
// Each round substitutes the partially known operand facts and then runs
// the simplification pipeline. After a round the program's structural hash
// is compared with the previous one: the passes are deterministic, so an
// unchanged hash is a fixed point and the remaining budget is skipped; the
// result is identical to running every round.
func (a *Analyzer) Run() shapes.Shape {
	hash := a.fn.StructuralHash()
	a.roundsUsed = 0
	for round := 1; round <= a.rounds; round++ {
		a.substituteTensorProperties()
		passes.LowerSimpleTuples(a.fn)
		passes.RemoveListMutation(a.fn)
		passes.UnrollConstantLoops(a.fn)
		passes.ConstantPropagation(a.fn)
		passes.PeepholeOptimize(a.fn)
		passes.ConstantPropagation(a.fn)
		a.roundsUsed = round
		next := a.fn.StructuralHash()
		if klog.V(2).Enabled() {
			klog.Infof("symshape: %s round %d hash %016x:\n%s", a.schema, round, next, a.fn)
		}
		if next == hash {
			break
		}
		hash = next
	}
	passes.ConstantPooling(a.fn)
	passes.EliminateDeadCode(a.fn)
	result := a.extractShape()
	klog.V(1).Infof("symshape: %s resolved to %s in %d rounds", a.schema, result, a.roundsUsed)
	return result
}

// RoundsUsed returns how many rounds the last Run executed before reaching
// its fixed point or exhausting the budget.
func (a *Analyzer) RoundsUsed() int { return a.roundsUsed }

// substituteTensorProperties folds what is known about the partially known
// operands into the program: the rank into Len reads, known dimensions into
// Index reads at constant positions. Slice reads of an operand are left
// symbolic.
func (a *Analyzer) substituteTensorProperties() {
	for _, p := range a.partial {
		uses := p.input.Uses()
		users := make([]*graph.Node, len(uses))
		for i, u := range uses {
			users[i] = u.User
		}
		for _, user := range users {
			a.substituteUse(user, p.shape)
		}
	}
}

func (a *Analyzer) substituteUse(user *graph.Node, shape shapes.Shape) {
	if user.Destroyed() {
		return
	}
	switch user.Op() {
	case graph.OpTypeListLen:
		a.fn.ReplaceWithConstant(user.Output(), shape.Rank())
		user.Destroy()

	case graph.OpTypeListIndex:
		idx, ok := user.Input(1).ConstantInt()
		if !ok {
			return
		}
		if idx < 0 {
			idx += shape.Rank()
		}
		if idx < 0 || idx >= shape.Rank() {
			// Out of range: left for the runtime to report, never folded.
			return
		}
		if !shape.DimKnown(idx) {
			return
		}
		a.fn.ReplaceWithConstant(user.Output(), shape.Dim(idx))
		user.Destroy()
	}
}

// extractShape reads the result off the simplified program's single output.
// Everything not proven stays unknown.
func (a *Analyzer) extractShape() shapes.Shape {
	out := a.fn.Outputs()[0]
	if dims, ok := out.ConstantIntList(); ok {
		return staticShape(dims)
	}
	producer := out.Node()
	if producer.Op() != graph.OpTypeListConstruct || out.NumUses() != 1 {
		// Opaque or aliased: some element could still be observed through
		// another path, so not even the rank is trustworthy.
		return shapes.Unknown()
	}
	shape := shapes.OfRank(producer.NumInputs())
	for i := 0; i < producer.NumInputs(); i++ {
		if dim, ok := producer.Input(i).ConstantInt(); ok && dim >= 0 {
			shape.Dimensions[i] = dim
		}
	}
	return shape
}

// staticShape converts a constant program result to a shape. A negative
// entry would break the shape invariants (a miscomputing program, not a
// miscomputing analyzer), so it degrades to an unknown dimension.
func staticShape(dims []int) shapes.Shape {
	shape := shapes.OfRank(len(dims))
	for i, dim := range dims {
		if dim >= 0 {
			shape.Dimensions[i] = dim
		}
	}
	return shape
}
