// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package symshape

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gomlx/symshape/graph"
)

// PropagateShapes fills in the output shape of every Operator node in the
// host graph's top-level block that has a registered shape function. Each
// call site is analyzed against its own operand facts on a fresh program
// clone, so two call sites of the same operator resolve independently.
//
// Call sites the analysis cannot handle are skipped and logged, never
// fatal: a missing shape function, an unsupported operand, an operand-count
// mismatch all just leave that node's shape as it was. The node's dtype and
// device are always preserved; only the shape part of its type is
// rewritten, and non-tensor outputs are left alone.
//
// The registry lock is held for the whole walk, so propagation serializes
// with registration and with other propagation calls.
func (r *Registry) PropagateShapes(host *graph.Graph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range host.Root().Nodes() {
		if n.Op() != graph.OpTypeOperator {
			continue
		}
		// Plain map access: the lock is already held (and not reentrant).
		fn := r.programs[n.Schema()]
		if fn == nil {
			klog.V(2).Infof("symshape: no shape function for %s, skipping", n.Schema())
			continue
		}
		propagateNode(n, fn)
	}
}

// propagateNode resolves one call site and installs the result shape on its
// output tensor type.
func propagateNode(n *graph.Node, fn *graph.Graph) {
	out := n.Output()
	tensor, ok := out.Type().(*graph.TensorType)
	if !ok {
		return
	}
	a, err := NewAnalyzer(n, fn)
	if err != nil {
		var unsupported *UnsupportedOperandError
		if errors.As(err, &unsupported) {
			klog.V(1).Infof("symshape: skipping %s: %v", n.Schema(), err)
		} else {
			klog.Warningf("symshape: skipping %s: %+v", n.Schema(), err)
		}
		return
	}
	out.SetType(tensor.WithShape(a.Run()))
}
