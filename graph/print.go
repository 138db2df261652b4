// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package graph

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// String renders the whole graph, nested blocks indented, e.g.:
//
//	graph aten::mm(%0: List[Int], %1: List[Int]) -> (List[Int]) {
//	  %2 = Constant[0] : Int
//	  %3 = ListIndex(%0, %2) : Int
//	  ...
//	  return (%7)
//	}
//
// Value numbers are assigned in print order, so two structurally identical
// graphs render identically regardless of their mutation history.
func (g *Graph) String() string {
	return g.render(true)
}

// StructuralHash returns an FNV-1a hash of the canonical rendering with the
// graph name excluded: clones hash equal to their original, and any
// structural change moves the hash. The analyzer uses it to detect that a
// simplification round reached a fixed point.
func (g *Graph) StructuralHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(g.render(false)))
	return h.Sum64()
}

func (g *Graph) render(withName bool) string {
	p := &printer{names: make(map[*Value]int)}
	name := ""
	if withName {
		name = g.name
	}
	p.sb.WriteString("graph ")
	p.sb.WriteString(name)
	p.sb.WriteString("(")
	for i, in := range g.Inputs() {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		fmt.Fprintf(&p.sb, "%s: %s", p.value(in), in.Type())
	}
	p.sb.WriteString(") -> (")
	for i, out := range g.Outputs() {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(out.Type().String())
	}
	p.sb.WriteString(") {\n")
	p.body(g.root, 1)
	fmt.Fprintf(&p.sb, "%sreturn (%s)\n", indentOf(1), p.valueList(g.Outputs()))
	p.sb.WriteString("}")
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	names map[*Value]int
	next  int
}

func indentOf(level int) string {
	return strings.Repeat("  ", level)
}

func (p *printer) value(v *Value) string {
	id, ok := p.names[v]
	if !ok {
		id = p.next
		p.next++
		p.names[v] = id
	}
	return fmt.Sprintf("%%%d", id)
}

func (p *printer) valueList(vs []*Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = p.value(v)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) typeList(vs []*Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Type().String()
	}
	return strings.Join(parts, ", ")
}

func (p *printer) body(b *Block, level int) {
	for _, n := range b.body {
		p.node(n, level)
	}
}

func (p *printer) node(n *Node, level int) {
	p.sb.WriteString(indentOf(level))
	if len(n.outputs) > 0 {
		fmt.Fprintf(&p.sb, "%s = ", p.valueList(n.outputs))
	}
	switch n.op {
	case OpTypeConstant:
		fmt.Fprintf(&p.sb, "Constant[%s]", literalString(n.literal))
	case OpTypeOperator:
		fmt.Fprintf(&p.sb, "Operator[%s](%s)", n.schema, p.valueList(n.inputs))
	case OpTypeRaise:
		fmt.Fprintf(&p.sb, "Raise[%q]", n.message)
	default:
		fmt.Fprintf(&p.sb, "%s(%s)", n.op, p.valueList(n.inputs))
	}
	if len(n.outputs) > 0 {
		fmt.Fprintf(&p.sb, " : %s", p.typeList(n.outputs))
	}
	if len(n.blocks) == 0 {
		p.sb.WriteString("\n")
		return
	}
	p.sb.WriteString(" {\n")
	for i, b := range n.blocks {
		label := blockLabel(n.op, i)
		if len(b.Inputs()) > 0 {
			params := make([]string, len(b.Inputs()))
			for j, param := range b.Inputs() {
				params[j] = fmt.Sprintf("%s: %s", p.value(param), param.Type())
			}
			fmt.Fprintf(&p.sb, "%s%s(%s):\n", indentOf(level+1), label, strings.Join(params, ", "))
		} else {
			fmt.Fprintf(&p.sb, "%s%s:\n", indentOf(level+1), label)
		}
		p.body(b, level+2)
		fmt.Fprintf(&p.sb, "%s-> (%s)\n", indentOf(level+2), p.valueList(b.Outputs()))
	}
	fmt.Fprintf(&p.sb, "%s}\n", indentOf(level))
}

func blockLabel(op OpType, i int) string {
	if op == OpTypeIf {
		if i == 0 {
			return "then"
		}
		return "else"
	}
	return "body"
}

func literalString(literal any) string {
	if literal == nil {
		return "None"
	}
	return fmt.Sprintf("%v", literal)
}

// String renders the node on one line with raw value ids, nested block
// bodies elided.
func (n *Node) String() string {
	var sb strings.Builder
	if len(n.outputs) > 0 {
		parts := make([]string, len(n.outputs))
		for i, out := range n.outputs {
			parts[i] = out.String()
		}
		fmt.Fprintf(&sb, "%s = ", strings.Join(parts, ", "))
	}
	ins := make([]string, len(n.inputs))
	for i, in := range n.inputs {
		ins[i] = in.String()
	}
	switch n.op {
	case OpTypeConstant:
		fmt.Fprintf(&sb, "Constant[%s]", literalString(n.literal))
	case OpTypeOperator:
		fmt.Fprintf(&sb, "Operator[%s](%s)", n.schema, strings.Join(ins, ", "))
	case OpTypeRaise:
		fmt.Fprintf(&sb, "Raise[%q]", n.message)
	default:
		fmt.Fprintf(&sb, "%s(%s)", n.op, strings.Join(ins, ", "))
	}
	if len(n.blocks) > 0 {
		sb.WriteString(" {...}")
	}
	return sb.String()
}
