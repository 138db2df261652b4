// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// symshape_registry prints the standard shape-function registry: one row
// per operator schema with the program it resolves to, or, with -schema,
// the full IR of a single program.
//
// Examples:
//
//	symshape_registry
//	symshape_registry -schema aten::conv2d
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/gomlx/symshape"
	"github.com/gomlx/symshape/graph"
	"github.com/gomlx/symshape/shapefuncs"
)

var flagSchema = flag.String("schema", "", "Dump the IR of the shape function registered "+
	"for this operator schema (e.g. \"aten::mm\" or \"aten::add.Tensor\") instead of the "+
	"registry table.")

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Left)
			} else {
				s = s.Align(lipgloss.Right)
			}
			return
		})
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'symshape_registry -help'.", flag.Args())
		os.Exit(1)
	}

	r := shapefuncs.New()
	if *flagSchema != "" {
		dumpProgram(r, *flagSchema)
		return
	}
	printRegistry(r)
}

func dumpProgram(r *symshape.Registry, schema string) {
	fn := r.Lookup(graph.ParseSchema(schema))
	if fn == nil {
		klog.Errorf("No shape function registered for %q. Run without -schema for the full table.", schema)
		os.Exit(1)
	}
	fmt.Println(titleStyle.Render(schema))
	fmt.Println(fn)
}

func printRegistry(r *symshape.Registry) {
	fmt.Println(titleStyle.Render("Registered Shape Functions"))
	table := newPlainTable(true)
	table.Row("Schema", "Program", "Operands", "Operand Types", "Nodes", "Structural Hash")

	distinct := make(map[*graph.Graph]bool)
	var totalNodes int64
	for _, schema := range r.Schemas() {
		fn := r.Lookup(schema)
		nodes := countNodes(fn.Root())
		if !distinct[fn] {
			distinct[fn] = true
			totalNodes += int64(nodes)
		}
		table.Row(
			schema.String(),
			fn.Name(),
			humanize.Comma(int64(fn.NumInputs())),
			operandTypes(fn),
			humanize.Comma(int64(nodes)),
			fmt.Sprintf("%016x", fn.StructuralHash()),
		)
	}
	fmt.Println(table.Render())
	fmt.Printf("%s operators served by %s programs, %s nodes total.\n",
		humanize.Comma(int64(r.Len())), humanize.Comma(int64(len(distinct))), humanize.Comma(totalNodes))
}

// countNodes counts the nodes of a block, including nested blocks.
func countNodes(b *graph.Block) int {
	total := 0
	for _, n := range b.Nodes() {
		total++
		for _, nested := range n.Blocks() {
			total += countNodes(nested)
		}
	}
	return total
}

func operandTypes(fn *graph.Graph) string {
	s := ""
	for i, in := range fn.Inputs() {
		if i > 0 {
			s += ", "
		}
		s += in.Type().String()
	}
	return s
}
