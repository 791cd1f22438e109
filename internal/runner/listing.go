package runner

import (
	"fmt"
	"io"
	"strings"

	"turtle/pkg/color"
	"turtle/pkg/vm"
)

// PrintListing writes every function of a built program, entry first,
// one numbered instruction per line
func PrintListing(w io.Writer, functions []*vm.Function) {
	fmt.Fprintln(w, color.GreenText("=== Program ==="))

	for _, f := range functions {
		if f.Name == vm.EntryName {
			fmt.Fprintln(w, color.BoldText(f.Name))
		} else {
			fmt.Fprintf(w, "%s %s(%s)\n", color.MagentaText("FUNC"), color.BoldText(f.Name), strings.Join(f.Params, ", "))
		}

		if len(f.Ops) == 0 {
			fmt.Fprintln(w, color.GrayText("  (empty)"))
			continue
		}

		for i, op := range f.Ops {
			fmt.Fprintf(w, "%s: %s %s\n",
				color.CyanText(fmt.Sprintf("%4d", i)),
				color.YellowText(op.String()),
				color.GrayText(fmt.Sprintf("// line %d", op.Line)))
		}
	}
}
