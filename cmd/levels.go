package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List difficulty levels",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-3s  %-36s  %-5s  %-5s  %-6s  %s\n", "ID", "Code", "Max", "Carry", "Borrow", "Operations")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, p := range difficulty.All() {
			ops := make([]string, len(p.Operations))
			for i, op := range p.Operations {
				ops[i] = op.Symbol()
			}
			fmt.Fprintf(out, "%-3d  %-36s  %-5d  %-5s  %-6s  %s\n",
				p.ID, p.Code, p.MaxNumber, yesNo(p.AllowCarry), yesNo(p.AllowBorrow), strings.Join(ops, " "))
			fmt.Fprintf(out, "     %s\n", theme.Hint.Render(p.Name))
		}
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
