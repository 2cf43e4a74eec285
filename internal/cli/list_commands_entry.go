package modelmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// commandRow is one line of the command listing.
type commandRow struct {
	path  string
	short string
	depth int
}

// runListCommands prints every user-facing command path next to its short description.
func runListCommands(out io.Writer, root *cobra.Command) {
	rows := walkCommands(root, nil, 0)

	width := 0
	for _, r := range rows {
		if n := 2*r.depth + len(r.path); n > width {
			width = n
		}
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, r := range rows {
		label := strings.Repeat("  ", r.depth) + r.path
		fmt.Fprintf(out, "  %-*s  %s\n", width, label, r.short)
	}
}

// walkCommands flattens the tree below cmd depth-first, skipping cobra's
// built-in help and completion commands and anything hidden.
func walkCommands(cmd *cobra.Command, parents []string, depth int) []commandRow {
	if !listable(cmd) {
		return nil
	}
	names := append(append([]string(nil), parents...), cmd.Name())
	rows := []commandRow{{path: strings.Join(names, " "), short: cmd.Short, depth: depth}}
	for _, sub := range cmd.Commands() {
		rows = append(rows, walkCommands(sub, names, depth+1)...)
	}
	return rows
}

func listable(cmd *cobra.Command) bool {
	if cmd.Hidden {
		return false
	}
	switch cmd.Name() {
	case "help", "completion":
		return cmd.Parent() == nil
	}
	return true
}
