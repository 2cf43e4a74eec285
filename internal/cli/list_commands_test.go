package modelmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRunListCommandsSkipsBuiltinsAndHidden(t *testing.T) {
	root := &cobra.Command{Use: "tool", Short: "root"}
	group := &cobra.Command{Use: "list", Short: "group"}
	group.AddCommand(&cobra.Command{Use: "things", Short: "list things", Run: func(*cobra.Command, []string) {}})
	group.AddCommand(&cobra.Command{Use: "secret", Short: "hidden", Hidden: true, Run: func(*cobra.Command, []string) {}})
	root.AddCommand(group)
	root.InitDefaultHelpCmd()
	root.InitDefaultCompletionCmd()

	var buf bytes.Buffer
	runListCommands(&buf, root)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 commands, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[3], "      tool list things") || !strings.HasSuffix(lines[3], "list things") {
		t.Fatalf("unexpected nested row %q", lines[3])
	}
	for _, skipped := range []string{"secret", "help", "completion"} {
		if strings.Contains(out, skipped) {
			t.Fatalf("%q should not be listed:\n%s", skipped, out)
		}
	}
}
