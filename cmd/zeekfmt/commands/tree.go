package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/syntax"
)

// maxTreeTextLen caps the leaf text shown per node in tree output.
const maxTreeTextLen = 40

func newTreeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the parse tree of a Zeek script",
		Long: `Print the parse tree of a Zeek script, one node per line.

Reads from stdin when no file is given. Useful for writing and debugging
formatting rules.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runTree(cobraCmd, args)
		},
	}

	return cmd
}

func runTree(cobraCmd *cobra.Command, args []string) error {
	var source []byte

	if len(args) == 1 {
		var err error

		source, _, err = safeReadFile(args[0], 0)
		if err != nil {
			return err
		}
	} else {
		var err error

		source, err = io.ReadAll(cobraCmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	lang, err := rules.Zeek()
	if err != nil {
		return err
	}

	parser := syntax.NewParser(lang.Grammar())

	tree, err := parser.Parse(cobraCmd.Context(), source)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	dumpNode(cobraCmd.OutOrStdout(), tree, tree.Root(), 0)

	return nil
}

// dumpNode prints one line per node, indented by depth. Leaves also show
// their source text.
func dumpNode(out io.Writer, tree *syntax.Tree, node syntax.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	location := fmt.Sprintf("[%d:%d-%d]", node.StartRow()+1, node.StartByte(), node.EndByte())

	switch {
	case node.IsLeaf():
		fmt.Fprintf(out, "%s%s %s %s\n", indent, node.Kind(), location, truncateQuoted(node.Text(tree.Source())))
	default:
		fmt.Fprintf(out, "%s%s %s\n", indent, node.Kind(), location)
	}

	for _, child := range node.Children() {
		dumpNode(out, tree, child, depth+1)
	}
}

func truncateQuoted(text []byte) string {
	quoted := strconv.Quote(string(text))
	if len(quoted) > maxTreeTextLen {
		quoted = quoted[:maxTreeTextLen-3] + "..."
	}

	return quoted
}
