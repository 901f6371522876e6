package cmd

import (
	"fmt"
	"os"
	"sort"

	canvas "github.com/phanxgames/mediacanvas"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Print a summary of a saved canvas snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var nodeTypeNames = map[canvas.NodeType]string{
	canvas.NodeImage:    "image",
	canvas.NodeVideo:    "video",
	canvas.NodeText:     "text",
	canvas.NodeShape:    "shape",
	canvas.NodeGroupBox: "groupbox",
}

func runInspect(c *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	g, err := canvas.DecodeCanvasState(data)
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	out := c.OutOrStdout()
	fmt.Fprintf(out, "nodes: %d\n", g.Len())

	counts := make(map[string]int)
	ids := make([]canvas.NodeID, 0, g.Len())
	for _, n := range g.Nodes() {
		name, ok := nodeTypeNames[n.Type]
		if !ok {
			name = "unknown"
		}
		counts[name]++
		ids = append(ids, n.ID)
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %d\n", name, counts[name])
	}

	if g.Len() > 0 {
		b := g.AABBOf(ids)
		fmt.Fprintf(out, "bounds: x=%.1f y=%.1f w=%.1f h=%.1f\n", b.X, b.Y, b.Width, b.Height)
	}
	return nil
}
