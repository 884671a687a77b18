package cmd

import (
	"fmt"
	"io"
	"slices"

	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print element counts of the configured shape",
	Long:  `Builds the configured shape and prints its vertex, half-edge and face counts and the face order histogram.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := meshFromFlags(cmd)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), m.Stats())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	addShapeFlags(statsCmd)
}

func printStats(w io.Writer, stats hemesh.Stats) {
	fmt.Fprintf(w, "Vertices:   %d\n", stats.Vertices)
	fmt.Fprintf(w, "Half-edges: %d (%d on the boundary)\n", stats.Halfedges, stats.BoundaryHalfedges)
	fmt.Fprintf(w, "Faces:      %d\n", stats.Faces)

	orders := make([]int, 0, len(stats.FaceOrders))
	for order := range stats.FaceOrders {
		orders = append(orders, order)
	}
	slices.Sort(orders)
	for _, order := range orders {
		fmt.Fprintf(w, "  %d-gons: %d\n", order, stats.FaceOrders[order])
	}
}
