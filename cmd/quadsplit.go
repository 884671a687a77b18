package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/bloodmagesoftware/hemesh/modifier"
	"github.com/bloodmagesoftware/hemesh/progress"
	"github.com/spf13/cobra"
)

var (
	quadsplitOffset     float64
	quadsplitLabels     []int32
	quadsplitIterations int
)

var quadsplitCmd = &cobra.Command{
	Use:   "quadsplit",
	Short: "Split the faces of the configured shape into quads",
	Long: `Builds the configured shape and splits every face, or every face carrying one of
the given labels, into quads around a new center vertex. The result is validated and its
statistics are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := meshFromFlags(cmd)
		if err != nil {
			return err
		}

		offset := config.QuadSplit.Offset
		if cmd.Flags().Changed("offset") {
			offset = quadsplitOffset
		}
		iterations := config.QuadSplit.Iterations
		if cmd.Flags().Changed("iterations") {
			iterations = quadsplitIterations
		}
		if iterations < 0 {
			return fmt.Errorf("iterations must not be negative, got %d", iterations)
		}
		labels := config.Selection.Labels
		if cmd.Flags().Changed("label") {
			labels = quadsplitLabels
		}

		q := modifier.NewQuadSplit().
			SetOffset(offset).
			WithTracker(progress.NewLogTracker(log))

		for i := range iterations {
			log.Info().Int("iteration", i+1).Int("of", iterations).Msg("Running QuadSplit")
			if len(labels) == 0 {
				_, err = q.Apply(m)
			} else {
				_, err = q.ApplySelection(selectLabels(m, labels))
			}
			if err != nil {
				return fmt.Errorf("iteration %d: %w", i+1, err)
			}
		}

		if err := report(cmd.OutOrStdout(), m); err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), m.Stats())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quadsplitCmd)
	addShapeFlags(quadsplitCmd)
	quadsplitCmd.Flags().Float64VarP(&quadsplitOffset, "offset", "o", 0, "Distance to move each center along the face normal")
	quadsplitCmd.Flags().Int32SliceVarP(&quadsplitLabels, "label", "l", nil, "Only split faces with this label (repeatable)")
	quadsplitCmd.Flags().IntVarP(&quadsplitIterations, "iterations", "n", 1, "Number of times to apply QuadSplit")
}

func selectLabels(m *hemesh.Mesh, labels []int32) *hemesh.Selection {
	sel := hemesh.NewSelection(m)
	for _, label := range labels {
		// both selections share m, so the union cannot fail
		_ = sel.Union(hemesh.SelectFacesByLabel(m, label))
	}
	if sel.NumberOfFaces() == 0 {
		log.Warn().Ints32("labels", labels).Msg("No faces carry the selected labels")
	}
	return sel
}
