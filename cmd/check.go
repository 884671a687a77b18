package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured shape",
	Long:  `Builds the configured shape and checks every half-edge mesh invariant and the edge pairing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := meshFromFlags(cmd)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), m)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addShapeFlags(checkCmd)
}

// report prints the validation result of m and returns an error when it is
// invalid.
func report(w io.Writer, m *hemesh.Mesh) error {
	err := m.Validate()
	if err == nil {
		err = m.CheckPairing()
	}
	if err == nil {
		fmt.Fprintln(w, "Mesh is valid")
		return nil
	}

	var verr *hemesh.ValidationError
	if errors.As(err, &verr) {
		for _, problem := range verr.Problems {
			fmt.Fprintf(w, "  %s\n", problem)
		}
	}
	return fmt.Errorf("checking mesh: %w", err)
}
