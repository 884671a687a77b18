package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/hemesh/hemesh"
	"github.com/bloodmagesoftware/hemesh/primitive"
	"github.com/bloodmagesoftware/hemesh/project"
	"github.com/spf13/cobra"
)

var shapeFlags project.ShapeConfig

func addShapeFlags(cmd *cobra.Command) {
	defaults := project.DefaultConfig().Shape
	cmd.Flags().StringVarP(&shapeFlags.Kind, "shape", "s", defaults.Kind, "Shape to build (polygon/grid/box)")
	cmd.Flags().IntVar(&shapeFlags.Sides, "sides", defaults.Sides, "Number of polygon sides")
	cmd.Flags().Float64Var(&shapeFlags.Radius, "radius", defaults.Radius, "Polygon radius")
	cmd.Flags().IntVar(&shapeFlags.Rows, "rows", defaults.Rows, "Grid rows")
	cmd.Flags().IntVar(&shapeFlags.Cols, "cols", defaults.Cols, "Grid columns")
	cmd.Flags().Float64Var(&shapeFlags.Size, "size", defaults.Size, "Grid cell or box edge length")
}

// resolveShape merges explicitly set shape flags into the loaded config.
func resolveShape(cmd *cobra.Command) (project.ShapeConfig, error) {
	shape := config.Shape
	flags := cmd.Flags()
	if flags.Changed("shape") {
		shape.Kind = shapeFlags.Kind
	}
	if flags.Changed("sides") {
		shape.Sides = shapeFlags.Sides
	}
	if flags.Changed("radius") {
		shape.Radius = shapeFlags.Radius
	}
	if flags.Changed("rows") {
		shape.Rows = shapeFlags.Rows
	}
	if flags.Changed("cols") {
		shape.Cols = shapeFlags.Cols
	}
	if flags.Changed("size") {
		shape.Size = shapeFlags.Size
	}

	merged := *config
	merged.Shape = shape
	if err := merged.Validate(); err != nil {
		return project.ShapeConfig{}, err
	}
	return shape, nil
}

func buildShape(shape project.ShapeConfig) (*hemesh.Mesh, error) {
	var (
		m   *hemesh.Mesh
		err error
	)
	switch shape.Kind {
	case project.ShapePolygon:
		m, err = primitive.Polygon(shape.Sides, shape.Radius)
	case project.ShapeGrid:
		m, err = primitive.Grid(shape.Rows, shape.Cols, shape.Size)
	case project.ShapeBox:
		m, err = primitive.Box(shape.Size)
	default:
		return nil, fmt.Errorf("unknown shape %q", shape.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", shape.Kind, err)
	}
	log.Debug().
		Str("shape", shape.Kind).
		Int("vertices", m.NumberOfVertices()).
		Int("faces", m.NumberOfFaces()).
		Msg("Built shape")
	return m, nil
}

// meshFromFlags builds the shape configured by hemesh.yaml and the command flags.
func meshFromFlags(cmd *cobra.Command) (*hemesh.Mesh, error) {
	shape, err := resolveShape(cmd)
	if err != nil {
		return nil, err
	}
	return buildShape(shape)
}
