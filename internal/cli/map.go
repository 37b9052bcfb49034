package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarefo/calendar/pkg/geo"
	"github.com/sarefo/calendar/pkg/worldmap"
)

// mapCommand creates the map command for projecting coordinates onto
// the world map canvas.
func (c *CLI) mapCommand() *cobra.Command {
	var (
		output  string
		baseMap string
		label   string
	)

	cmd := &cobra.Command{
		Use:   "map <coordinates>",
		Short: "Project coordinates onto the world map",
		Long: `Map parses a coordinate string, projects it onto the calendar's
world map canvas, and prints the canvas position. With --output it
writes the marker SVG instead, onto the base map when one is given:

  photocal map "4.25°S, 79.23°W"
  photocal map "53.35, -6.26" --base-map assets/world.svg -o dublin.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := geo.ParseCoordinate(args[0])
			if err != nil {
				return err
			}
			pt := geo.DefaultProjection().Project(coord)

			if output == "" {
				printKeyValue("Latitude", fmt.Sprintf("%.4f°", coord.Lat))
				printKeyValue("Longitude", fmt.Sprintf("%.4f°", coord.Lon))
				printKeyValue("Canvas", fmt.Sprintf("x=%.1f y=%.1f", pt.X, pt.Y))
				return nil
			}

			var markerOpts []worldmap.Option
			if label != "" {
				markerOpts = append(markerOpts, worldmap.WithLabel(label))
			}

			var svg []byte
			if baseMap != "" {
				base, err := os.ReadFile(baseMap)
				if err != nil {
					return err
				}
				svg, err = worldmap.Render(base, pt, markerOpts...)
				if err != nil {
					return err
				}
			} else {
				svg = worldmap.Fallback(pt, markerOpts...)
			}

			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return err
			}
			printSuccess("Wrote marker for %s", strings.TrimSpace(args[0]))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the marker SVG to this file")
	cmd.Flags().StringVar(&baseMap, "base-map", "", "world map SVG to draw the marker onto")
	cmd.Flags().StringVar(&label, "label", "", "location label next to the marker")

	return cmd
}
