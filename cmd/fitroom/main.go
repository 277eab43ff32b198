// fitroom - Terminal 3D Fitting Room
// Try garments on a figure standing on a platform, rendered in your terminal.
//
// Controls:
//
//	Mouse drag  - Orbit around the figure
//	Scroll      - Zoom in/out
//	1 / U       - Toggle upper clothes
//	2 / L       - Toggle lower clothes
//	3 / A       - Toggle accessories
//	4 / S       - Toggle shoes
//	W           - Toggle wireframe
//	B           - Toggle bounding boxes
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/fitroom/internal/config"
)

var version = "dev"

func main() {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "fitroom",
		Short: "Terminal 3D fitting room",
		Long: `fitroom - Terminal 3D Fitting Room

Loads a figure and a platform, then lets you try on four garments.

Controls:
  Mouse drag  - Orbit around the figure
  Scroll      - Zoom in/out
  1 / U       - Toggle upper clothes
  2 / L       - Toggle lower clothes
  3 / A       - Toggle accessories
  4 / S       - Toggle shoes
  W           - Toggle wireframe
  B           - Toggle bounding boxes
  ?           - Toggle HUD overlay
  Esc         - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(&flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	flags.Register(cmd.PersistentFlags())

	infoCmd := &cobra.Command{
		Use:   "info <model.obj|model.glb>",
		Short: "Display model information",
		Long:  "Display information about a model file including format, mesh count, polygon count, vertex count, and bounding box.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.AddCommand(infoCmd)
	cmd.AddCommand(newSnapshotCmd(&flags))

	ctx := context.Background()
	if err := fang.Execute(ctx, cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
