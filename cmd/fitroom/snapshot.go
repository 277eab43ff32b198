package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/fitroom/internal/config"
	"github.com/taigrr/fitroom/internal/logger"
	"github.com/taigrr/fitroom/pkg/viewer"
	"go.uber.org/zap"
)

func newSnapshotCmd(flags *config.Flags) *cobra.Command {
	var (
		wear    []string
		width   int
		height  int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot <out.png>",
		Short: "Render the fitting room to a PNG",
		Long:  "Load the room without a terminal, put on the given garments, wait for every load and write one frame to a PNG file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags)
			if err != nil {
				return err
			}
			if width > 0 {
				cfg.Viewer.Width = width
			}
			if height > 0 {
				cfg.Viewer.Height = height
			}
			if err := logger.Init(cfg.Logging.Level, logger.Output{Console: true}); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return runSnapshot(ctx, cfg, args[0], wear)
		},
	}
	cmd.Flags().StringSliceVar(&wear, "wear", nil, "garment ids to put on (e.g. upper-clothes-btn)")
	cmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "maximum time to wait for loads")
	return cmd
}

func runSnapshot(ctx context.Context, cfg *config.Config, out string, wear []string) error {
	session, err := viewer.New(cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	session.Start()
	for _, id := range wear {
		if err := session.Activate(id); err != nil {
			return err
		}
	}
	if err := session.Settle(ctx); err != nil {
		return fmt.Errorf("waiting for loads: %w", err)
	}

	stats := session.Frame()
	if err := session.Snapshot(out); err != nil {
		return err
	}
	logger.Named("snapshot").Info("snapshot written", zap.String("path", out), zap.Int("triangles", stats.Triangles))
	return nil
}
