package cmd

import (
	"fmt"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"framer-go/presentation"
	"framer-go/resources"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the saved boxes over each image",
	Long: `Open every image at native size with its saved boxes drawn on top.
Return shows the next image; closing the window ends the review.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd)
	},
}

func runView(cmd *cobra.Command) error {
	cfg := globalConfig
	ctx := cmd.Context()

	env, err := newEnvironment(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	coordinator := env.coordinator(nil)
	defer coordinator.Close()

	v, err := coordinator.NewViewer(ctx)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	if err := v.Start(ctx); err != nil {
		return fmt.Errorf("loading first image: %w", err)
	}

	fyneApp := app.NewWithID("framer")
	fyneApp.SetIcon(resources.GetAppIcon())
	win := presentation.NewReviewWindow(ctx, &presentation.ReviewWindowConfig{
		App:    fyneApp,
		Viewer: v,
		Logger: env.logger,
	})
	win.Show()
	fyneApp.Run()

	return win.Err()
}
