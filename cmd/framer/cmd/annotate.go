package cmd

import (
	"fmt"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"framer-go/presentation"
	"framer-go/resources"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [labels...]",
	Short: "Annotate the images in the images directory",
	Long: `Open every image in the images directory in turn and record labeled
boxes for it. Labels come from the arguments, the labels config key or the
labels file, in that order. Closing the window saves what was committed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnnotate(cmd, args)
	},
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	if len(args) > 0 {
		cfg.Labels = args
	}

	labels, err := loadLabels(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := newEnvironment(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	coordinator := env.coordinator(labels)
	defer coordinator.Close()

	sess, err := coordinator.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("loading first image: %w", err)
	}

	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		EventBus: env.bus,
		Logger:   env.logger,
	})
	defer bridge.Close()

	fyneApp := app.NewWithID("framer")
	fyneApp.SetIcon(resources.GetAppIcon())
	win := presentation.NewAnnotateWindow(ctx, &presentation.AnnotateWindowConfig{
		App:         fyneApp,
		Session:     sess,
		Bridge:      bridge,
		InfoWidth:   cfg.InfoWidth(),
		RepeatDelay: cfg.Annotate.RepeatDelay,
		Logger:      env.logger,
	})
	win.Show()
	fyneApp.Run()

	env.drainEvents()
	progress := coordinator.Progress()
	env.logger.Info("Annotation ended", "committed", progress.Committed, "total", progress.Total)
	if err := win.Err(); err != nil {
		return err
	}
	return nil
}
