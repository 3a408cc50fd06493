// Package cmd implements the framer command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"framer-go/infrastructure/config"
)

var (
	// Configuration file path.
	cfgFile string
	// Loaded configuration, set by the persistent pre-run.
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "framer",
	Short: "Draw and label bounding boxes over a directory of images",
	Long: `Framer is an interactive object-framing tool. Drag a rectangle over an
object, pick its label, and press Return to save the image and move on.
Boxes are stored per image, normalized to the image size.

Controls while annotating:
  drag (left button)   draw a box, then click a label (Backspace cancels)
  right click          delete the box under the pointer
  T                    select the box under the pointer
  W/A/S/D              resize the selected box
  arrow keys           move the selected box
  Return               save the image and show the next one

Examples:
  framer annotate cat dog
  framer annotate --images-dir photos/ --data-path out/labels.json person car
  framer view`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is framer.yaml in . or $HOME/.config/framer)")
	flags.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("images-dir", "img/", "directory containing the images")
	flags.String("data-path", "data/data.json", "dataset file to write (json store)")
	flags.String("labels-file", "", "YAML file listing the labels")
	flags.String("store", config.StoreJSON, "dataset store (json, mongodb)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(annotateCmd, viewCmd)
}

// loadConfig reads configuration with the command's flags taking precedence.
func loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := loader.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	globalConfig = cfg
	return nil
}
