package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kbukum/slotkit/bootstrap"
	"github.com/kbukum/slotkit/config"
)

type demoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "slotdemo",
	Short: "Interactive demo of slot-based UI composition",
	Long: `slotdemo runs a terminal UI with three named slots (header, sidebar,
status). Number keys mount and unmount plugs into the slots; the view
resolves each slot's current producers in order on every frame.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &demoConfig{}

		var opts []config.LoaderOption
		if cfgFile != "" {
			opts = append(opts, config.WithConfigFile(cfgFile))
		}
		if err := config.LoadConfig("slotdemo", cfg, opts...); err != nil {
			return err
		}
		cfg.Name = "slotdemo"
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}

		app, err := bootstrap.NewApp(cfg)
		if err != nil {
			return err
		}

		return app.RunTask(cmd.Context(), func(ctx context.Context) error {
			model, err := newModel(ctx)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "override log level")
}
