package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/codepad/internal/app"
	"github.com/dshills/codepad/internal/config"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

// loadConfig reads the configuration the same way the editor does.
func (o *rootOptions) loadConfig() (*config.Config, string, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "codepad [files...]",
		Short: "A terminal text editor with tabs and syntax highlighting",
		Long: `codepad edits files in tabs with syntax highlighting for twenty
languages, automatic indentation and bracket pairing.

Configuration is read from ` + config.DefaultPath() + ` (TOML or YAML);
extra languages can be added with a Lua script named in the config.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(opts, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"write logs to this file")

	cmd.AddCommand(
		newLanguagesCmd(opts),
		newThemeCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func runEditor(opts *rootOptions, files []string) error {
	application, err := app.New(app.Options{
		ConfigPath: opts.configPath,
		Files:      files,
		LogLevel:   opts.logLevel,
		LogFile:    opts.logFile,
	})
	if err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if _, ok := <-signals; ok {
			application.RequestQuit()
		}
	}()

	return application.Run()
}
