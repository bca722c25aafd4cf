package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cacau/config"
)

var (
	envFile string
	cfg     config.AppConfig
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "cacau",
	Short:         "Cadastro e relatórios de plantas, fazendas e funcionários",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		if cfg, err = config.Load(files...); err != nil {
			return err
		}
		time.Local = cfg.Location()
		logger, err = newLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func main() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "arquivo .env (padrão: .env)")
	rootCmd.AddCommand(serveCmd, exportarCmd, importarCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}
