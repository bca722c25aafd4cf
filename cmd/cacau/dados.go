package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormato string
	exportSaida   string
)

var exportarCmd = &cobra.Command{
	Use:   "exportar",
	Short: "Exporta as plantas em JSON ou YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		var w io.Writer = cmd.OutOrStdout()
		if exportSaida != "" && exportSaida != "-" {
			f, err := os.Create(exportSaida)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return a.relatorios.ExportarPlantas(cmd.Context(), w, exportFormato)
	},
}

var importarCmd = &cobra.Command{
	Use:   "importar <arquivo.json>",
	Short: "Importa plantas de um array JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		n, err := a.relatorios.ImportarPlantas(cmd.Context(), r)
		logger.Info("importação", zap.Int("plantas", n))
		return err
	},
}

func init() {
	exportarCmd.Flags().StringVarP(&exportFormato, "formato", "f", "json", "json ou yaml")
	exportarCmd.Flags().StringVarP(&exportSaida, "saida", "o", "-", "arquivo de saída (- para stdout)")
}
