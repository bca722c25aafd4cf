package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fazendaCtrlImp "cacau/pkg/fazenda/controllerImp"
	funcionarioCtrlImp "cacau/pkg/funcionario/controllerImp"
	healthCtrlImp "cacau/pkg/health/controllerImp"
	plantaCtrlImp "cacau/pkg/planta/controllerImp"
	relatorioCtrlImp "cacau/pkg/relatorio/controllerImp"
	"cacau/pkg/wizard"
	wizardCtrlImp "cacau/pkg/wizard/controllerImp"
	"cacau/router"
)

const (
	wizardTTL   = 2 * time.Hour
	wizardSweep = 10 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("config", cfg.Fields()...)
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		plantaWiz := wizard.NewRegistry(wizard.PlantaFlow(a.plantas, time.Now), logger)
		funcionarioWiz := wizard.NewRegistry(wizard.FuncionarioFlow(a.funcionarios), logger)
		go plantaWiz.Janitor(ctx, wizardSweep, wizardTTL)
		go funcionarioWiz.Janitor(ctx, wizardSweep, wizardTTL)

		e := router.New(echo.New(), router.Deps{
			Log:         logger,
			CORSOrigins: cfg.CORSOrigins,
			Metrics:     a.metrics.Handler(),
			Health:      healthCtrlImp.NewHealthCtrl(a.db, a.api),
			Controllers: []router.Registrar{
				plantaCtrlImp.New(a.plantas),
				fazendaCtrlImp.New(a.fazendas),
				funcionarioCtrlImp.New(a.funcionarios),
				wizardCtrlImp.New("/wizard/plantas", plantaWiz),
				wizardCtrlImp.New("/wizard/funcionarios", funcionarioWiz),
				relatorioCtrlImp.New(a.relatorios),
			},
		})

		errc := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("port", cfg.Port))
			errc <- e.Start(":" + cfg.Port)
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	},
}
