package main

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cacau/config"
	"cacau/database"
	fazendaRepoImp "cacau/pkg/fazenda/repositoryImp"
	fazendaSvc "cacau/pkg/fazenda/service"
	fazendaSvcImp "cacau/pkg/fazenda/serviceImp"
	funcionarioRepoImp "cacau/pkg/funcionario/repositoryImp"
	funcionarioSvc "cacau/pkg/funcionario/service"
	funcionarioSvcImp "cacau/pkg/funcionario/serviceImp"
	"cacau/pkg/metrics"
	plantaRepoImp "cacau/pkg/planta/repositoryImp"
	plantaSvc "cacau/pkg/planta/service"
	plantaSvcImp "cacau/pkg/planta/serviceImp"
	"cacau/pkg/relatorio"
	"cacau/pkg/remote"
)

// app is everything the commands share: the local database, the remote
// client and the three gateways.
type app struct {
	db           *gorm.DB
	api          *remote.Client
	metrics      *metrics.Gateway
	plantas      plantaSvc.PlantaService
	fazendas     fazendaSvc.FazendaService
	funcionarios funcionarioSvc.FuncionarioService
	relatorios   *relatorio.Servico
}

func newApp(cfg config.AppConfig, log *zap.Logger) (*app, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	api := remote.New(cfg.APIBaseURL, cfg.APITimeout, log)
	m := metrics.New()

	a := &app{
		db:           db,
		api:          api,
		metrics:      m,
		plantas:      plantaSvcImp.NewPlantaService(plantaRepoImp.New(db), api, log, m),
		fazendas:     fazendaSvcImp.NewFazendaService(fazendaRepoImp.New(db), api, log, m),
		funcionarios: funcionarioSvcImp.NewFuncionarioService(funcionarioRepoImp.New(db), api, log, m),
	}
	a.relatorios = relatorio.New(a.plantas, a.fazendas, a.funcionarios, log)
	return a, nil
}

func (a *app) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
