package service

import (
	"context"

	"cacau/entities"
	"cacau/pkg/record"
)

type FazendaService interface {
	Create(ctx context.Context, f entities.Fazenda) (uint, error)
	GetAll(ctx context.Context) ([]entities.Fazenda, error)
	GetByID(ctx context.Context, id uint) (*entities.Fazenda, error)
	GetByCnpj(ctx context.Context, cnpj string) (*entities.Fazenda, error)
	Update(ctx context.Context, id uint, patch record.FazendaPatch) (int, error)
	Delete(ctx context.Context, id uint) (int, error)
	Search(ctx context.Context, f record.FazendaFiltro) ([]entities.Fazenda, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
