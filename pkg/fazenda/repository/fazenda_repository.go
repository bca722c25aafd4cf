package repository

import (
	"context"

	"cacau/entities"
)

type FazendaRepository interface {
	Add(ctx context.Context, f *entities.Fazenda) error
	Put(ctx context.Context, f *entities.Fazenda) error
	PutAll(ctx context.Context, fs []entities.Fazenda) error
	FindByID(ctx context.Context, id uint) (*entities.Fazenda, error)
	// FindByCnpj accepts the CNPJ formatted or digits only.
	FindByCnpj(ctx context.Context, cnpj string) (*entities.Fazenda, error)
	List(ctx context.Context) ([]entities.Fazenda, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
