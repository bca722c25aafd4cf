package service

import (
	"context"

	"cacau/entities"
	"cacau/pkg/record"
)

// PlantaService tries the remote API first and falls back to the local
// database on any remote failure.
type PlantaService interface {
	Create(ctx context.Context, p entities.Planta) (uint, error)
	GetAll(ctx context.Context) ([]entities.Planta, error)
	GetByID(ctx context.Context, id uint) (*entities.Planta, error)
	GetByCodigo(ctx context.Context, codigo string) (*entities.Planta, error)
	Update(ctx context.Context, id uint, patch record.PlantaPatch) (int, error)
	Delete(ctx context.Context, id uint) (int, error)
	Search(ctx context.Context, f record.PlantaFiltro) ([]entities.Planta, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
