package repository

import (
	"context"

	"cacau/entities"
)

// PlantaRepository is the local side of the planta gateway. Writes rebuild
// the index columns.
type PlantaRepository interface {
	Add(ctx context.Context, p *entities.Planta) error
	Put(ctx context.Context, p *entities.Planta) error
	PutAll(ctx context.Context, ps []entities.Planta) error
	FindByID(ctx context.Context, id uint) (*entities.Planta, error)
	FindByCodigo(ctx context.Context, codigo string) (*entities.Planta, error)
	List(ctx context.Context) ([]entities.Planta, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
