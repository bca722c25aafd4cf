package repositoryImp

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"cacau/entities"
	"cacau/pkg/planta/repository"
	"cacau/pkg/record"
	"cacau/pkg/store"
)

type plantaRepo struct {
	t   *store.Table[entities.Planta]
	now func() time.Time
}

func New(db *gorm.DB) repository.PlantaRepository {
	return &plantaRepo{t: store.NewTable[entities.Planta](db), now: time.Now}
}

func (r *plantaRepo) Add(ctx context.Context, p *entities.Planta) error {
	*p = record.ProjectPlanta(*p, r.now())
	return r.t.Add(ctx, p)
}

func (r *plantaRepo) Put(ctx context.Context, p *entities.Planta) error {
	*p = record.ProjectPlanta(*p, r.now())
	return r.t.Put(ctx, p)
}

func (r *plantaRepo) PutAll(ctx context.Context, ps []entities.Planta) error {
	now := r.now()
	rows := make([]entities.Planta, len(ps))
	for i, p := range ps {
		rows[i] = record.ProjectPlanta(p, now)
	}
	return r.t.BulkPut(ctx, rows)
}

func (r *plantaRepo) FindByID(ctx context.Context, id uint) (*entities.Planta, error) {
	return r.t.Get(ctx, id)
}

// FindByCodigo uses the index column first and falls back to a scan for
// rows written before the column was filled.
func (r *plantaRepo) FindByCodigo(ctx context.Context, codigo string) (*entities.Planta, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, nil
	}
	p, err := r.t.First(ctx, "codigo_individual", codigo)
	if err != nil || p != nil {
		return p, err
	}
	all, err := r.t.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.TrimSpace(all[i].Identificacao.CodigoIndividual) == codigo {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *plantaRepo) List(ctx context.Context) ([]entities.Planta, error) { return r.t.All(ctx) }

func (r *plantaRepo) Delete(ctx context.Context, id uint) error { return r.t.Delete(ctx, id) }

func (r *plantaRepo) Count(ctx context.Context) (int64, error) { return r.t.Count(ctx) }

func (r *plantaRepo) Clear(ctx context.Context) error { return r.t.Clear(ctx) }
