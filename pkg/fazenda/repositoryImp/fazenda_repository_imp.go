package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cacau/entities"
	"cacau/pkg/fazenda/repository"
	"cacau/pkg/formato"
	"cacau/pkg/record"
	"cacau/pkg/store"
)

type fazendaRepo struct {
	t   *store.Table[entities.Fazenda]
	now func() time.Time
}

func New(db *gorm.DB) repository.FazendaRepository {
	return &fazendaRepo{t: store.NewTable[entities.Fazenda](db), now: time.Now}
}

func (r *fazendaRepo) Add(ctx context.Context, f *entities.Fazenda) error {
	*f = record.ProjectFazenda(*f, r.now())
	return r.t.Add(ctx, f)
}

func (r *fazendaRepo) Put(ctx context.Context, f *entities.Fazenda) error {
	*f = record.ProjectFazenda(*f, r.now())
	return r.t.Put(ctx, f)
}

func (r *fazendaRepo) PutAll(ctx context.Context, fs []entities.Fazenda) error {
	now := r.now()
	rows := make([]entities.Fazenda, len(fs))
	for i, f := range fs {
		rows[i] = record.ProjectFazenda(f, now)
	}
	return r.t.BulkPut(ctx, rows)
}

func (r *fazendaRepo) FindByID(ctx context.Context, id uint) (*entities.Fazenda, error) {
	return r.t.Get(ctx, id)
}

func (r *fazendaRepo) FindByCnpj(ctx context.Context, cnpj string) (*entities.Fazenda, error) {
	digits := formato.Digits(cnpj)
	if digits == "" {
		return nil, nil
	}
	f, err := r.t.First(ctx, "cnpj_digitos", digits)
	if err != nil || f != nil {
		return f, err
	}
	// rows written before cnpj_digitos existed
	all, err := r.t.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if formato.Digits(all[i].CNPJ) == digits {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *fazendaRepo) List(ctx context.Context) ([]entities.Fazenda, error) { return r.t.All(ctx) }

func (r *fazendaRepo) Delete(ctx context.Context, id uint) error { return r.t.Delete(ctx, id) }

func (r *fazendaRepo) Count(ctx context.Context) (int64, error) { return r.t.Count(ctx) }

func (r *fazendaRepo) Clear(ctx context.Context) error { return r.t.Clear(ctx) }
