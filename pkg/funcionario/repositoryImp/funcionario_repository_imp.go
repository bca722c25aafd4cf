package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cacau/entities"
	"cacau/pkg/formato"
	"cacau/pkg/funcionario/repository"
	"cacau/pkg/record"
	"cacau/pkg/store"
)

type funcionarioRepo struct {
	t   *store.Table[entities.Funcionario]
	now func() time.Time
}

func New(db *gorm.DB) repository.FuncionarioRepository {
	return &funcionarioRepo{t: store.NewTable[entities.Funcionario](db), now: time.Now}
}

func (r *funcionarioRepo) Add(ctx context.Context, f *entities.Funcionario) error {
	*f = record.ProjectFuncionario(*f, r.now())
	return r.t.Add(ctx, f)
}

func (r *funcionarioRepo) Put(ctx context.Context, f *entities.Funcionario) error {
	if err := r.keepSenha(ctx, f); err != nil {
		return err
	}
	*f = record.ProjectFuncionario(*f, r.now())
	return r.t.Put(ctx, f)
}

func (r *funcionarioRepo) PutAll(ctx context.Context, fs []entities.Funcionario) error {
	now := r.now()
	rows := make([]entities.Funcionario, len(fs))
	for i, f := range fs {
		if err := r.keepSenha(ctx, &f); err != nil {
			return err
		}
		rows[i] = record.ProjectFuncionario(f, now)
	}
	return r.t.BulkPut(ctx, rows)
}

// keepSenha fills a blank senha from the stored row. API responses never
// carry the hash.
func (r *funcionarioRepo) keepSenha(ctx context.Context, f *entities.Funcionario) error {
	if f.Senha != "" || f.ID == 0 {
		return nil
	}
	old, err := r.t.Get(ctx, f.ID)
	if err != nil || old == nil {
		return err
	}
	f.Senha = old.Senha
	return nil
}

func (r *funcionarioRepo) FindByID(ctx context.Context, id uint) (*entities.Funcionario, error) {
	return r.t.Get(ctx, id)
}

func (r *funcionarioRepo) FindByCpf(ctx context.Context, cpf string) (*entities.Funcionario, error) {
	d := formato.Digits(cpf)
	if d == "" {
		return nil, nil
	}
	return r.find(ctx, "cpf_digitos", d, func(f entities.Funcionario) bool {
		return formato.Digits(f.CPF) == d
	})
}

func (r *funcionarioRepo) FindByEmail(ctx context.Context, email string) (*entities.Funcionario, error) {
	e := record.NormalizeEmail(email)
	if e == "" {
		return nil, nil
	}
	return r.find(ctx, "email_indice", e, func(f entities.Funcionario) bool {
		return record.NormalizeEmail(f.Email) == e
	})
}

// find tries the index column and then scans, for rows whose index was
// never filled.
func (r *funcionarioRepo) find(ctx context.Context, column, value string, match func(entities.Funcionario) bool) (*entities.Funcionario, error) {
	f, err := r.t.First(ctx, column, value)
	if err != nil || f != nil {
		return f, err
	}
	all, err := r.t.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if match(all[i]) {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (r *funcionarioRepo) ListByFazenda(ctx context.Context, fazendaID uint) ([]entities.Funcionario, error) {
	return r.t.Where(ctx, "fazenda_id", fazendaID)
}

func (r *funcionarioRepo) List(ctx context.Context) ([]entities.Funcionario, error) {
	return r.t.All(ctx)
}

func (r *funcionarioRepo) Delete(ctx context.Context, id uint) error { return r.t.Delete(ctx, id) }

func (r *funcionarioRepo) Count(ctx context.Context) (int64, error) { return r.t.Count(ctx) }

func (r *funcionarioRepo) Clear(ctx context.Context) error { return r.t.Clear(ctx) }
