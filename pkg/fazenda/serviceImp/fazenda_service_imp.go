package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cacau/entities"
	"cacau/pkg/apperr"
	repo "cacau/pkg/fazenda/repository"
	"cacau/pkg/fazenda/service"
	"cacau/pkg/formato"
	"cacau/pkg/gateway"
	"cacau/pkg/metrics"
	"cacau/pkg/record"
	"cacau/pkg/remote"
)

type fazendaSvc struct {
	gateway.Base
	repo repo.FazendaRepository
	api  remote.Resource[entities.Fazenda]
}

func NewFazendaService(r repo.FazendaRepository, c *remote.Client, log *zap.Logger, m *metrics.Gateway) service.FazendaService {
	return &fazendaSvc{
		Base: gateway.NewBase("fazenda", log, m),
		repo: r,
		api:  remote.For(c, "/fazendas", record.NormalizeFazenda),
	}
}

func (s *fazendaSvc) Create(ctx context.Context, f entities.Fazenda) (uint, error) {
	now := s.Now()
	f.CreatedAt, f.UpdatedAt = now, now

	if res := s.api.Create(ctx, f); gateway.Use(&s.Base, "criar", "Falha ao criar via API, salvando localmente", res) {
		created := res.Value
		s.Mirror("criar", s.repo.Put(ctx, &created))
		return created.ID, nil
	}
	if err := s.repo.Add(ctx, &f); err != nil {
		return 0, s.Fail("criar", "fazenda", err)
	}
	return f.ID, nil
}

func (s *fazendaSvc) GetAll(ctx context.Context) ([]entities.Fazenda, error) {
	if res := s.api.List(ctx, nil); gateway.Use(&s.Base, "listar", "Falha ao buscar via API, carregando do cache local", res) {
		s.Mirror("listar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "fazendas", err)
	}
	return list, nil
}

func (s *fazendaSvc) GetByID(ctx context.Context, id uint) (*entities.Fazenda, error) {
	if res := s.api.Get(ctx, id); gateway.Use(&s.Base, "buscar_id", "Falha ao buscar por ID via API, consultando cache local", res) {
		f := res.Value
		s.Mirror("buscar_id", s.repo.Put(ctx, &f))
		return &f, nil
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.Fail("buscar", "fazenda", err)
	}
	return f, nil
}

func (s *fazendaSvc) GetByCnpj(ctx context.Context, cnpj string) (*entities.Fazenda, error) {
	if strings.TrimSpace(cnpj) == "" {
		return nil, nil
	}
	digits := formato.Digits(cnpj)
	match := func(f entities.Fazenda) bool { return formato.Digits(f.CNPJ) == digits }
	if res := s.api.Find(ctx, map[string]string{"cnpj": cnpj}, match); gateway.Use(&s.Base, "buscar_cnpj", "Falha ao buscar por CNPJ via API, consultando cache local", res) {
		if res.Value != nil {
			f := *res.Value
			s.Mirror("buscar_cnpj", s.repo.Put(ctx, &f))
		}
		return res.Value, nil
	}
	f, err := s.repo.FindByCnpj(ctx, cnpj)
	if err != nil {
		return nil, s.Fail("buscar", "fazenda", err)
	}
	return f, nil
}

func (s *fazendaSvc) Update(ctx context.Context, id uint, patch record.FazendaPatch) (int, error) {
	if res := s.api.Update(ctx, id, patch.Body()); gateway.Use(&s.Base, "atualizar", "Falha ao atualizar via API, atualizando localmente", res) {
		updated := res.Value
		if updated.ID == 0 {
			updated.ID = id
		}
		s.Mirror("atualizar", s.repo.Put(ctx, &updated))
		return 1, nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, s.Fail("atualizar", "fazenda", err)
	}
	if existing == nil {
		return 0, apperr.NaoEncontrado("atualizar", "fazenda")
	}
	merged := record.MergeFazenda(*existing, patch, s.Now())
	merged.ID = id
	if err := s.repo.Put(ctx, &merged); err != nil {
		return 0, s.Fail("atualizar", "fazenda", err)
	}
	return 1, nil
}

func (s *fazendaSvc) Delete(ctx context.Context, id uint) (int, error) {
	if res := s.api.Delete(ctx, id); gateway.Use(&s.Base, "deletar", "Falha ao deletar via API, deletando localmente", res) {
		s.Mirror("deletar", s.repo.Delete(ctx, id))
		return 1, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, s.Fail("deletar", "fazenda", err)
	}
	return 1, nil
}

func (s *fazendaSvc) Search(ctx context.Context, f record.FazendaFiltro) ([]entities.Fazenda, error) {
	if res := s.api.List(ctx, f.Query()); gateway.Use(&s.Base, "filtrar", "Falha ao buscar por filtros via API, consultando cache local", res) {
		s.Mirror("filtrar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "fazendas", err)
	}
	out := make([]entities.Fazenda, 0, len(all))
	for _, fa := range all {
		if f.Match(fa) {
			out = append(out, fa)
		}
	}
	return out, nil
}

func (s *fazendaSvc) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.Fail("contar", "fazendas", err)
	}
	return n, nil
}

func (s *fazendaSvc) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return s.Fail("limpar", "fazendas", err)
	}
	return nil
}
