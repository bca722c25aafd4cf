package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cacau/entities"
	"cacau/pkg/apperr"
	"cacau/pkg/gateway"
	"cacau/pkg/metrics"
	repo "cacau/pkg/planta/repository"
	"cacau/pkg/planta/service"
	"cacau/pkg/record"
	"cacau/pkg/remote"
)

type plantaSvc struct {
	gateway.Base
	repo repo.PlantaRepository
	api  remote.Resource[entities.Planta]
}

func NewPlantaService(r repo.PlantaRepository, c *remote.Client, log *zap.Logger, m *metrics.Gateway) service.PlantaService {
	return &plantaSvc{
		Base: gateway.NewBase("planta", log, m),
		repo: r,
		api:  remote.For(c, "/plantas", record.NormalizePlanta),
	}
}

func (s *plantaSvc) Create(ctx context.Context, p entities.Planta) (uint, error) {
	now := s.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	if res := s.api.Create(ctx, p); gateway.Use(&s.Base, "criar", "Falha ao criar via API, salvando localmente", res) {
		created := res.Value
		s.Mirror("criar", s.repo.Put(ctx, &created))
		return created.ID, nil
	}

	if err := s.repo.Add(ctx, &p); err != nil {
		return 0, s.Fail("criar", "planta", err)
	}
	return p.ID, nil
}

func (s *plantaSvc) GetAll(ctx context.Context) ([]entities.Planta, error) {
	if res := s.api.List(ctx, nil); gateway.Use(&s.Base, "listar", "Falha ao buscar via API, carregando do cache local", res) {
		s.Mirror("listar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "plantas", err)
	}
	return list, nil
}

func (s *plantaSvc) GetByID(ctx context.Context, id uint) (*entities.Planta, error) {
	if res := s.api.Get(ctx, id); gateway.Use(&s.Base, "buscar_id", "Falha ao buscar por ID via API, consultando cache local", res) {
		p := res.Value
		s.Mirror("buscar_id", s.repo.Put(ctx, &p))
		return &p, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.Fail("buscar", "planta", err)
	}
	return p, nil
}

func (s *plantaSvc) GetByCodigo(ctx context.Context, codigo string) (*entities.Planta, error) {
	if strings.TrimSpace(codigo) == "" {
		return nil, nil
	}
	codigo = strings.TrimSpace(codigo)
	q := map[string]string{"codigo_individual": codigo}
	match := func(p entities.Planta) bool { return strings.TrimSpace(p.Identificacao.CodigoIndividual) == codigo }
	if res := s.api.Find(ctx, q, match); gateway.Use(&s.Base, "buscar_codigo", "Falha ao buscar por código via API, consultando cache local", res) {
		if res.Value != nil {
			p := *res.Value
			s.Mirror("buscar_codigo", s.repo.Put(ctx, &p))
		}
		return res.Value, nil
	}
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, s.Fail("buscar", "planta", err)
	}
	return p, nil
}

func (s *plantaSvc) Update(ctx context.Context, id uint, patch record.PlantaPatch) (int, error) {
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
		return 0, s.Fail("atualizar", "planta", err)
	}
	if existing == nil {
		return 0, apperr.NaoEncontrado("atualizar", "planta")
	}
	merged := record.MergePlanta(*existing, patch, s.Now())
	merged.ID = id
	if err := s.repo.Put(ctx, &merged); err != nil {
		return 0, s.Fail("atualizar", "planta", err)
	}
	return 1, nil
}

// Delete reports 1 even when id does not exist.
func (s *plantaSvc) Delete(ctx context.Context, id uint) (int, error) {
	if res := s.api.Delete(ctx, id); gateway.Use(&s.Base, "deletar", "Falha ao deletar via API, deletando localmente", res) {
		s.Mirror("deletar", s.repo.Delete(ctx, id))
		return 1, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, s.Fail("deletar", "planta", err)
	}
	return 1, nil
}

func (s *plantaSvc) Search(ctx context.Context, f record.PlantaFiltro) ([]entities.Planta, error) {
	if res := s.api.List(ctx, f.Query()); gateway.Use(&s.Base, "filtrar", "Falha ao buscar por filtros via API, consultando cache local", res) {
		s.Mirror("filtrar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "plantas", err)
	}
	out := make([]entities.Planta, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *plantaSvc) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.Fail("contar", "plantas", err)
	}
	return n, nil
}

func (s *plantaSvc) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return s.Fail("limpar", "plantas", err)
	}
	return nil
}
