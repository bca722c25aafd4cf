package serviceImp

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cacau/entities"
	"cacau/pkg/apperr"
	"cacau/pkg/formato"
	repo "cacau/pkg/funcionario/repository"
	"cacau/pkg/funcionario/service"
	"cacau/pkg/gateway"
	"cacau/pkg/metrics"
	"cacau/pkg/record"
	"cacau/pkg/remote"
	"cacau/pkg/senha"
	"cacau/pkg/validacao"
)

type funcionarioSvc struct {
	gateway.Base
	repo repo.FuncionarioRepository
	api  remote.Resource[entities.Funcionario]
}

func NewFuncionarioService(r repo.FuncionarioRepository, c *remote.Client, log *zap.Logger, m *metrics.Gateway) service.FuncionarioService {
	return &funcionarioSvc{
		Base: gateway.NewBase("funcionario", log, m),
		repo: r,
		api:  remote.For(c, "/funcionarios", record.NormalizeFuncionario),
	}
}

func (s *funcionarioSvc) Create(ctx context.Context, f entities.Funcionario) (uint, error) {
	hash, err := s.hash("criar", f.Senha)
	if err != nil {
		return 0, err
	}
	f.Senha = hash
	now := s.Now()
	f.CreatedAt, f.UpdatedAt = now, now

	if res := s.api.Create(ctx, f); gateway.Use(&s.Base, "criar", "Falha ao criar via API, salvando localmente", res) {
		created := res.Value
		if created.Senha == "" {
			created.Senha = f.Senha
		}
		s.Mirror("criar", s.repo.Put(ctx, &created))
		return created.ID, nil
	}
	if err := s.repo.Add(ctx, &f); err != nil {
		return 0, s.Fail("criar", "funcionário", err)
	}
	return f.ID, nil
}

func (s *funcionarioSvc) GetAll(ctx context.Context) ([]entities.Funcionario, error) {
	if res := s.api.List(ctx, nil); gateway.Use(&s.Base, "listar", "Falha ao buscar via API, carregando do cache local", res) {
		s.Mirror("listar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "funcionários", err)
	}
	return list, nil
}

func (s *funcionarioSvc) GetByID(ctx context.Context, id uint) (*entities.Funcionario, error) {
	if res := s.api.Get(ctx, id); gateway.Use(&s.Base, "buscar_id", "Falha ao buscar por ID via API, consultando cache local", res) {
		f := res.Value
		s.Mirror("buscar_id", s.repo.Put(ctx, &f))
		return &f, nil
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.Fail("buscar", "funcionário", err)
	}
	return f, nil
}

func (s *funcionarioSvc) GetByCpf(ctx context.Context, cpf string) (*entities.Funcionario, error) {
	if strings.TrimSpace(cpf) == "" {
		return nil, nil
	}
	digits := formato.Digits(cpf)
	match := func(f entities.Funcionario) bool { return formato.Digits(f.CPF) == digits }
	if res := s.api.Find(ctx, map[string]string{"cpf": cpf}, match); gateway.Use(&s.Base, "buscar_cpf", "Falha ao buscar por CPF via API, consultando cache local", res) {
		s.mirrorOne(ctx, "buscar_cpf", res.Value)
		return res.Value, nil
	}
	f, err := s.repo.FindByCpf(ctx, cpf)
	if err != nil {
		return nil, s.Fail("buscar", "funcionário", err)
	}
	return f, nil
}

func (s *funcionarioSvc) GetByEmail(ctx context.Context, email string) (*entities.Funcionario, error) {
	if strings.TrimSpace(email) == "" {
		return nil, nil
	}
	// the API treats email as a substring filter
	norm := record.NormalizeEmail(email)
	match := func(f entities.Funcionario) bool { return record.NormalizeEmail(f.Email) == norm }
	if res := s.api.Find(ctx, map[string]string{"email": norm}, match); gateway.Use(&s.Base, "buscar_email", "Falha ao buscar por email via API, consultando cache local", res) {
		s.mirrorOne(ctx, "buscar_email", res.Value)
		return res.Value, nil
	}
	f, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.Fail("buscar", "funcionário", err)
	}
	return f, nil
}

func (s *funcionarioSvc) GetByFazenda(ctx context.Context, fazendaID uint) ([]entities.Funcionario, error) {
	q := map[string]string{"fazenda_id": strconv.FormatUint(uint64(fazendaID), 10)}
	if res := s.api.List(ctx, q); gateway.Use(&s.Base, "buscar_fazenda", "Falha ao buscar por fazenda via API, consultando cache local", res) {
		s.Mirror("buscar_fazenda", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	list, err := s.repo.ListByFazenda(ctx, fazendaID)
	if err != nil {
		return nil, s.Fail("buscar", "funcionários", err)
	}
	return list, nil
}

// hash reports an over-long senha as a validation error.
func (s *funcionarioSvc) hash(op, plain string) (string, error) {
	h, err := senha.Hash(plain)
	if errors.Is(err, senha.ErrMuitoLonga) {
		return "", validacao.Err([]string{validacao.MsgSenhaLonga})
	}
	if err != nil {
		return "", s.Fail(op, "funcionário", err)
	}
	return h, nil
}

func (s *funcionarioSvc) mirrorOne(ctx context.Context, op string, f *entities.Funcionario) {
	if f == nil {
		return
	}
	cp := *f
	s.Mirror(op, s.repo.Put(ctx, &cp))
}

func (s *funcionarioSvc) Update(ctx context.Context, id uint, patch record.FuncionarioPatch) (int, error) {
	if v, ok := patch.Lookup("", "senha"); ok {
		hash, err := s.hash("atualizar", v.(string))
		if err != nil {
			return 0, err
		}
		patch.Replace("", "senha", hash)
	}

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
		return 0, s.Fail("atualizar", "funcionário", err)
	}
	if existing == nil {
		return 0, apperr.NaoEncontrado("atualizar", "funcionário")
	}
	merged := record.MergeFuncionario(*existing, patch, s.Now())
	merged.ID = id
	if err := s.repo.Put(ctx, &merged); err != nil {
		return 0, s.Fail("atualizar", "funcionário", err)
	}
	return 1, nil
}

func (s *funcionarioSvc) Delete(ctx context.Context, id uint) (int, error) {
	if res := s.api.Delete(ctx, id); gateway.Use(&s.Base, "deletar", "Falha ao deletar via API, deletando localmente", res) {
		s.Mirror("deletar", s.repo.Delete(ctx, id))
		return 1, nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, s.Fail("deletar", "funcionário", err)
	}
	return 1, nil
}

func (s *funcionarioSvc) Search(ctx context.Context, f record.FuncionarioFiltro) ([]entities.Funcionario, error) {
	if res := s.api.List(ctx, f.Query()); gateway.Use(&s.Base, "filtrar", "Falha ao buscar por filtros via API, consultando cache local", res) {
		s.Mirror("filtrar", s.repo.PutAll(ctx, res.Value))
		return res.Value, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.Fail("buscar", "funcionários", err)
	}
	out := make([]entities.Funcionario, 0, len(all))
	for _, fu := range all {
		if f.Match(fu) {
			out = append(out, fu)
		}
	}
	return out, nil
}

func (s *funcionarioSvc) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, s.Fail("contar", "funcionários", err)
	}
	return n, nil
}

func (s *funcionarioSvc) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return s.Fail("limpar", "funcionários", err)
	}
	return nil
}
