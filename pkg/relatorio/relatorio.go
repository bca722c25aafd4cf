// Package relatorio builds the read-only views over the three collections:
// display records, the summary, the spreadsheet and plant export/import.
package relatorio

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cacau/entities"
	fazendaSvc "cacau/pkg/fazenda/service"
	"cacau/pkg/formato"
	funcionarioSvc "cacau/pkg/funcionario/service"
	plantaSvc "cacau/pkg/planta/service"
)

const naoInformado = "Não informado"

type Servico struct {
	plantas      plantaSvc.PlantaService
	fazendas     fazendaSvc.FazendaService
	funcionarios funcionarioSvc.FuncionarioService
	log          *zap.Logger
	now          func() time.Time
}

func New(p plantaSvc.PlantaService, f fazendaSvc.FazendaService, fu funcionarioSvc.FuncionarioService, log *zap.Logger) *Servico {
	if log == nil {
		log = zap.NewNop()
	}
	return &Servico{plantas: p, fazendas: f, funcionarios: fu, log: log.Named("relatorio"), now: time.Now}
}

type PlantaRelatorio struct {
	ID                 uint   `json:"id"`
	Codigo             string `json:"codigo"`
	Especie            string `json:"especie"`
	TipoMuda           string `json:"tipoMuda"`
	Altura             string `json:"altura"`
	DiametroCopa       string `json:"diametroCopa"`
	DiametroTronco     string `json:"diametroTronco"`
	Lote               string `json:"lote"`
	Localizacao        string `json:"localizacao"`
	Situacao           string `json:"situacao"`
	DataPlantio        string `json:"dataPlantio"`
	Idade              string `json:"idade"`
	Adubo              string `json:"adubo"`
	UltimaAdubacao     string `json:"ultimaAdubacao"`
	UltimaInspecao     string `json:"ultimaInspecao"`
	Produtividade      string `json:"produtividade"`
	DataUltimaColheita string `json:"dataUltimaColheita"`
	Observacoes        string `json:"observacoes"`
}

type FazendaRelatorio struct {
	ID                  uint   `json:"id"`
	Nome                string `json:"nome"`
	CNPJ                string `json:"cnpj"`
	Proprietario        string `json:"proprietario"`
	AreaCultivo         string `json:"areaCultivo"`
	EspeciePredominante string `json:"especiePredominante"`
	SistemaProdutivo    string `json:"sistemaProdutivo"`
	DivisaoPlantio      string `json:"divisaoPlantio"`
	Funcionarios        int    `json:"funcionarios"`
}

type FuncionarioRelatorio struct {
	ID       uint              `json:"id"`
	Nome     string            `json:"nome"`
	Usuario  string            `json:"usuario"`
	Email    string            `json:"email"`
	CPF      string            `json:"cpf"`
	Celular  string            `json:"celular"`
	Endereco entities.Endereco `json:"endereco"`
	Fazenda  string            `json:"fazenda"`
}

func ou(s, padrao string) string {
	if strings.TrimSpace(s) == "" {
		return padrao
	}
	return s
}

// decimal renders v with a comma and unit, e.g. "2,5 m". nil is "0".
func decimal(v *float64, unidade string) string {
	n := 0.0
	if v != nil {
		n = *v
	}
	s := strings.Replace(strconv.FormatFloat(n, 'f', -1, 64), ".", ",", 1)
	return s + " " + unidade
}

func (s *Servico) plantaView(p entities.Planta) PlantaRelatorio {
	idade := p.DetalhesPlantio.IdadeArvore
	if idade == "" {
		idade = formato.IdadeArvore(p.DetalhesPlantio.DataPlantio, s.now())
	}
	return PlantaRelatorio{
		ID:                 p.ID,
		Codigo:             p.Identificacao.CodigoIndividual,
		Especie:            ou(p.Identificacao.Especie, naoInformado),
		TipoMuda:           ou(p.DetalhesPlantio.TipoMuda, naoInformado),
		Altura:             decimal(p.DetalhesPlantio.AlturaMetros, "m"),
		DiametroCopa:       decimal(p.DetalhesPlantio.DiametroCopaMetros, "m"),
		DiametroTronco:     decimal(p.DetalhesPlantio.DiametroTroncoMetros, "m"),
		Lote:               ou(p.DetalhesPlantio.Lote, naoInformado),
		Localizacao:        ou(p.DetalhesPlantio.Localizacao, naoInformado),
		Situacao:           ou(p.Status.Situacao, naoInformado),
		DataPlantio:        ou(p.DetalhesPlantio.DataPlantio, naoInformado),
		Idade:              ou(idade, naoInformado),
		Adubo:              ou(p.Status.Adubo, naoInformado),
		UltimaAdubacao:     ou(p.Status.DataAdubacao, naoInformado),
		UltimaInspecao:     ou(p.Status.DataUltimaInspecao, naoInformado),
		Produtividade:      decimal(p.Produtividade.UltimaColheitaPeso, "kg"),
		DataUltimaColheita: ou(p.Produtividade.DataUltimaColheita, "Nunca colhida"),
		Observacoes:        ou(p.Status.Observacoes, "Nenhuma observação"),
	}
}

func fazendaView(f entities.Fazenda) FazendaRelatorio {
	return FazendaRelatorio{
		ID:                  f.ID,
		Nome:                ou(f.Nome, naoInformado),
		CNPJ:                ou(formato.FormatCNPJ(f.CNPJ), naoInformado),
		Proprietario:        ou(f.Proprietario, naoInformado),
		AreaCultivo:         ou(f.AreaCultivo, naoInformado),
		EspeciePredominante: ou(f.EspeciePredominante, naoInformado),
		SistemaProdutivo:    ou(f.SistemaProdutivo, naoInformado),
		DivisaoPlantio:      ou(f.DivisaoPlantio, naoInformado),
	}
}

func funcionarioView(f entities.Funcionario) FuncionarioRelatorio {
	return FuncionarioRelatorio{
		ID:      f.ID,
		Nome:    ou(f.Nome, naoInformado),
		Usuario: ou(f.Usuario, naoInformado),
		Email:   ou(f.Email, naoInformado),
		CPF:     ou(formato.FormatCPF(f.CPF), naoInformado),
		Celular: ou(formato.FormatCelular(f.Celular), naoInformado),
		Endereco: entities.Endereco{
			Rua:    ou(f.Endereco.Rua, naoInformado),
			Numero: f.Endereco.Numero,
			Bairro: ou(f.Endereco.Bairro, naoInformado),
			Cidade: ou(f.Endereco.Cidade, naoInformado),
			UF:     ou(f.Endereco.UF, naoInformado),
		},
		Fazenda: naoInformado,
	}
}

// Planta returns the report for the plant with codigo, or nil.
func (s *Servico) Planta(ctx context.Context, codigo string) (*PlantaRelatorio, error) {
	p, err := s.plantas.GetByCodigo(ctx, codigo)
	if err != nil || p == nil {
		return nil, err
	}
	v := s.plantaView(*p)
	return &v, nil
}

// Fazenda returns the report for the farm with cnpj, or nil. It includes
// the number of employees linked to the farm.
func (s *Servico) Fazenda(ctx context.Context, cnpj string) (*FazendaRelatorio, error) {
	f, err := s.fazendas.GetByCnpj(ctx, cnpj)
	if err != nil || f == nil {
		return nil, err
	}
	v := fazendaView(*f)
	equipe, err := s.funcionarios.GetByFazenda(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	v.Funcionarios = len(equipe)
	return &v, nil
}

// Funcionario returns the report for the employee with cpf, or nil. A
// farm that cannot be read leaves the farm name as "Não informado".
func (s *Servico) Funcionario(ctx context.Context, cpf string) (*FuncionarioRelatorio, error) {
	f, err := s.funcionarios.GetByCpf(ctx, cpf)
	if err != nil || f == nil {
		return nil, err
	}
	v := funcionarioView(*f)
	if f.FazendaID != nil {
		fz, err := s.fazendas.GetByID(ctx, *f.FazendaID)
		switch {
		case err != nil:
			s.log.Warn("fazenda do funcionário indisponível", zap.Uint("fazenda_id", *f.FazendaID), zap.Error(err))
		case fz != nil:
			v.Fazenda = ou(fz.Nome, naoInformado)
		}
	}
	return &v, nil
}

type Resumo struct {
	Plantas      int64          `json:"plantas"`
	Fazendas     int64          `json:"fazendas"`
	Funcionarios int64          `json:"funcionarios"`
	PorSituacao  map[string]int `json:"porSituacao"`
}

// Resumo counts the collections concurrently.
func (s *Servico) Resumo(ctx context.Context) (Resumo, error) {
	var r Resumo
	var plantas []entities.Planta
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { r.Plantas, err = s.plantas.Count(gctx); return })
	g.Go(func() (err error) { r.Fazendas, err = s.fazendas.Count(gctx); return })
	g.Go(func() (err error) { r.Funcionarios, err = s.funcionarios.Count(gctx); return })
	g.Go(func() (err error) { plantas, err = s.plantas.GetAll(gctx); return })
	if err := g.Wait(); err != nil {
		return Resumo{}, err
	}
	r.PorSituacao = map[string]int{}
	for _, p := range plantas {
		r.PorSituacao[ou(p.Status.Situacao, naoInformado)]++
	}
	return r, nil
}
