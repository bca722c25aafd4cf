package record

import (
	"slices"
	"strings"
	"time"

	"cacau/entities"
	"cacau/pkg/formato"
)

type PlantaPatch = Patch[entities.Planta]

type pl = entities.Planta

var plantaTabela = tabela[pl]{
	vazio: EmptyPlanta,
	sistema: func(p *pl, id uint, criado, atualizado time.Time) {
		p.ID, p.CreatedAt, p.UpdatedAt = id, criado, atualizado
	},
	campos: []campo[pl]{
		lista("identificacao", "imagens", func(p *pl) *[]string { return &p.Identificacao.Imagens }),
		texto("identificacao", "codigo_individual", func(p *pl) *string { return &p.Identificacao.CodigoIndividual }),
		texto("identificacao", "especie", func(p *pl) *string { return &p.Identificacao.Especie }),

		texto("detalhes_plantio", "tipo_muda", func(p *pl) *string { return &p.DetalhesPlantio.TipoMuda }),
		numero("detalhes_plantio", "altura_metros", func(p *pl) **float64 { return &p.DetalhesPlantio.AlturaMetros }),
		numero("detalhes_plantio", "diametro_copa_metros", func(p *pl) **float64 { return &p.DetalhesPlantio.DiametroCopaMetros }),
		numero("detalhes_plantio", "diametro_tronco_metros", func(p *pl) **float64 { return &p.DetalhesPlantio.DiametroTroncoMetros }),
		texto("detalhes_plantio", "data_plantio", func(p *pl) *string { return &p.DetalhesPlantio.DataPlantio }),
		texto("detalhes_plantio", "idade_arvore", func(p *pl) *string { return &p.DetalhesPlantio.IdadeArvore }),
		texto("detalhes_plantio", "lote", func(p *pl) *string { return &p.DetalhesPlantio.Lote }),
		texto("detalhes_plantio", "localizacao", func(p *pl) *string { return &p.DetalhesPlantio.Localizacao }),

		textoOpcional("produtividade", "qr_code", func(p *pl) **string { return &p.Produtividade.QRCode }),
		numero("produtividade", "ultima_colheita_peso", func(p *pl) **float64 { return &p.Produtividade.UltimaColheitaPeso }),
		texto("produtividade", "data_ultima_colheita", func(p *pl) *string { return &p.Produtividade.DataUltimaColheita }),

		situacao(func(p *pl) *string { return &p.Status.Situacao }),
		texto("status", "adubo", func(p *pl) *string { return &p.Status.Adubo }),
		texto("status", "data_adubacao", func(p *pl) *string { return &p.Status.DataAdubacao }),
		texto("status", "data_ultima_inspecao", func(p *pl) *string { return &p.Status.DataUltimaInspecao }),
		logico("status", "nao_foi_adubado", func(p *pl) *bool { return &p.Status.NaoFoiAdubado }),
		texto("status", "observacoes", func(p *pl) *string { return &p.Status.Observacoes }),
		texto("status", "doenca", func(p *pl) *string { return &p.Status.Doenca }),
		texto("status", "tratamento", func(p *pl) *string { return &p.Status.Tratamento }),
	},
}

func situacao(dst func(*pl) *string) campo[pl] {
	c := texto("status", "situacao", dst)
	c.coerce = func(v any) any { return CanonicalSituacao(asString(v)) }
	return c
}

// EmptyPlanta is the fully defaulted record the wizard starts from.
func EmptyPlanta() entities.Planta {
	return entities.Planta{Identificacao: entities.Identificacao{Imagens: []string{}}}
}

// NormalizePlanta converts nested or flat input into the canonical record.
// Missing fields take their defaults; it never fails.
func NormalizePlanta(raw map[string]any) entities.Planta {
	return plantaTabela.normalize(raw, DetectPlantaShape(raw))
}

// PlantaPatchFrom keeps only the fields present in raw.
func PlantaPatchFrom(raw map[string]any) PlantaPatch {
	return plantaTabela.patch(raw, DetectPlantaShape(raw))
}

// MergePlanta applies patch over existing field by field. updatedAt is the
// patch value when given, now otherwise.
func MergePlanta(existing entities.Planta, patch PlantaPatch, now time.Time) entities.Planta {
	out := existing
	out.Identificacao.Imagens = slices.Clone(existing.Identificacao.Imagens)
	patch.Apply(&out)
	out.UpdatedAt = now
	if patch.UpdatedAt.Set {
		out.UpdatedAt = patch.UpdatedAt.Val
	}
	return out
}

// ProjectPlanta rebuilds the index columns and stamps missing timestamps.
func ProjectPlanta(p entities.Planta, now time.Time) entities.Planta {
	p.PlantaIndice = entities.PlantaIndice{
		CodigoIndice:       p.Identificacao.CodigoIndividual,
		EspecieIndice:      p.Identificacao.Especie,
		DataPlantioIndice:  p.DetalhesPlantio.DataPlantio,
		SituacaoIndice:     p.Status.Situacao,
		ColheitaPesoIndice: p.Produtividade.UltimaColheitaPeso,
		DataColheitaIndice: p.Produtividade.DataUltimaColheita,
	}
	if p.Identificacao.Imagens == nil {
		p.Identificacao.Imagens = []string{}
	}
	stamp(&p.CreatedAt, &p.UpdatedAt, now)
	return p
}

func stamp(criado, atualizado *time.Time, now time.Time) {
	if criado.IsZero() {
		*criado = now
	}
	if atualizado.IsZero() {
		*atualizado = now
	}
}

// PlantaFiltro is a search over plantas. Text fields match as
// case-insensitive substrings; the planting date range needs both bounds.
type PlantaFiltro struct {
	Especie     string
	Situacao    string
	Lote        string
	Localizacao string
	DataInicio  string
	DataFim     string
}

// Query renders the filter as remote query parameters.
func (f PlantaFiltro) Query() map[string]string {
	return nonEmpty(map[string]string{
		"especie":             f.Especie,
		"situacao":            f.Situacao,
		"lote":                f.Lote,
		"localizacao":         f.Localizacao,
		"data_plantio_inicio": f.DataInicio,
		"data_plantio_fim":    f.DataFim,
	})
}

// Match applies the filter to one record.
func (f PlantaFiltro) Match(p entities.Planta) bool {
	if !contains(p.Identificacao.Especie, f.Especie) ||
		!contains(p.Status.Situacao, f.Situacao) ||
		!contains(p.DetalhesPlantio.Lote, f.Lote) ||
		!contains(p.DetalhesPlantio.Localizacao, f.Localizacao) {
		return false
	}
	if f.DataInicio != "" && f.DataFim != "" {
		plantio, ok := formato.ParseData(p.DetalhesPlantio.DataPlantio)
		inicio, okInicio := formato.ParseData(f.DataInicio)
		fim, okFim := formato.ParseData(f.DataFim)
		if !ok || !okInicio || !okFim {
			return false
		}
		return !plantio.Before(inicio) && !plantio.After(fim)
	}
	return true
}

// contains is a case-insensitive substring test; an empty needle matches.
func contains(s, busca string) bool {
	if busca == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(busca))
}

func nonEmpty(m map[string]string) map[string]string {
	for k, v := range m {
		if v == "" {
			delete(m, k)
		}
	}
	return m
}
