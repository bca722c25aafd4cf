package record

import (
	"time"

	"cacau/entities"
	"cacau/pkg/formato"
)

type FazendaPatch = Patch[entities.Fazenda]

type fz = entities.Fazenda

var fazendaTabela = tabela[fz]{
	vazio: func() fz { return fz{} },
	sistema: func(f *fz, id uint, criado, atualizado time.Time) {
		f.ID, f.CreatedAt, f.UpdatedAt = id, criado, atualizado
	},
	campos: []campo[fz]{
		texto("", "nome", func(f *fz) *string { return &f.Nome }),
		texto("", "cnpj", func(f *fz) *string { return &f.CNPJ }),
		texto("", "proprietario", func(f *fz) *string { return &f.Proprietario }),
		texto("", "areaCultivo", func(f *fz) *string { return &f.AreaCultivo }),
		texto("", "especiePredominante", func(f *fz) *string { return &f.EspeciePredominante }),
		texto("", "sistemaProdutivo", func(f *fz) *string { return &f.SistemaProdutivo }),
		texto("", "divisaoPlantio", func(f *fz) *string { return &f.DivisaoPlantio }),
	},
}

func NormalizeFazenda(raw map[string]any) entities.Fazenda {
	return fazendaTabela.normalize(raw, ShapeFlat)
}

func FazendaPatchFrom(raw map[string]any) FazendaPatch {
	return fazendaTabela.patch(raw, ShapeFlat)
}

func MergeFazenda(existing entities.Fazenda, patch FazendaPatch, now time.Time) entities.Fazenda {
	out := existing
	patch.Apply(&out)
	out.UpdatedAt = now
	if patch.UpdatedAt.Set {
		out.UpdatedAt = patch.UpdatedAt.Val
	}
	return out
}

func ProjectFazenda(f entities.Fazenda, now time.Time) entities.Fazenda {
	f.CNPJDigitos = formato.Digits(f.CNPJ)
	stamp(&f.CreatedAt, &f.UpdatedAt, now)
	return f
}

type FazendaFiltro struct {
	Nome                string
	Proprietario        string
	EspeciePredominante string
	SistemaProdutivo    string
}

func (f FazendaFiltro) Query() map[string]string {
	return nonEmpty(map[string]string{
		"nome":                f.Nome,
		"proprietario":        f.Proprietario,
		"especiePredominante": f.EspeciePredominante,
		"sistemaProdutivo":    f.SistemaProdutivo,
	})
}

func (f FazendaFiltro) Match(fa entities.Fazenda) bool {
	return contains(fa.Nome, f.Nome) &&
		contains(fa.Proprietario, f.Proprietario) &&
		contains(fa.EspeciePredominante, f.EspeciePredominante) &&
		contains(fa.SistemaProdutivo, f.SistemaProdutivo)
}
