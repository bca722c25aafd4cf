package record

import (
	"strings"
	"time"

	"cacau/entities"
	"cacau/pkg/formato"
)

type FuncionarioPatch = Patch[entities.Funcionario]

type fn = entities.Funcionario

var funcionarioTabela = tabela[fn]{
	vazio: func() fn { return fn{} },
	sistema: func(f *fn, id uint, criado, atualizado time.Time) {
		f.ID, f.CreatedAt, f.UpdatedAt = id, criado, atualizado
	},
	campos: []campo[fn]{
		texto("", "nome", func(f *fn) *string { return &f.Nome }),
		texto("", "usuario", func(f *fn) *string { return &f.Usuario }),
		texto("", "email", func(f *fn) *string { return &f.Email }),
		texto("", "senha", func(f *fn) *string { return &f.Senha }),
		texto("", "cpf", func(f *fn) *string { return &f.CPF }),
		texto("", "celular", func(f *fn) *string { return &f.Celular }),
		referencia("", "fazenda_id", func(f *fn) **uint { return &f.FazendaID }),

		texto("endereco", "rua", func(f *fn) *string { return &f.Endereco.Rua }),
		texto("endereco", "numero", func(f *fn) *string { return &f.Endereco.Numero }, "numero", "numeroCasa"),
		texto("endereco", "bairro", func(f *fn) *string { return &f.Endereco.Bairro }),
		texto("endereco", "cidade", func(f *fn) *string { return &f.Endereco.Cidade }),
		texto("endereco", "uf", func(f *fn) *string { return &f.Endereco.UF }),
	},
}

// NormalizeFuncionario accepts endereco as an object or as flat keys
// (rua, numero or numeroCasa, bairro, cidade, uf).
func NormalizeFuncionario(raw map[string]any) entities.Funcionario {
	return funcionarioTabela.normalize(raw, DetectFuncionarioShape(raw))
}

func FuncionarioPatchFrom(raw map[string]any) FuncionarioPatch {
	return funcionarioTabela.patch(raw, DetectFuncionarioShape(raw))
}

func MergeFuncionario(existing entities.Funcionario, patch FuncionarioPatch, now time.Time) entities.Funcionario {
	out := existing
	patch.Apply(&out)
	out.UpdatedAt = now
	if patch.UpdatedAt.Set {
		out.UpdatedAt = patch.UpdatedAt.Val
	}
	return out
}

func ProjectFuncionario(f entities.Funcionario, now time.Time) entities.Funcionario {
	f.CPFDigitos = formato.Digits(f.CPF)
	f.EmailIndice = NormalizeEmail(f.Email)
	stamp(&f.CreatedAt, &f.UpdatedAt, now)
	return f
}

// NormalizeEmail is the form emails are indexed and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type FuncionarioFiltro struct {
	Nome      string
	Usuario   string
	Email     string
	Cidade    string
	FazendaID *uint
}

func (f FuncionarioFiltro) Query() map[string]string {
	q := map[string]string{
		"nome":    f.Nome,
		"usuario": f.Usuario,
		"email":   f.Email,
		"cidade":  f.Cidade,
	}
	if f.FazendaID != nil {
		q["fazenda_id"] = asString(float64(*f.FazendaID))
	}
	return nonEmpty(q)
}

func (f FuncionarioFiltro) Match(fu entities.Funcionario) bool {
	if f.FazendaID != nil && (fu.FazendaID == nil || *fu.FazendaID != *f.FazendaID) {
		return false
	}
	return contains(fu.Nome, f.Nome) &&
		contains(fu.Usuario, f.Usuario) &&
		contains(fu.Email, f.Email) &&
		contains(fu.Endereco.Cidade, f.Cidade)
}
