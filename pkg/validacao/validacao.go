// Package validacao checks records before they are submitted and returns
// the messages shown to the user.
package validacao

import (
	"strings"

	"cacau/entities"
	"cacau/pkg/formato"
	"cacau/pkg/senha"
)

// MsgSenhaLonga is also returned by the gateway when an update carries a
// senha bcrypt cannot hash.
const MsgSenhaLonga = "Senha deve ter no máximo 72 caracteres"

// ValidationError carries every failed rule of one record.
type ValidationError struct {
	Erros []string
}

func (e *ValidationError) Error() string {
	return "dados inválidos: " + strings.Join(e.Erros, "; ")
}

// Err wraps msgs in a *ValidationError, or returns nil when msgs is empty.
func Err(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Erros: msgs}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func Planta(p entities.Planta) []string {
	var out []string
	if p.Identificacao.CodigoIndividual == "" {
		out = append(out, "Código individual é obrigatório")
	}
	if p.Identificacao.Especie == "" {
		out = append(out, "Espécie é obrigatória")
	}
	if p.DetalhesPlantio.DataPlantio == "" {
		out = append(out, "Data de plantio é obrigatória")
	} else if _, ok := formato.ParseData(p.DetalhesPlantio.DataPlantio); !ok {
		out = append(out, "Data de plantio deve estar no formato válido")
	}
	if p.Status.Situacao == "" {
		out = append(out, "Situação é obrigatória")
	}
	if v := p.DetalhesPlantio.AlturaMetros; v != nil && *v < 0 {
		out = append(out, "Altura deve ser um número positivo")
	}
	if v := p.Produtividade.UltimaColheitaPeso; v != nil && *v < 0 {
		out = append(out, "Peso da última colheita deve ser um número positivo")
	}
	return out
}

func Fazenda(f entities.Fazenda) []string {
	var out []string
	if blank(f.Nome) {
		out = append(out, "Nome da fazenda é obrigatório")
	}
	if len(formato.Digits(f.CNPJ)) < 14 {
		out = append(out, "CNPJ é obrigatório e deve ter 14 dígitos")
	}
	if blank(f.Proprietario) {
		out = append(out, "Proprietário é obrigatório")
	}
	if blank(f.AreaCultivo) {
		out = append(out, "Área de cultivo é obrigatória")
	}
	if f.EspeciePredominante == "" {
		out = append(out, "Espécie predominante é obrigatória")
	}
	if f.SistemaProdutivo == "" {
		out = append(out, "Sistema produtivo é obrigatório")
	}
	if f.DivisaoPlantio == "" {
		out = append(out, "Divisão do plantio é obrigatória")
	}
	return out
}

// Funcionario validates f. confirmarSenha is only checked when non-empty.
func Funcionario(f entities.Funcionario, confirmarSenha string) []string {
	var out []string
	if blank(f.Nome) {
		out = append(out, "Nome completo é obrigatório")
	}
	if blank(f.Usuario) {
		out = append(out, "Usuário é obrigatório")
	}
	if !strings.Contains(f.Email, "@") {
		out = append(out, "Email válido é obrigatório")
	}
	if len(strings.TrimSpace(f.Senha)) < 6 {
		out = append(out, "Senha deve ter no mínimo 6 caracteres")
	}
	if len(f.Senha) > senha.MaxBytes {
		out = append(out, MsgSenhaLonga)
	}
	if confirmarSenha != "" && f.Senha != confirmarSenha {
		out = append(out, "As senhas não coincidem")
	}
	if len(formato.Digits(f.CPF)) != 11 {
		out = append(out, "CPF é obrigatório e deve ter 11 dígitos")
	}
	if len(formato.Digits(f.Celular)) < 10 {
		out = append(out, "Celular é obrigatório")
	}

	e := f.Endereco
	if blank(e.Rua) {
		out = append(out, "Rua é obrigatória")
	}
	if blank(e.Numero) {
		out = append(out, "Número da casa é obrigatório")
	}
	if blank(e.Bairro) {
		out = append(out, "Bairro é obrigatório")
	}
	if blank(e.Cidade) {
		out = append(out, "Cidade é obrigatória")
	}
	if len(strings.TrimSpace(e.UF)) != 2 {
		out = append(out, "UF é obrigatória e deve ter 2 caracteres")
	}
	return out
}
