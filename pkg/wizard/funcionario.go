package wizard

import (
	"context"

	"cacau/entities"
	funcionarioSvc "cacau/pkg/funcionario/service"
	"cacau/pkg/record"
	"cacau/pkg/validacao"
)

const PassosFuncionario = 2

// FuncionarioForm is the employee wizard state: the record plus the
// password confirmation, which is never stored.
type FuncionarioForm struct {
	entities.Funcionario
	ConfirmarSenha string `json:"confirmarSenha"`
}

// FuncionarioFlow collects account data on step 1 and documents and
// address on step 2. The form is cleared after a successful submission.
func FuncionarioFlow(svc funcionarioSvc.FuncionarioService) Flow[FuncionarioForm] {
	return Flow[FuncionarioForm]{
		Nome:  "funcionario",
		Steps: PassosFuncionario,
		Empty: func() FuncionarioForm { return FuncionarioForm{} },
		Apply: func(f *FuncionarioForm, fields map[string]any) {
			record.FuncionarioPatchFrom(fields).Apply(&f.Funcionario)
			if v, ok := fields["confirmarSenha"].(string); ok {
				f.ConfirmarSenha = v
			}
		},
		Validate: func(f FuncionarioForm) []string {
			return validacao.Funcionario(f.Funcionario, f.ConfirmarSenha)
		},
		Submit: func(ctx context.Context, f FuncionarioForm) (uint, error) {
			return svc.Create(ctx, f.Funcionario)
		},
		ClearOnSubmit: true,
	}
}
