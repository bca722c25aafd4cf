package service

import (
	"context"

	"cacau/entities"
	"cacau/pkg/record"
)

type FuncionarioService interface {
	// Create hashes the senha before it leaves the process.
	Create(ctx context.Context, f entities.Funcionario) (uint, error)
	GetAll(ctx context.Context) ([]entities.Funcionario, error)
	GetByID(ctx context.Context, id uint) (*entities.Funcionario, error)
	GetByCpf(ctx context.Context, cpf string) (*entities.Funcionario, error)
	GetByEmail(ctx context.Context, email string) (*entities.Funcionario, error)
	GetByFazenda(ctx context.Context, fazendaID uint) ([]entities.Funcionario, error)
	Update(ctx context.Context, id uint, patch record.FuncionarioPatch) (int, error)
	Delete(ctx context.Context, id uint) (int, error)
	Search(ctx context.Context, f record.FuncionarioFiltro) ([]entities.Funcionario, error)
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
