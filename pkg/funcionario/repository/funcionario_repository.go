package repository

import (
	"context"

	"cacau/entities"
)

type FuncionarioRepository interface {
	Add(ctx context.Context, f *entities.Funcionario) error
	Put(ctx context.Context, f *entities.Funcionario) error
	PutAll(ctx context.Context, fs []entities.Funcionario) error
	FindByID(ctx context.Context, id uint) (*entities.Funcionario, error)
	FindByCpf(ctx context.Context, cpf string) (*entities.Funcionario, error)
	// FindByEmail compares case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entities.Funcionario, error)
	ListByFazenda(ctx context.Context, fazendaID uint) ([]entities.Funcionario, error)
	List(ctx context.Context) ([]entities.Funcionario, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
}
