package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cacau/database"
	"cacau/entities"
	"cacau/pkg/funcionario/repository"
)

func newRepo(t *testing.T) (*gorm.DB, repository.FuncionarioRepository) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	return db, New(db)
}

func TestFindScansUnindexedRows(t *testing.T) {
	ctx := context.Background()
	db, r := newRepo(t)

	f := entities.Funcionario{Nome: "Ana", CPF: "123.456.789-09", Email: "Ana@Example.com"}
	require.NoError(t, r.Add(ctx, &f))
	require.NoError(t, db.Model(&entities.Funcionario{}).Where("id = ?", f.ID).
		UpdateColumns(map[string]any{"cpf_digitos": "", "email_indice": ""}).Error)

	byCpf, err := r.FindByCpf(ctx, "12345678909")
	require.NoError(t, err)
	require.NotNil(t, byCpf)
	assert.Equal(t, f.ID, byCpf.ID)

	byEmail, err := r.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, f.ID, byEmail.ID)

	none, err := r.FindByCpf(ctx, "98765432100")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestPutKeepsStoredSenha(t *testing.T) {
	ctx := context.Background()
	_, r := newRepo(t)

	f := entities.Funcionario{Nome: "Ana", Senha: "$2a$10$hash"}
	require.NoError(t, r.Add(ctx, &f))

	semSenha := entities.Funcionario{ID: f.ID, Nome: "Ana Souza"}
	require.NoError(t, r.Put(ctx, &semSenha))
	got, err := r.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Nome)
	assert.Equal(t, "$2a$10$hash", got.Senha)

	require.NoError(t, r.PutAll(ctx, []entities.Funcionario{{ID: f.ID, Nome: "Ana S."}}))
	got, err = r.FindByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana S.", got.Nome)
	assert.Equal(t, "$2a$10$hash", got.Senha)
}
