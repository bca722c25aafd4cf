package serviceImp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cacau/database"
	"cacau/entities"
	"cacau/pkg/apperr"
	"cacau/pkg/funcionario/repositoryImp"
	"cacau/pkg/funcionario/service"
	"cacau/pkg/record"
	"cacau/pkg/remote"
	"cacau/pkg/senha"
)

func newService(t *testing.T, apiURL string) service.FuncionarioService {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	return NewFuncionarioService(repositoryImp.New(db), remote.New(apiURL, 0, nil), zap.NewNop(), nil)
}

func fazendaID(v uint) *uint { return &v }

func joao() entities.Funcionario {
	return record.NormalizeFuncionario(map[string]any{
		"nome":       "João Silva",
		"usuario":    "joao",
		"email":      "Joao.Silva@Example.com",
		"senha":      "segredo123",
		"cpf":        "123.456.789-09",
		"celular":    "73999998888",
		"fazenda_id": 1,
		"rua":        "Rua das Flores",
		"numeroCasa": "10",
		"cidade":     "Ilhéus",
		"uf":         "BA",
	})
}

func TestCreateHashesSenha(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "")

	id, err := svc.Create(ctx, joao())
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEqual(t, "segredo123", got.Senha)
	assert.True(t, senha.Confere(got.Senha, "segredo123"))
	assert.Equal(t, "10", got.Endereco.Numero)

	hashed := got.Senha
	_, err = svc.Update(ctx, id, record.FuncionarioPatchFrom(map[string]any{"celular": "73988887777"}))
	require.NoError(t, err)
	got, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, hashed, got.Senha, "untouched senha is not rehashed")

	_, err = svc.Update(ctx, id, record.FuncionarioPatchFrom(map[string]any{"senha": "nova"}))
	require.NoError(t, err)
	got, err = svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, senha.Confere(got.Senha, "nova"))
	assert.Equal(t, "73988887777", got.Celular)
}

func TestFuncionarioLookups(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, "")

	id, err := svc.Create(ctx, joao())
	require.NoError(t, err)
	outro := joao()
	outro.CPF, outro.Email, outro.FazendaID = "98765432100", "maria@example.com", fazendaID(2)
	_, err = svc.Create(ctx, outro)
	require.NoError(t, err)

	byCpf, err := svc.GetByCpf(ctx, "12345678909")
	require.NoError(t, err)
	require.NotNil(t, byCpf)
	assert.Equal(t, id, byCpf.ID)

	byEmail, err := svc.GetByEmail(ctx, "  JOAO.SILVA@example.COM ")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, id, byEmail.ID)

	missing, err := svc.GetByEmail(ctx, "ninguem@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	daFazenda, err := svc.GetByFazenda(ctx, 1)
	require.NoError(t, err)
	require.Len(t, daFazenda, 1)
	assert.Equal(t, id, daFazenda[0].ID)

	found, err := svc.Search(ctx, record.FuncionarioFiltro{Cidade: "ilheus", FazendaID: fazendaID(2)})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "maria@example.com", found[0].Email)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestFuncionarioUpdateMissing(t *testing.T) {
	svc := newService(t, "")

	_, err := svc.Update(context.Background(), 7, record.FuncionarioPatchFrom(map[string]any{"nome": "X"}))

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "Falha ao atualizar funcionário")
}

func TestRemoteReceivesHashedSenha(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
		sent["id"] = 9
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sent)
	}))
	t.Cleanup(srv.Close)
	svc := newService(t, srv.URL)

	id, err := svc.Create(context.Background(), joao())

	require.NoError(t, err)
	assert.Equal(t, uint(9), id)
	require.NotNil(t, sent)
	s, _ := sent["senha"].(string)
	assert.True(t, senha.Confere(s, "segredo123"))
}
