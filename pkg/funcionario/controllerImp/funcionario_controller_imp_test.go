package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cacau/database"
	"cacau/entities"
	"cacau/pkg/funcionario/repositoryImp"
	"cacau/pkg/funcionario/service"
	"cacau/pkg/funcionario/serviceImp"
	"cacau/pkg/senha"
	"cacau/pkg/validacao"
)

func newServer(t *testing.T) (*echo.Echo, service.FuncionarioService) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	svc := serviceImp.NewFuncionarioService(repositoryImp.New(db), nil, nil, nil)
	e := echo.New()
	New(svc).Register(e)
	return e, svc
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func body(nome, email, cpf, pass string) string {
	b, _ := json.Marshal(map[string]any{
		"nome": nome, "usuario": strings.ToLower(nome), "email": email, "senha": pass,
		"confirmarSenha": pass, "cpf": cpf, "celular": "(73) 99999-8888", "fazenda_id": 1,
		"endereco": map[string]any{"rua": "Rua A", "numero": "5", "bairro": "Centro", "cidade": "Ilhéus", "uf": "BA"},
	})
	return string(b)
}

func TestFuncionarioRoutes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e, svc := newServer(t)

	rec := do(e, http.MethodPost, "/funcionarios", body("Ana", "ana@example.com", "123.456.789-09", "segredo1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ana entities.Funcionario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ana))
	require.NotZero(t, ana.ID)
	assert.Empty(t, ana.Senha, "hash never leaves the server")
	assert.False(t, ana.CreatedAt.IsZero())

	rec = do(e, http.MethodPost, "/funcionarios", body("Joana", "joana@example.com", "987.654.321-00", "segredo2"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodGet, "/funcionarios?cpf=12345678909", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byCpf entities.Funcionario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byCpf))
	assert.Equal(t, ana.ID, byCpf.ID)

	rec = do(e, http.MethodGet, "/funcionarios?email=ana@", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byEmail []entities.Funcionario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byEmail))
	assert.Len(t, byEmail, 2, "email is a substring filter")

	rec = do(e, http.MethodGet, "/funcionarios?email=joana&cidade=ilheus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byEmail))
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Joana", byEmail[0].Nome)

	rec = do(e, http.MethodGet, "/funcionarios?fazenda_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var daFazenda []entities.Funcionario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &daFazenda))
	assert.Len(t, daFazenda, 2)

	rec = do(e, http.MethodPut, "/funcionarios/1", `{"celular": "73988887777", "endereco": {"bairro": "Pontal"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entities.Funcionario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "73988887777", updated.Celular)
	assert.Equal(t, "Pontal", updated.Endereco.Bairro)
	assert.Equal(t, "Rua A", updated.Endereco.Rua)
	assert.Empty(t, updated.Senha)

	stored, err := svc.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.True(t, senha.Confere(stored.Senha, "segredo1"))
}

func TestFuncionarioSenhaTooLong(t *testing.T) {
	e, _ := newServer(t)
	longa := strings.Repeat("x", 80)

	rec := do(e, http.MethodPost, "/funcionarios", body("Ana", "ana@example.com", "123.456.789-09", longa))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), validacao.MsgSenhaLonga)

	rec = do(e, http.MethodPost, "/funcionarios", body("Ana", "ana@example.com", "123.456.789-09", "segredo1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPut, "/funcionarios/1", `{"senha": "`+longa+`"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), validacao.MsgSenhaLonga)
}
