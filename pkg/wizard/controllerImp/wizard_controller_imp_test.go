package controllerImp

import (
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
	"cacau/pkg/funcionario/repositoryImp"
	"cacau/pkg/funcionario/serviceImp"
	"cacau/pkg/wizard"
)

type snapshot struct {
	ID     string                 `json:"id"`
	Passo  int                    `json:"passo"`
	Passos int                    `json:"passos"`
	Estado wizard.FuncionarioForm `json:"estado"`
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFuncionarioWizardRoutes(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	svc := serviceImp.NewFuncionarioService(repositoryImp.New(db), nil, nil, nil)
	reg := wizard.NewRegistry(wizard.FuncionarioFlow(svc), nil)
	e := echo.New()
	New("/wizard/funcionarios", reg).Register(e)

	rec := do(e, http.MethodPost, "/wizard/funcionarios", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var snap snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	base := "/wizard/funcionarios/" + snap.ID

	rec = do(e, http.MethodPatch, base+"/passo/2", `{"nome":"Ana","usuario":"ana","email":"ana@example.com","senha":"segredo1","confirmarSenha":"segredo1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Passo)
	assert.Equal(t, "Ana", snap.Estado.Nome)

	rec = do(e, http.MethodPost, base+"/concluir", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPatch, base+"/passo/2", `{"cpf":"12345678909","celular":"73999990000","endereco":{"rua":"A","numero":"1","bairro":"B","cidade":"C","uf":"BA"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, base+"/passo/3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, base+"/concluir", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"id":1`)

	rec = do(e, http.MethodGet, base, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Passo)
	assert.Empty(t, snap.Estado.Nome)

	rec = do(e, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(e, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
