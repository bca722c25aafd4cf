package controllerImp

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cacau/database"
	"cacau/pkg/remote"
)

func TestHealth(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, NewHealthCtrl(db, remote.New("http://api.local/", 0, nil)).Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"configured":true`)
	assert.Contains(t, rec.Body.String(), `"base_url":"http://api.local"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, NewHealthCtrl(nil, nil).Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "gorm db is nil")
}
