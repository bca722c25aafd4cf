package serviceImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cacau/database"
	"cacau/entities"
	"cacau/pkg/apperr"
	"cacau/pkg/metrics"
	"cacau/pkg/planta/repository"
	"cacau/pkg/planta/repositoryImp"
	"cacau/pkg/planta/service"
	"cacau/pkg/record"
	"cacau/pkg/remote"
)

type fixture struct {
	svc  service.PlantaService
	repo repository.PlantaRepository
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T, apiURL string) fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cacau.db"))
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	r := repositoryImp.New(db)
	return fixture{
		svc:  NewPlantaService(r, remote.New(apiURL, 0, log), log, metrics.New()),
		repo: r,
		logs: logs,
	}
}

var ignoreTimes = cmpopts.IgnoreFields(entities.Planta{}, "CreatedAt", "UpdatedAt", "PlantaIndice")

func cacau(codigo string) entities.Planta {
	return record.NormalizePlanta(map[string]any{
		"identificacao":    map[string]any{"codigo_individual": codigo, "especie": "Cacau"},
		"detalhes_plantio": map[string]any{"altura_metros": "2,5", "data_plantio": "2023-01-15", "lote": "LOTE_A"},
		"status":           map[string]any{"situacao": "Saudável", "observacoes": "A"},
	})
}

func TestCreateWithoutRemote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	in := cacau("QR_001")

	id, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	want := in
	want.ID = id
	if diff := cmp.Diff(want, *got, ignoreTimes); diff != "" {
		t.Fatalf("stored record mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Equal(t, "QR_001", got.CodigoIndice)
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.WarnLevel).Len(), "no remote, no warnings")
}

func TestPlantaLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")

	id, err := f.svc.Create(ctx, cacau("QR_001"))
	require.NoError(t, err)

	byCodigo, err := f.svc.GetByCodigo(ctx, "QR_001")
	require.NoError(t, err)
	require.NotNil(t, byCodigo)
	assert.Equal(t, id, byCodigo.ID)

	n, err := f.svc.Update(ctx, id, record.PlantaPatchFrom(map[string]any{
		"status": map[string]any{"situacao": "Doente"},
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entities.SituacaoDoente, got.Status.Situacao)
	assert.Equal(t, entities.SituacaoDoente, got.SituacaoIndice)
	assert.Equal(t, "Cacau", got.Identificacao.Especie)
	assert.Equal(t, "A", got.Status.Observacoes)
	require.NotNil(t, got.DetalhesPlantio.AlturaMetros)
	assert.Equal(t, 2.5, *got.DetalhesPlantio.AlturaMetros)

	n, err = f.svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	gone, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	n, err = f.svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "deleting a missing id still reports 1")
}

func TestUpdateMissing(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.svc.Update(context.Background(), 404, record.PlantaPatchFrom(map[string]any{"situacao": "Doente"}))

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Contains(t, err.Error(), "Falha ao atualizar planta")
}

func TestFallbackOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	f := newFixture(t, srv.URL)

	id, err := f.svc.Create(ctx, cacau("QR_500"))
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := f.svc.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "QR_500", got.Identificacao.CodigoIndividual)

	warns := f.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 2)
	assert.Equal(t, "Falha ao criar via API, salvando localmente", warns[0].Message)
	assert.Equal(t, "Falha ao buscar por ID via API, consultando cache local", warns[1].Message)
	assert.Equal(t, "API error: 500", warns[0].ContextMap()["error"])
}

func TestRemoteSuccessIsMirrored(t *testing.T) {
	ctx := context.Background()
	remoteRec := cacau("QR_REMOTO")
	remoteRec.ID = 42
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(remoteRec)
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]entities.Planta{remoteRec})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)
	f := newFixture(t, srv.URL)

	id, err := f.svc.Create(ctx, cacau("QR_REMOTO"))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	local, err := f.repo.FindByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, local, "remote record mirrored locally")
	assert.Equal(t, "QR_REMOTO", local.CodigoIndice)

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	found, err := f.svc.GetByCodigo(ctx, "QR_REMOTO")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint(42), found.ID)

	_, err = f.svc.Delete(ctx, 42)
	require.NoError(t, err)
	local, err = f.repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, local, "remote delete failed and the fallback removed the local copy")
}

func TestSearchLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	_, err := f.svc.Create(ctx, cacau("A1"))
	require.NoError(t, err)
	doente := cacau("A2")
	doente.Status.Situacao = entities.SituacaoDoente
	_, err = f.svc.Create(ctx, doente)
	require.NoError(t, err)

	got, err := f.svc.Search(ctx, record.PlantaFiltro{Situacao: "doente"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A2", got[0].Identificacao.CodigoIndividual)

	n, err := f.svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, f.svc.Clear(ctx))
	n, err = f.svc.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRemoteUpdateIsMirrored(t *testing.T) {
	ctx := context.Background()
	remoteRec := cacau("QR_REMOTO")
	remoteRec.ID = 7
	remoteRec.Status.Situacao = entities.SituacaoDoente
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(remoteRec)
	}))
	t.Cleanup(srv.Close)
	f := newFixture(t, srv.URL)

	n, err := f.svc.Update(ctx, 7, record.PlantaPatchFrom(map[string]any{"situacao": "Doente"}))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	local, err := f.repo.FindByID(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "QR_REMOTO", local.Identificacao.CodigoIndividual)
	assert.Equal(t, "Cacau", local.Identificacao.Especie)
	assert.Equal(t, entities.SituacaoDoente, local.Status.Situacao)
}

func TestRemoteUpdateWithoutRecordFallsBack(t *testing.T) {
	ctx := context.Background()
	var remoteUp atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !remoteUp.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"updated": 1}`))
	}))
	t.Cleanup(srv.Close)
	f := newFixture(t, srv.URL)

	id, err := f.svc.Create(ctx, cacau("QR_001"))
	require.NoError(t, err)

	remoteUp.Store(true)
	_, err = f.svc.Update(ctx, id, record.PlantaPatchFrom(map[string]any{"situacao": "Doente"}))
	require.NoError(t, err)

	local, err := f.repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "QR_001", local.Identificacao.CodigoIndividual, "local copy not wiped")
	assert.Equal(t, "Cacau", local.Identificacao.Especie)
	assert.Equal(t, entities.SituacaoDoente, local.Status.Situacao, "local merge applied")

	warns := f.logs.FilterMessage("Falha ao atualizar via API, atualizando localmente").All()
	require.Len(t, warns, 1)
	assert.Equal(t, "/plantas: resposta sem id", warns[0].ContextMap()["error"])
}

func TestGetByCodigoChecksRemoteMatch(t *testing.T) {
	ctx := context.Background()
	outra := cacau("QR_OUTRA")
	outra.ID = 1
	certa := cacau("QR_CERTA")
	certa.ID = 2
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// answers with the whole collection whatever the query says
		_ = json.NewEncoder(w).Encode([]entities.Planta{outra, certa})
	}))
	t.Cleanup(srv.Close)
	f := newFixture(t, srv.URL)

	got, err := f.svc.GetByCodigo(ctx, "QR_CERTA")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID)

	none, err := f.svc.GetByCodigo(ctx, "QR_NENHUMA")
	require.NoError(t, err)
	assert.Nil(t, none)
}
