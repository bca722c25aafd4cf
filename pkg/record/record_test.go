package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cacau/entities"
)

func ptr[T any](v T) *T { return &v }

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   any
		want *float64
	}{
		{"12,5", ptr(12.5)},
		{" 3.75 ", ptr(3.75)},
		{2.5, ptr(2.5)},
		{7, ptr(7.0)},
		{"", nil},
		{"abc", nil},
		{nil, nil},
		{true, nil},
		{"NaN", nil},
	}
	for _, tc := range cases {
		got := ParseNumber(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "input %#v", tc.in)
			continue
		}
		require.NotNil(t, got, "input %#v", tc.in)
		assert.Equal(t, *tc.want, *got)
	}
}

func TestNormalizePlantaNested(t *testing.T) {
	raw := map[string]any{
		"id": float64(4),
		"identificacao": map[string]any{
			"imagens":           "planta1.jpg",
			"codigo_individual": "QR_CACAU_001",
			"especie":           "Cacau",
		},
		"detalhes_plantio": map[string]any{
			"altura_metros":        "2,5",
			"diametro_copa_metros": "abc",
			"data_plantio":         "2023-01-15",
		},
		"status": map[string]any{"situacao": "saudavel", "nao_foi_adubado": true},
		// flat keys are ignored once the input is nested
		"lote": "LOTE_X",
	}

	p := NormalizePlanta(raw)

	assert.Equal(t, uint(4), p.ID)
	assert.Equal(t, []string{"planta1.jpg"}, p.Identificacao.Imagens)
	assert.Equal(t, "QR_CACAU_001", p.Identificacao.CodigoIndividual)
	require.NotNil(t, p.DetalhesPlantio.AlturaMetros)
	assert.Equal(t, 2.5, *p.DetalhesPlantio.AlturaMetros)
	assert.Nil(t, p.DetalhesPlantio.DiametroCopaMetros)
	assert.Nil(t, p.DetalhesPlantio.DiametroTroncoMetros)
	assert.Empty(t, p.DetalhesPlantio.Lote)
	assert.Nil(t, p.Produtividade.QRCode)
	assert.Equal(t, entities.SituacaoSaudavel, p.Status.Situacao)
	assert.True(t, p.Status.NaoFoiAdubado)
}

func TestNormalizePlantaFlat(t *testing.T) {
	raw := map[string]any{
		"codigo_individual":    "C-7",
		"especie":              "Cacau",
		"lote":                 "A",
		"ultima_colheita_peso": "850,00",
		"qr_code":              "QR_1",
		"situacao":             "Doente",
		"doenca":               "vassoura-de-bruxa",
	}
	require.Equal(t, ShapeFlat, DetectPlantaShape(raw))

	p := NormalizePlanta(raw)

	assert.Equal(t, "C-7", p.Identificacao.CodigoIndividual)
	assert.Equal(t, "A", p.DetalhesPlantio.Lote)
	require.NotNil(t, p.Produtividade.UltimaColheitaPeso)
	assert.Equal(t, 850.0, *p.Produtividade.UltimaColheitaPeso)
	require.NotNil(t, p.Produtividade.QRCode)
	assert.Equal(t, "QR_1", *p.Produtividade.QRCode)
	assert.Equal(t, entities.SituacaoDoente, p.Status.Situacao)
	assert.Equal(t, "vassoura-de-bruxa", p.Status.Doenca)
	assert.Equal(t, []string{}, p.Identificacao.Imagens)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("planta", func(t *testing.T) {
		p := NormalizePlanta(map[string]any{
			"id":               float64(9),
			"createdAt":        created.Format(time.RFC3339Nano),
			"identificacao":    map[string]any{"codigo_individual": "X1", "imagens": []any{"a.jpg", "b.jpg"}},
			"detalhes_plantio": map[string]any{"altura_metros": "1,2"},
			"status":           map[string]any{"situacao": "Pragas", "nao_foi_adubado": "true"},
		})
		again := NormalizePlanta(roundTrip(t, p))
		if diff := cmp.Diff(p, again); diff != "" {
			t.Fatalf("normalize not idempotent (-first +second):\n%s", diff)
		}
	})

	t.Run("funcionario", func(t *testing.T) {
		f := NormalizeFuncionario(map[string]any{
			"nome":       "Ana",
			"cpf":        "123.456.789-01",
			"fazenda_id": "3",
			"rua":        "Rua A",
			"numeroCasa": "10",
		})
		again := NormalizeFuncionario(roundTrip(t, f))
		if diff := cmp.Diff(f, again); diff != "" {
			t.Fatalf("normalize not idempotent (-first +second):\n%s", diff)
		}
	})
}

func roundTrip(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestNormalizeFuncionarioEndereco(t *testing.T) {
	flat := NormalizeFuncionario(map[string]any{"rua": "Rua B", "numeroCasa": "22", "uf": "BA"})
	assert.Equal(t, entities.Endereco{Rua: "Rua B", Numero: "22", UF: "BA"}, flat.Endereco)

	nested := NormalizeFuncionario(map[string]any{
		"endereco":   map[string]any{"rua": "Rua C", "numero": "5"},
		"rua":        "ignored",
		"fazenda_id": float64(2),
	})
	assert.Equal(t, entities.Endereco{Rua: "Rua C", Numero: "5"}, nested.Endereco)
	require.NotNil(t, nested.FazendaID)
	assert.Equal(t, uint(2), *nested.FazendaID)
}

func TestMergePlantaKeepsUntouchedFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := NormalizePlanta(map[string]any{
		"identificacao":    map[string]any{"codigo_individual": "C1", "especie": "Cacau"},
		"detalhes_plantio": map[string]any{"altura_metros": 2.0, "lote": "L1"},
		"status":           map[string]any{"situacao": "Saudável", "adubo": "NPK"},
	})
	existing.ID = 1
	existing.CreatedAt = created
	existing.UpdatedAt = created

	patch := PlantaPatchFrom(map[string]any{"status": map[string]any{"situacao": "Doente"}})
	merged := MergePlanta(existing, patch, now)

	want := existing
	want.Status.Situacao = entities.SituacaoDoente
	want.UpdatedAt = now
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}

	t.Run("explicit updatedAt wins", func(t *testing.T) {
		later := now.Add(time.Hour)
		p := PlantaPatchFrom(map[string]any{"updatedAt": later.Format(time.RFC3339)})
		assert.True(t, MergePlanta(existing, p, now).UpdatedAt.Equal(later))
	})

	t.Run("invalid number clears the field", func(t *testing.T) {
		p := PlantaPatchFrom(map[string]any{"detalhes_plantio": map[string]any{"altura_metros": "x"}})
		got := MergePlanta(existing, p, now)
		assert.Nil(t, got.DetalhesPlantio.AlturaMetros)
		assert.Equal(t, "L1", got.DetalhesPlantio.Lote)
	})

	t.Run("existing is not mutated", func(t *testing.T) {
		p := PlantaPatchFrom(map[string]any{"imagens": []any{"z.jpg"}})
		_ = MergePlanta(existing, p, now)
		assert.Equal(t, []string{}, existing.Identificacao.Imagens)
	})
}

func TestMergeFuncionarioEndereco(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := entities.Funcionario{
		Nome:     "Ana",
		Endereco: entities.Endereco{Rua: "Rua A", Numero: "1", Cidade: "Ilhéus"},
	}

	got := MergeFuncionario(existing, FuncionarioPatchFrom(map[string]any{
		"endereco": map[string]any{"numero": "2"},
	}), now)

	assert.Equal(t, "Ana", got.Nome)
	assert.Equal(t, entities.Endereco{Rua: "Rua A", Numero: "2", Cidade: "Ilhéus"}, got.Endereco)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestMergeFazenda(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := entities.Fazenda{Nome: "Boa Vista", CNPJ: "12.345.678/0001-99"}

	got := MergeFazenda(existing, FazendaPatchFrom(map[string]any{"proprietario": "João"}), now)

	assert.Equal(t, "Boa Vista", got.Nome)
	assert.Equal(t, "João", got.Proprietario)
	assert.Equal(t, "12.345.678/0001-99", got.CNPJ)
}

func TestPatchBody(t *testing.T) {
	patch := PlantaPatchFrom(map[string]any{
		"situacao":      "morto",
		"altura_metros": "1,5",
	})

	assert.Equal(t, map[string]any{
		"status":           map[string]any{"situacao": entities.SituacaoMorto},
		"detalhes_plantio": map[string]any{"altura_metros": ptr(1.5)},
	}, patch.Body())
	assert.False(t, patch.Empty())
	assert.True(t, PlantaPatchFrom(map[string]any{}).Empty())
}

func TestPatchReplace(t *testing.T) {
	patch := FuncionarioPatchFrom(map[string]any{"senha": "123456"})
	patch.Replace("", "senha", "hashed")
	patch.Replace("", "email", "ignored")

	v, ok := patch.Lookup("", "senha")
	require.True(t, ok)
	assert.Equal(t, "hashed", v)
	_, ok = patch.Lookup("", "email")
	assert.False(t, ok)
}

func TestProjections(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	f := ProjectFazenda(entities.Fazenda{CNPJ: "12.345.678/0001-99"}, now)
	assert.Equal(t, "12345678000199", f.CNPJDigitos)
	assert.Equal(t, now, f.CreatedAt)
	assert.Equal(t, now, f.UpdatedAt)

	fu := ProjectFuncionario(entities.Funcionario{CPF: "123.456.789-01", Email: " Ana@Fazenda.COM "}, now)
	assert.Equal(t, "12345678901", fu.CPFDigitos)
	assert.Equal(t, "ana@fazenda.com", fu.EmailIndice)

	p := NormalizePlanta(map[string]any{
		"codigo_individual":    "C9",
		"especie":              "Cacau",
		"data_plantio":         "2023-01-15",
		"situacao":             "Saudável",
		"ultima_colheita_peso": 12.0,
		"data_ultima_colheita": "2024-05-01",
	})
	earlier := now.Add(-time.Hour)
	p.CreatedAt = earlier
	p = ProjectPlanta(p, now)
	assert.Equal(t, entities.PlantaIndice{
		CodigoIndice:       "C9",
		EspecieIndice:      "Cacau",
		DataPlantioIndice:  "2023-01-15",
		SituacaoIndice:     entities.SituacaoSaudavel,
		ColheitaPesoIndice: ptr(12.0),
		DataColheitaIndice: "2024-05-01",
	}, p.PlantaIndice)
	assert.Equal(t, earlier, p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestCanonicalSituacao(t *testing.T) {
	assert.Equal(t, entities.SituacaoSaudavel, CanonicalSituacao("SAUDÁVEL"))
	assert.Equal(t, entities.SituacaoPragas, CanonicalSituacao(" praga "))
	assert.Equal(t, "em_tratamento", CanonicalSituacao("em_tratamento"))
}

func TestFiltros(t *testing.T) {
	p := NormalizePlanta(map[string]any{"especie": "Cacau Forasteiro", "situacao": "Saudável", "data_plantio": "2023-05-10"})

	assert.True(t, PlantaFiltro{Especie: "cacau"}.Match(p))
	assert.True(t, PlantaFiltro{Situacao: "saudavel"}.Match(p))
	assert.False(t, PlantaFiltro{Especie: "açaí"}.Match(p))
	assert.True(t, PlantaFiltro{DataInicio: "2023-01-01", DataFim: "2023-12-31"}.Match(p))
	assert.False(t, PlantaFiltro{DataInicio: "2024-01-01", DataFim: "2024-12-31"}.Match(p))
	assert.True(t, PlantaFiltro{DataInicio: "2024-01-01"}.Match(p), "a single bound is ignored")

	fazenda := uint(3)
	outra := uint(4)
	fu := entities.Funcionario{Nome: "Maria", FazendaID: &fazenda}
	assert.True(t, FuncionarioFiltro{FazendaID: &fazenda}.Match(fu))
	assert.False(t, FuncionarioFiltro{FazendaID: &outra}.Match(fu))
	assert.Equal(t, map[string]string{"fazenda_id": "3"}, FuncionarioFiltro{FazendaID: &fazenda}.Query())

	assert.Equal(t, map[string]string{"nome": "Boa"}, FazendaFiltro{Nome: "Boa"}.Query())
}
