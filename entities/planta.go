package entities

import "time"

// Situação labels used by the wizard and the reports.
const (
	SituacaoSaudavel = "Saudável"
	SituacaoDoente   = "Doente"
	SituacaoPragas   = "Pragas"
	SituacaoMorto    = "Morto"
	SituacaoOutro    = "Outro"
)

type Identificacao struct {
	Imagens          []string `gorm:"serializer:json" json:"imagens"`
	CodigoIndividual string   `json:"codigo_individual"`
	Especie          string   `json:"especie"`
}

type DetalhesPlantio struct {
	TipoMuda             string   `json:"tipo_muda"`
	AlturaMetros         *float64 `json:"altura_metros"`
	DiametroCopaMetros   *float64 `json:"diametro_copa_metros"`
	DiametroTroncoMetros *float64 `json:"diametro_tronco_metros"`
	DataPlantio          string   `json:"data_plantio"`
	IdadeArvore          string   `json:"idade_arvore"`
	Lote                 string   `json:"lote"`
	Localizacao          string   `json:"localizacao"`
}

type Produtividade struct {
	QRCode             *string  `json:"qr_code"`
	UltimaColheitaPeso *float64 `json:"ultima_colheita_peso"`
	DataUltimaColheita string   `json:"data_ultima_colheita"`
}

type Status struct {
	Situacao           string `json:"situacao"`
	Adubo              string `json:"adubo"`
	DataAdubacao       string `json:"data_adubacao"`
	DataUltimaInspecao string `json:"data_ultima_inspecao"`
	NaoFoiAdubado      bool   `json:"nao_foi_adubado"`
	Observacoes        string `json:"observacoes"`
	Doenca             string `json:"doenca"`
	Tratamento         string `json:"tratamento"`
}

// PlantaIndice holds the flat columns derived from the nested sections.
// They exist only for lookups and are rebuilt on every write.
type PlantaIndice struct {
	CodigoIndice       string   `gorm:"column:codigo_individual;index" json:"-"`
	EspecieIndice      string   `gorm:"column:especie;index" json:"-"`
	DataPlantioIndice  string   `gorm:"column:data_plantio;index" json:"-"`
	SituacaoIndice     string   `gorm:"column:situacao;index" json:"-"`
	ColheitaPesoIndice *float64 `gorm:"column:ultima_colheita_peso;index" json:"-"`
	DataColheitaIndice string   `gorm:"column:data_ultima_colheita;index" json:"-"`
}

type Planta struct {
	ID              uint            `gorm:"primaryKey" json:"id,omitempty"`
	Identificacao   Identificacao   `gorm:"embedded;embeddedPrefix:identificacao_" json:"identificacao"`
	DetalhesPlantio DetalhesPlantio `gorm:"embedded;embeddedPrefix:detalhes_plantio_" json:"detalhes_plantio"`
	Produtividade   Produtividade   `gorm:"embedded;embeddedPrefix:produtividade_" json:"produtividade"`
	Status          Status          `gorm:"embedded;embeddedPrefix:status_" json:"status"`

	PlantaIndice `gorm:"embedded"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Planta) TableName() string { return "plantas" }
