package entities

import "time"

type Fazenda struct {
	ID                  uint   `gorm:"primaryKey" json:"id,omitempty"`
	Nome                string `gorm:"index" json:"nome"`
	CNPJ                string `json:"cnpj"`
	Proprietario        string `json:"proprietario"`
	AreaCultivo         string `json:"areaCultivo"`
	EspeciePredominante string `json:"especiePredominante"`
	SistemaProdutivo    string `json:"sistemaProdutivo"`
	DivisaoPlantio      string `json:"divisaoPlantio"`

	// digits-only CNPJ used by lookups
	CNPJDigitos string `gorm:"column:cnpj_digitos;index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Fazenda) TableName() string { return "fazendas" }
