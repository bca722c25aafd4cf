package entities

import "time"

type Endereco struct {
	Rua    string `json:"rua"`
	Numero string `json:"numero"`
	Bairro string `json:"bairro"`
	Cidade string `json:"cidade"`
	UF     string `json:"uf"`
}

type Funcionario struct {
	ID      uint   `gorm:"primaryKey" json:"id,omitempty"`
	Nome    string `gorm:"index" json:"nome"`
	Usuario string `gorm:"index" json:"usuario"`
	Email   string `json:"email"`
	// bcrypt hash once it reaches the gateway
	Senha     string   `json:"senha"`
	CPF       string   `json:"cpf"`
	Celular   string   `json:"celular"`
	Endereco  Endereco `gorm:"embedded;embeddedPrefix:endereco_" json:"endereco"`
	FazendaID *uint    `gorm:"index" json:"fazenda_id"`

	CPFDigitos  string `gorm:"column:cpf_digitos;index" json:"-"`
	EmailIndice string `gorm:"column:email_indice;index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Funcionario) TableName() string { return "funcionarios" }
