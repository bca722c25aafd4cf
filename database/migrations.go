package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"cacau/entities"
)

// SchemaVersion records one applied migration.
type SchemaVersion struct {
	Version   int `gorm:"primaryKey;autoIncrement:false"`
	Descricao string
	AppliedAt time.Time
}

type migration struct {
	version   int
	descricao string
	up        func(tx *gorm.DB) error
}

// Migrations are additive only: new tables, columns and indexes.
var migrations = []migration{
	{1, "tabelas e índices de projeção", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&entities.Planta{}, &entities.Fazenda{}, &entities.Funcionario{})
	}},
	{2, "índices de createdAt/updatedAt", func(tx *gorm.DB) error {
		for _, table := range []string{"plantas", "fazendas", "funcionarios"} {
			for _, col := range []string{"created_at", "updated_at"} {
				stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)", table, col, table, col)
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
		}
		return nil
	}},
}

// Migrate applies the migrations missing from schema_versions, each in its
// own transaction.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaVersion{}); err != nil {
		return fmt.Errorf("schema_versions: %w", err)
	}
	var applied []int
	if err := db.Model(&SchemaVersion{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("read versions: %w", err)
	}
	done := map[int]bool{}
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaVersion{Version: m.version, Descricao: m.descricao, AppliedAt: time.Now()}).Error
		})
		if err != nil {
			return fmt.Errorf("v%d (%s): %w", m.version, m.descricao, err)
		}
	}
	return nil
}

// Version is the highest applied migration.
func Version(db *gorm.DB) (int, error) {
	var v int
	err := db.Model(&SchemaVersion{}).Select("COALESCE(MAX(version), 0)").Scan(&v).Error
	return v, err
}
