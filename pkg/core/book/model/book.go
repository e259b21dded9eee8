package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	MaxTextLength = 30
	MaxPrice      = 999999.99
)

type Libro struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Titulo    string    `gorm:"type:varchar(30);not null" json:"titulo"`
	Autor     string    `gorm:"type:varchar(30);not null;index" json:"autor"`
	Precio    float64   `gorm:"not null" json:"precio"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName maps Libro onto the libros table.
func (Libro) TableName() string {
	return "libros"
}

func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "mysql" {
		db = db.Set("gorm:table_options", "COMMENT='Catálogo de libros'")
	}
	return db.AutoMigrate(&Libro{})
}
