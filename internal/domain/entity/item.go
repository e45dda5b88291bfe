package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'un article.
const (
	ItemStatusDisponible    = "disponible"
	ItemStatusAffecte       = "affecte"
	ItemStatusEnMaintenance = "en_maintenance"
	ItemStatusHorsService   = "hors_service"
	ItemStatusReforme       = "reforme"
)

// États physiques d'un article.
const (
	ConditionNeuf    = "neuf"
	ConditionBon     = "bon"
	ConditionUsage   = "usage"
	ConditionMoyen   = "moyen"
	ConditionMauvais = "mauvais"
)

// Item représente un article en stock. Code est unique et immuable.
// Quantity ne se modifie que par application d'un mouvement (entrée/sortie);
// TotalValue est dérivé et recalculé à chaque mutation.
type Item struct {
	ID           string
	Code         string
	Name         string
	Description  string
	CategoryID   string // référence opaque, la gestion des catégories est externe
	Brand        string
	Model        string
	SerialNumber string
	Condition    string
	Quantity     int
	MinStock     int
	Location     string
	UnitPrice    decimal.Decimal
	TotalValue   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CreatedBy    string
}

// RecomputeTotalValue recalcule TotalValue = Quantity × UnitPrice.
func (i *Item) RecomputeTotalValue() {
	i.TotalValue = decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice)
}

// IsLowStock indique si l'article est au seuil d'alerte (quantité <= stock minimum).
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// ValidItemStatus vérifie qu'un statut appartient à l'énumération.
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusDisponible, ItemStatusAffecte, ItemStatusEnMaintenance,
		ItemStatusHorsService, ItemStatusReforme:
		return true
	}
	return false
}
