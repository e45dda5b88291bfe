package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sens d'un mouvement de stock.
const (
	MovementEntree = "entree" // réception, quantité ajoutée
	MovementSortie = "sortie" // attribution, quantité retranchée
)

// Movement est une écriture du livre de stock. Immuable une fois persistée :
// une erreur se corrige par un mouvement compensatoire, jamais par modification.
type Movement struct {
	ID        int64 // séquentiel (BIGSERIAL)
	ItemID    string
	Direction string
	Quantity  int // toujours positif, le sens porte le signe

	// Acquisition (entrées)
	AcquisitionModeID *string
	SupplierID        *string
	Donor             string
	Source            string

	// Valeur au moment du mouvement
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal

	// Sorties
	BeneficiaryID *string
	Destination   string

	// Pièces justificatives
	InvoiceNumber string
	ReceiptNumber string

	MovementDate time.Time
	CreatedAt    time.Time
	CreatedBy    string
	Notes        string
}

// ValidDirection vérifie qu'un sens de mouvement appartient à l'énumération.
func ValidDirection(d string) bool {
	return d == MovementEntree || d == MovementSortie
}
