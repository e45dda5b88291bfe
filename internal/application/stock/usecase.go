package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Cyrivelus/stockpro/internal/domain"
	"github.com/Cyrivelus/stockpro/internal/domain/entity"
	"github.com/Cyrivelus/stockpro/internal/domain/repository"
	domstock "github.com/Cyrivelus/stockpro/internal/domain/stock"
)

// ApplyMovementUseCase applique un mouvement (entrée/sortie) de façon
// transactionnelle avec verrou de ligne (SELECT FOR UPDATE) sur l'article.
// Deux mouvements concurrents sur le même article sont donc sérialisés :
// la séquence lire-valider-écrire de l'un ne peut pas s'intercaler dans
// celle de l'autre.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	clock    func() time.Time
}

// NewApplyMovementUseCase construit le cas d'usage. clock est injectée
// (time.Now en production) pour garder le moteur déterministe en test.
func NewApplyMovementUseCase(txRunner TxRunner, clock func() time.Time) *ApplyMovementUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ApplyMovementUseCase{txRunner: txRunner, clock: clock}
}

// MovementInput entrée pour appliquer un mouvement de stock.
// UserID est l'identité fournie par la couche d'authentification (created_by).
type MovementInput struct {
	UserID    string
	ItemID    string
	Direction string
	Quantity  int
	UnitPrice decimal.Decimal

	// Métadonnées facultatives
	AcquisitionModeID *string
	SupplierID        *string
	Donor             string
	Source            string
	BeneficiaryID     *string
	Destination       string
	InvoiceNumber     string
	ReceiptNumber     string
	MovementDate      *time.Time // défaut : horloge du moteur
	Notes             string
}

// Apply lit l'article sous verrou, valide le mouvement contre la quantité
// courante puis, dans la même transaction : ajuste la quantité, recalcule la
// valeur totale et écrit le mouvement. Commit si tout passe, rollback sinon —
// aucun état intermédiaire n'est observable.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidDirection(input.Direction) {
		return nil, domain.ErrInvalidInput
	}
	if input.ItemID == "" || input.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.clock()
	movementDate := now
	if input.MovementDate != nil {
		movementDate = *input.MovementDate
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		// Verrouille la ligne de l'article jusqu'au commit
		item, err := itemRepo.GetForUpdate(input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := domstock.ValidateMovement(item.Quantity, input.Direction, input.Quantity); err != nil {
			return err
		}

		item.Quantity += domstock.SignedDelta(input.Direction, input.Quantity)
		item.RecomputeTotalValue()
		if err := itemRepo.UpdateStock(item.ID, item.Quantity, item.TotalValue, now); err != nil {
			return err
		}

		mov := &entity.Movement{
			ItemID:            input.ItemID,
			Direction:         input.Direction,
			Quantity:          input.Quantity,
			AcquisitionModeID: input.AcquisitionModeID,
			SupplierID:        input.SupplierID,
			Donor:             input.Donor,
			Source:            input.Source,
			UnitPrice:         input.UnitPrice,
			TotalPrice:        domstock.LineTotal(input.Quantity, input.UnitPrice),
			BeneficiaryID:     input.BeneficiaryID,
			Destination:       input.Destination,
			InvoiceNumber:     input.InvoiceNumber,
			ReceiptNumber:     input.ReceiptNumber,
			MovementDate:      movementDate,
			CreatedAt:         now,
			CreatedBy:         input.UserID,
			Notes:             input.Notes,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
