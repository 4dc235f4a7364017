package ledger

import (
	"context"

	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append de la entrada y la
// escritura del contador de stock ocurran como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entryRepo repository.LedgerEntryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
