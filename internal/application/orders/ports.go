package orders

import (
	"context"

	"github.com/jhoicas/coolbreeze-api/internal/domain/entity"
	"github.com/jhoicas/coolbreeze-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un OrderRepository atado a una transacción;
// la orden y sus líneas se insertan juntas o no se insertan.
type TxRunner interface {
	Run(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// ReceiptGenerator renderiza el comprobante PDF de una orden.
type ReceiptGenerator interface {
	Render(order *entity.Order, customer *entity.User) ([]byte, error)
}
