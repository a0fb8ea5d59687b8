package orders

import "errors"

var (
	ErrDuplicateOrderID  = errors.New("orders: duplicate order id")
	ErrEmptyOrderID      = errors.New("orders: order id is required")
	ErrUnknownField      = errors.New("orders: unknown sort field")
	ErrUnknownDateBucket = errors.New("orders: unknown date bucket")
	ErrUnknownDirection  = errors.New("orders: unknown sort direction")
	ErrInvalidPageSize   = errors.New("orders: page size must be one of 5, 10, 25")
	ErrNegativePage      = errors.New("orders: page index must not be negative")
	ErrUnknownOrder      = errors.New("orders: unknown order id")
	ErrUnknownEvent      = errors.New("orders: unknown event")
	ErrSessionNotFound   = errors.New("orders: session not found")
	ErrSessionExists     = errors.New("orders: session already exists")
	ErrSessionIDRequired = errors.New("orders: session id is required")
)

// IsValidation reports whether err is caused by bad caller input rather than an internal fault.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrUnknownField,
		ErrUnknownDateBucket,
		ErrUnknownDirection,
		ErrInvalidPageSize,
		ErrNegativePage,
		ErrUnknownOrder,
		ErrUnknownEvent,
		ErrSessionIDRequired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
