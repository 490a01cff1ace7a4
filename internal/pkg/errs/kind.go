package errs

import "errors"

// Kind is the closed classification of domain failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindVersionConflict
	KindInvalidTransition
	KindReservationConflict
	KindInsufficientStock
	KindStockInsufficient
	KindReservationNotFound
)

var kindNames = map[Kind]string{
	KindUnknown:             "Unknown",
	KindNotFound:            "NotFound",
	KindValidation:          "ValidationError",
	KindVersionConflict:     "VersionConflict",
	KindInvalidTransition:   "InvalidTransition",
	KindReservationConflict: "ReservationConflict",
	KindInsufficientStock:   "InsufficientStock",
	KindStockInsufficient:   "StockInsufficient",
	KindReservationNotFound: "ReservationNotFound",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// KindOf walks the error chain and returns the first matching kind.
// nil and unrecognised errors are KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrStockInsufficient):
		return KindStockInsufficient
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrReservationNotFound):
		return KindReservationNotFound
	case errors.Is(err, ErrReservationConflict):
		return KindReservationConflict
	case errors.Is(err, ErrVersionConflict):
		return KindVersionConflict
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindUnknown
	}
}
