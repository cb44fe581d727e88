package checkout

import "errors"

type DeliveryMethod string

const (
	MethodCash    DeliveryMethod = "cash"
	MethodCard    DeliveryMethod = "online_card"
	MethodEasybox DeliveryMethod = "easybox"
)

var (
	ErrUnknownMethod  = errors.New("unknown delivery method")
	ErrMissingAddress = errors.New("please fill in your address")
	ErrMissingEasybox = errors.New("please choose an easybox in your area")
	ErrEmptyCart      = errors.New("your cart is empty")
)

// Selection is the transient checkout form state. It lives for one request
// and is discarded after the order is created or carried to the card step.
type Selection struct {
	Method      DeliveryMethod
	City        string
	Street      string
	Number      string
	EasyboxCode string
}

// Validate enforces the per-method required fields: courier methods need a
// full address, easybox needs only its code.
func (s Selection) Validate() error {
	switch s.Method {
	case MethodEasybox:
		if s.EasyboxCode == "" {
			return ErrMissingEasybox
		}
		return nil
	case MethodCash, MethodCard:
		if s.City == "" || s.Street == "" || s.Number == "" {
			return ErrMissingAddress
		}
		return nil
	default:
		return ErrUnknownMethod
	}
}

// CreatesOrderNow reports whether submitting this selection places the order
// immediately. Card payments defer order creation to the payment step.
func (s Selection) CreatesOrderNow() bool {
	return s.Method == MethodCash || s.Method == MethodEasybox
}

// PendingPayment is the state carried from checkout to the card payment
// step. Without it the payment page is a dead end.
type PendingPayment struct {
	City   string
	Street string
	Number string
	Total  float64
}

func (p PendingPayment) Complete() bool {
	return p.City != "" && p.Street != "" && p.Number != ""
}
