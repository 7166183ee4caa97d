package business

import (
	"context"
	"fmt"

	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/logger"
)

const (
	MaxCheckoutLines    = 50
	MaxCheckoutQuantity = 100
)

// PaymentLine is one line of a hosted payment session, priced in minor units.
type PaymentLine struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// OrderLine is one line of a fulfillment order.
type OrderLine struct {
	ProductID string
	Quantity  int
	VariantID *int64
}

// PaymentGateway creates a redirectable payment session and returns its URL.
// Implementations must not retry on their own.
type PaymentGateway interface {
	CreateSession(ctx context.Context, lines []PaymentLine) (string, error)
}

// FulfillmentGateway submits an order for manufacturing and shipping.
type FulfillmentGateway interface {
	CreateOrder(ctx context.Context, lines []OrderLine) error
}

type CheckoutOutcome func(provider string, err error)

type CheckoutService struct {
	payment         PaymentGateway
	fulfillment     FulfillmentGateway
	successRedirect string
	log             logger.Logger
	observe         CheckoutOutcome
}

// NewPaymentCheckout builds a checkout backed by a hosted payment session.
func NewPaymentCheckout(gw PaymentGateway, log logger.Logger) *CheckoutService {
	return &CheckoutService{payment: gw, log: log}
}

// NewFulfillmentCheckout builds a checkout that places an order with the fulfillment
// integration and then redirects to successRedirect.
func NewFulfillmentCheckout(gw FulfillmentGateway, successRedirect string, log logger.Logger) *CheckoutService {
	return &CheckoutService{fulfillment: gw, successRedirect: successRedirect, log: log}
}

// OnOutcome registers a hook called once per attempted external call.
func (s *CheckoutService) OnOutcome(fn CheckoutOutcome) {
	s.observe = fn
}

// BuildSession validates the cart and performs exactly one external call.
func (s *CheckoutService) BuildSession(ctx context.Context, lines []models.CartLine) (string, error) {
	cart, err := ValidateCheckout(lines)
	if err != nil {
		return "", err
	}

	if s.payment != nil {
		url, err := s.payment.CreateSession(ctx, PaymentLines(cart))
		s.report("payment", err)
		if err != nil {
			return "", upstream("create payment session", err)
		}
		return url, nil
	}

	err = s.fulfillment.CreateOrder(ctx, OrderLines(cart))
	s.report("fulfillment", err)
	if err != nil {
		return "", upstream("create fulfillment order", err)
	}
	return s.successRedirect, nil
}

func (s *CheckoutService) report(provider string, err error) {
	if err != nil {
		s.log.Error("checkout via %s failed: %v", provider, err)
	} else {
		s.log.Log("checkout via %s succeeded", provider)
	}
	if s.observe != nil {
		s.observe(provider, err)
	}
}

// ValidateCheckout merges repeated ids and checks the line limits before any call-out.
func ValidateCheckout(lines []models.CartLine) (*Cart, error) {
	if len(lines) == 0 {
		return nil, invalid("items", "cart is empty")
	}

	verr := &ValidationError{}
	for i, line := range lines {
		if line.ItemID == "" {
			verr.add(fmt.Sprintf("items[%d]._id", i), "item id is required")
		}
		if line.Quantity < 1 || line.Quantity > MaxCheckoutQuantity {
			verr.add(fmt.Sprintf("items[%d].quantity", i),
				fmt.Sprintf("quantity must be between 1 and %d", MaxCheckoutQuantity))
		}
		if line.Price < 0 {
			verr.add(fmt.Sprintf("items[%d].price", i), "price must not be negative")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	cart := NewCart(lines)
	if cart.Len() > MaxCheckoutLines {
		return nil, invalid("items", fmt.Sprintf("at most %d distinct items per order", MaxCheckoutLines))
	}
	for _, line := range cart.Lines() {
		if line.Quantity > MaxCheckoutQuantity {
			return nil, invalid("items", fmt.Sprintf("quantity of %s exceeds %d", line.ItemID, MaxCheckoutQuantity))
		}
	}
	return cart, nil
}

func PaymentLines(cart *Cart) []PaymentLine {
	lines := cart.Lines()
	out := make([]PaymentLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, PaymentLine{
			Name:       line.Name,
			UnitAmount: MinorUnits(line.Price),
			Quantity:   line.Quantity,
		})
	}
	return out
}

func OrderLines(cart *Cart) []OrderLine {
	lines := cart.Lines()
	out := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, OrderLine{
			ProductID: line.ItemID,
			Quantity:  line.Quantity,
			VariantID: line.VariantID,
		})
	}
	return out
}
