package clients

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/pkg/logger"
)

type stripeSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// StripeClient creates hosted Checkout Sessions over the form-encoded REST API.
type StripeClient struct {
	BaseClient
	currency   string
	successURL string
	cancelURL  string
}

func NewStripeClient(apiURL, secretKey, currency, successURL, cancelURL string, log logger.Logger) *StripeClient {
	var auth AuthEngine
	if a := NewBearerAuth(secretKey); a != nil {
		auth = a
	}
	return &StripeClient{
		BaseClient: *NewBaseClient(apiURL, auth, log),
		currency:   strings.ToLower(currency),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// CreateSession issues a single POST guarded by a fresh idempotency key.
func (c *StripeClient) CreateSession(ctx context.Context, lines []business.PaymentLine) (string, error) {
	form := c.sessionForm(lines)
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var session stripeSession
	err := c.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", headers, &session)
	if err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", errors.New("stripe session has no url")
	}
	return session.URL, nil
}

func (c *StripeClient) sessionForm(lines []business.PaymentLine) url.Values {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)
	form.Add("payment_method_types[]", "card")
	for i, l := range lines {
		prefix := "line_items[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[price_data][currency]", c.currency)
		form.Set(prefix+"[price_data][product_data][name]", l.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(l.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(l.Quantity))
	}
	return form
}
