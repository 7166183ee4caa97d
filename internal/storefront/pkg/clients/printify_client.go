package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"storefront_api/internal/storefront/internal/business"
	"storefront_api/internal/storefront/internal/models"
	"storefront_api/pkg/business/service"
	"storefront_api/pkg/logger"
)

// Printify timestamps look like "2023-06-01 10:15:00+00:00".
const printifyTimeLayout = "2006-01-02 15:04:05-07:00"

type printifyProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	Images      []struct {
		Src string `json:"src"`
	} `json:"images"`
	Variants []struct {
		ID    int64 `json:"id"`
		Price int64 `json:"price"` // в центах
	} `json:"variants"`
}

type printifyProductsPage struct {
	Data []printifyProduct `json:"data"`
}

type printifyLineItem struct {
	ProductID string `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type printifyOrder struct {
	ExternalID               string             `json:"external_id"`
	Label                    string             `json:"label"`
	LineItems                []printifyLineItem `json:"line_items"`
	ShippingMethod           int                `json:"shipping_method"`
	SendShippingNotification bool               `json:"send_shipping_notification"`
}

// PrintifyClient lists shop products and submits fulfillment orders.
type PrintifyClient struct {
	BaseClient
	shopID string
	text   service.ITextService
}

func NewPrintifyClient(apiURL, token, shopID string, log logger.Logger) *PrintifyClient {
	var auth AuthEngine
	if a := NewBearerAuth(token); a != nil {
		auth = a
	}
	return &PrintifyClient{
		BaseClient: *NewBaseClient(apiURL, auth, log),
		shopID:     shopID,
		text:       service.NewTextService(),
	}
}

func (c *PrintifyClient) ListItems(ctx context.Context) ([]models.Item, error) {
	var page printifyProductsPage
	endpoint := fmt.Sprintf("/v1/shops/%s/products.json", url.PathEscape(c.shopID))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(page.Data))
	for _, p := range page.Data {
		items = append(items, c.toItem(p))
	}
	return items, nil
}

func (c *PrintifyClient) toItem(p printifyProduct) models.Item {
	item := models.Item{
		ID:          p.ID,
		Name:        p.Title,
		Description: c.text.ClearAndReduce(p.Description, models.MaxDescriptionLength),
		InStock:     true,
		CreatedAt:   parsePrintifyTime(p.CreatedAt),
	}
	if len(p.Tags) > 0 {
		item.Category = p.Tags[0]
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0].Src
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		item.Price = float64(v.Price) / 100
		id := v.ID
		item.VariantID = &id
	}
	return item
}

func parsePrintifyTime(s string) time.Time {
	if t, err := time.Parse(printifyTimeLayout, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// CreateOrder submits one order; it is never retried.
func (c *PrintifyClient) CreateOrder(ctx context.Context, lines []business.OrderLine) error {
	order := printifyOrder{
		ExternalID:     uuid.NewString(),
		Label:          "storefront",
		ShippingMethod: 1,
	}
	for _, l := range lines {
		order.LineItems = append(order.LineItems, printifyLineItem{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	endpoint := fmt.Sprintf("/v1/shops/%s/orders.json", url.PathEscape(c.shopID))
	return c.doJSON(ctx, http.MethodPost, endpoint, order, nil)
}
