package business

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"storefront_api/internal/storefront/internal/models"
)

// Cart aggregates client-held lines. The zero value is an empty cart.
type Cart struct {
	lines []models.CartLine
}

// NewCart rebuilds a cart from client-held lines, merging repeated item ids.
func NewCart(lines []models.CartLine) *Cart {
	c := &Cart{}
	for _, line := range lines {
		c.addLine(line, line.Quantity)
	}
	return c
}

// AddLine adds quantity of item; quantities below 1 count as 1.
func (c *Cart) AddLine(item models.Item, quantity int) {
	c.addLine(models.LineFromItem(item, 0), quantity)
}

// AddLineRaw is AddLine for untrusted quantity input such as a form field.
func (c *Cart) AddLineRaw(item models.Item, quantity string) {
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		q = 1
	}
	c.AddLine(item, q)
}

func (c *Cart) addLine(line models.CartLine, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ItemID == line.ItemID {
			c.lines[i].Quantity += quantity
			return
		}
	}
	line.Quantity = quantity
	c.lines = append(c.lines, line)
}

// RemoveLine drops the line for itemID. Absent ids are ignored.
func (c *Cart) RemoveLine(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Total is the exact sum of price*quantity; round with FormatMoney for display only.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(LineTotal(line))
	}
	return total
}

func LineTotal(line models.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// MinorUnits converts a decimal price into integer cents, rounding half away from zero.
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
