package business

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront_api/internal/storefront/internal/models"
)

const (
	PageSize = 8
	// MinCatalogMaxPrice is the price-filter ceiling used for an empty or all-free catalog.
	MinCatalogMaxPrice = 100.0
)

// CatalogQuery filters, sorts and paginates a catalog snapshot. Query has no side effects.
type CatalogQuery struct {
	tag      language.Tag
	pageSize int
}

func NewCatalogQuery(locale string) *CatalogQuery {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &CatalogQuery{tag: tag, pageSize: PageSize}
}

func (q *CatalogQuery) Query(items []models.Item, req models.QueryRequest) models.Page {
	maxPrice := CatalogMaxPrice(items)
	if req.MaxPrice != nil && !math.IsNaN(*req.MaxPrice) && *req.MaxPrice >= 0 {
		maxPrice = *req.MaxPrice
	}

	filtered := q.filter(items, req.Category, maxPrice, req.SearchText)
	q.sort(filtered, req.Sort)

	page := req.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(filtered) + q.pageSize - 1) / q.pageSize

	pageItems := []models.Item{}
	start := (page - 1) * q.pageSize
	if start < len(filtered) {
		end := min(start+q.pageSize, len(filtered))
		pageItems = append(pageItems, filtered[start:end]...)
	}

	return models.Page{
		Items:      pageItems,
		Page:       page,
		PageSize:   q.pageSize,
		TotalPages: totalPages,
		TotalItems: len(filtered),
		MaxPrice:   CatalogMaxPrice(items),
		Categories: Categories(items),
	}
}

func (q *CatalogQuery) filter(items []models.Item, category string, maxPrice float64, search string) []models.Item {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Item, 0, len(items))
	for _, item := range items {
		if category != "" && item.Category != category {
			continue
		}
		if item.Price > maxPrice {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (q *CatalogQuery) sort(items []models.Item, order models.SortOrder) {
	var less func(a, b models.Item) bool
	switch order {
	case models.SortPriceAsc:
		less = func(a, b models.Item) bool { return a.Price < b.Price }
	case models.SortPriceDesc:
		less = func(a, b models.Item) bool { return a.Price > b.Price }
	case models.SortAlphabetical:
		// Collator keeps internal buffers, one per call.
		c := collate.New(q.tag)
		less = func(a, b models.Item) bool { return c.CompareString(a.Name, b.Name) < 0 }
	case models.SortBestselling:
		less = func(a, b models.Item) bool { return a.Sold > b.Sold }
	default:
		less = func(a, b models.Item) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// CatalogMaxPrice is the highest price in the full catalog, never below MinCatalogMaxPrice.
func CatalogMaxPrice(items []models.Item) float64 {
	maxPrice := MinCatalogMaxPrice
	for _, item := range items {
		if item.Price > maxPrice {
			maxPrice = item.Price
		}
	}
	return maxPrice
}

// Categories lists distinct non-empty categories in first-seen order.
func Categories(items []models.Item) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}

// ParseSortOrder maps user input onto a known order; unknown values fall back to newest.
func ParseSortOrder(s string) models.SortOrder {
	switch models.SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case models.SortPriceAsc:
		return models.SortPriceAsc
	case models.SortPriceDesc:
		return models.SortPriceDesc
	case models.SortAlphabetical, "alpha":
		return models.SortAlphabetical
	case models.SortBestselling:
		return models.SortBestselling
	default:
		return models.SortNewest
	}
}

// ParseQueryRequest reads a QueryRequest from URL query parameters.
// Malformed numbers are treated as absent.
func ParseQueryRequest(values url.Values) models.QueryRequest {
	req := models.QueryRequest{
		Category:   values.Get("category"),
		SearchText: values.Get("q"),
		Sort:       ParseSortOrder(values.Get("sort")),
		Page:       1,
	}
	if req.SearchText == "" {
		req.SearchText = values.Get("search")
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		req.MaxPrice = &v
	}
	if v, err := strconv.Atoi(values.Get("page")); err == nil {
		req.Page = v
	}
	return req
}
