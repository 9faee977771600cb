package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/truestate/retail-sales-api/internal/repository"
	"github.com/truestate/retail-sales-api/internal/utils"
)

// SaleLister is the service surface the sale handler depends on.
type SaleLister interface {
	ListSales(ctx context.Context, filter *repository.SaleFilter) (*repository.SaleList, error)
}

// SaleHandler handles the sales listing HTTP endpoint.
type SaleHandler struct {
	sales SaleLister
}

// NewSaleHandler constructs a SaleHandler.
func NewSaleHandler(sales SaleLister) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// GetSales handles GET /api/sales. Responds with {data, total, page,
// totalPages}; zero matches is a normal response, only backend failures are
// errors.
func (h *SaleHandler) GetSales(c *gin.Context) {
	filter := parseSaleFilter(c)

	list, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		utils.Error(c, 500, "Failed to retrieve sales")
		return
	}

	c.JSON(200, list)
}

// parseSaleFilter reads the flat query parameters into a SaleFilter.
// Malformed numbers, dates and page values degrade to "no constraint" rather
// than erroring; this permissive policy keeps dashboard links shareable even
// when a parameter is mangled.
func parseSaleFilter(c *gin.Context) *repository.SaleFilter {
	filter := &repository.SaleFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Regions:    splitList(c.Query("region")),
		Genders:    splitList(c.Query("gender")),
		Categories: splitList(c.Query("category")),
		Payments:   splitList(c.Query("payment")),
		Tags:       splitList(c.Query("tags")),
		Sort:       c.Query("sort"),
		Page:       1,
	}

	if v := c.Query("ageMin"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.AgeMin = &n
		}
	}
	if v := c.Query("ageMax"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.AgeMax = &n
		}
	}

	if t := parseQueryDate(c.Query("dateStart")); t != nil {
		filter.DateStart = t
	}
	if t := parseQueryDate(c.Query("dateEnd")); t != nil {
		filter.DateEnd = t
	}

	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}

	return filter
}

// splitList splits a comma-separated query value, trims each piece and drops
// empties.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return lo.FilterMap(strings.Split(v, ","), func(piece string, _ int) (string, bool) {
		piece = strings.TrimSpace(piece)
		return piece, piece != ""
	})
}

var queryDateLayouts = []string{"2006-01-02", time.RFC3339}

// parseQueryDate parses a date bound from a query parameter. Invalid values
// become absent constraints.
func parseQueryDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range queryDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
