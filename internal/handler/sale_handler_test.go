package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSaleLister struct {
	lastFilter *repository.SaleFilter
	list       *repository.SaleList
	err        error
}

func (f *fakeSaleLister) ListSales(_ context.Context, filter *repository.SaleFilter) (*repository.SaleList, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func salesRouter(lister *fakeSaleLister) *gin.Engine {
	r := gin.New()
	r.GET("/api/sales", NewSaleHandler(lister).GetSales)
	return r
}

func getSales(t *testing.T, r *gin.Engine, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/sales"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSalesResponseShape(t *testing.T) {
	name := "John Doe"
	lister := &fakeSaleLister{list: &repository.SaleList{
		Data:       []models.Sale{{CustomerName: &name}},
		Total:      25,
		Page:       2,
		TotalPages: 3,
	}}

	w := getSales(t, salesRouter(lister), "?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data       []map[string]interface{} `json:"data"`
		Total      int                      `json:"total"`
		Page       int                      `json:"page"`
		TotalPages int                      `json:"totalPages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, 25, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 3, body.TotalPages)
}

func TestGetSalesEmptyPageIsAnArray(t *testing.T) {
	lister := &fakeSaleLister{list: &repository.SaleList{
		Data:       []models.Sale{},
		Total:      0,
		Page:       1,
		TotalPages: 0,
	}}

	w := getSales(t, salesRouter(lister), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`, "empty page must marshal as [], not null")
}

func TestGetSalesServiceFailure(t *testing.T) {
	lister := &fakeSaleLister{err: errors.New("connection refused")}

	w := getSales(t, salesRouter(lister), "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to retrieve sales")
}

func TestParseSaleFilter(t *testing.T) {
	lister := &fakeSaleLister{list: &repository.SaleList{Data: []models.Sale{}}}
	r := salesRouter(lister)

	t.Run("comma lists are split and trimmed", func(t *testing.T) {
		getSales(t, r, "?region=North,%20South,&gender=Male")
		f := lister.lastFilter
		assert.Equal(t, []string{"North", "South"}, f.Regions)
		assert.Equal(t, []string{"Male"}, f.Genders)
	})

	t.Run("numeric and date bounds", func(t *testing.T) {
		getSales(t, r, "?ageMin=18&ageMax=35&dateStart=2024-01-01&dateEnd=2024-06-30")
		f := lister.lastFilter
		require.NotNil(t, f.AgeMin)
		assert.Equal(t, 18, *f.AgeMin)
		require.NotNil(t, f.AgeMax)
		assert.Equal(t, 35, *f.AgeMax)
		require.NotNil(t, f.DateStart)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.DateStart.UTC())
		require.NotNil(t, f.DateEnd)
	})

	t.Run("malformed values degrade to no constraint", func(t *testing.T) {
		getSales(t, r, "?ageMin=abc&dateStart=13/45/2024&page=xyz")
		f := lister.lastFilter
		assert.Nil(t, f.AgeMin)
		assert.Nil(t, f.DateStart)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("non-positive page becomes 1", func(t *testing.T) {
		getSales(t, r, "?page=0")
		assert.Equal(t, 1, lister.lastFilter.Page)

		getSales(t, r, "?page=-2")
		assert.Equal(t, 1, lister.lastFilter.Page)
	})

	t.Run("search is trimmed", func(t *testing.T) {
		getSales(t, r, "?search=%20john%20&sort=quantity")
		assert.Equal(t, "john", lister.lastFilter.Search)
		assert.Equal(t, "quantity", lister.lastFilter.Sort)
	})
}
