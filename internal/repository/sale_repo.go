package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/truestate/retail-sales-api/internal/models"
)

// saleColumns lists every sales column except id, in the insert order used by
// BulkInsert.
const saleColumns = `customer_id, customer_name, phone_number, gender, age, customer_region, customer_type,
	product_id, product_name, brand, product_category, tags,
	quantity, price_per_unit, discount_percentage, total_amount, final_amount,
	sale_date, payment_method, order_status, delivery_type, store_id, store_location,
	salesperson_id, employee_name`

// SaleRepository handles data access for sale records.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// SaleList is one page of matching sales plus the total match count.
type SaleList struct {
	Data       []models.Sale `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// List returns the page of sales selected by the filter: one count round trip
// plus one fetch round trip. An empty match is a valid result, not an error.
func (r *SaleRepository) List(ctx context.Context, filter *SaleFilter) (*SaleList, error) {
	where, args, argIdx := filter.whereClause()

	countQ := "SELECT COUNT(*) FROM sales " + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQ, args...); err != nil {
		return nil, fmt.Errorf("count sales: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * SalesPageSize

	selectQ := fmt.Sprintf(
		"SELECT id, %s FROM sales %s ORDER BY %s LIMIT $%d OFFSET $%d",
		saleColumns, where, filter.orderBy(), argIdx, argIdx+1,
	)
	args = append(args, SalesPageSize, offset)

	rows, err := r.db.QueryxContext(ctx, selectQ, args...)
	if err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer rows.Close()

	// Keep data non-nil so an empty page marshals as [] rather than null.
	data := make([]models.Sale, 0, SalesPageSize)
	for rows.Next() {
		var s models.Sale
		if err := rows.StructScan(&s); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		data = append(data, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &SaleList{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: pageCount(total),
	}, nil
}

// pageCount is ceil(total / SalesPageSize).
func pageCount(total int) int {
	return (total + SalesPageSize - 1) / SalesPageSize
}

// RecordError describes one failed record within a bulk insert.
type RecordError struct {
	Index int
	Err   error
}

// BulkResult is the per-record outcome of an unordered bulk insert.
type BulkResult struct {
	Inserted int
	Failed   []RecordError
}

// BulkInsert inserts sales with one prepared statement execution per record
// and no surrounding transaction, so a failing record (duplicate key, check
// violation) never blocks the rest of the batch. The per-record outcome is
// returned; only a failure to prepare the statement is an error.
func (r *SaleRepository) BulkInsert(ctx context.Context, sales []models.Sale) (*BulkResult, error) {
	q := fmt.Sprintf(`INSERT INTO sales (%s) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12,
		$13, $14, $15, $16, $17,
		$18, $19, $20, $21, $22, $23,
		$24, $25)`, saleColumns)

	stmt, err := r.db.PreparexContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	res := &BulkResult{}
	for i := range sales {
		s := &sales[i]
		_, err := stmt.ExecContext(ctx,
			s.CustomerID, s.CustomerName, s.PhoneNumber, s.Gender, s.Age, s.CustomerRegion, s.CustomerType,
			s.ProductID, s.ProductName, s.Brand, s.ProductCategory, s.Tags,
			s.Quantity, s.PricePerUnit, s.DiscountPercentage, s.TotalAmount, s.FinalAmount,
			s.Date, s.PaymentMethod, s.OrderStatus, s.DeliveryType, s.StoreID, s.StoreLocation,
			s.SalespersonID, s.EmployeeName,
		)
		if err != nil {
			res.Failed = append(res.Failed, RecordError{Index: i, Err: err})
			continue
		}
		res.Inserted++
	}
	return res, nil
}

// IsDuplicate reports whether err is a unique-constraint violation, i.e. the
// record hit the sparse (customer_id, product_id, sale_date) index.
func IsDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
