package models

import (
	"time"

	"github.com/lib/pq"
)

// Sale is one denormalized purchase event. Customer, product and fulfillment
// facts are embedded snapshots; there is no foreign key to the customers table.
// Most fields are nullable because CSV source data is incomplete.
type Sale struct {
	ID int64 `db:"id" json:"-"`

	CustomerID     *string `db:"customer_id" json:"customerId"`
	CustomerName   *string `db:"customer_name" json:"customerName"`
	PhoneNumber    *string `db:"phone_number" json:"phoneNumber"`
	Gender         *string `db:"gender" json:"gender"`
	Age            *int    `db:"age" json:"age"`
	CustomerRegion *string `db:"customer_region" json:"customerRegion"`
	CustomerType   *string `db:"customer_type" json:"customerType"`

	ProductID       *string        `db:"product_id" json:"productId"`
	ProductName     *string        `db:"product_name" json:"productName"`
	Brand           *string        `db:"brand" json:"brand"`
	ProductCategory *string        `db:"product_category" json:"productCategory"`
	Tags            pq.StringArray `db:"tags" json:"tags"`

	Quantity           *int     `db:"quantity" json:"quantity"`
	PricePerUnit       *float64 `db:"price_per_unit" json:"pricePerUnit"`
	DiscountPercentage *float64 `db:"discount_percentage" json:"discountPercentage"`
	TotalAmount        *float64 `db:"total_amount" json:"totalAmount"`
	FinalAmount        *float64 `db:"final_amount" json:"finalAmount"`

	Date          *time.Time `db:"sale_date" json:"date"`
	PaymentMethod *string    `db:"payment_method" json:"paymentMethod"`
	OrderStatus   *string    `db:"order_status" json:"orderStatus"`
	DeliveryType  *string    `db:"delivery_type" json:"deliveryType"`
	StoreID       *string    `db:"store_id" json:"storeId"`
	StoreLocation *string    `db:"store_location" json:"storeLocation"`

	SalespersonID *string `db:"salesperson_id" json:"salespersonId"`
	EmployeeName  *string `db:"employee_name" json:"employeeName"`
}

// HasUniqueKey reports whether the sparse uniqueness triple is fully present.
// Rows missing any part of the triple are exempt from the unique index.
func (s *Sale) HasUniqueKey() bool {
	return s.CustomerID != nil && s.ProductID != nil && s.Date != nil
}
