package models

import "time"

type OrderStatus string
type PaymentMethod string
type DeliveryType string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCard       PaymentMethod = "Card"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "NetBanking"
	PaymentWallet     PaymentMethod = "Wallet"
)

const (
	DeliveryPickup   DeliveryType = "Pickup"
	DeliveryDelivery DeliveryType = "Delivery"
)

// Operation describes an order's operational metadata independent of the sale
// line items. Kept for schema completeness; the dashboard core does not read
// or write operations.
type Operation struct {
	ID            int64         `db:"id" json:"id"`
	Date          time.Time     `db:"op_date" json:"date"`
	OrderStatus   OrderStatus   `db:"order_status" json:"orderStatus"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	DeliveryType  DeliveryType  `db:"delivery_type" json:"deliveryType"`
	StoreID       string        `db:"store_id" json:"storeId"`
	StoreLocation string        `db:"store_location" json:"storeLocation"`
	SalespersonID string        `db:"salesperson_id" json:"salespersonId"`
	EmployeeName  string        `db:"employee_name" json:"employeeName"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updatedAt"`
}
