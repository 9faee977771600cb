package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/truestate/retail-sales-api/internal/models"
)

// CustomerRepository provides data access methods for the customers table.
type CustomerRepository struct {
	db *sqlx.DB
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer account.
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	const q = `INSERT INTO customers (customer_id, name, email, password_hash, phone_no, gender, age, customer_region, customer_type)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, q,
		c.CustomerID,
		c.Name,
		c.Email,
		c.PasswordHash,
		c.PhoneNo,
		c.Gender,
		c.Age,
		c.CustomerRegion,
		c.CustomerType,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByEmail finds a customer account by email. Returns sql.ErrNoRows when no
// account exists.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	const q = `SELECT id, customer_id, name, email, password_hash, phone_no, gender, age, customer_region, customer_type, created_at, updated_at
              FROM customers WHERE email = $1 LIMIT 1`

	var c models.Customer
	if err := r.db.GetContext(ctx, &c, q, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &c, nil
}
