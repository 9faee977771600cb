package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/utils"
)

func init() {
	utils.SetJWTSecret("test-secret")
}

type memCustomerStore struct {
	byEmail map[string]*models.Customer
	nextID  int64
}

func newMemCustomerStore() *memCustomerStore {
	return &memCustomerStore{byEmail: make(map[string]*models.Customer)}
}

func (m *memCustomerStore) Create(_ context.Context, c *models.Customer) error {
	m.nextID++
	c.ID = m.nextID
	stored := *c
	m.byEmail[c.Email] = &stored
	return nil
}

func (m *memCustomerStore) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	if c, ok := m.byEmail[email]; ok {
		out := *c
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func signupReq() *SignupRequest {
	return &SignupRequest{
		Name:           "Jane Roe",
		Email:          "Jane@Example.com",
		Password:       "s3cret-pass",
		PhoneNo:        "9876501234",
		Gender:         models.GenderFemale,
		Age:            31,
		CustomerRegion: "West",
	}
}

func TestSignupHashesPasswordAndIssuesToken(t *testing.T) {
	store := newMemCustomerStore()
	svc := NewAuthService(store)

	customer, token, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.NotEmpty(t, token)

	assert.Equal(t, "jane@example.com", customer.Email, "email stored lowercase")
	assert.NotEqual(t, "s3cret-pass", customer.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("s3cret-pass")))

	assert.True(t, strings.HasPrefix(customer.CustomerID, "CUST-"), "auto-generated id, got %q", customer.CustomerID)
	assert.Equal(t, models.CustomerNew, customer.CustomerType, "customer type defaults to New")

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.UserID)
	assert.Equal(t, customer.CustomerID, claims.CustomerID)
}

func TestSignupKeepsProvidedCustomerID(t *testing.T) {
	store := newMemCustomerStore()
	svc := NewAuthService(store)

	req := signupReq()
	req.CustomerID = "CUST-fixed"
	customer, _, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "CUST-fixed", customer.CustomerID)
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newMemCustomerStore()
	svc := NewAuthService(store)

	_, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), signupReq())
	assert.ErrorIs(t, err, utils.ErrEmailExists)
}

func TestSignupRejectsInvalidGenderAndAge(t *testing.T) {
	svc := NewAuthService(newMemCustomerStore())

	req := signupReq()
	req.Gender = "Unknown"
	_, _, err := svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrInvalidGender)

	req = signupReq()
	req.Age = -1
	_, _, err = svc.Signup(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrInvalidAge)
}

func TestLogin(t *testing.T) {
	store := newMemCustomerStore()
	svc := NewAuthService(store)

	_, _, err := svc.Signup(context.Background(), signupReq())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		customer, token, err := svc.Login(context.Background(), "jane@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "jane@example.com", customer.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, utils.ErrUserNotFound)
	})

	t.Run("email is case-insensitive", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "JANE@example.com", "s3cret-pass")
		assert.NoError(t, err)
	})
}
