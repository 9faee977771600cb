package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/utils"
)

// CustomerStore is the repository surface the auth service depends on.
type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// AuthService handles customer signup and login.
type AuthService struct {
	customers CustomerStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(customers CustomerStore) *AuthService {
	return &AuthService{customers: customers}
}

// SignupRequest carries the fields accepted by signup. CustomerID and
// CustomerType are optional.
type SignupRequest struct {
	CustomerID     string
	Name           string
	Email          string
	Password       string
	PhoneNo        string
	Gender         models.Gender
	Age            int
	CustomerRegion string
	CustomerType   models.CustomerType
}

// Signup creates a customer account with a bcrypt-hashed password and returns
// the account plus a session token.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*models.Customer, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !models.ValidGender(req.Gender) {
		return nil, "", utils.ErrInvalidGender
	}
	if req.Age < 0 {
		return nil, "", utils.ErrInvalidAge
	}

	// Duplicate email check before the insert keeps the client error distinct
	// from infrastructure failures.
	if existing, err := s.customers.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", utils.ErrEmailExists
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		customerID = generateCustomerID()
	}

	customerType := req.CustomerType
	if customerType == "" {
		customerType = models.CustomerNew
	}
	if !models.ValidCustomerType(customerType) {
		customerType = models.CustomerNew
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	customer := &models.Customer{
		CustomerID:     customerID,
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		PasswordHash:   string(hash),
		PhoneNo:        strings.TrimSpace(req.PhoneNo),
		Gender:         req.Gender,
		Age:            req.Age,
		CustomerRegion: strings.TrimSpace(req.CustomerRegion),
		CustomerType:   customerType,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(customer.ID, customer.CustomerID)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("customer_id", customer.CustomerID).Msg("signup successful")
	return customer, token, nil
}

// Login verifies credentials and returns the account plus a session token.
// Unknown email and wrong password map to distinct errors.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Customer, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", utils.ErrUserNotFound
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("password verification failed")
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(customer.ID, customer.CustomerID)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("customer_id", customer.CustomerID).Msg("login successful")
	return customer, token, nil
}

// generateCustomerID builds an externally visible id like CUST-3f2a1b4c from
// the first UUID segment.
func generateCustomerID() string {
	return "CUST-" + strings.SplitN(uuid.New().String(), "-", 2)[0]
}
