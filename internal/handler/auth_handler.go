package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/truestate/retail-sales-api/internal/middleware"
	"github.com/truestate/retail-sales-api/internal/models"
	"github.com/truestate/retail-sales-api/internal/service"
	"github.com/truestate/retail-sales-api/internal/utils"
)

// AuthHandler handles customer signup and login endpoints.
type AuthHandler struct {
	authService *service.AuthService
	rateLimiter *middleware.FailedLoginLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, rateLimiter *middleware.FailedLoginLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

type signupRequest struct {
	CustomerID     string `json:"customerId"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	PhoneNo        string `json:"phoneNo" binding:"required"`
	Gender         string `json:"gender" binding:"required"`
	Age            *int   `json:"age" binding:"required"`
	CustomerRegion string `json:"customerRegion" binding:"required"`
	CustomerType   string `json:"customerType"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Please fill all required fields")
		return
	}

	customer, token, err := h.authService.Signup(c.Request.Context(), &service.SignupRequest{
		CustomerID:     req.CustomerID,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		PhoneNo:        req.PhoneNo,
		Gender:         models.Gender(req.Gender),
		Age:            *req.Age,
		CustomerRegion: req.CustomerRegion,
		CustomerType:   models.CustomerType(req.CustomerType),
	})
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmailExists):
			utils.Error(c, 400, "Email already exists")
		case errors.Is(err, utils.ErrInvalidGender):
			utils.Error(c, 400, "Gender must be Male, Female or Other")
		case errors.Is(err, utils.ErrInvalidAge):
			utils.Error(c, 400, "Age must be 0 or greater")
		default:
			utils.Error(c, 500, "Signup failed")
		}
		return
	}

	c.JSON(201, utils.AuthResponse{
		Message: "Signup successful",
		User: utils.AuthUser{
			ID:         customer.ID,
			CustomerID: customer.CustomerID,
			Name:       customer.Name,
			Email:      customer.Email,
		},
		Token: token,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login. Failed attempts are rate limited per
// client IP.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Please enter email and password")
		return
	}

	ip := c.ClientIP()
	if h.rateLimiter != nil && h.rateLimiter.Blocked(ip) {
		utils.Error(c, 429, "Too many failed login attempts, try again later")
		return
	}

	customer, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.rateLimiter != nil {
			h.rateLimiter.Record(ip)
		}
		switch {
		case errors.Is(err, utils.ErrUserNotFound):
			utils.Error(c, 404, "User does not exist")
		case errors.Is(err, utils.ErrInvalidCredentials):
			utils.Error(c, 401, "Invalid credentials")
		default:
			utils.Error(c, 500, "Login failed")
		}
		return
	}

	c.JSON(200, utils.AuthResponse{
		Message: "Login successful",
		User: utils.AuthUser{
			ID:         customer.ID,
			CustomerID: customer.CustomerID,
			Name:       customer.Name,
			Email:      customer.Email,
		},
		Token: token,
	})
}
