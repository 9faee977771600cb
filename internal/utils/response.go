package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON error shape returned by every endpoint.
type ErrorBody struct {
	Message string `json:"message"`
}

// Error writes a JSON error body with the given status code.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Message: message})
}

// AuthUser is the public slice of a customer account returned by auth endpoints.
type AuthUser struct {
	ID         int64  `json:"id"`
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// AuthResponse is the body returned by signup and login.
type AuthResponse struct {
	Message string   `json:"message"`
	User    AuthUser `json:"user"`
	Token   string   `json:"token"`
}
