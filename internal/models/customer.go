package models

import "time"

type Gender string
type CustomerType string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

const (
	CustomerNew       CustomerType = "New"
	CustomerReturning CustomerType = "Returning"
	CustomerLoyal     CustomerType = "Loyal"
)

// Customer is an authentication account, separate from the customer facts
// embedded in sale rows. The password is stored only as a bcrypt hash.
type Customer struct {
	ID             int64        `db:"id" json:"id"`
	CustomerID     string       `db:"customer_id" json:"customerId"`
	Name           string       `db:"name" json:"name"`
	Email          string       `db:"email" json:"email"`
	PasswordHash   string       `db:"password_hash" json:"-"`
	PhoneNo        string       `db:"phone_no" json:"phoneNo"`
	Gender         Gender       `db:"gender" json:"gender"`
	Age            int          `db:"age" json:"age"`
	CustomerRegion string       `db:"customer_region" json:"customerRegion"`
	CustomerType   CustomerType `db:"customer_type" json:"customerType"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`
}

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// ValidCustomerType reports whether t is one of the accepted customer types.
func ValidCustomerType(t CustomerType) bool {
	return t == CustomerNew || t == CustomerReturning || t == CustomerLoyal
}
