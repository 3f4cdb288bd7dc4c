package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	Aadhar     string    `json:"aadhar"`
	PAN        string    `json:"pan"`
	CibilScore int       `json:"cibilScore"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Registration is the register-form payload before hashing and defaulting.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Aadhar   string `json:"aadhar"`
	PAN      string `json:"pan"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned by a successful login: the bearer token plus the
// authenticated user so callers do not need a second profile round trip.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
