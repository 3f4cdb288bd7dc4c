package http

import (
	"net/http"

	"microloan/auth"
	"microloan/domain"
	"microloan/service"
)

// Handlers bundles everything NewMux needs to assemble the route table.
type Handlers struct {
	Quotes  *service.QuoteService
	Users   *service.UserService
	Loans   *service.LoanService
	Admin   *service.AdminService
	Tokens  *auth.Tokens
	Limiter *RateLimiter
}

// NewMux wires every route. Public routes are rate limited; everything
// behind a session requires a bearer token, and /admin/* (past login)
// additionally requires the ADMIN role.
func NewMux(h Handlers) *http.ServeMux {
	quote := NewQuoteHandler(h.Quotes)
	user := NewUserHandler(h.Users)
	loan := NewLoanHandler(h.Loans)
	admin := NewAdminHandler(h.Admin)

	limited := h.Limiter.Middleware
	authed := func(next http.HandlerFunc) http.Handler {
		return AuthMiddleware(h.Tokens, "", next)
	}
	adminOnly := func(next http.HandlerFunc) http.Handler {
		return AuthMiddleware(h.Tokens, domain.RoleAdmin, next)
	}

	mux := http.NewServeMux()

	// Public calculator endpoints.
	mux.Handle("POST /loan/quote", limited(http.HandlerFunc(quote.Quote)))
	mux.Handle("POST /loan/quote/schedule", limited(http.HandlerFunc(quote.Schedule)))
	mux.Handle("POST /loan/recommend-term", limited(http.HandlerFunc(quote.RecommendTerm)))
	mux.Handle("GET /loan/rate", limited(http.HandlerFunc(quote.Rate)))

	// Accounts.
	mux.Handle("POST /user/register", limited(http.HandlerFunc(user.Register)))
	mux.HandleFunc("POST /user/login", user.Login)
	mux.Handle("POST /user/refresh", authed(user.Refresh))
	mux.Handle("GET /user/profile/{id}", authed(user.Profile))
	mux.Handle("GET /user/cibil/{id}", authed(user.Cibil))

	// Loans.
	mux.Handle("POST /loan/apply", limited(AuthMiddleware(h.Tokens, domain.RoleUser, http.HandlerFunc(loan.Apply))))
	mux.Handle("GET /loan/status/{id}", authed(loan.Status))
	mux.Handle("GET /loan/my", authed(loan.MyLoans))
	mux.Handle("GET /loan/{id}/emis", authed(loan.Installments))

	// Back-office.
	mux.HandleFunc("POST /admin/register", admin.Register)
	mux.HandleFunc("POST /admin/login", admin.Login)
	mux.Handle("GET /admin/users", adminOnly(admin.Users))
	mux.Handle("GET /admin/loans", adminOnly(admin.Loans))
	mux.Handle("PUT /admin/loan/status/{id}", adminOnly(admin.UpdateLoanStatus))
	mux.Handle("PUT /admin/cibil/{id}", adminOnly(admin.UpdateCibil))
	mux.Handle("DELETE /admin/user/{id}", adminOnly(admin.DeleteUser))
	mux.Handle("GET /admin/stats", adminOnly(admin.Stats))
	mux.Handle("PUT /admin/emi/{id}/paid", adminOnly(admin.PayInstallment))

	return mux
}
