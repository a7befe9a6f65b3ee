// Package stubserver is an in-process implementation of the HReady REST
// contract. Integration tests run the real client against it, and the
// `hready stub` command serves it for local development. State lives in
// memory; restarting it starts fresh.
package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhidhakal/hready/internal/domain/leave"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
)

const (
	tokenTTL        = time.Hour
	maxLoginFails   = 5
	lockoutDuration = 900 * time.Second

	// Per-email login rate limit, counted across successes and failures.
	rateLimitWindow   = time.Minute
	rateLimitAttempts = 10
)

type account struct {
	services.Employee
	PasswordHash string
}

type Server struct {
	secret []byte

	mu            sync.Mutex
	accounts      map[string]*account // keyed by email
	salaries      map[string]*services.SalaryRecord
	leaves        map[string]*leave.Request
	tasks         map[string]*services.Task
	announcements map[string]*services.Announcement
	attendance    map[string]*services.AttendanceRecord
	payrolls      map[string]*services.Payroll
	banks         map[string]*services.BankAccount
	budget        services.PayrollBudget

	loginFails    map[string]int
	lockedUntil   map[string]time.Time
	loginAttempts map[string][]time.Time
}

func New(secret string) *Server {
	s := &Server{
		secret:        []byte(secret),
		accounts:      map[string]*account{},
		salaries:      map[string]*services.SalaryRecord{},
		leaves:        map[string]*leave.Request{},
		tasks:         map[string]*services.Task{},
		announcements: map[string]*services.Announcement{},
		attendance:    map[string]*services.AttendanceRecord{},
		payrolls:      map[string]*services.Payroll{},
		banks:         map[string]*services.BankAccount{},
		budget:        services.PayrollBudget{Budget: 1000000, Currency: "NPR"},
		loginFails:    map[string]int{},
		lockedUntil:   map[string]time.Time{},
		loginAttempts: map[string][]time.Time{},
	}
	s.seed()
	return s
}

// Seeded credentials for tests and local development.
const (
	SeedAdminEmail       = "admin@hready.test"
	SeedAdminPassword    = "admin-password"
	SeedEmployeeEmail    = "employee@hready.test"
	SeedEmployeePassword = "employee-password"
)

func (s *Server) seed() {
	s.addAccount("emp-admin", "Site Admin", SeedAdminEmail, SeedAdminPassword, session.RoleAdmin)
	s.addAccount("emp-1", "Asha Karki", SeedEmployeeEmail, SeedEmployeePassword, session.RoleEmployee)
}

func (s *Server) addAccount(id, name, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.accounts[email] = &account{
		Employee: services.Employee{
			ID:     id,
			Name:   name,
			Email:  email,
			Role:   role,
			Status: "active",
		},
		PasswordHash: string(hash),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.auth)

		r.Post("/auth/logout", s.handleLogout)

		r.Get("/employees/me", s.handleMe)
		r.Put("/employees/me", s.handleUpdateMe)
		r.Put("/employees/me/picture", s.handleProfilePicture)
		r.Get("/employees", s.admin(s.handleListEmployees))
		r.Post("/employees", s.admin(s.handleCreateEmployee))
		r.Get("/employees/{id}", s.admin(s.handleGetEmployee))
		r.Put("/employees/{id}", s.admin(s.handleUpdateEmployee))
		r.Delete("/employees/{id}", s.admin(s.handleDeleteEmployee))

		r.Get("/salaries", s.admin(s.handleListSalaries))
		r.Post("/salaries", s.admin(s.handleCreateSalary))
		r.Get("/salaries/{id}", s.handleGetSalary)
		r.Put("/salaries/{id}", s.admin(s.handleUpdateSalary))
		r.Delete("/salaries/{id}", s.admin(s.handleDeleteSalary))

		r.Get("/leaves/my", s.handleMyLeaves)
		r.Get("/leaves/all", s.admin(s.handleAllLeaves))
		r.Post("/leaves", s.handleCreateLeave)
		r.Put("/leaves/{id}/status", s.admin(s.handleLeaveStatus))

		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.admin(s.handleCreateTask))
		r.Get("/tasks/{id}", s.handleGetTask)
		r.Put("/tasks/{id}", s.handleUpdateTask)
		r.Delete("/tasks/{id}", s.admin(s.handleDeleteTask))

		r.Get("/announcements", s.handleListAnnouncements)
		r.Post("/announcements", s.admin(s.handleCreateAnnouncement))
		r.Put("/announcements/{id}", s.admin(s.handleUpdateAnnouncement))
		r.Delete("/announcements/{id}", s.admin(s.handleDeleteAnnouncement))

		r.Get("/attendance/me", s.handleMyAttendance)
		r.Get("/attendance", s.admin(s.handleAllAttendance))
		r.Post("/attendance/checkin", s.handleCheckIn)
		r.Put("/attendance/checkout", s.handleCheckOut)

		r.Get("/payrolls", s.admin(s.handleListPayrolls))
		r.Post("/payrolls", s.admin(s.handleCreatePayroll))
		r.Put("/payrolls/{id}/approve", s.admin(s.handleApprovePayroll))
		r.Put("/payrolls/{id}/mark-paid", s.admin(s.handleMarkPaidPayroll))
		r.Get("/payroll-settings/payroll-budget", s.admin(s.handleGetBudget))
		r.Put("/payroll-settings/payroll-budget", s.admin(s.handleSetBudget))

		r.Get("/bank-accounts", s.admin(s.handleListBanks))
		r.Get("/bank-accounts/me", s.handleMyBank)
		r.Post("/bank-accounts", s.handleCreateBank)
		r.Put("/bank-accounts/{id}", s.handleUpdateBank)
		r.Delete("/bank-accounts/{id}", s.handleDeleteBank)
	})

	return r
}

type ctxKey int

const ctxKeyClaims ctxKey = 0

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := &session.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (any, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claimsFrom(r).Role != session.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

func (s *Server) issueToken(acct *account) (string, error) {
	claims := session.Claims{
		UserID: acct.ID,
		Role:   acct.Role,
		Name:   acct.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("stub write json failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
