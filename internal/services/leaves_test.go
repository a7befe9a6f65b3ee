package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/domain/leave"
	"github.com/abhidhakal/hready/internal/session"
)

func TestBalanceComputesFromHistory(t *testing.T) {
	history := []leave.Request{
		{
			EmployeeID: "emp-1",
			LeaveType:  leave.TypeCasual,
			StartDate:  time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC),
			Status:     leave.StatusApproved,
		},
		{
			EmployeeID: "emp-1",
			LeaveType:  leave.TypeSick,
			StartDate:  time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
			HalfDay:    true,
			Status:     leave.StatusApproved,
		},
		// Previous month, must not count.
		{
			EmployeeID: "emp-1",
			LeaveType:  leave.TypeCasual,
			StartDate:  time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, time.June, 23, 0, 0, 0, 0, time.UTC),
			Status:     leave.StatusApproved,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/leaves/my", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(history)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	restore := timeNow
	timeNow = func() time.Time {
		return time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)
	}
	defer func() { timeNow = restore }()

	store := session.NewMemoryStore()
	leaves := NewLeaves(api.New(srv.URL, store, fastOptions))

	result := leaves.Balance(context.Background())
	if !result.OK {
		t.Fatalf("balance failed: %v", result.Err)
	}
	// 4 - (2 full days + 0.5 half day) = 1.5; June's leave is ignored.
	if result.Data != 1.5 {
		t.Fatalf("expected 1.5 remaining, got %v", result.Data)
	}
}

func TestCreateRejectsInvalidRequestLocally(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/leaves", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	leaves := NewLeaves(api.New(srv.URL, session.NewMemoryStore(), fastOptions))

	bad := leave.Request{
		LeaveType: leave.TypeCasual,
		StartDate: time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		Reason:    "a sufficiently long reason",
	}
	result := leaves.Create(context.Background(), bad, "", nil)
	if result.OK || result.Err == nil {
		t.Fatal("expected local validation failure")
	}
	if called {
		t.Fatal("invalid request must never reach the server")
	}
}
