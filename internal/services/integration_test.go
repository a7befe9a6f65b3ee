package services_test

import (
	"context"
	"errors"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhidhakal/hready/internal/api"
	"github.com/abhidhakal/hready/internal/domain/leave"
	"github.com/abhidhakal/hready/internal/domain/payroll"
	"github.com/abhidhakal/hready/internal/services"
	"github.com/abhidhakal/hready/internal/session"
	"github.com/abhidhakal/hready/internal/stubserver"
)

var stubOptions = api.Options{
	Timeout:       5 * time.Second,
	HealthTimeout: time.Second,
	RetryWait:     time.Millisecond,
	WarmUpWait:    time.Millisecond,
}

// loginAs builds a fresh client and store and signs in against the stub.
func loginAs(t *testing.T, baseURL, email, password string) (*api.Client, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	client := api.New(baseURL, store, stubOptions)
	auth := services.NewAuth(client, store)
	if _, err := auth.Login(context.Background(), email, password); err != nil {
		t.Fatalf("login as %s: %v", email, err)
	}
	return client, store
}

func TestSalaryLifecycleAgainstStub(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	client, _ := loginAs(t, srv.URL, stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
	salaries := services.NewSalaries(client)

	spec := payroll.Spec{
		BasicSalary:         50000,
		Allowances:          payroll.Allowances{Housing: 5000, Transport: 2000},
		TaxPercentage:       15,
		InsurancePercentage: 5,
		PensionDeduction:    500,
		Currency:            "NPR",
	}
	created := salaries.Create(context.Background(), services.SalaryInput{EmployeeID: "emp-1", Spec: spec})
	if !created.OK {
		t.Fatalf("create salary: %v", created.Err)
	}

	rec := created.Data
	if rec.GrossSalary != 57000 || rec.NetSalary != 45450 {
		t.Fatalf("stored record does not match computed breakdown: %+v", rec)
	}
	if rec.Deductions.Tax != 8550 || rec.Deductions.Insurance != 2500 {
		t.Fatalf("deductions stored as percentages, not amounts: %+v", rec.Deductions)
	}

	fetched := salaries.Get(context.Background(), rec.ID)
	if !fetched.OK {
		t.Fatalf("get salary: %v", fetched.Err)
	}

	// The edit form must recover the rates that were actually charged.
	edit := fetched.Data.EditSpec()
	if math.Abs(edit.TaxPercentage-15) > 1e-9 || math.Abs(edit.InsurancePercentage-5) > 1e-9 {
		t.Fatalf("re-derived percentages drifted: tax=%v insurance=%v",
			edit.TaxPercentage, edit.InsurancePercentage)
	}
}

func TestLeaveLifecycleAgainstStub(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	empClient, _ := loginAs(t, srv.URL, stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)
	adminClient, _ := loginAs(t, srv.URL, stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)

	empLeaves := services.NewLeaves(empClient)
	adminLeaves := services.NewLeaves(adminClient)

	today := time.Now()
	created := empLeaves.Create(context.Background(), leave.Request{
		LeaveType: leave.TypeSick,
		StartDate: today,
		EndDate:   today,
		Reason:    "recovering from fever",
	}, "note.txt", []byte("doctor's note"))
	if !created.OK {
		t.Fatalf("create leave: %v", created.Err)
	}
	if created.Data.Status != leave.StatusPending {
		t.Fatalf("expected Pending, got %q", created.Data.Status)
	}
	if created.Data.Attachment == "" {
		t.Fatal("attachment was dropped")
	}

	decided := adminLeaves.SetStatus(context.Background(), created.Data.ID, services.LeaveDecision{
		Status:       leave.StatusApproved,
		AdminComment: "feel better",
	})
	if !decided.OK {
		t.Fatalf("approve leave: %v", decided.Err)
	}

	// A decided request never transitions again.
	again := adminLeaves.SetStatus(context.Background(), created.Data.ID, services.LeaveDecision{
		Status: leave.StatusRejected,
	})
	if again.OK {
		t.Fatal("expected second decision to be rejected")
	}

	balance := empLeaves.Balance(context.Background())
	if !balance.OK {
		t.Fatalf("balance: %v", balance.Err)
	}
	if balance.Data != leave.MonthlyQuota-1 {
		t.Fatalf("one approved day should leave %v, got %v", leave.MonthlyQuota-1, balance.Data)
	}
}

func TestEmployeeProfileAgainstStub(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	empClient, _ := loginAs(t, srv.URL, stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)
	employees := services.NewEmployees(empClient)

	me := employees.Me(context.Background())
	if !me.OK {
		t.Fatalf("me: %v", me.Err)
	}
	if me.Data.Email != stubserver.SeedEmployeeEmail {
		t.Fatalf("wrong profile: %+v", me.Data)
	}

	updated := employees.UpdateMe(context.Background(), services.EmployeeInput{
		Department: "Engineering",
		Contact:    "9800000000",
	})
	if !updated.OK {
		t.Fatalf("update me: %v", updated.Err)
	}
	if updated.Data.Department != "Engineering" {
		t.Fatalf("department not applied: %+v", updated.Data)
	}

	pic := employees.UploadProfilePicture(context.Background(), "avatar.png", []byte("png bytes"))
	if !pic.OK {
		t.Fatalf("upload picture: %v", pic.Err)
	}
	if pic.Data.ProfilePicture == "" {
		t.Fatal("picture path not recorded")
	}

	adminClient, _ := loginAs(t, srv.URL, stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
	created := services.NewEmployees(adminClient).Create(context.Background(), services.EmployeeInput{
		Name:     "New Hire",
		Email:    "hire@hready.test",
		Password: "hire-password",
	})
	if !created.OK {
		t.Fatalf("create employee: %v", created.Err)
	}
	if created.Data.Role != session.RoleEmployee {
		t.Fatalf("role should default to employee, got %q", created.Data.Role)
	}

	// The fresh account can log in straight away.
	loginAs(t, srv.URL, "hire@hready.test", "hire-password")

	deleted := services.NewEmployees(adminClient).Delete(context.Background(), created.Data.ID)
	if !deleted.OK {
		t.Fatalf("delete employee: %v", deleted.Err)
	}
}

func TestForbiddenEndpointTearsSessionDown(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	client, store := loginAs(t, srv.URL, stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)

	hookFired := false
	client.OnSessionInvalidated(func() { hookFired = true })

	result := services.NewSalaries(client).List(context.Background())
	if result.OK {
		t.Fatal("employee must not list all salaries")
	}
	if !errors.Is(result.Err, api.ErrSessionInvalidated) {
		t.Fatalf("expected session invalidation, got %v", result.Err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("store must be empty after a 403")
	}
	if !hookFired {
		t.Fatal("invalidation hook did not fire")
	}
}

func TestTaskAndAttendanceFlowsAgainstStub(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	adminClient, _ := loginAs(t, srv.URL, stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
	empClient, _ := loginAs(t, srv.URL, stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)

	tasks := services.NewTasks(adminClient)
	created := tasks.Create(context.Background(), services.TaskInput{
		Title:      "Prepare onboarding docs",
		AssignedTo: "emp-1",
	})
	if !created.OK {
		t.Fatalf("create task: %v", created.Err)
	}

	// The assignee sees it and can move its status.
	mine := services.NewTasks(empClient).List(context.Background())
	if !mine.OK || len(mine.Data) != 1 {
		t.Fatalf("assignee should see one task: %+v", mine)
	}
	done := services.NewTasks(empClient).Update(context.Background(), created.Data.ID,
		services.TaskInput{Status: "done"})
	if !done.OK || done.Data.Status != "done" {
		t.Fatalf("status update failed: %+v", done)
	}
	fetched := tasks.Get(context.Background(), created.Data.ID)
	if !fetched.OK || fetched.Data.Status != "done" {
		t.Fatalf("get after update: %+v", fetched)
	}

	att := services.NewAttendance(empClient)
	in := att.CheckIn(context.Background())
	if !in.OK {
		t.Fatalf("check in: %v", in.Err)
	}
	if dup := att.CheckIn(context.Background()); dup.OK {
		t.Fatal("second check-in the same day must fail")
	}
	out := att.CheckOut(context.Background())
	if !out.OK || out.Data.CheckOutTime == "" {
		t.Fatalf("check out: %+v", out)
	}
}

func TestPayrollLifecycleAgainstStub(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	client, _ := loginAs(t, srv.URL, stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
	salaries := services.NewSalaries(client)
	payrolls := services.NewPayrolls(client)

	rec := salaries.Create(context.Background(), services.SalaryInput{
		EmployeeID: "emp-1",
		Spec:       payroll.Spec{BasicSalary: 40000, TaxPercentage: 10, Currency: "NPR"},
	})
	if !rec.OK {
		t.Fatalf("create salary: %v", rec.Err)
	}

	draft := payrolls.Create(context.Background(), services.PayrollInput{EmployeeID: "emp-1", Month: "2025-07"})
	if !draft.OK || draft.Data.Status != services.PayrollStatusDraft {
		t.Fatalf("draft payroll: %+v", draft)
	}
	if draft.Data.Net != rec.Data.NetSalary {
		t.Fatalf("payroll must reuse the salary record's figures: %v vs %v",
			draft.Data.Net, rec.Data.NetSalary)
	}

	// paid before approved is rejected; the draft->approved->paid order holds.
	if early := payrolls.MarkPaid(context.Background(), draft.Data.ID); early.OK {
		t.Fatal("mark-paid before approval must fail")
	}
	approved := payrolls.Approve(context.Background(), draft.Data.ID)
	if !approved.OK || approved.Data.Status != services.PayrollStatusApproved {
		t.Fatalf("approve: %+v", approved)
	}
	paid := payrolls.MarkPaid(context.Background(), draft.Data.ID)
	if !paid.OK || paid.Data.Status != services.PayrollStatusPaid {
		t.Fatalf("mark paid: %+v", paid)
	}

	budget := payrolls.SetBudget(context.Background(), services.PayrollBudget{Budget: 500000})
	if !budget.OK || budget.Data.Budget != 500000 {
		t.Fatalf("set budget: %+v", budget)
	}
	if got := payrolls.Budget(context.Background()); !got.OK || got.Data.Budget != 500000 {
		t.Fatalf("get budget: %+v", got)
	}
}

func TestRepeatedFailuresLockTheAccount(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	store := session.NewMemoryStore()
	auth := services.NewAuth(api.New(srv.URL, store, stubOptions), store)

	var authErr *services.AuthError
	for i := 1; i <= 4; i++ {
		_, err := auth.Login(context.Background(), stubserver.SeedEmployeeEmail, "wrong")
		if !errors.As(err, &authErr) || authErr.Kind != services.AuthErrInvalidCredentials {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i, err)
		}
	}

	_, err := auth.Login(context.Background(), stubserver.SeedEmployeeEmail, "wrong")
	if !errors.As(err, &authErr) || authErr.Kind != services.AuthErrLocked {
		t.Fatalf("expected lockout on the fifth failure, got %v", err)
	}
	if authErr.RetryAfter != 900*time.Second {
		t.Fatalf("expected 900s cooldown, got %v", authErr.RetryAfter)
	}

	// Even the right password is refused while locked.
	_, err = auth.Login(context.Background(), stubserver.SeedEmployeeEmail, stubserver.SeedEmployeePassword)
	if !errors.As(err, &authErr) || authErr.Kind != services.AuthErrLocked {
		t.Fatalf("expected lock to hold, got %v", err)
	}
}

func TestRapidLoginsAreRateLimited(t *testing.T) {
	srv := httptest.NewServer(stubserver.New("stub-secret").Handler())
	defer srv.Close()

	store := session.NewMemoryStore()
	auth := services.NewAuth(api.New(srv.URL, store, stubOptions), store)

	// Correct credentials, so only the attempt rate can refuse us.
	for i := 0; i < 10; i++ {
		if _, err := auth.Login(context.Background(), stubserver.SeedAdminEmail, stubserver.SeedAdminPassword); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}

	_, err := auth.Login(context.Background(), stubserver.SeedAdminEmail, stubserver.SeedAdminPassword)
	var authErr *services.AuthError
	if !errors.As(err, &authErr) || authErr.Kind != services.AuthErrRateLimited {
		t.Fatalf("expected rate limiting on the 11th attempt, got %v", err)
	}
	if authErr.RetryAfter <= 0 {
		t.Fatalf("expected a positive cooldown, got %v", authErr.RetryAfter)
	}
}
