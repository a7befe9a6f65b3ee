package leave

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func approved(start, end time.Time, halfDay bool) Request {
	return Request{
		EmployeeID: "e1",
		LeaveType:  TypeCasual,
		StartDate:  start,
		EndDate:    end,
		HalfDay:    halfDay,
		Reason:     "a sufficiently long reason",
		Status:     StatusApproved,
	}
}

func TestRemainingFullDaySpan(t *testing.T) {
	asOf := date(2025, time.July, 15)
	requests := []Request{approved(date(2025, time.July, 3), date(2025, time.July, 5), false)}
	if got := Remaining(requests, asOf); got != 1 {
		t.Fatalf("3 inclusive days against quota 4: expected 1, got %v", got)
	}
}

func TestRemainingHalfDays(t *testing.T) {
	asOf := date(2025, time.July, 15)
	requests := []Request{
		approved(date(2025, time.July, 2), date(2025, time.July, 2), true),
		approved(date(2025, time.July, 9), date(2025, time.July, 9), true),
	}
	if got := Remaining(requests, asOf); got != 3 {
		t.Fatalf("two half days: expected 3, got %v", got)
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	asOf := date(2025, time.July, 15)
	requests := []Request{approved(date(2025, time.July, 7), date(2025, time.July, 12), false)}
	if got := Remaining(requests, asOf); got != 0 {
		t.Fatalf("6 days against quota 4: expected 0, got %v", got)
	}
}

func TestRemainingIgnoresOtherMonths(t *testing.T) {
	asOf := date(2025, time.July, 15)
	requests := []Request{
		// Starts in June, spills into July: belongs wholly to June.
		approved(date(2025, time.June, 29), date(2025, time.July, 2), false),
		// Same month a year earlier.
		approved(date(2024, time.July, 3), date(2024, time.July, 4), false),
	}
	if got := Remaining(requests, asOf); got != 4 {
		t.Fatalf("other-month leave must not count: expected 4, got %v", got)
	}
}

func TestRemainingIgnoresUndecidedAndRejected(t *testing.T) {
	asOf := date(2025, time.July, 15)
	pending := approved(date(2025, time.July, 3), date(2025, time.July, 4), false)
	pending.Status = StatusPending
	rejected := approved(date(2025, time.July, 8), date(2025, time.July, 9), false)
	rejected.Status = StatusRejected

	if got := Remaining([]Request{pending, rejected}, asOf); got != 4 {
		t.Fatalf("only approved requests count: expected 4, got %v", got)
	}
}

func TestDaysBetweenIsCalendarBased(t *testing.T) {
	if got := DaysBetween(date(2025, time.July, 3), date(2025, time.July, 5)); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := DaysBetween(date(2025, time.July, 3), date(2025, time.July, 3)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}

	// Across a DST spring-forward (US Eastern, 2025-03-09) the elapsed
	// time is 23h but the calendar distance is still one day.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	start := time.Date(2025, time.March, 9, 0, 0, 0, 0, loc)
	end := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	if got := DaysBetween(start, end); got != 1 {
		t.Fatalf("DST day must count as 1, got %d", got)
	}
}

func TestHalfDayCountsHalfRegardlessOfSpan(t *testing.T) {
	r := approved(date(2025, time.July, 3), date(2025, time.July, 3), true)
	if got := Days(r); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Request{
		LeaveType: TypeSick,
		StartDate: date(2025, time.July, 3),
		EndDate:   date(2025, time.July, 4),
		Reason:    "recovering from fever",
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	badOrder := valid
	badOrder.EndDate = date(2025, time.July, 1)
	if err := Validate(badOrder); err == nil {
		t.Fatal("expected end-before-start to fail")
	}

	shortReason := valid
	shortReason.Reason = "sick"
	if err := Validate(shortReason); err == nil {
		t.Fatal("expected short reason to fail")
	}

	badType := valid
	badType.LeaveType = "Vacation"
	if err := Validate(badType); err == nil {
		t.Fatal("expected unknown type to fail")
	}

	spanHalf := valid
	spanHalf.HalfDay = true
	if err := Validate(spanHalf); err == nil {
		t.Fatal("expected multi-day half-day to fail")
	}
}
