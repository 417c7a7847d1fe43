package booking

import (
	"context"
	"errors"
	"testing"

	bondRepo "eventbook/database/repository/bond"
	catalogRepo "eventbook/database/repository/catalog"
	offerRepo "eventbook/database/repository/offer"
	"eventbook/models"
	"eventbook/services/payment"
	"eventbook/services/timeline"
)

var ctx = context.Background()

func TestClassifyRangeUsesStoredEvents(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = []models.EventOccurrence{
		{ID: "e1", Date: "2024-01-10", CategoryName: "Wedding"},
		{ID: "e2", Date: "2024-01-10", CategoryName: "Birthday"},
		{ID: "e3", Date: "2024-01-11", CategoryName: "Gala", IsExclusiveCategory: true},
	}

	got, err := env.svc.ClassifyRange(ctx, models.NewDate(2024, 1, 9), models.NewDate(2024, 1, 12))
	if err != nil {
		t.Fatalf("ClassifyRange: %v", err)
	}
	if day, _ := got.Day(models.NewDate(2024, 1, 10)); day.SeverityTier != models.SeverityMedium {
		t.Errorf("2024-01-10 tier = %v, want MEDIUM", day.SeverityTier)
	}
	if got.CanSelect(models.NewDate(2024, 1, 11)) {
		t.Error("exclusive day should not be selectable for booking")
	}
	if !got.CanSelect(models.NewDate(2024, 1, 12)) {
		t.Error("free day after the lead window should be selectable")
	}
}

func TestClassifyRangeErrors(t *testing.T) {
	cases := []struct {
		name       string
		start, end models.Date
		wantCalls  int
	}{
		{"inverted range", models.NewDate(2024, 2, 1), models.NewDate(2024, 1, 1), 0},
		{"oversized range", models.NewDate(2024, 1, 1), models.NewDate(2030, 1, 1), 0},
		{"missing start", models.Date{}, models.NewDate(2024, 1, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			if _, err := env.svc.ClassifyRange(ctx, tc.start, tc.end); !models.IsValidationError(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
			if env.events.calls != tc.wantCalls {
				t.Errorf("event store queried %d times, want %d", env.events.calls, tc.wantCalls)
			}
		})
	}

	env := newTestEnv(t)
	env.events.err = errBackend
	if _, err := env.svc.ClassifyRange(ctx, models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 2)); !errors.Is(err, errBackend) {
		t.Errorf("err = %v, want wrapped backend error", err)
	}
}

func TestQuoteOffers(t *testing.T) {
	env := newTestEnv(t)
	q, err := env.svc.QuoteOffers(ctx, []string{"venue-1", "pkg-1"}, 120)
	if err != nil {
		t.Fatalf("QuoteOffers: %v", err)
	}
	// venue: 50000 + 20*300, package: 20000 with no extras
	if q.Total != 76000 {
		t.Errorf("total = %d, want 76000", q.Total)
	}
	if len(q.Lines) != 2 || q.Lines[0].ItemID != "venue-1" {
		t.Errorf("lines = %+v", q.Lines)
	}

	if _, err := env.svc.QuoteOffers(ctx, []string{"missing"}, 10); !errors.Is(err, offerRepo.ErrOfferNotFound) {
		t.Errorf("err = %v, want ErrOfferNotFound", err)
	}
	if _, err := env.svc.QuoteOffers(ctx, []string{"venue-1"}, -1); !models.IsValidationError(err) {
		t.Errorf("negative guests: err = %v, want ValidationError", err)
	}
	if _, err := env.svc.QuoteOffers(ctx, nil, 10); !models.IsValidationError(err) {
		t.Errorf("no offers: err = %v, want ValidationError", err)
	}
}

func TestStartDownPaymentSchedulesReminder(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.svc.StartDownPayment(ctx, DownPaymentRequest{
		BookingRef: "bk-1",
		UserID:     "u1",
		Total:      1001,
		Policy:     models.HalfPolicy(),
		EventDate:  models.NewDate(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("StartDownPayment: %v", err)
	}
	if res.Split.DownPayment+res.Split.Balance != 1001 {
		t.Errorf("split does not conserve total: %+v", res.Split)
	}
	if !res.ReminderScheduled || len(env.reminders.payloads) != 1 {
		t.Fatalf("reminder not scheduled: %+v", res)
	}
	p := env.reminders.payloads[0]
	if want := models.NewDate(2024, 2, 16); p.DueDate != want {
		t.Errorf("due date = %s, want %s", p.DueDate, want)
	}
	if p.Balance != res.Split.Balance || p.UserID != "u1" {
		t.Errorf("payload = %+v", p)
	}
}

func TestStartDownPaymentDueDateNotInPast(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.svc.StartDownPayment(ctx, DownPaymentRequest{
		BookingRef: "bk-2",
		Total:      500,
		Policy:     models.CustomPolicy(30),
		EventDate:  models.NewDate(2024, 1, 10),
	})
	if err != nil {
		t.Fatalf("StartDownPayment: %v", err)
	}
	if got := env.reminders.payloads[0].DueDate; got != models.NewDate(2024, 1, 1) {
		t.Errorf("due date = %s, want today", got)
	}
	if *res.BalanceDueDate != models.NewDate(2024, 1, 1) {
		t.Errorf("result due date = %s", res.BalanceDueDate)
	}
}

func TestStartDownPaymentFullPolicySkipsReminder(t *testing.T) {
	env := newTestEnv(t)
	res, err := env.svc.StartDownPayment(ctx, DownPaymentRequest{
		BookingRef: "bk-3",
		Total:      800,
		Policy:     models.FullPolicy(),
		EventDate:  models.NewDate(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("StartDownPayment: %v", err)
	}
	if res.ReminderScheduled || len(env.reminders.payloads) != 0 {
		t.Error("no reminder expected when nothing remains due")
	}
}

func TestStartDownPaymentReminderFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	env.reminders.err = errBackend
	res, err := env.svc.StartDownPayment(ctx, DownPaymentRequest{
		BookingRef: "bk-4",
		Total:      1000,
		Policy:     models.HalfPolicy(),
		EventDate:  models.NewDate(2024, 3, 1),
	})
	if err != nil {
		t.Fatalf("StartDownPayment: %v", err)
	}
	if res.ReminderScheduled {
		t.Error("ReminderScheduled should be false when queueing fails")
	}
	if res.Intent == nil {
		t.Error("intent should still be returned")
	}
}

func TestStartDownPaymentValidatesBeforeGateway(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.StartDownPayment(ctx, DownPaymentRequest{
		BookingRef: "bk-5",
		Total:      1000,
		Policy:     models.CustomPolicy(150),
	})
	if !models.IsValidationError(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if env.gateway.calls != 0 {
		t.Error("gateway should not be called for an invalid split")
	}
}

func TestBondLifecycleThroughService(t *testing.T) {
	env := newTestEnv(t)
	bond, err := env.svc.CreateBond(ctx, "bk-1", 5000)
	if err != nil {
		t.Fatalf("CreateBond: %v", err)
	}
	if bond.Status != models.BondPending {
		t.Fatalf("status = %s, want PENDING", bond.Status)
	}

	if _, err := env.svc.TransitionBond(ctx, bond.ID, models.BondRefunded, nil); !errors.Is(err, payment.ErrIllegalBondTransition) {
		t.Errorf("refund before payment: err = %v", err)
	}
	if _, err := env.svc.TransitionBond(ctx, bond.ID, models.BondPaid, nil); err != nil {
		t.Fatalf("pay: %v", err)
	}
	claimed, err := env.svc.TransitionBond(ctx, bond.ID, models.BondClaimed,
		&payment.Claim{DamageAmount: 1200, DamageDescription: "broken chairs"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.DamageAmount != 1200 {
		t.Errorf("damage = %d", claimed.DamageAmount)
	}

	stored, _ := env.svc.GetBond(ctx, bond.ID)
	if stored.Status != models.BondClaimed {
		t.Errorf("stored status = %s", stored.Status)
	}
	if _, err := env.svc.TransitionBond(ctx, bond.ID, models.BondRefunded, nil); !errors.Is(err, payment.ErrIllegalBondTransition) {
		t.Errorf("terminal bond moved: err = %v", err)
	}
	if _, err := env.svc.GetBond(ctx, "nope"); !errors.Is(err, bondRepo.ErrBondNotFound) {
		t.Errorf("err = %v, want ErrBondNotFound", err)
	}
}

func TestStartTimelineRejectsUnbookableDates(t *testing.T) {
	env := newTestEnv(t)
	env.events.events = []models.EventOccurrence{
		{ID: "e1", Date: "2024-02-02", CategoryName: "Gala", IsExclusiveCategory: true},
	}

	var unavailable *DateUnavailableError
	if _, err := env.svc.StartTimeline(ctx, "u1", "pkg-gold", models.NewDate(2024, 1, 5)); !errors.As(err, &unavailable) {
		t.Errorf("inside lead window: err = %v, want DateUnavailableError", err)
	}
	if _, err := env.svc.StartTimeline(ctx, "u1", "pkg-gold", models.NewDate(2024, 2, 2)); !errors.As(err, &unavailable) {
		t.Errorf("exclusive day: err = %v, want DateUnavailableError", err)
	}
	if _, err := env.svc.StartTimeline(ctx, "u1", "pkg-none", models.NewDate(2024, 2, 3)); !errors.Is(err, catalogRepo.ErrPackageNotFound) {
		t.Errorf("unknown package: err = %v", err)
	}
}

func TestTimelineSessionFlow(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.svc.StartTimeline(ctx, "u1", "pkg-gold", models.NewDate(2024, 2, 3))
	if err != nil {
		t.Fatalf("StartTimeline: %v", err)
	}
	if n := len(view.Session.Activities); n != 2 {
		t.Fatalf("activities = %d, want 2 after dedup", n)
	}
	if len(view.Warnings) != 1 || view.Warnings[0].Code != models.WarningDuplicateComponent {
		t.Errorf("warnings = %+v", view.Warnings)
	}
	if len(view.Conflicts) != 0 {
		t.Errorf("fresh timeline has conflicts: %+v", view.Conflicts)
	}
	sid := view.Session.ID
	first := view.Session.Activities[0].ID
	second := view.Session.Activities[1].ID

	view, err = env.svc.AddActivity(ctx, "u1", sid, "")
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	if n := len(view.Session.Activities); n != 3 {
		t.Fatalf("activities = %d, want 3", n)
	}

	// Drag the second activity over the first to create an overlap.
	start := view.Session.Activities[0].StartTime
	end := view.Session.Activities[0].EndTime
	view, err = env.svc.UpdateActivity(ctx, "u1", sid, second, models.ActivityPatch{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}
	if len(view.Conflicts) != 1 {
		t.Errorf("conflicts = %+v, want one", view.Conflicts)
	}

	view, err = env.svc.ReorderActivities(ctx, "u1", sid, 0, 2)
	if err != nil {
		t.Fatalf("ReorderActivities: %v", err)
	}
	if view.Session.Activities[2].ID != first {
		t.Errorf("reorder did not move %s to the end", first)
	}

	if _, err := env.svc.TransitionActivity(ctx, "u1", sid, first, models.StatusConfirmed); err != nil {
		t.Fatalf("TransitionActivity: %v", err)
	}
	if _, err := env.svc.TransitionActivity(ctx, "u1", sid, first, models.StatusPending); !errors.Is(err, timeline.ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}

	view, err = env.svc.RemoveActivity(ctx, "u1", sid, second)
	if err != nil {
		t.Fatalf("RemoveActivity: %v", err)
	}
	for i, a := range view.Session.Activities {
		if a.Order != i {
			t.Errorf("order not contiguous after remove: %+v", view.Session.Activities)
		}
	}

	if err := env.svc.EndTimeline(ctx, "u1", sid); err != nil {
		t.Fatalf("EndTimeline: %v", err)
	}
	if _, err := env.svc.GetTimeline(ctx, "u1", sid); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestFailedMutationLeavesSessionUntouched(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.svc.StartTimeline(ctx, "u1", "pkg-gold", models.NewDate(2024, 2, 3))
	if err != nil {
		t.Fatalf("StartTimeline: %v", err)
	}
	sid := view.Session.ID
	before, _ := env.svc.GetTimeline(ctx, "u1", sid)

	if _, err := env.svc.ReorderActivities(ctx, "u1", sid, 0, 9); !models.IsValidationError(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, err := env.svc.RemoveActivity(ctx, "u1", sid, "missing"); !errors.Is(err, timeline.ErrActivityNotFound) {
		t.Fatalf("err = %v, want ErrActivityNotFound", err)
	}

	after, _ := env.svc.GetTimeline(ctx, "u1", sid)
	if len(after.Session.Activities) != len(before.Session.Activities) {
		t.Fatal("failed mutation changed the stored session")
	}
	for i := range after.Session.Activities {
		if after.Session.Activities[i] != before.Session.Activities[i] {
			t.Errorf("activity %d changed: %+v -> %+v", i, before.Session.Activities[i], after.Session.Activities[i])
		}
	}
}

func TestTimelineSessionsAreOwned(t *testing.T) {
	env := newTestEnv(t)
	view, err := env.svc.StartTimeline(ctx, "u1", "pkg-gold", models.NewDate(2024, 2, 3))
	if err != nil {
		t.Fatalf("StartTimeline: %v", err)
	}
	sid := view.Session.ID
	if _, err := env.svc.GetTimeline(ctx, "u2", sid); !errors.Is(err, ErrSessionForbidden) {
		t.Errorf("GetTimeline: err = %v, want ErrSessionForbidden", err)
	}
	if _, err := env.svc.AddActivity(ctx, "u2", sid, ""); !errors.Is(err, ErrSessionForbidden) {
		t.Errorf("AddActivity: err = %v, want ErrSessionForbidden", err)
	}
	if err := env.svc.EndTimeline(ctx, "u2", sid); !errors.Is(err, ErrSessionForbidden) {
		t.Errorf("EndTimeline: err = %v, want ErrSessionForbidden", err)
	}
}
