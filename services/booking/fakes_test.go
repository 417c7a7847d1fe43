package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	bondRepo "eventbook/database/repository/bond"
	catalogRepo "eventbook/database/repository/catalog"
	offerRepo "eventbook/database/repository/offer"
	"eventbook/models"
	"eventbook/services/availability"
	"eventbook/services/pricing"
	"eventbook/services/timeline"
)

type fakeEvents struct {
	events []models.EventOccurrence
	err    error
	calls  int
}

func (f *fakeEvents) GetByDateRange(ctx context.Context, start, end models.Date) ([]models.EventOccurrence, error) {
	f.calls++
	return f.events, f.err
}

func (f *fakeEvents) Create(ctx context.Context, ev *models.EventOccurrence) error {
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeEvents) CountMalformed(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeEvents) EnsureIndexes(ctx context.Context) error { return nil }

type fakeCatalog map[string][]models.CatalogComponent

func (f fakeCatalog) GetPackageComponents(ctx context.Context, packageID string) ([]models.CatalogComponent, error) {
	c, ok := f[packageID]
	if !ok {
		return nil, catalogRepo.ErrPackageNotFound
	}
	return c, nil
}

func (f fakeCatalog) EnsureIndexes(ctx context.Context) error { return nil }

type fakeOffers map[string]models.PricedItem

func (f fakeOffers) GetByIDs(ctx context.Context, ids []string) ([]models.PricedItem, error) {
	out := make([]models.PricedItem, 0, len(ids))
	for _, id := range ids {
		item, ok := f[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", offerRepo.ErrOfferNotFound, id)
		}
		out = append(out, item)
	}
	return out, nil
}

func (f fakeOffers) EnsureIndexes(ctx context.Context) error { return nil }

type fakeBonds struct {
	mu    sync.Mutex
	bonds map[string]models.CashBond
}

func (f *fakeBonds) Create(ctx context.Context, bond *models.CashBond) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bonds == nil {
		f.bonds = map[string]models.CashBond{}
	}
	f.bonds[bond.ID] = *bond
	return nil
}

func (f *fakeBonds) GetByID(ctx context.Context, id string) (*models.CashBond, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bonds[id]
	if !ok {
		return nil, bondRepo.ErrBondNotFound
	}
	return &b, nil
}

func (f *fakeBonds) UpdateStatus(ctx context.Context, bond *models.CashBond, from models.BondStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.bonds[bond.ID]
	if !ok {
		return bondRepo.ErrBondNotFound
	}
	if stored.Status != from {
		return bondRepo.ErrStaleBond
	}
	f.bonds[bond.ID] = *bond
	return nil
}

func (f *fakeBonds) EnsureIndexes(ctx context.Context) error { return nil }

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.TimelineSession
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]models.TimelineSession{}}
}

func (m *memorySessions) Get(ctx context.Context, id string) (*models.TimelineSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Activities = append([]models.TimelineActivity(nil), s.Activities...)
	return &s, nil
}

func (m *memorySessions) Save(ctx context.Context, session *models.TimelineSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessions) Update(ctx context.Context, id string, fn func(*models.TimelineSession) error) (*models.TimelineSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Activities = append([]models.TimelineActivity(nil), s.Activities...)
	if err := fn(&s); err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return &s, nil
}

func (m *memorySessions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

type fakeGateway struct {
	calls int
	err   error
}

func (g *fakeGateway) CreateDownPaymentIntent(ctx context.Context, split models.PaymentSplit, bookingRef string) (*models.DownPaymentIntent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &models.DownPaymentIntent{
		IntentID: "pi_" + bookingRef,
		Amount:   split.DownPayment,
		Currency: "kes",
		Status:   "requires_payment_method",
	}, nil
}

type fakeReminders struct {
	payloads []models.BalanceReminderPayload
	err      error
}

func (r *fakeReminders) ScheduleBalanceReminder(ctx context.Context, payload models.BalanceReminderPayload) error {
	if r.err != nil {
		return r.err
	}
	r.payloads = append(r.payloads, payload)
	return nil
}

var errBackend = errors.New("backend unavailable")

// today is 2024-01-01, so 2024-01-08 is the first bookable date.
func clock() time.Time {
	return time.Date(2024, time.January, 1, 10, 0, 0, 0, time.Local)
}

type testEnv struct {
	svc       *DefaultBookingService
	events    *fakeEvents
	bonds     *fakeBonds
	sessions  *memorySessions
	gateway   *fakeGateway
	reminders *fakeReminders
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	classifier, err := availability.NewClassifier(availability.Options{Now: clock}, nil)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	n := 0
	nextID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	env := &testEnv{
		events:    &fakeEvents{},
		bonds:     &fakeBonds{},
		sessions:  newMemorySessions(),
		gateway:   &fakeGateway{},
		reminders: &fakeReminders{},
	}
	env.svc = &DefaultBookingService{
		Events: env.events,
		Catalog: fakeCatalog{
			"pkg-gold": {
				{ID: "c1", Name: "Hair & Makeup", Category: "styling"},
				{ID: "c2", Name: "Ceremony", Category: "ceremony"},
				{ID: "c1", Name: "Hair & Makeup", Category: "styling"},
			},
		},
		Offers: fakeOffers{
			"venue-1": {ID: "venue-1", Name: "Garden", BasePrice: 50000, BaseCapacity: 100, ExtraGuestRate: 300},
			"pkg-1":   {ID: "pkg-1", Name: "Catering", BasePrice: 20000, BaseCapacity: 150, ExtraGuestRate: 150},
		},
		Bonds:          env.bonds,
		Sessions:       env.sessions,
		Classifier:     classifier,
		Scheduler:      timeline.NewScheduler(timeline.Options{NewID: nextID}, nil),
		Pricing:        pricing.NewTieredCalculator(),
		Gateway:        env.gateway,
		Reminders:      env.reminders,
		BalanceDueDays: 14,
		Currency:       "kes",
		Now:            clock,
		NewID:          nextID,
	}
	return env
}
