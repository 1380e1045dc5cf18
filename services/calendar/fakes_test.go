package calendar

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	exceptionRepo "slotify/database/repository/exception"
	"slotify/models"
)

// fixedNow anchors every test: Monday, March 2, 2026 at noon local time.
var fixedNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.Local)

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[string]models.AvailabilityRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]models.AvailabilityRule)}
}

func (r *fakeRuleRepo) Create(_ context.Context, rule *models.AvailabilityRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = *rule
	return nil
}

func (r *fakeRuleRepo) Update(_ context.Context, rule *models.AvailabilityRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[rule.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.rules[rule.ID] = *rule
	return nil
}

func (r *fakeRuleRepo) DeleteByID(_ context.Context, providerID, ruleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok || rule.ProviderID != providerID {
		return mongo.ErrNoDocuments
	}
	delete(r.rules, ruleID)
	return nil
}

func (r *fakeRuleRepo) GetByID(_ context.Context, providerID, ruleID string) (*models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok || rule.ProviderID != providerID {
		return nil, mongo.ErrNoDocuments
	}
	out := rule
	return &out, nil
}

func (r *fakeRuleRepo) ListByProvider(_ context.Context, providerID string, activeOnly bool) ([]models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.ProviderID != providerID {
			continue
		}
		if activeOnly && !rule.IsActive {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r *fakeRuleRepo) ListForWeekday(_ context.Context, providerID string, day time.Weekday) ([]models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.ProviderID == providerID && rule.Kind == models.RuleKindRecurring && rule.DayOfWeek == day && rule.IsActive {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) ListForDate(_ context.Context, providerID, date string) ([]models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityRule
	for _, rule := range r.rules {
		if rule.ProviderID == providerID && rule.Kind == models.RuleKindOneTime && rule.SpecificDate == date && rule.IsActive {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRuleRepo) EnsureIndexes() error { return nil }

type fakeExceptionRepo struct {
	mu         sync.Mutex
	exceptions map[string]models.Exception
}

func newFakeExceptionRepo() *fakeExceptionRepo {
	return &fakeExceptionRepo{exceptions: make(map[string]models.Exception)}
}

func (r *fakeExceptionRepo) Create(_ context.Context, ex *models.Exception) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.exceptions {
		if existing.ProviderID == ex.ProviderID && existing.Date == ex.Date {
			return exceptionRepo.ErrDuplicateDate
		}
	}
	r.exceptions[ex.ID] = *ex
	return nil
}

func (r *fakeExceptionRepo) GetByID(_ context.Context, providerID, exceptionID string) (*models.Exception, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exceptions[exceptionID]
	if !ok || ex.ProviderID != providerID {
		return nil, mongo.ErrNoDocuments
	}
	out := ex
	return &out, nil
}

func (r *fakeExceptionRepo) GetByDate(_ context.Context, providerID, date string) (*models.Exception, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.exceptions {
		if ex.ProviderID == providerID && ex.Date == date {
			out := ex
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeExceptionRepo) ListInWindow(_ context.Context, providerID, startDate, endDate string) ([]models.Exception, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Exception
	for _, ex := range r.exceptions {
		if ex.ProviderID == providerID && ex.Date >= startDate && ex.Date <= endDate {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (r *fakeExceptionRepo) DeleteByID(_ context.Context, providerID, exceptionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ex, ok := r.exceptions[exceptionID]
	if !ok || ex.ProviderID != providerID {
		return mongo.ErrNoDocuments
	}
	delete(r.exceptions, exceptionID)
	return nil
}

func (r *fakeExceptionRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (r *fakeBookingRepo) ListActiveInWindow(_ context.Context, providerID, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date >= startDate && b.Date <= endDate && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListActiveOnDate(_ context.Context, providerID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date == date && b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListInWindow(_ context.Context, providerID, startDate, endDate string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date >= startDate && b.Date <= endDate {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (r *fakeAuditRepo) Insert(_ context.Context, entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) ListByProvider(_ context.Context, providerID string, _ int64) ([]models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditEntry
	for _, e := range r.entries {
		if e.ProviderID == providerID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeCatalog validates ownership against a static service->provider map.
type fakeCatalog struct {
	services map[string]models.Service
}

func (c *fakeCatalog) ValidateOwnership(_ context.Context, providerID string, serviceIDs []string) error {
	for _, id := range serviceIDs {
		svc, ok := c.services[id]
		if !ok {
			return mongo.ErrNoDocuments
		}
		if svc.ProviderID != providerID {
			return mongo.ErrNoDocuments
		}
	}
	return nil
}

func (c *fakeCatalog) GetService(_ context.Context, serviceID string) (*models.Service, error) {
	svc, ok := c.services[serviceID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	out := svc
	return &out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []models.ExceptionNoticePayload
}

func (n *fakeNotifier) NotifyExceptionCreated(_ context.Context, payload models.ExceptionNoticePayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return nil
}

// newTestService wires a service against fresh fakes with a fixed clock.
func newTestService() (*DefaultCalendarService, *fakeRuleRepo, *fakeBookingRepo, *fakeExceptionRepo, *fakeNotifier) {
	rules := newFakeRuleRepo()
	bookings := &fakeBookingRepo{}
	exceptions := newFakeExceptionRepo()
	notifier := &fakeNotifier{}
	svc := &DefaultCalendarService{
		Rules:      rules,
		Exceptions: exceptions,
		Bookings:   bookings,
		Audit:      &fakeAuditRepo{},
		Catalog:    &fakeCatalog{services: map[string]models.Service{}},
		Notifier:   notifier,
		Now:        func() time.Time { return fixedNow },
	}
	return svc, rules, bookings, exceptions, notifier
}
