// Package testutil provides in-memory collaborators for use case tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// MockMenuRepository stores copies of menus so that callers must go through
// Update for changes to stick, as with a real store.
type MockMenuRepository struct {
	mu     sync.RWMutex
	menus  map[uint]*menu.Menu
	nextID uint

	GetError    error
	UpdateError error
}

func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{menus: make(map[uint]*menu.Menu)}
}

func (r *MockMenuRepository) Create(ctx context.Context, m *menu.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID() == 0 {
		r.nextID++
		if err := m.SetID(r.nextID); err != nil {
			return err
		}
	}
	r.menus[m.ID()] = cloneMenu(m)
	return nil
}

func (r *MockMenuRepository) GetByID(ctx context.Context, id uint) (*menu.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.GetError != nil {
		return nil, r.GetError
	}
	m, ok := r.menus[id]
	if !ok {
		return nil, nil
	}
	return cloneMenu(m), nil
}

func (r *MockMenuRepository) GetBySID(ctx context.Context, sid string) (*menu.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.GetError != nil {
		return nil, r.GetError
	}
	for _, m := range r.menus {
		if m.SID() == sid {
			return cloneMenu(m), nil
		}
	}
	return nil, nil
}

func (r *MockMenuRepository) ListByChef(ctx context.Context, chefID uint, page, pageSize int) ([]*menu.Menu, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*menu.Menu
	for _, m := range r.menus {
		if m.ChefID() == chefID {
			all = append(all, cloneMenu(m))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return paginate(all, page, pageSize), int64(len(all)), nil
}

func (r *MockMenuRepository) Update(ctx context.Context, m *menu.Menu) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateError != nil {
		return r.UpdateError
	}
	if _, ok := r.menus[m.ID()]; !ok {
		return menu.ErrMenuNotFound
	}
	r.menus[m.ID()] = cloneMenu(m)
	return nil
}

func (r *MockMenuRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.menus, id)
	return nil
}

// MockSubscriptionRepository enforces the optimistic version check on Update.
type MockSubscriptionRepository struct {
	mu     sync.RWMutex
	subs   map[uint]*subscription.Subscription
	nextID uint

	UpdateCalls int
	UpdateError error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{subs: make(map[uint]*subscription.Subscription)}
}

func (r *MockSubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID() == 0 {
		r.nextID++
		if err := s.SetID(r.nextID); err != nil {
			return err
		}
	}
	r.subs[s.ID()] = cloneSubscription(s)
	return nil
}

func (r *MockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subs[id]
	if !ok {
		return nil, nil
	}
	return cloneSubscription(s), nil
}

func (r *MockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.SID() == sid {
			return cloneSubscription(s), nil
		}
	}
	return nil, nil
}

func (r *MockSubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UpdateCalls++
	if r.UpdateError != nil {
		return r.UpdateError
	}
	stored, ok := r.subs[s.ID()]
	if !ok {
		return subscription.ErrSubscriptionNotFound
	}
	if stored.Version() != s.Version()-1 {
		return subscription.ErrConcurrentUpdate
	}
	r.subs[s.ID()] = cloneSubscription(s)
	return nil
}

func (r *MockSubscriptionRepository) List(ctx context.Context, filter subscription.Filter) ([]*subscription.Subscription, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*subscription.Subscription
	for _, s := range r.subs {
		if filter.SubscriberID != nil && s.SubscriberID() != *filter.SubscriberID {
			continue
		}
		if filter.ChefID != nil && s.ChefID() != *filter.ChefID {
			continue
		}
		if filter.Status != nil && s.Status() != *filter.Status {
			continue
		}
		if filter.SubscriptionType != nil && s.SubscriptionType() != *filter.SubscriptionType {
			continue
		}
		all = append(all, cloneSubscription(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return paginate(all, filter.Page, filter.PageSize), int64(len(all)), nil
}

func (r *MockSubscriptionRepository) FindExpired(ctx context.Context, today time.Time) ([]*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription.Subscription
	for _, s := range r.subs {
		if s.Status().CanExpire() && s.EndDate().Before(today) {
			out = append(out, cloneSubscription(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *MockSubscriptionRepository) FindDueForRenewal(ctx context.Context, endingOnOrBefore time.Time) ([]*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*subscription.Subscription
	for _, s := range r.subs {
		if s.AutoRenew() && s.Status().CanRenew() && !s.EndDate().After(endingOnOrBefore) {
			out = append(out, cloneSubscription(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Put stores s as-is, bypassing version checks. Used to arrange test state.
func (r *MockSubscriptionRepository) Put(s *subscription.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID() > r.nextID {
		r.nextID = s.ID()
	}
	r.subs[s.ID()] = cloneSubscription(s)
}

type MockPeriodRepository struct {
	mu      sync.Mutex
	periods []*subscription.Period
}

func NewMockPeriodRepository() *MockPeriodRepository {
	return &MockPeriodRepository{}
}

func (r *MockPeriodRepository) Append(ctx context.Context, p *subscription.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.SetID(uint(len(r.periods) + 1))
	r.periods = append(r.periods, p)
	return nil
}

func (r *MockPeriodRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*subscription.Period
	for _, p := range r.periods {
		if p.SubscriptionID() == subscriptionID {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockDeliveryRepository enforces the one-delivery-per-key rule like the
// unique index of the real table.
type MockDeliveryRepository struct {
	mu          sync.RWMutex
	deliveries  map[uint]*delivery.Delivery
	nextID      uint
	CreateError error
}

func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{deliveries: make(map[uint]*delivery.Delivery)}
}

func (r *MockDeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateError != nil {
		return r.CreateError
	}
	for _, stored := range r.deliveries {
		if stored.Key() == d.Key() {
			return delivery.ErrDuplicateDelivery
		}
	}
	r.nextID++
	if err := d.SetID(r.nextID); err != nil {
		return err
	}
	r.deliveries[d.ID()] = cloneDelivery(d)
	return nil
}

func (r *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.deliveries[d.ID()]
	if !ok {
		return delivery.ErrDeliveryNotFound
	}
	if stored.Version() != d.Version()-1 {
		return delivery.ErrConcurrentUpdate
	}
	r.deliveries[d.ID()] = cloneDelivery(d)
	return nil
}

func (r *MockDeliveryRepository) FindByKey(ctx context.Context, key delivery.Key) (*delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.deliveries {
		if d.Key() == key {
			return cloneDelivery(d), nil
		}
	}
	return nil, nil
}

func (r *MockDeliveryRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*delivery.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*delivery.Delivery
	for _, d := range r.deliveries {
		if d.SubscriptionID() == subscriptionID {
			out = append(out, cloneDelivery(d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DeliveryDate().Equal(out[j].DeliveryDate()) {
			return out[i].DeliveryDate().Before(out[j].DeliveryDate())
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

// Put stores d as-is, assigning an ID when it has none.
func (r *MockDeliveryRepository) Put(d *delivery.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID() == 0 {
		r.nextID++
		_ = d.SetID(r.nextID)
	}
	r.deliveries[d.ID()] = cloneDelivery(d)
}

// MockTransactor runs fn directly and counts calls.
type MockTransactor struct {
	Calls int
}

func (t *MockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []events.DomainEvent
}

func (p *RecordingPublisher) Publish(e events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
	return nil
}

func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.EventType())
	}
	return out
}

func NewMockLogger() logger.Interface {
	return logger.NewNop()
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return items
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func cloneMenu(m *menu.Menu) *menu.Menu {
	out, err := menu.ReconstructMenu(m.ID(), m.SID(), m.ChefID(), m.Title(), m.Description(),
		m.Schedule(), m.Version(), m.CreatedAt(), m.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return out
}

func cloneSubscription(s *subscription.Subscription) *subscription.Subscription {
	out, err := subscription.ReconstructSubscription(
		s.ID(), s.SID(), s.SubscriberID(), s.ChefID(), s.MenuID(), s.MenuSID(),
		s.Selection(), s.SubscriptionType(), s.StartDate(), s.EndDate(),
		s.TotalPrice(), s.Status(), s.AutoRenew(), s.ContactEmail(), s.Version(),
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return out
}

func cloneDelivery(d *delivery.Delivery) *delivery.Delivery {
	var deliveredAt *time.Time
	if at := d.DeliveredAt(); at != nil {
		v := *at
		deliveredAt = &v
	}
	out, err := delivery.ReconstructDelivery(
		d.ID(), d.SubscriptionID(), d.SubscriptionSID(), d.ChefID(), d.SubscriberID(),
		d.DeliveryDate(), d.DayOfWeek(), d.MealType(), d.ItemName(), d.Quantity(),
		d.Status(), d.DeliveredBy(), deliveredAt, d.Notes(), d.Version(),
		d.CreatedAt(), d.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return out
}
