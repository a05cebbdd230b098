package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	kafkamocks "github.com/honeynil/employer-dashboard/internal/infrastructure/kafka/mocks"
	webhookmocks "github.com/honeynil/employer-dashboard/internal/infrastructure/webhook/mocks"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
	"go.uber.org/mock/gomock"
)

type testEffects struct {
	*Effects
	producer *kafkamocks.MockKafkaProducer
	notifier *webhookmocks.MockSyncNotifier
	sent     *[]models.Event
}

func newTestEffects(ctrl *gomock.Controller) testEffects {
	producer := kafkamocks.NewMockKafkaProducer(ctrl)
	notifier := webhookmocks.NewMockSyncNotifier(ctrl)
	return testEffects{
		Effects:  NewEffects(producer, "employer-events", notifier),
		producer: producer,
		notifier: notifier,
		sent:     &[]models.Event{},
	}
}

// allowAll accepts any number of side effects and keeps the published events.
func (e testEffects) allowAll() {
	e.producer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, value []byte) error {
			var event models.Event
			if err := json.Unmarshal(value, &event); err == nil {
				*e.sent = append(*e.sent, event)
			}
			return nil
		}).AnyTimes()
	e.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).AnyTimes()
}

func (e testEffects) eventTypes() []string {
	types := make([]string, 0, len(*e.sent))
	for _, event := range *e.sent {
		types = append(types, event.EventType)
	}
	return types
}

// memWallets is an in-memory wallet store with the same version semantics as
// the Postgres repository.
type memWallets struct {
	mu      sync.Mutex
	wallets map[string]models.Wallet
}

func newMemWallets(wallets ...models.Wallet) *memWallets {
	m := &memWallets{wallets: map[string]models.Wallet{}}
	for _, w := range wallets {
		if w.Version == 0 {
			w.Version = 1
		}
		m.wallets[w.ID] = w
	}
	return m
}

func (m *memWallets) Create(_ context.Context, w *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[w.ID]; ok {
		return pkgerrors.ErrWalletExists
	}
	w.Version = 1
	m.wallets[w.ID] = *w
	return nil
}

func (m *memWallets) GetByID(_ context.Context, id string) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return nil, pkgerrors.ErrWalletNotFound
	}
	return &w, nil
}

func (m *memWallets) GetByOwner(_ context.Context, ownerID string) (*models.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.OwnerID == ownerID {
			w := w
			return &w, nil
		}
	}
	return nil, pkgerrors.ErrWalletNotFound
}

func (m *memWallets) UpdateBalance(_ context.Context, w *models.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.wallets[w.ID]
	if !ok || stored.Version != w.Version {
		return pkgerrors.ErrConcurrentUpdate
	}
	w.Version++
	m.wallets[w.ID] = *w
	return nil
}

func (m *memWallets) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[id]; !ok {
		return pkgerrors.ErrWalletNotFound
	}
	delete(m.wallets, id)
	return nil
}

// memEmployers keeps kvk_number and contact_email unique among live
// employers, like the partial unique indexes on the employers table.
type memEmployers struct {
	mu        sync.Mutex
	employers map[string]models.Employer
	deleted   map[string]bool
}

func newMemEmployers() *memEmployers {
	return &memEmployers{employers: map[string]models.Employer{}, deleted: map[string]bool{}}
}

func (m *memEmployers) Create(_ context.Context, e *models.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.employers {
		if m.deleted[id] {
			continue
		}
		if existing.KvKNumber == e.KvKNumber || existing.ContactEmail == e.ContactEmail {
			return pkgerrors.ErrEmployerExists
		}
	}
	if e.ID == "" {
		e.ID = "e" + strconv.Itoa(len(m.employers)+1)
	}
	m.employers[e.ID] = *e
	return nil
}

func (m *memEmployers) GetByID(_ context.Context, id string) (*models.Employer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employers[id]
	if !ok || m.deleted[id] {
		return nil, pkgerrors.ErrEmployerNotFound
	}
	return &e, nil
}

func (m *memEmployers) Update(_ context.Context, e *models.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employers[e.ID]; !ok || m.deleted[e.ID] {
		return pkgerrors.ErrEmployerNotFound
	}
	m.employers[e.ID] = *e
	return nil
}

func (m *memEmployers) SetLogoURL(_ context.Context, id, logoURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.employers[id]
	e.LogoURL = logoURL
	m.employers[id] = e
	return nil
}

func (m *memEmployers) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employers[id]; !ok || m.deleted[id] {
		return pkgerrors.ErrEmployerNotFound
	}
	m.deleted[id] = true
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
