package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Saranya396/projectt/internal/adapters/database"
	"github.com/Saranya396/projectt/internal/adapters/storage"
	"github.com/Saranya396/projectt/internal/application/services"
	"github.com/Saranya396/projectt/internal/domain/entities"
	"github.com/Saranya396/projectt/pkg/config"
)

// Mocks

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Load(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, users []entities.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// recordingBus keeps every published event by channel
type recordingBus struct {
	mu        sync.Mutex
	published map[string][]entities.PortalEvent
	err       error
}

func newRecordingBus() *recordingBus {
	return &recordingBus{published: make(map[string][]entities.PortalEvent)}
}

func (b *recordingBus) Publish(ctx context.Context, channel string, event *entities.PortalEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.published[channel] = append(b.published[channel], *event)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.PortalEvent, error) {
	return nil, nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) types(channel string) []entities.PortalEventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []entities.PortalEventType
	for _, ev := range b.published[channel] {
		out = append(out, ev.Type)
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// portal wires every service over one in-memory store
type portal struct {
	store      *storage.MemoryStore
	clock      *fakeClock
	accounts   *services.AccountService
	patients   *services.PatientService
	doctors    *services.DoctorService
	pharmacist *services.PharmacistService
	admin      *services.AdminService
}

func newPortal(opts ...services.Option) *portal {
	store := storage.NewMemoryStore()
	clock := newFakeClock()
	ids := services.NewIDGenerator(clock)

	users := database.NewUserRepository(store)
	appointments := database.NewAppointmentRepository(store)
	history := database.NewMedicalHistoryRepository(store)
	prescriptions := database.NewPrescriptionRepository(store)
	inventory := database.NewInventoryRepository(store)

	accounts := services.NewAccountService(users, ids, opts...)
	settings := services.NewPlatformSettings(config.PlatformConfig{SelfSignupAllowed: true, GmailRequired: true})

	return &portal{
		store:      store,
		clock:      clock,
		accounts:   accounts,
		patients:   services.NewPatientService(accounts, appointments, history, prescriptions, ids, clock, opts...),
		doctors:    services.NewDoctorService(appointments, history, prescriptions, ids, clock, opts...),
		pharmacist: services.NewPharmacistService(prescriptions, inventory, ids, clock, opts...),
		admin:      services.NewAdminService(accounts, settings),
	}
}

func validRegistration() services.RegisterInput {
	return services.RegisterInput{
		FullName: "A B",
		Gender:   "female",
		Age:      20,
		Email:    "a@gmail.com",
		Phone:    "9876543210",
		Password: "ab12cd",
		Role:     entities.RolePatient,
	}
}

func (p *portal) mustRegister(in services.RegisterInput) entities.User {
	u, err := p.accounts.Register(context.Background(), in)
	if err != nil {
		panic(err)
	}
	return *u
}
