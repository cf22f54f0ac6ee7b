package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saranya396/projectt/internal/domain/entities"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()

	s := r.Open(doctor)
	require.NotEmpty(t, s.Token)
	assert.Equal(t, dashboardFor(doctor), s.State)
	assert.Equal(t, doctor, s.User())

	got, ok := r.Get(s.Token)
	require.True(t, ok)
	assert.Equal(t, s, got)

	state, ok := r.Apply(s.Token, OpenDashboard{Role: entities.RolePharmacist})
	require.True(t, ok)
	assert.Equal(t, PageAccessDenied, state.Page)

	state, ok = r.Close(s.Token)
	require.True(t, ok)
	assert.Equal(t, Home(), state)

	_, ok = r.Get(s.Token)
	assert.False(t, ok)
	_, ok = r.Apply(s.Token, GoHome{})
	assert.False(t, ok)
	_, ok = r.Close(s.Token)
	assert.False(t, ok)
}

func TestRegistry_TokensAreDistinct(t *testing.T) {
	r := NewRegistry()

	a := r.Open(patient)
	b := r.Open(patient)

	assert.NotEqual(t, a.Token, b.Token)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := r.Open(patient)
			r.Apply(s.Token, GoHome{})
			r.Close(s.Token)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
