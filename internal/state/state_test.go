package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flagship-portal/internal/cache"
	"github.com/magabrotheeeer/flagship-portal/internal/config"
	"github.com/magabrotheeeer/flagship-portal/internal/models"
)

// PersisterMock — мок Persister.
type PersisterMock struct {
	mock.Mock
}

func (m *PersisterMock) Save(ctx context.Context, sessionID, slot string, value []byte) error {
	return m.Called(ctx, sessionID, slot, value).Error(0)
}

func (m *PersisterMock) Load(ctx context.Context, sessionID, slot string) ([]byte, error) {
	args := m.Called(ctx, sessionID, slot)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *PersisterMock) Delete(ctx context.Context, sessionID, slot string) error {
	return m.Called(ctx, sessionID, slot).Error(0)
}

func TestSlot_SetPersistsOnWrite(t *testing.T) {
	p := new(PersisterMock)
	p.On("Save", mock.Anything, "sid", SlotFilters, []byte(`[{"key":"city","values":["Lahore"]}]`)).
		Return(nil).Once()

	slot := NewSlot[[]models.Filter](SlotFilters, "sid", p)
	err := slot.Set(context.Background(), []models.Filter{{Key: "city", Values: []string{"Lahore"}}})
	require.NoError(t, err)

	got, ok := slot.Get()
	assert.True(t, ok)
	assert.Equal(t, "city", got[0].Key)
	p.AssertExpectations(t)
}

func TestSlot_SetKeepsValueWhenPersistFails(t *testing.T) {
	p := new(PersisterMock)
	p.On("Save", mock.Anything, "sid", SlotUser, mock.Anything).Return(errors.New("redis down")).Once()

	slot := NewSlot[models.User](SlotUser, "sid", p)
	err := slot.Set(context.Background(), models.User{ID: "u1"})
	assert.ErrorContains(t, err, "redis down")

	got, ok := slot.Get()
	assert.True(t, ok)
	assert.Equal(t, "u1", got.ID)
}

func TestSlot_LoadMissingLeavesEmpty(t *testing.T) {
	slot := NewSlot[models.FlagshipDraft](SlotDraft, "sid", NewMemoryPersister())
	require.NoError(t, slot.Load(context.Background()))

	_, ok := slot.Get()
	assert.False(t, ok)
}

func TestSlot_LoadCorrupted(t *testing.T) {
	p := NewMemoryPersister()
	require.NoError(t, p.Save(context.Background(), "sid", SlotDraft, []byte("{broken")))

	slot := NewSlot[models.FlagshipDraft](SlotDraft, "sid", p)
	assert.Error(t, slot.Load(context.Background()))
}

func TestSlot_Update(t *testing.T) {
	slot := NewSlot[models.FlagshipDraft](SlotDraft, "sid", NewMemoryPersister())
	ctx := context.Background()

	_, err := slot.Update(ctx, func(d models.FlagshipDraft) models.FlagshipDraft {
		return d.Merge(models.DummyFlagshipDraft{Step: 1, Name: "Skardu"})
	})
	require.NoError(t, err)
	got, err := slot.Update(ctx, func(d models.FlagshipDraft) models.FlagshipDraft {
		return d.Merge(models.DummyFlagshipDraft{Step: 2, Price: 30000})
	})
	require.NoError(t, err)

	assert.Equal(t, 2, got.Step)
	assert.Equal(t, "Skardu", got.Name)
	assert.Equal(t, 30000, got.Price)
}

func TestStore_RolesDerivedLive(t *testing.T) {
	store := NewStore("sid", NewMemoryPersister())
	ctx := context.Background()

	assert.Nil(t, store.Roles())
	assert.False(t, store.IsAdmin())

	require.NoError(t, store.User.Set(ctx, models.User{ID: "u1", Roles: []string{"user"}}))
	assert.Equal(t, []string{"user"}, store.Roles())
	assert.False(t, store.IsAdmin())

	require.NoError(t, store.User.Set(ctx, models.User{ID: "u1", Roles: []string{"user", "admin"}}))
	assert.Equal(t, []string{"user", "admin"}, store.Roles())
	assert.True(t, store.IsAdmin())

	roles := store.Roles()
	roles[0] = "mutated"
	assert.Equal(t, "user", store.Roles()[0])
}

func TestStore_LoadAndClear(t *testing.T) {
	p := NewMemoryPersister()
	ctx := context.Background()

	first := NewStore("sid", p)
	require.NoError(t, first.Auth.Set(ctx, Auth{BearerToken: "remote-token"}))
	require.NoError(t, first.User.Set(ctx, models.User{ID: "u1"}))
	require.NoError(t, first.Draft.Set(ctx, models.FlagshipDraft{Name: "Swat"}))

	second := NewStore("sid", p)
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, "remote-token", second.BearerToken())
	draft, ok := second.Draft.Get()
	assert.True(t, ok)
	assert.Equal(t, "Swat", draft.Name)
	_, ok = second.Filters.Get()
	assert.False(t, ok)

	require.NoError(t, second.Clear(ctx))

	third := NewStore("sid", p)
	require.NoError(t, third.Load(ctx))
	assert.Empty(t, third.BearerToken())
	_, ok = third.User.Get()
	assert.False(t, ok)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	p := NewMemoryPersister()
	ctx := context.Background()

	a := NewStore("a", p)
	require.NoError(t, a.User.Set(ctx, models.User{ID: "ua"}))

	b := NewStore("b", p)
	require.NoError(t, b.Load(ctx))
	_, ok := b.User.Get()
	assert.False(t, ok)
}

func TestRedisPersister(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.InitServer(context.Background(), config.RedisConnection{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	p := NewRedisPersister(c, time.Hour)
	ctx := context.Background()

	_, err = p.Load(ctx, "sid", SlotUser)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Save(ctx, "sid", SlotUser, []byte(`{"id":"u1"}`)))
	assert.True(t, mr.Exists("state:sid:user"))
	assert.Equal(t, time.Hour, mr.TTL("state:sid:user"))

	raw, err := p.Load(ctx, "sid", SlotUser)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1"}`, string(raw))

	require.NoError(t, p.Delete(ctx, "sid", SlotUser))
	assert.False(t, mr.Exists("state:sid:user"))
}

// SlotRepoMock — мок SlotRepository.
type SlotRepoMock struct {
	mock.Mock
}

func (m *SlotRepoMock) UpsertSlot(ctx context.Context, sessionID, slot string, value []byte, expiresAt time.Time) error {
	return m.Called(ctx, sessionID, slot, value, expiresAt).Error(0)
}

func (m *SlotRepoMock) GetSlot(ctx context.Context, sessionID, slot string) ([]byte, error) {
	args := m.Called(ctx, sessionID, slot)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *SlotRepoMock) DeleteSlot(ctx context.Context, sessionID, slot string) error {
	return m.Called(ctx, sessionID, slot).Error(0)
}

func TestPostgresPersister(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := new(SlotRepoMock)
	p := NewPostgresPersister(repo, 2*time.Hour)
	p.now = func() time.Time { return now }
	ctx := context.Background()

	repo.On("UpsertSlot", ctx, "sid", SlotFilters, []byte(`[]`), now.Add(2*time.Hour)).Return(nil).Once()
	repo.On("GetSlot", ctx, "sid", SlotFilters).Return([]byte(`[]`), nil).Once()
	repo.On("GetSlot", ctx, "sid", SlotUser).Return(nil, ErrNotFound).Once()
	repo.On("GetSlot", ctx, "sid", SlotDraft).Return(nil, errors.New("conn reset")).Once()
	repo.On("DeleteSlot", ctx, "sid", SlotFilters).Return(nil).Once()

	require.NoError(t, p.Save(ctx, "sid", SlotFilters, []byte(`[]`)))

	raw, err := p.Load(ctx, "sid", SlotFilters)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), raw)

	_, err = p.Load(ctx, "sid", SlotUser)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Load(ctx, "sid", SlotDraft)
	assert.ErrorContains(t, err, "conn reset")

	require.NoError(t, p.Delete(ctx, "sid", SlotFilters))
	repo.AssertExpectations(t)
}
