package session

import (
	"context"
	"errors"
	"testing"

	"github.com/ghaggin/internhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{
		ID:         7,
		Name:       "Ada",
		Email:      "ada@example.com",
		Role:       model.RoleStudent,
		IsVerified: true,
		Student:    &model.StudentProfile{University: "KTH"},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	store := NewStore(NewMemoryKV())
	require.NoError(store.Save(ctx, "abc", testUser()))

	s, ok := store.Load(ctx)
	require.True(ok)
	assert.Equal("abc", s.Token)
	assert.Equal(testUser(), s.User)
	assert.True(s.Valid())
}

func TestStore_LoadClearsCorruptData(t *testing.T) {
	cases := map[string]map[string]string{
		"unparseable user": {TokenKey: "abc", UserKey: "{not json"},
		"undefined user":   {TokenKey: "abc", UserKey: "undefined"},
		"null user":        {TokenKey: "abc", UserKey: "null"},
		"array user":       {TokenKey: "abc", UserKey: "[1,2]"},
		"missing user":     {TokenKey: "abc"},
		"missing token":    {UserKey: `{"id":1,"role":"admin"}`},
	}

	for name, seed := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemoryKV()
			for k, v := range seed {
				kv.PutString(ctx, k, v)
			}

			_, ok := NewStore(kv).Load(ctx)
			assert.False(t, ok)
			assert.False(t, kv.Has(TokenKey))
			assert.False(t, kv.Has(UserKey))
		})
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	_, ok := NewStore(NewMemoryKV()).Load(context.Background())
	assert.False(t, ok)
}

func TestStore_SaveUserKeepsToken(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	kv := NewMemoryKV()
	store := NewStore(kv)
	require.NoError(store.Save(ctx, "abc", testUser()))

	u := testUser()
	u.Name = "New Name"
	require.NoError(store.SaveUser(ctx, u))

	assert.Equal(t, "abc", kv.GetString(ctx, TokenKey))
	s, ok := store.Load(ctx)
	require.True(ok)
	assert.Equal(t, "New Name", s.User.Name)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	store := NewStore(kv)
	require.NoError(t, store.Save(ctx, "abc", testUser()))

	store.Clear(ctx)
	assert.False(t, kv.Has(TokenKey))
	assert.False(t, kv.Has(UserKey))
}

type renewingKV struct {
	*MemoryKV
	renewed int
	err     error
}

func (r *renewingKV) RenewToken(context.Context) error {
	r.renewed++
	return r.err
}

func TestStore_SaveRenews(t *testing.T) {
	ctx := context.Background()

	kv := &renewingKV{MemoryKV: NewMemoryKV()}
	require.NoError(t, NewStore(kv).Save(ctx, "abc", testUser()))
	assert.Equal(t, 1, kv.renewed)

	kv = &renewingKV{MemoryKV: NewMemoryKV(), err: errors.New("boom")}
	assert.Error(t, NewStore(kv).Save(ctx, "abc", testUser()))
	assert.False(t, kv.Has(TokenKey))
}
