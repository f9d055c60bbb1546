package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securechat/securechat/allowlist"
)

func TestStoreLifecycle(t *testing.T) {
	st := NewStore()

	s := New().Login(Identity{UID: "u1", Email: "a@x.com"}, allowlist.Admitted)
	id := st.Create(s)
	require.NotEmpty(t, id)

	got, ok := st.Get(id)
	require.True(t, ok)
	assert.True(t, got.IsAuthorized())
	assert.Equal(t, "u1", got.Identity.UID)

	st.Delete(id)
	_, ok = st.Get(id)
	assert.False(t, ok)
}

func TestStoreUnknownID(t *testing.T) {
	st := NewStore()
	_, ok := st.Get("nope")
	assert.False(t, ok)
	st.Delete("nope") // no-op
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	st := NewStore()

	id1 := st.Create(New().Login(Identity{UID: "u1", Email: "a@x.com"}, allowlist.Admitted))
	id2 := st.Create(New().Login(Identity{UID: "u2", Email: "b@x.com"}, allowlist.Admitted))
	require.NotEqual(t, id1, id2)

	s1, _ := st.Get(id1)
	s2, _ := st.Get(id2)
	assert.Equal(t, "u1", s1.Identity.UID)
	assert.Equal(t, "u2", s2.Identity.UID)

	st.Delete(id1)
	_, ok := st.Get(id2)
	assert.True(t, ok, "deleting one session must not touch another")
}
