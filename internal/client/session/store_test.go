package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Raghugowd/Internx-sub001/internal/model"
	"github.com/stretchr/testify/require"
)

// recordingSink captures every token handed to it.
type recordingSink struct {
	token  string
	sets   int
	clears int
}

func (s *recordingSink) SetToken(token string) { s.token = token; s.sets++ }
func (s *recordingSink) ClearToken()           { s.token = ""; s.clears++ }

func newTestStore(t *testing.T) (*Store, *recordingSink, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	sink := &recordingSink{}
	return NewStore(path, sink), sink, path
}

func userPrincipal() Principal {
	return Principal{Kind: KindUser, User: &model.User{ID: 7, Name: "Asha", Email: "asha@example.com"}}
}

func adminPrincipal() Principal {
	return Principal{Kind: KindAdmin, Admin: &model.Admin{ID: 3, Username: "root", Email: "root@example.com"}}
}

func TestCommitAndCurrent(t *testing.T) {
	store, sink, _ := newTestStore(t)

	require.NoError(t, store.Commit("tok-1", userPrincipal()))

	cur := store.Current()
	require.NotNil(t, cur)
	require.Equal(t, KindUser, cur.Kind)
	require.Equal(t, "asha@example.com", cur.User.Email)
	require.Nil(t, cur.Admin)
	require.Equal(t, "tok-1", store.Token())
	require.Equal(t, "tok-1", sink.token)
}

func TestCommitRejectsMalformedPrincipals(t *testing.T) {
	store, _, _ := newTestStore(t)

	cases := []struct {
		name  string
		token string
		p     Principal
	}{
		{"empty token", "", userPrincipal()},
		{"user kind without snapshot", "tok", Principal{Kind: KindUser}},
		{"admin kind without snapshot", "tok", Principal{Kind: KindAdmin}},
		{"both snapshots set", "tok", Principal{
			Kind:  KindUser,
			User:  &model.User{ID: 1},
			Admin: &model.Admin{ID: 2},
		}},
		{"unknown kind", "tok", Principal{Kind: Kind("ghost"), User: &model.User{ID: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, store.Commit(tc.token, tc.p))
			require.Nil(t, store.Current())
		})
	}
}

func TestLastWriterWins(t *testing.T) {
	store, sink, _ := newTestStore(t)

	require.NoError(t, store.Commit("user-tok", userPrincipal()))
	require.NoError(t, store.Commit("admin-tok", adminPrincipal()))

	cur := store.Current()
	require.NotNil(t, cur)
	require.Equal(t, KindAdmin, cur.Kind)
	require.NotNil(t, cur.Admin)
	require.Nil(t, cur.User, "user slot must be emptied by the admin login")
	require.Equal(t, "admin-tok", sink.token)

	// The persisted record must agree after a fresh restore.
	store2 := NewStore(store.path, &recordingSink{})
	store2.Restore()
	cur2 := store2.Current()
	require.NotNil(t, cur2)
	require.Equal(t, KindAdmin, cur2.Kind)
	require.Nil(t, cur2.User)
}

func TestRestoreRoundTrip(t *testing.T) {
	store, _, path := newTestStore(t)
	require.NoError(t, store.Commit("tok-9", userPrincipal()))

	sink2 := &recordingSink{}
	store2 := NewStore(path, sink2)
	store2.Restore()

	cur := store2.Current()
	require.NotNil(t, cur)
	require.Equal(t, KindUser, cur.Kind)
	require.Equal(t, 7, cur.User.ID)
	require.Equal(t, "tok-9", store2.Token())
	require.Equal(t, "tok-9", sink2.token, "restore must install the token into the sink")
}

func TestRestoreMissingFileMeansNoSession(t *testing.T) {
	store, sink, _ := newTestStore(t)
	store.Restore()

	require.Nil(t, store.Current())
	require.Empty(t, store.Token())
	require.Equal(t, 1, sink.clears)
}

func TestRestoreCorruptFileMeansNoSession(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"missing token", `{"kind":"user","user":{"id":1}}`},
		{"kind without snapshot", `{"token":"t","kind":"user"}`},
		{"contradictory record", `{"token":"t","kind":"user","admin":{"id":1},"user":{"id":2},"extra":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, sink, path := newTestStore(t)
			require.NoError(t, os.WriteFile(path, []byte(tc.raw), 0o600))

			store.Restore()

			require.Nil(t, store.Current())
			require.Empty(t, store.Token())
			require.Empty(t, sink.token)
		})
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store, sink, path := newTestStore(t)
	require.NoError(t, store.Commit("tok", userPrincipal()))

	require.NoError(t, store.Clear())
	require.Nil(t, store.Current())
	require.Empty(t, store.Token())
	require.Empty(t, sink.token)
	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	// A second clear with nothing on disk must still succeed.
	require.NoError(t, store.Clear())

	// A restore after clear finds nothing.
	store.Restore()
	require.Nil(t, store.Current())
	require.Empty(t, store.Token())
}
