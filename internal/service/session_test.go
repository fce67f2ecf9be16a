package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"Passman/internal/model"
	"Passman/internal/repo"
	fsrepo "Passman/internal/repo/fs"
)

// мок для UserStore
type mockStore struct{ mock.Mock }

func (m *mockStore) GetUser(login string) (model.User, bool) {
	args := m.Called(login)
	return args.Get(0).(model.User), args.Bool(1)
}

func (m *mockStore) CreateUser(login, password string) bool {
	return m.Called(login, password).Bool(0)
}

func (m *mockStore) Remove(login, password string) error {
	return m.Called(login, password).Error(0)
}

func (m *mockStore) GetVault(user model.User) (*model.Vault, error) {
	args := m.Called(user)
	if v, ok := args.Get(0).(*model.Vault); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Save(path string) error {
	return m.Called(path).Error(0)
}

var _ UserStore = (*mockStore)(nil)
var _ UserStore = (*repo.UserStore)(nil)

func newFileSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.dat")
	store := repo.NewUserStore(fsrepo.JSONPersister{})
	require.NoError(t, store.Load(path))
	return NewSession(store, path, nil), path
}

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core).Sugar(), logs
}

// Сквозной сценарий: регистрация, вход, добавление, выход, повторный вход.
func TestSession_EndToEnd(t *testing.T) {
	s, path := newFileSession(t)

	require.NoError(t, s.CreateUser("alice", "pw1", "pw1"))
	require.NoError(t, s.Login("alice", "pw1"))
	assert.Equal(t, InVault, s.State())

	names, err := s.ListElements()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.AddElement("mail", "alice@example.com", "secret"))
	names, err = s.ListElements()
	require.NoError(t, err)
	assert.Equal(t, []string{"mail"}, names)

	login, password, err := s.GetElementDetails("mail")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", login)
	assert.Equal(t, "secret", password)

	s.Logout()
	assert.Equal(t, LoggedOut, s.State())
	assert.ErrorIs(t, s.Login("alice", "wrong"), ErrAuthFailed)
	assert.Equal(t, LoggedOut, s.State())

	require.NoError(t, s.Login("alice", "pw1"))
	names, _ = s.ListElements()
	assert.Equal(t, []string{"mail"}, names)

	require.NoError(t, s.Shutdown())

	// a new process sees the same data
	store := repo.NewUserStore(fsrepo.JSONPersister{})
	require.NoError(t, store.Load(path))
	restarted := NewSession(store, path, nil)
	require.NoError(t, restarted.Login("alice", "pw1"))
	login, password, err = restarted.GetElementDetails("mail")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", login)
	assert.Equal(t, "secret", password)
}

func TestSession_LoginFailuresAreUndifferentiated(t *testing.T) {
	logger, logs := observed()
	s, _ := newFileSession(t)
	s.logger = logger
	require.NoError(t, s.CreateUser("alice", "pw1", "pw1"))

	errUnknown := s.Login("bob", "pw1")
	errWrong := s.Login("alice", "nope")
	assert.ErrorIs(t, errUnknown, ErrAuthFailed)
	assert.ErrorIs(t, errWrong, ErrAuthFailed)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	// the log keeps the reason
	refused := logs.FilterMessage("login refused").All()
	require.Len(t, refused, 2)
	assert.Equal(t, "unknown login", refused[0].ContextMap()["reason"])
	assert.Equal(t, "wrong password", refused[1].ContextMap()["reason"])
}

func TestSession_LoginWithoutVault(t *testing.T) {
	m := new(mockStore)
	u := model.NewUser("ghost", "pw")
	m.On("GetUser", "ghost").Return(u, true).Once()
	m.On("GetVault", u).Return(nil, model.ErrNotFound).Once()

	s := NewSession(m, "data.dat", nil)
	assert.ErrorIs(t, s.Login("ghost", "pw"), ErrAuthFailed)
	assert.Equal(t, LoggedOut, s.State())
	m.AssertExpectations(t)
}

func TestSession_CreateUser(t *testing.T) {
	t.Run("mismatch never reaches the store", func(t *testing.T) {
		m := new(mockStore)
		s := NewSession(m, "data.dat", nil)
		assert.ErrorIs(t, s.CreateUser("alice", "a", "b"), ErrPasswordMismatch)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("empty login", func(t *testing.T) {
		m := new(mockStore)
		s := NewSession(m, "data.dat", nil)
		assert.ErrorIs(t, s.CreateUser("", "a", "a"), ErrLoginRequired)
		m.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("taken", func(t *testing.T) {
		s, _ := newFileSession(t)
		require.NoError(t, s.CreateUser("alice", "a", "a"))
		assert.ErrorIs(t, s.CreateUser("alice", "b", "b"), ErrLoginTaken)
		assert.ErrorIs(t, s.Login("alice", "b"), ErrAuthFailed)
		assert.NoError(t, s.Login("alice", "a"))
	})

	t.Run("save failure is reported", func(t *testing.T) {
		m := new(mockStore)
		m.On("CreateUser", "alice", "a").Return(true).Once()
		m.On("Save", "data.dat").Return(repo.ErrIO).Once()
		s := NewSession(m, "data.dat", nil)
		assert.ErrorIs(t, s.CreateUser("alice", "a", "a"), repo.ErrIO)
		m.AssertExpectations(t)
	})
}

func TestSession_RemoveUser(t *testing.T) {
	logger, logs := observed()
	s, _ := newFileSession(t)
	s.logger = logger
	require.NoError(t, s.CreateUser("alice", "pw1", "pw1"))

	assert.ErrorIs(t, s.RemoveUser("alice", "wrong"), ErrAuthFailed)
	assert.ErrorIs(t, s.RemoveUser("bob", "pw1"), ErrAuthFailed)
	refused := logs.FilterMessage("user removal refused").All()
	require.Len(t, refused, 2)
	assert.Equal(t, "wrong password", refused[0].ContextMap()["reason"])
	assert.Equal(t, "unknown login", refused[1].ContextMap()["reason"])

	// still there
	require.NoError(t, s.Login("alice", "pw1"))
	assert.ErrorIs(t, s.RemoveUser("alice", "pw1"), ErrSessionOpen)
	s.Logout()

	require.NoError(t, s.RemoveUser("alice", "pw1"))
	assert.ErrorIs(t, s.Login("alice", "pw1"), ErrAuthFailed)
}

func TestSession_VaultOperationsNeedLogin(t *testing.T) {
	s, _ := newFileSession(t)

	_, err := s.ListElements()
	assert.ErrorIs(t, err, ErrNoSession)
	_, _, err = s.GetElementDetails("x")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, s.AddElement("x", "y", "z"), ErrNoSession)
	assert.ErrorIs(t, s.EditElement("x", "x", "y", "z"), ErrNoSession)
	assert.ErrorIs(t, s.RemoveElement("x"), ErrNoSession)
	_, err = s.SearchByName("")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_VaultOperations(t *testing.T) {
	s, _ := newFileSession(t)
	require.NoError(t, s.CreateUser("alice", "pw", "pw"))
	require.NoError(t, s.Login("alice", "pw"))
	assert.ErrorIs(t, s.Login("alice", "pw"), ErrSessionOpen)

	require.NoError(t, s.AddElement("mail", "a@example.com", "1"))
	require.NoError(t, s.AddElement("bank", "alice", "2"))
	require.NoError(t, s.AddElement("mastodon", "@alice", "3"))
	assert.ErrorIs(t, s.AddElement("mail", "other", "x"), model.ErrDuplicate)

	found, err := s.SearchByName("ma")
	require.NoError(t, err)
	assert.Equal(t, []string{"mail", "mastodon"}, found)

	_, _, err = s.GetElementDetails("nope")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// rename onto an existing item is refused, nothing changes
	assert.ErrorIs(t, s.EditElement("mail", "bank", "x", "y"), model.ErrDuplicate)
	login, _, _ := s.GetElementDetails("bank")
	assert.Equal(t, "alice", login)

	require.NoError(t, s.EditElement("mail", "email", "new@example.com", "4"))
	names, _ := s.ListElements()
	assert.Equal(t, []string{"bank", "email", "mastodon"}, names)
	assert.ErrorIs(t, s.EditElement("mail", "mail", "a", "b"), model.ErrNotFound)

	require.NoError(t, s.RemoveElement("bank"))
	assert.ErrorIs(t, s.RemoveElement("bank"), model.ErrNotFound)
	names, _ = s.ListElements()
	assert.Equal(t, []string{"email", "mastodon"}, names)
}

func TestSession_FailedSaveKeepsChange(t *testing.T) {
	m := new(mockStore)
	u := model.NewUser("alice", "pw")
	v := model.NewVault()
	m.On("GetUser", "alice").Return(u, true)
	m.On("GetVault", u).Return(v, nil)
	m.On("Save", "data.dat").Return(errors.Join(repo.ErrIO, errors.New("disk full"))).Once()
	m.On("Save", "data.dat").Return(nil).Once()

	s := NewSession(m, "data.dat", nil)
	require.NoError(t, s.Login("alice", "pw"))
	assert.ErrorIs(t, s.AddElement("mail", "a", "b"), repo.ErrIO)
	assert.True(t, v.Exists("mail"))

	assert.NoError(t, s.Shutdown())
	assert.Equal(t, LoggedOut, s.State())
	m.AssertExpectations(t)
}
