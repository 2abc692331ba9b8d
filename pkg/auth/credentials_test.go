package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	account := &Account{
		Name:        "work",
		AccessToken: "EAAB_test_token_12345",
	}
	require.NoError(t, manager.Store(account))
	assert.False(t, account.LastModified.IsZero())

	retrieved, err := manager.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "work", retrieved.Name)
	assert.Equal(t, "EAAB_test_token_12345", retrieved.AccessToken)

	token, err := manager.Token("work")
	require.NoError(t, err)
	assert.Equal(t, "EAAB_test_token_12345", token)

	accounts, err := manager.List()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	require.NoError(t, manager.Delete("work"))
	_, err = manager.Retrieve("work")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.Equal(t, 0, mockStore.Count())
}

func TestManagerDefaultsAccountName(t *testing.T) {
	manager, _ := NewMockManager()
	require.NoError(t, manager.Store(&Account{Name: DefaultAccount, AccessToken: "tok"}))

	token, err := manager.Token("")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, manager.Delete(""))
	_, err = manager.Token("")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestManagerStoreValidation(t *testing.T) {
	manager, mockStore := NewMockManager()

	assert.Error(t, manager.Store(nil))
	assert.EqualError(t, manager.Store(&Account{AccessToken: "tok"}), "account name is required")
	assert.EqualError(t, manager.Store(&Account{Name: "a"}), "access token is required")
	assert.Equal(t, 0, mockStore.Count())
}

func TestManagerFallsBackAcrossStores(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = errors.New("keychain locked")
	working := NewMockStore()

	manager := NewManagerWithStores(broken, working)
	require.NoError(t, manager.Store(&Account{Name: "a", AccessToken: "tok"}))

	assert.Equal(t, 0, broken.Count())
	assert.True(t, working.Exists("a"))

	token, err := manager.Token("a")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestManagerStoreAllFail(t *testing.T) {
	manager := NewManagerWithStores(NewEnvironmentStore())
	err := manager.Store(&Account{Name: "a", AccessToken: "tok"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestManagerDeleteMissing(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore(), NewEnvironmentStore())
	err := manager.Delete("ghost")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestManagerListSorted(t *testing.T) {
	manager, _ := NewMockManager()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, manager.Store(&Account{Name: name, AccessToken: "tok-" + name}))
	}

	accounts, err := manager.List()
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "alpha", accounts[0].Name)
	assert.Equal(t, "mid", accounts[1].Name)
	assert.Equal(t, "zeta", accounts[2].Name)
}

func TestSanitizeAccount(t *testing.T) {
	account := &Account{Name: "work", AccessToken: "EAAB1234567890wxyz"}
	sanitized := SanitizeAccount(account)

	assert.Equal(t, "work", sanitized.Name)
	assert.Equal(t, "EAAB...wxyz", sanitized.AccessToken)
	assert.Equal(t, "EAAB1234567890wxyz", account.AccessToken)
	assert.Nil(t, SanitizeAccount(nil))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "********", MaskToken("short"))
	assert.Equal(t, "abcd...6789", MaskToken("abcdef0123456789"))
}

func TestEnvironmentStore(t *testing.T) {
	t.Setenv(EnvAccessToken, "env_token")

	store := NewEnvironmentStore()

	account, err := store.Retrieve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAccount, account.Name)
	assert.Equal(t, "env_token", account.AccessToken)

	assert.True(t, store.Exists("anything"))
	assert.ErrorIs(t, store.Store(&Account{}), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete("x"), ErrStoreUnavailable)

	accounts, err := store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "environment", accounts[0].Name)
}

func TestEnvironmentStoreUnset(t *testing.T) {
	t.Setenv(EnvAccessToken, "")

	store := NewEnvironmentStore()
	_, err := store.Retrieve("")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store, err := NewKeyringStore()
	require.NoError(t, err)

	require.NoError(t, store.Store(&Account{Name: "work", AccessToken: "tok-work"}))
	require.NoError(t, store.Store(&Account{Name: "home", AccessToken: "tok-home"}))
	// storing twice keeps one index entry
	require.NoError(t, store.Store(&Account{Name: "work", AccessToken: "tok-work-2"}))

	assert.True(t, store.Exists("work"))
	assert.False(t, store.Exists("missing"))

	account, err := store.Retrieve("work")
	require.NoError(t, err)
	assert.Equal(t, "tok-work-2", account.AccessToken)

	accounts, err := store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "home", accounts[0].Name)
	assert.Equal(t, "work", accounts[1].Name)

	require.NoError(t, store.Delete("home"))
	assert.ErrorIs(t, store.Delete("home"), ErrCredentialsNotFound)

	_, err = store.Retrieve("home")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	accounts, err = store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "work", accounts[0].Name)
}

func TestKeyringStoreUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Cleanup(keyring.MockInit)

	_, err := NewKeyringStore()
	assert.ErrorContains(t, err, "keyring not available")
}

func TestKeyringStoreInvalidInput(t *testing.T) {
	keyring.MockInit()
	store := &KeyringStore{}

	assert.ErrorIs(t, store.Store(nil), ErrInvalidCredentials)
	_, err := store.Retrieve("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, store.Delete(""), ErrInvalidCredentials)
}

func TestMockStore(t *testing.T) {
	store := NewMockStore()

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	require.NoError(t, store.Store(&Account{Name: "mock", AccessToken: "tok"}))
	assert.Equal(t, 1, store.Count())
	assert.True(t, store.Exists("mock"))

	store.ListError = errors.New("injected error")
	_, err = store.List()
	assert.EqualError(t, err, "injected error")
}
