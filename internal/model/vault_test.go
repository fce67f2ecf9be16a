package model

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledVault(t *testing.T) *Vault {
	t.Helper()
	v := NewVault()
	for _, it := range []VaultItem{
		NewVaultItem("item3", "it3", "1234"),
		NewVaultItem("item2", "it2", "1234"),
		NewVaultItem("item1", "it1", "1234"),
	} {
		require.NoError(t, v.Add(it))
	}
	return v
}

func TestVaultItem_Accessors(t *testing.T) {
	it := NewVaultItem("mail", "alice@example.com", "secret")
	assert.Equal(t, "mail", it.Name())
	assert.Equal(t, "alice@example.com", it.Login())
	assert.Equal(t, "secret", it.Password())
}

func TestVault_List(t *testing.T) {
	assert.Empty(t, NewVault().List())
	assert.Equal(t, []string{"item1", "item2", "item3"}, filledVault(t).List())
}

func TestVault_AddThenGet(t *testing.T) {
	v := NewVault()
	it := NewVaultItem("mail", "alice@example.com", "secret")
	require.NoError(t, v.Add(it))

	got, err := v.Get("mail")
	require.NoError(t, err)
	assert.Equal(t, it, got)
	assert.True(t, v.Exists("mail"))
	assert.Equal(t, 1, v.Len())
}

func TestVault_GetMissing(t *testing.T) {
	v := filledVault(t)
	_, err := v.Get("item4")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, v.Exists("item4"))
}

func TestVault_AddDuplicateLeavesVaultUnchanged(t *testing.T) {
	v := filledVault(t)
	err := v.Add(NewVaultItem("item3", "other", "other"))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 3, v.Len())

	got, err := v.Get("item3")
	require.NoError(t, err)
	assert.Equal(t, "it3", got.Login())
}

func TestVault_AddEmptyName(t *testing.T) {
	v := NewVault()
	assert.ErrorIs(t, v.Add(NewVaultItem("", "l", "p")), ErrEmptyName)
	assert.Zero(t, v.Len())
}

func TestVault_Edit(t *testing.T) {
	t.Run("in place", func(t *testing.T) {
		v := filledVault(t)
		old, _ := v.Get("item2")
		require.NoError(t, v.Edit(old, NewVaultItem("item2", "new-login", "new-pass")))
		got, _ := v.Get("item2")
		assert.Equal(t, "new-login", got.Login())
		assert.Equal(t, "new-pass", got.Password())
		assert.Equal(t, 3, v.Len())
	})

	t.Run("rename", func(t *testing.T) {
		v := filledVault(t)
		old, _ := v.Get("item3")
		item4 := NewVaultItem("item4", "it4", "1234")
		require.NoError(t, v.Edit(old, item4))
		assert.False(t, v.Exists("item3"))
		got, err := v.Get("item4")
		require.NoError(t, err)
		assert.Equal(t, item4, got)
	})

	t.Run("missing old item", func(t *testing.T) {
		v := filledVault(t)
		err := v.Edit(NewVaultItem("nope", "", ""), NewVaultItem("item9", "", ""))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"item1", "item2", "item3"}, v.List())
	})

	t.Run("rename onto another item", func(t *testing.T) {
		v := filledVault(t)
		old, _ := v.Get("item1")
		err := v.Edit(old, NewVaultItem("item2", "x", "y"))
		assert.ErrorIs(t, err, ErrDuplicate)

		// both items untouched
		one, _ := v.Get("item1")
		two, _ := v.Get("item2")
		assert.Equal(t, "it1", one.Login())
		assert.Equal(t, "it2", two.Login())
		assert.Equal(t, 3, v.Len())
	})

	t.Run("rename to empty name", func(t *testing.T) {
		v := filledVault(t)
		old, _ := v.Get("item1")
		assert.ErrorIs(t, v.Edit(old, NewVaultItem("", "x", "y")), ErrEmptyName)
		assert.True(t, v.Exists("item1"))
	})
}

func TestVault_Remove(t *testing.T) {
	v := filledVault(t)
	one, _ := v.Get("item1")
	require.NoError(t, v.Remove(one))
	assert.False(t, v.Exists("item1"))
	assert.Equal(t, 2, v.Len())

	err := v.Remove(NewVaultItem("item4", "it4", "1234"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, v.Len())
}

func TestVault_SearchByName(t *testing.T) {
	v := filledVault(t)
	require.NoError(t, v.Add(NewVaultItem("mail", "m", "p")))

	tests := []struct {
		prefix string
		want   []string
	}{
		{prefix: "ite", want: []string{"item1", "item2", "item3"}},
		{prefix: "item3", want: []string{"item3"}},
		{prefix: "m", want: []string{"mail"}},
		{prefix: "test", want: []string{}},
		{prefix: "", want: []string{"item1", "item2", "item3", "mail"}},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got := v.SearchByName(tt.prefix)
			names := make([]string, 0, len(got))
			for _, it := range got {
				names = append(names, it.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

// Пустой префикс возвращает то же множество, что и List.
func TestVault_SearchEmptyPrefixMatchesList(t *testing.T) {
	v := filledVault(t)
	items := v.SearchByName("")
	assert.True(t, slices.IsSortedFunc(items, CompareItems))
	assert.Len(t, items, len(v.List()))
	for i, name := range v.List() {
		assert.Equal(t, name, items[i].Name())
	}
	assert.Equal(t, items, v.Items())
}
