package model

import "strings"

// VaultItem is one stored credential record. It is immutable: editing means
// building a replacement and swapping it in through Vault.Edit.
type VaultItem struct {
	name     string
	login    string
	password string
}

// NewVaultItem builds a credential record.
func NewVaultItem(name, login, password string) VaultItem {
	return VaultItem{name: name, login: login, password: password}
}

// Name returns the item key inside its vault.
func (it VaultItem) Name() string { return it.name }

// Login returns the stored login.
func (it VaultItem) Login() string { return it.login }

// Password returns the stored secret as plain text.
func (it VaultItem) Password() string { return it.password }

// CompareItems orders items by name, for use with slices.SortFunc.
func CompareItems(a, b VaultItem) int {
	return strings.Compare(a.name, b.name)
}
