package model

import (
	"fmt"
	"slices"
	"strings"
)

// Vault is the collection of credential records owned by one user.
// Items are keyed by name, and items[k].Name() == k holds for every key.
type Vault struct {
	items map[string]VaultItem
}

// NewVault returns an empty vault.
func NewVault() *Vault {
	return &Vault{items: make(map[string]VaultItem)}
}

// Len returns the number of stored items.
func (v *Vault) Len() int { return len(v.items) }

// List returns the names of all items, sorted ascending.
func (v *Vault) List() []string {
	names := make([]string, 0, len(v.items))
	for name := range v.items {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Exists reports whether an item with the given name is stored.
func (v *Vault) Exists(name string) bool {
	_, ok := v.items[name]
	return ok
}

// Get returns the item stored under name.
func (v *Vault) Get(name string) (VaultItem, error) {
	it, ok := v.items[name]
	if !ok {
		return VaultItem{}, fmt.Errorf("item %q: %w", name, ErrNotFound)
	}
	return it, nil
}

// Add stores a new item. An existing item with the same name is never overwritten.
func (v *Vault) Add(item VaultItem) error {
	if item.name == "" {
		return ErrEmptyName
	}
	if v.Exists(item.name) {
		return fmt.Errorf("item %q: %w", item.name, ErrDuplicate)
	}
	v.items[item.name] = item
	return nil
}

// Edit replaces old with updated. The names may differ (rename); a rename onto the
// name of another stored item fails with ErrDuplicate and leaves the vault untouched.
func (v *Vault) Edit(old, updated VaultItem) error {
	if !v.Exists(old.name) {
		return fmt.Errorf("item %q: %w", old.name, ErrNotFound)
	}
	if updated.name == "" {
		return ErrEmptyName
	}
	if updated.name != old.name && v.Exists(updated.name) {
		return fmt.Errorf("item %q: %w", updated.name, ErrDuplicate)
	}
	delete(v.items, old.name)
	v.items[updated.name] = updated
	return nil
}

// Remove deletes the item with the same name as item.
func (v *Vault) Remove(item VaultItem) error {
	if !v.Exists(item.name) {
		return fmt.Errorf("item %q: %w", item.name, ErrNotFound)
	}
	delete(v.items, item.name)
	return nil
}

// SearchByName returns the items whose name starts with prefix, sorted by name.
// An empty prefix matches every item.
func (v *Vault) SearchByName(prefix string) []VaultItem {
	found := make([]VaultItem, 0)
	for name, it := range v.items {
		if strings.HasPrefix(name, prefix) {
			found = append(found, it)
		}
	}
	slices.SortFunc(found, CompareItems)
	return found
}

// Items returns every stored item sorted by name.
func (v *Vault) Items() []VaultItem {
	return v.SearchByName("")
}
