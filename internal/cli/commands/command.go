// Package commands implements the interactive shell: a registry of commands,
// the numbered menus and the dispatcher used by cmd/passman.
package commands

import (
	"context"
	"errors"
	"sort"
)

var (
	// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
	ErrUsage = errors.New("usage")

	// ErrQuit stops the shell loop.
	ErrQuit = errors.New("quit")
)

// Scope tells in which session state a command is available.
type Scope int

const (
	// ScopeMain commands run while no vault is open.
	ScopeMain Scope = iota
	// ScopeVault commands need an open vault.
	ScopeVault
	// ScopeAny commands run everywhere.
	ScopeAny
)

// Command represents a shell command.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description returns the message id of a short description shown in menus and help.
	Description() string
	// Usage returns the usage string, e.g. "login [<login>]".
	Usage() string
	// Scope returns where the command is available.
	Scope() Scope
	// Run executes the command with provided args (without the command name).
	// Missing arguments are prompted for through sh.
	Run(ctx context.Context, sh *Shell, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Numbered menus, in the order they are shown. Choice 0 runs the exit command.
var (
	mainMenu  = []string{"login", "register", "remove-user"}
	vaultMenu = []string{"list", "show", "add", "edit", "rm", "search"}
)

// available reports whether c may run in scope.
func available(c Command, scope Scope) bool {
	return c.Scope() == ScopeAny || c.Scope() == scope
}
