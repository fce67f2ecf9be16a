package commands

import (
	"context"
	"fmt"
)

type closeCmd struct{}

func (closeCmd) Name() string        { return "close" }
func (closeCmd) Description() string { return "cmd.close" }
func (closeCmd) Usage() string       { return "close" }
func (closeCmd) Scope() Scope        { return ScopeVault }

func (closeCmd) Run(_ context.Context, sh *Shell, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sh.session.CloseSession()
	sh.Success(sh.tr.T("msg.logged_out"))
	return nil
}

type quitCmd struct{}

func (quitCmd) Name() string        { return "quit" }
func (quitCmd) Description() string { return "cmd.quit" }
func (quitCmd) Usage() string       { return "quit" }
func (quitCmd) Scope() Scope        { return ScopeAny }

func (quitCmd) Run(_ context.Context, sh *Shell, _ []string) error {
	sh.Println(sh.tr.T("msg.bye"))
	return ErrQuit
}

type helpCmd struct{}

func (helpCmd) Name() string        { return "help" }
func (helpCmd) Description() string { return "cmd.help" }
func (helpCmd) Usage() string       { return "help [<command>]" }
func (helpCmd) Scope() Scope        { return ScopeAny }

func (helpCmd) Run(_ context.Context, sh *Shell, args []string) error {
	switch len(args) {
	case 0:
		sh.Println(sh.FormatUsage(sh.scope()))
		return nil
	case 1:
		c, ok := Get(args[0])
		if !ok {
			sh.Error(sh.tr.Tf("help.unknown", map[string]any{"Name": args[0]}))
			return nil
		}
		sh.Println(sh.tr.Tf("help.usage", map[string]any{"Usage": c.Usage()}))
		sh.Println("  " + sh.tr.T(c.Description()))
		return nil
	default:
		return ErrUsage
	}
}

// FormatUsage builds a help text for the commands available in scope.
func (sh *Shell) FormatUsage(scope Scope) string {
	text := sh.tr.T("help.header") + "\n"
	for _, c := range List() {
		if !available(c, scope) {
			continue
		}
		text += fmt.Sprintf("  %-36s %s\n", c.Usage(), sh.tr.T(c.Description()))
	}
	return text
}

func init() {
	RegisterCmd(closeCmd{})
	RegisterCmd(quitCmd{})
	RegisterCmd(helpCmd{})
}
