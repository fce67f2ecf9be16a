package commands

import (
	"context"
	"strings"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "cmd.list" }
func (listCmd) Usage() string       { return "list" }
func (listCmd) Scope() Scope        { return ScopeVault }

func (listCmd) Run(_ context.Context, sh *Shell, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	names, err := sh.session.ListElements()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		sh.Println(sh.tr.T("msg.empty_vault"))
		return nil
	}
	sh.printNames(names)
	return nil
}

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "cmd.show" }
func (showCmd) Usage() string       { return "show [<name>]" }
func (showCmd) Scope() Scope        { return ScopeVault }

func (showCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	name, err := itemName(ctx, sh, args)
	if err != nil {
		return err
	}
	login, password, err := sh.session.GetElementDetails(name)
	if err != nil {
		return err
	}
	sh.Println(sh.tr.Tf("msg.details", map[string]any{"Login": login, "Password": password}))
	return nil
}

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "cmd.add" }
func (addCmd) Usage() string       { return "add [<name> [<login>]]" }
func (addCmd) Scope() Scope        { return ScopeVault }

func (addCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	name, err := sh.arg(ctx, args, 0, "prompt.item_name")
	if err != nil {
		return err
	}
	login, err := sh.arg(ctx, args, 1, "prompt.item_login")
	if err != nil {
		return err
	}
	password, err := sh.readSecret(ctx, sh.tr.T("prompt.item_password"))
	if err != nil {
		return err
	}
	if err := sh.session.AddElement(name, login, password); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.item_added"))
	return nil
}

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "cmd.edit" }
func (editCmd) Usage() string       { return "edit [<name>]" }
func (editCmd) Scope() Scope        { return ScopeVault }

// Run looks the item up first so that a wrong name fails before any question is asked.
func (editCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	name, err := itemName(ctx, sh, args)
	if err != nil {
		return err
	}
	login, password, err := sh.session.GetElementDetails(name)
	if err != nil {
		return err
	}
	newName, err := sh.askDefault(ctx, "prompt.new_name", name, false)
	if err != nil {
		return err
	}
	newLogin, err := sh.askDefault(ctx, "prompt.new_login", login, false)
	if err != nil {
		return err
	}
	newPassword, err := sh.askDefault(ctx, "prompt.new_password", password, true)
	if err != nil {
		return err
	}
	if err := sh.session.EditElement(name, newName, newLogin, newPassword); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.item_updated"))
	return nil
}

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "cmd.rm" }
func (rmCmd) Usage() string       { return "rm [<name>]" }
func (rmCmd) Scope() Scope        { return ScopeVault }

func (rmCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	name, err := itemName(ctx, sh, args)
	if err != nil {
		return err
	}
	if err := sh.session.RemoveElement(name); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.item_removed"))
	return nil
}

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "cmd.search" }
func (searchCmd) Usage() string       { return "search [<prefix>]" }
func (searchCmd) Scope() Scope        { return ScopeVault }

// Run with an empty prefix lists every item.
func (searchCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	prefix, err := itemName(ctx, sh, args, "prompt.prefix")
	if err != nil {
		return err
	}
	names, err := sh.session.SearchByName(prefix)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		sh.Println(sh.tr.T("msg.no_match"))
		return nil
	}
	sh.printNames(names)
	return nil
}

// itemName takes the item name from args, joined so that names with spaces
// may be typed directly, or asks for it.
func itemName(ctx context.Context, sh *Shell, args []string, promptID ...string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	id := "prompt.item_name"
	if len(promptID) > 0 {
		id = promptID[0]
	}
	return sh.readLine(ctx, sh.tr.T(id))
}

func (sh *Shell) printNames(names []string) {
	for _, n := range names {
		sh.Println("  " + n)
	}
	sh.Println(hintStyle.Render(sh.tr.Tf("msg.total", map[string]any{"Count": len(names)})))
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(showCmd{})
	RegisterCmd(addCmd{})
	RegisterCmd(editCmd{})
	RegisterCmd(rmCmd{})
	RegisterCmd(searchCmd{})
}
