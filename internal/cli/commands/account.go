package commands

import (
	"context"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "cmd.login" }
func (loginCmd) Usage() string       { return "login [<login> [<password>]]" }
func (loginCmd) Scope() Scope        { return ScopeMain }

func (loginCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	login, err := sh.arg(ctx, args, 0, "prompt.login")
	if err != nil {
		return err
	}
	password, err := sh.secretArg(ctx, args, 1, "prompt.password")
	if err != nil {
		return err
	}
	if err := sh.session.Login(login, password); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.logged_in"))
	return nil
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "cmd.register" }
func (registerCmd) Usage() string       { return "register [<login>]" }
func (registerCmd) Scope() Scope        { return ScopeMain }

// Run always asks for the password twice so that a typo is caught before the store is touched.
func (registerCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	login, err := sh.arg(ctx, args, 0, "prompt.login")
	if err != nil {
		return err
	}
	password, err := sh.readSecret(ctx, sh.tr.T("prompt.password"))
	if err != nil {
		return err
	}
	confirm, err := sh.readSecret(ctx, sh.tr.T("prompt.confirm"))
	if err != nil {
		return err
	}
	if err := sh.session.CreateUser(login, password, confirm); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.user_created"))
	return nil
}

type removeUserCmd struct{}

func (removeUserCmd) Name() string        { return "remove-user" }
func (removeUserCmd) Description() string { return "cmd.remove_user" }
func (removeUserCmd) Usage() string       { return "remove-user [<login> [<password>]]" }
func (removeUserCmd) Scope() Scope        { return ScopeMain }

func (removeUserCmd) Run(ctx context.Context, sh *Shell, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	login, err := sh.arg(ctx, args, 0, "prompt.login")
	if err != nil {
		return err
	}
	password, err := sh.secretArg(ctx, args, 1, "prompt.password")
	if err != nil {
		return err
	}
	if err := sh.session.RemoveUser(login, password); err != nil {
		return err
	}
	sh.Success(sh.tr.T("msg.user_removed"))
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(registerCmd{})
	RegisterCmd(removeUserCmd{})
}
