package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"Passman/internal/cli/i18n"
	"Passman/internal/model"
	"Passman/internal/repo"
	"Passman/internal/service"
)

// Session is the part of service.Session the shell drives.
type Session interface {
	State() service.State
	CurrentUser() (string, bool)

	Login(login, password string) error
	CloseSession()
	CreateUser(login, password, confirm string) error
	RemoveUser(login, password string) error

	ListElements() ([]string, error)
	GetElementDetails(name string) (string, string, error)
	AddElement(name, login, password string) error
	EditElement(oldName, newName, newLogin, newPassword string) error
	RemoveElement(name string) error
	SearchByName(prefix string) ([]string, error)
}

// Shell reads commands line by line and runs them against a session.
type Shell struct {
	session Session
	tr      *i18n.Translator
	in      *bufio.Reader
	out     io.Writer
	fd      int // terminal descriptor of in, -1 when in is not a terminal
	logger  *zap.SugaredLogger
}

// Option configures a Shell.
type Option func(*Shell)

// WithTerminal makes password prompts read fd without echo.
func WithTerminal(fd int) Option {
	return func(sh *Shell) { sh.fd = fd }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(sh *Shell) {
		if l != nil {
			sh.logger = l
		}
	}
}

// NewShell creates a shell reading in and writing out.
func NewShell(session Session, tr *i18n.Translator, in io.Reader, out io.Writer, opts ...Option) *Shell {
	sh := &Shell{
		session: session,
		tr:      tr,
		in:      bufio.NewReader(in),
		out:     out,
		fd:      -1,
		logger:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(sh)
	}
	return sh
}

// Run shows the menu of the current state and executes choices until quit,
// end of input or ctx cancellation. Only the cancellation is returned as an error.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		sh.printMenu()
		line, err := sh.readLine(ctx, sh.tr.T("menu.choice"))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch err := sh.Exec(ctx, fields); {
		case err == nil:
		case errors.Is(err, ErrQuit), errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

// Exec runs one command line. fields[0] is a command name or a menu number.
// Recoverable errors are printed and nil is returned; ErrQuit, io.EOF and
// context errors are passed to the caller.
func (sh *Shell) Exec(ctx context.Context, fields []string) error {
	name := strings.ToLower(fields[0])
	args := fields[1:]

	if n, err := strconv.Atoi(name); err == nil {
		c, ok := sh.menuCommand(n)
		if !ok {
			sh.Error(sh.tr.T("menu.invalid"))
			return nil
		}
		return sh.run(ctx, c, args)
	}

	c, ok := Get(name)
	if !ok {
		sh.Error(sh.tr.Tf("help.unknown", map[string]any{"Name": name}))
		return nil
	}
	if !available(c, sh.scope()) {
		sh.Error(sh.tr.Tf("help.not_here", map[string]any{"Name": name}))
		return nil
	}
	return sh.run(ctx, c, args)
}

func (sh *Shell) run(ctx context.Context, c Command, args []string) error {
	err := c.Run(ctx, sh, args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrQuit), errors.Is(err, io.EOF), ctx.Err() != nil:
		return err
	case errors.Is(err, ErrUsage):
		sh.Println(sh.tr.Tf("help.usage", map[string]any{"Usage": c.Usage()}))
		return nil
	default:
		sh.Error(sh.describe(err))
		return nil
	}
}

func (sh *Shell) scope() Scope {
	if sh.session.State() == service.InVault {
		return ScopeVault
	}
	return ScopeMain
}

// menu returns the numbered commands of the current state and the command run by 0.
func (sh *Shell) menu() ([]string, string) {
	if sh.scope() == ScopeVault {
		return vaultMenu, "close"
	}
	return mainMenu, "quit"
}

func (sh *Shell) menuCommand(n int) (Command, bool) {
	items, exit := sh.menu()
	switch {
	case n == 0:
		return Get(exit)
	case n > 0 && n <= len(items):
		return Get(items[n-1])
	default:
		return nil, false
	}
}

func (sh *Shell) printMenu() {
	title := sh.tr.T("app.title")
	exitID := "menu.quit"
	if login, ok := sh.session.CurrentUser(); ok {
		title = sh.tr.Tf("vault.title", map[string]any{"Login": login})
		exitID = "menu.back"
	}
	items, _ := sh.menu()

	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, titleStyle.Render(center(title, menuWidth, '#')))
	fmt.Fprintln(sh.out)
	for i, name := range items {
		if c, ok := Get(name); ok {
			fmt.Fprintf(sh.out, "%d. %s\n", i+1, sh.tr.T(c.Description()))
		}
	}
	fmt.Fprintln(sh.out)
	fmt.Fprintf(sh.out, "0. %s\n", sh.tr.T(exitID))
	fmt.Fprintln(sh.out, hintStyle.Render(sh.tr.T("menu.hint")))
}

// describe turns an operation error into a localized message.
func (sh *Shell) describe(err error) string {
	switch {
	case errors.Is(err, repo.ErrIO):
		return sh.tr.Tf("error.save_failed", map[string]any{"Err": err})
	case errors.Is(err, service.ErrAuthFailed):
		return sh.tr.T("error.auth_failed")
	case errors.Is(err, service.ErrLoginTaken):
		return sh.tr.T("error.login_taken")
	case errors.Is(err, service.ErrLoginRequired):
		return sh.tr.T("error.login_required")
	case errors.Is(err, service.ErrPasswordMismatch):
		return sh.tr.T("error.password_mismatch")
	case errors.Is(err, service.ErrNoSession):
		return sh.tr.T("error.no_session")
	case errors.Is(err, service.ErrSessionOpen):
		return sh.tr.T("error.session_open")
	case errors.Is(err, model.ErrNotFound):
		return sh.tr.T("error.item_not_found")
	case errors.Is(err, model.ErrDuplicate):
		return sh.tr.T("error.item_exists")
	case errors.Is(err, model.ErrEmptyName):
		return sh.tr.T("error.name_required")
	default:
		sh.logger.Errorw("unexpected command error", "error", err)
		return sh.tr.Tf("error.unexpected", map[string]any{"Err": err})
	}
}

// Println writes a plain line.
func (sh *Shell) Println(msg string) {
	fmt.Fprintln(sh.out, msg)
}

// Success writes a confirmation line.
func (sh *Shell) Success(msg string) {
	fmt.Fprintln(sh.out, successStyle.Render(msg))
}

// Error writes an error line in red.
func (sh *Shell) Error(msg string) {
	fmt.Fprintln(sh.out, errorStyle.Render(msg))
}
