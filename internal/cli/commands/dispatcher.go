package commands

import (
	"context"
	"errors"
	"strings"
)

// Dispatch is the single entry point of cmd/passman. Without args it runs the
// interactive shell; otherwise it runs one account command and returns a
// process exit code: 0 on success, 2 on usage errors, 1 on failures.
func Dispatch(ctx context.Context, sh *Shell, args []string) int {
	if len(args) == 0 {
		if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
			sh.Error(sh.describe(err))
			return 1
		}
		return 0
	}

	name := strings.ToLower(args[0])
	if name == "help" { // passman help [command]
		if len(args) == 1 {
			sh.Println(sh.FormatUsage(ScopeMain))
			return 0
		}
		if c, ok := Get(args[1]); ok {
			sh.Println(sh.tr.Tf("help.usage", map[string]any{"Usage": c.Usage()}))
			return 0
		}
		sh.Error(sh.tr.Tf("help.unknown", map[string]any{"Name": args[1]}))
		sh.Println(sh.FormatUsage(ScopeMain))
		return 2
	}

	c, ok := Get(name)
	if !ok {
		sh.Error(sh.tr.Tf("help.unknown", map[string]any{"Name": name}))
		sh.Println(sh.FormatUsage(ScopeMain))
		return 2
	}
	// A vault only stays open inside the shell.
	if c.Scope() == ScopeVault {
		sh.Error(sh.tr.Tf("help.not_here", map[string]any{"Name": name}))
		return 2
	}

	err := c.Run(ctx, sh, args[1:])
	switch {
	case err == nil, errors.Is(err, ErrQuit):
		return 0
	case errors.Is(err, ErrUsage):
		sh.Println(sh.tr.Tf("help.usage", map[string]any{"Usage": c.Usage()}))
		return 2
	default:
		sh.Error(sh.describe(err))
		return 1
	}
}
