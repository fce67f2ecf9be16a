package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

type readResult struct {
	line string
	err  error
}

// readLine prints prompt and waits for one line of input or for ctx to end.
// The trailing newline is stripped. A final line without newline is accepted.
func (sh *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	ch := make(chan readResult, 1)
	go func() {
		s, err := sh.in.ReadString('\n')
		ch <- readResult{line: s, err: err}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(sh.out)
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return strings.TrimRight(r.line, "\r\n"), nil
	}
}

// readSecret reads a line without echo when input is a terminal.
func (sh *Shell) readSecret(ctx context.Context, prompt string) (string, error) {
	if sh.fd < 0 {
		return sh.readLine(ctx, prompt)
	}
	fmt.Fprint(sh.out, prompt)
	ch := make(chan readResult, 1)
	go func() {
		b, err := term.ReadPassword(sh.fd)
		ch <- readResult{line: string(b), err: err}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(sh.out)
		return "", ctx.Err()
	case r := <-ch:
		fmt.Fprintln(sh.out)
		return r.line, r.err
	}
}

// arg returns args[i] when given, otherwise asks for it with the message promptID.
func (sh *Shell) arg(ctx context.Context, args []string, i int, promptID string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return sh.readLine(ctx, sh.tr.T(promptID))
}

// secretArg is arg for passwords.
func (sh *Shell) secretArg(ctx context.Context, args []string, i int, promptID string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return sh.readSecret(ctx, sh.tr.T(promptID))
}

// askDefault shows current next to the prompt; an empty answer keeps it.
// When secret is set the current value is masked and the answer is not echoed.
func (sh *Shell) askDefault(ctx context.Context, promptID, current string, secret bool) (string, error) {
	shown := current
	if secret {
		shown = sh.tr.T("prompt.secret_kept")
	}
	prompt := fmt.Sprintf("%s (%s): ", sh.tr.T(promptID), shown)

	var (
		answer string
		err    error
	)
	if secret {
		answer, err = sh.readSecret(ctx, prompt)
	} else {
		answer, err = sh.readLine(ctx, prompt)
	}
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}
