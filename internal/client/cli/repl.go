package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Home(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Sort(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	View(ctx context.Context) error
	Edit(ctx context.Context) error
	Share(ctx context.Context) error
	Delete(ctx context.Context) error
	CloseMenu(ctx context.Context) error
	Upload(ctx context.Context) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	Access(ctx context.Context) error
	Role(ctx context.Context, args []string) error
	Revoke(ctx context.Context, args []string) error
	Logs(ctx context.Context, args []string) error

	Notifications(ctx context.Context) error
	MarkRead(ctx context.Context) error

	Will(ctx context.Context) error
	Template(ctx context.Context, args []string) error
	Assets(ctx context.Context) error
	Beneficiaries(ctx context.Context) error
	Sign(ctx context.Context) error

	About(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: register, login, about, exit"
	helpMember = "Available commands:\n" +
		"  home, list, search <text>, sort, upload\n" +
		"  open <n|id>, view, edit, share, delete, close\n" +
		"  profile, editprofile, access, role <n> <role>, revoke <n>, logs <n>\n" +
		"  notifications, markread\n" +
		"  will, template <id>, assets, beneficiaries, sign\n" +
		"  whoami, about, logout, exit"
)

// memberOnly lists the commands that need a session.
var memberOnly = map[string]bool{
	"logout": true, "whoami": true,
	"home": true, "list": true, "l": true, "search": true, "sort": true,
	"open": true, "view": true, "edit": true, "share": true, "delete": true,
	"close": true, "upload": true,
	"profile": true, "editprofile": true,
	"access": true, "role": true, "revoke": true, "logs": true,
	"notifications": true, "markread": true,
	"will": true, "template": true, "assets": true, "beneficiaries": true, "sign": true,
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit"/"quit" or the end of ctx. Handlers print their own alerts; their
// errors never stop the loop.
func runREPL(ctx context.Context, a execIface, out io.Writer, statusFn func() string, scanner *bufio.Scanner) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }
	lines, next := scanLines(scanner)
	defer close(next)

	for {
		say(fmt.Sprintf("elegacy %s> ", statusFn()))

		next <- struct{}{}
		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if memberOnly[cmd] && !a.isLoggedIn() {
			say("Please log in first (use 'login' or 'register').")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				say(helpMember)
			} else {
				say(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "home":
			_ = a.Home(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "search":
			_ = a.Search(ctx, args)
		case "sort":
			_ = a.Sort(ctx)
		case "open":
			_ = a.Open(ctx, args)
		case "view":
			_ = a.View(ctx)
		case "edit":
			_ = a.Edit(ctx)
		case "share":
			_ = a.Share(ctx)
		case "delete":
			_ = a.Delete(ctx)
		case "close":
			_ = a.CloseMenu(ctx)
		case "upload":
			_ = a.Upload(ctx)

		case "profile":
			_ = a.Profile(ctx)
		case "editprofile":
			_ = a.EditProfile(ctx)

		case "access":
			_ = a.Access(ctx)
		case "role":
			_ = a.Role(ctx, args)
		case "revoke":
			_ = a.Revoke(ctx, args)
		case "logs":
			_ = a.Logs(ctx, args)

		case "notifications":
			_ = a.Notifications(ctx)
		case "markread":
			_ = a.MarkRead(ctx)

		case "will":
			_ = a.Will(ctx)
		case "template":
			_ = a.Template(ctx, args)
		case "assets":
			_ = a.Assets(ctx)
		case "beneficiaries":
			_ = a.Beneficiaries(ctx)
		case "sign":
			_ = a.Sign(ctx)

		case "about":
			_ = a.About(ctx)

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}
	}
}

// scanLines scans one line per request on next, so commands can prompt on
// the same input between two scans. lines is closed at EOF.
func scanLines(scanner *bufio.Scanner) (<-chan string, chan<- struct{}) {
	lines := make(chan string, 1)
	next := make(chan struct{})
	go func() {
		defer close(lines)
		for range next {
			if !scanner.Scan() {
				return
			}
			lines <- scanner.Text()
		}
	}()
	return lines, next
}
