package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/access"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
)

const accessTimeLayout = "2006-01-02 15:04"

// Access lists the people the owner shares documents with.
func (a *App) Access(ctx context.Context) error {
	users := a.access.Users()
	if len(users) == 0 {
		a.say("Nobody has access to your documents.")
		return nil
	}
	for i, u := range users {
		a.say("%2d. %s <%s> %s", i+1, u.Name, u.Email, u.Role)
		a.say("    %s", strings.Join(u.Documents, ", "))
	}
	return nil
}

// Role changes the role of the n-th user.
func (a *App) Role(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.say("Usage: role <n> <viewer|editor|commenter>")
		return errUsage
	}
	role, err := models.ParseRole(args[1])
	if err != nil {
		return a.alert("Error", err)
	}
	if err := a.openUser(args[0]); err != nil {
		return a.alert("Error", err)
	}
	u, err := a.access.ChangeRole(role)
	if err != nil {
		return a.alert("Error", err)
	}
	a.say("Access Updated: %s is now %s.", u.Name, u.Role)
	return nil
}

// Revoke removes the n-th user after confirmation.
func (a *App) Revoke(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: revoke <n>")
		return errUsage
	}
	if err := a.openUser(args[0]); err != nil {
		return a.alert("Error", err)
	}
	defer a.access.Close()

	u, err := a.access.RequestRemove()
	if err != nil {
		return a.alert("Error", err)
	}
	ok, err := getConfirmation(a.reader, "Are you sure you want to remove "+u.Name+"?", a.out)
	if err != nil || !ok {
		a.access.CancelRemove()
		return err
	}
	if err := a.access.ConfirmRemove(); err != nil {
		return a.alert("Error", err)
	}
	a.say("%s no longer has access.", u.Name)
	return nil
}

func (a *App) Logs(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: logs <n>")
		return errUsage
	}
	if err := a.openUser(args[0]); err != nil {
		return a.alert("Error", err)
	}
	u, err := a.access.LastAccess()
	if err != nil {
		return a.alert("Error", err)
	}
	a.say("%s last accessed on %s", u.Name, u.LastAccess.Format(accessTimeLayout))
	return nil
}

// openUser selects the user at 1-based position ref of the access list.
func (a *App) openUser(ref string) error {
	n, err := strconv.Atoi(ref)
	users := a.access.Users()
	if err != nil || n < 1 || n > len(users) {
		return access.ErrUnknownUser
	}
	return a.access.Open(users[n-1].ID)
}
