package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/common"
)

// Interactive input indirections, swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
)

// Register asks for name, email, password and its confirmation and creates
// the account. The user still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	form := models.SignupForm{
		Name:            name,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}
	if err := a.auth.Register(ctx, form); err != nil {
		return a.alert("Registration failed", err)
	}

	a.say("Registration Successful! You can now log in.")
	return nil
}

// Login authenticates and, on success, loads the document list.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, email, string(password)); err != nil {
		return a.alert("Login Failed", err)
	}

	a.welcome(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.alert("Logout", err)
	}
	return nil
}

// WhoAmI prints the session identity and, when the session carries a JWT,
// its claims. The claims are decoded without verification.
func (a *App) WhoAmI(ctx context.Context) error {
	rec := a.gate.Session()
	if rec == nil {
		return nil
	}
	a.say("Name:  %s", rec.Name())
	a.say("Email: %s", rec.Email())

	claims, err := rec.Claims()
	if err != nil {
		a.say("Token: %s", "none or unreadable")
		return nil
	}

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.say("  %s: %s", k, formatClaim(k, claims[k]))
	}
	return nil
}

func formatClaim(key string, v any) string {
	switch key {
	case "exp", "iat", "nbf":
		if f, ok := v.(float64); ok {
			return time.Unix(int64(f), 0).UTC().Format(time.RFC3339)
		}
	}
	return fmt.Sprint(v)
}
