package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/client/will"
)

var notificationIcons = map[models.NotificationType]string{
	models.NotificationShareAccept:   "[share]",
	models.NotificationDocView:       "[view] ",
	models.NotificationInviteRequest: "[invite]",
}

func (a *App) Notifications(ctx context.Context) error {
	items := a.feed.Items()
	a.say("Notifications (%d unread)", a.feed.Unread())
	for _, n := range items {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		a.say("%s %s %s (%s)", mark, notificationIcons[n.Type], n.Message, n.Time)
	}
	return nil
}

func (a *App) MarkRead(ctx context.Context) error {
	a.feed.MarkAllRead()
	a.say("All notifications marked as read.")
	return nil
}

// Will shows the templates and the current draft.
func (a *App) Will(ctx context.Context) error {
	a.say("Templates:")
	for _, t := range models.WillTemplates {
		a.say("  %-10s %s", t.ID, t.Title)
	}
	a.say("%s", a.will.Summary())
	return nil
}

func (a *App) Template(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: template <basic|property|financial>")
		return errUsage
	}
	t, err := a.will.SelectTemplate(args[0])
	if err != nil {
		return a.alert("Error", err)
	}
	a.say("Selected %s.", t.Title)
	return nil
}

func (a *App) Assets(ctx context.Context) error {
	text, err := getMultiline(a.reader, "List your assets", a.out)
	if err != nil {
		return err
	}
	a.will.SetAssets(text)
	return nil
}

func (a *App) Beneficiaries(ctx context.Context) error {
	text, err := getMultiline(a.reader, "List your beneficiaries", a.out)
	if err != nil {
		return err
	}
	a.will.SetBeneficiaries(text)
	return nil
}

// Sign captures the e-signature and reports what is still missing.
func (a *App) Sign(ctx context.Context) error {
	sig, err := getSimpleText(a.reader, "Type your full name to sign", a.out)
	if err != nil {
		return err
	}
	if err := a.will.Sign(sig); err != nil {
		return a.alert("Error", err)
	}
	if err := a.will.Validate(); err != nil {
		if errors.Is(err, will.ErrUnsigned) {
			return a.alert("Error", err)
		}
		a.say("Signed, but the will is incomplete: %s", err)
		return nil
	}
	a.say("Your will is complete and signed.")
	return nil
}

const aboutText = `About eLegacy
Securely manage your digital and financial assets, assign beneficiaries,
and safeguard your digital legacy.

How to use:
  1. Create an account and log in.
  2. Upload your documents.
  3. Assign beneficiaries and share with the people you trust.
  4. Manage and track your digital legacy.`

func (a *App) About(ctx context.Context) error {
	a.say("%s", strings.TrimSpace(aboutText))
	if a.config != nil {
		a.say("Server: %s", a.config.ServerBaseURL)
	}
	return nil
}
