package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/menu"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
)

// recentCount is how many uploads the home screen lists.
const recentCount = 3

var (
	errUsage        = errors.New("usage")
	errDeleteFailed = errors.New("failed to delete document")
)

// Home is the dashboard: document count and the latest uploads.
func (a *App) Home(ctx context.Context) error {
	if err := a.docs.Refresh(ctx); err != nil {
		a.alert("Could not refresh documents", err)
	}
	a.say("Total documents: %d", a.view.Len())

	recent := a.view.Recent(recentCount)
	if len(recent) == 0 {
		a.say("No uploads yet. Use 'upload' to add one.")
		return nil
	}
	a.say("Recent uploads:")
	for _, d := range recent {
		a.say("  %s (%s) %s", d.Title, d.Type, d.UploadDate)
	}
	unread := a.feed.Unread()
	if unread > 0 {
		a.say("%d unread notification(s).", unread)
	}
	return nil
}

// List refreshes from the server and prints the current projection.
func (a *App) List(ctx context.Context) error {
	if err := a.docs.Refresh(ctx); err != nil {
		a.alert("Could not refresh documents", err)
	}
	a.printProjection()
	return nil
}

// Search sets the filter; no arguments clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	a.view.SetSearch(strings.Join(args, " "))
	a.printProjection()
	return nil
}

func (a *App) Sort(ctx context.Context) error {
	key := a.view.ToggleSort()
	a.say("Sorted by %s.", key.Label())
	a.printProjection()
	return nil
}

func (a *App) printProjection() {
	docs := a.view.Projection()
	header := "Sort: " + a.view.SortKey().Label()
	if q := a.view.Search(); q != "" {
		header += ` | Search: "` + q + `"`
	}
	a.say("%s", header)

	if len(docs) == 0 {
		a.say("No documents found.")
		return
	}
	for i, d := range docs {
		a.say("%2d. %s", i+1, d.Title)
		a.say("    %s | %s | %s", d.PropertyName, d.Address, d.Type)
	}
}

// Open binds the action menu to a document, given as its position in the
// last listing or its id.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.say("Usage: open <n|id>")
		return errUsage
	}
	doc, ok := a.resolveDocument(args[0])
	if !ok {
		a.say("Error: No document selected")
		return errUsage
	}
	a.menu.Open(doc)

	a.say("Options for %s", doc.Title)
	a.say("  Property: %s", doc.PropertyName)
	a.say("  Address:  %s", doc.Address)
	a.say("  Type:     %s", doc.Type)
	a.say("  File:     %s", doc.FileName)
	a.say("Actions: view, edit, share, delete, close")
	return nil
}

func (a *App) resolveDocument(ref string) (models.Document, bool) {
	if n, err := strconv.Atoi(ref); err == nil {
		docs := a.view.Projection()
		if n >= 1 && n <= len(docs) {
			return docs[n-1], true
		}
		return models.Document{}, false
	}
	return a.view.Find(ref)
}

func (a *App) View(ctx context.Context) error {
	doc, _ := a.menu.Selected()
	url, err := a.menu.View()
	if err != nil {
		return a.alert("Error", err)
	}
	a.say("Opening %s", doc.Title)
	a.say("%s", url)
	return nil
}

// Edit prompts for each metadata field; an empty answer keeps the value.
func (a *App) Edit(ctx context.Context) error {
	doc, ok := a.menu.Selected()
	if !ok {
		return a.alert("Error", menu.ErrNoSelection)
	}

	var patch models.DocumentPatch
	fields := []struct {
		label   string
		current string
		dst     **string
	}{
		{"Title", doc.Title, &patch.Title},
		{"Property name", doc.PropertyName, &patch.PropertyName},
		{"Address", doc.Address, &patch.Address},
		{"Type", doc.Type, &patch.Type},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label+" ["+f.current+"]", a.out)
		if err != nil {
			return err
		}
		if v != "" && v != f.current {
			*f.dst = &v
		}
	}

	if err := a.menu.EditMetadata(ctx, patch); err != nil {
		return a.alert("Update failed", err)
	}
	a.say("Document updated.")
	return nil
}

func (a *App) Share(ctx context.Context) error {
	doc, ok := a.menu.Selected()
	if !ok {
		return a.alert("Error", menu.ErrNoSelection)
	}
	recipient, err := getSimpleText(a.reader, "Recipient email", a.out)
	if err != nil {
		return err
	}
	if err := a.menu.Share(ctx, recipient); err != nil {
		return a.alert("Share failed", err)
	}
	a.say("Invited! Your invitation has been sent to %s", recipient)
	a.feed.Push(models.NotificationInviteRequest, "You invited "+recipient+" to view "+doc.Title, "Just now")
	return nil
}

// Delete asks for confirmation before anything is sent to the server.
func (a *App) Delete(ctx context.Context) error {
	doc, err := a.menu.RequestDelete()
	if err != nil {
		return a.alert("Error", err)
	}
	ok, err := getConfirmation(a.reader, `Are you sure you want to delete "`+doc.Title+`"?`, a.out)
	if err != nil {
		a.menu.CancelDelete()
		return err
	}
	if !ok {
		a.menu.CancelDelete()
		a.say("Cancelled.")
		return nil
	}
	if err := a.menu.ConfirmDelete(ctx); err != nil {
		a.log.Error(ctx, "delete failed", "id", doc.ID, "error", err)
		return a.alert("Error", errDeleteFailed)
	}
	a.say("Deleted %s.", doc.Title)
	return nil
}

func (a *App) CloseMenu(ctx context.Context) error {
	a.menu.Close()
	return nil
}

// Upload collects the file path and metadata and sends them to the server.
func (a *App) Upload(ctx context.Context) error {
	var form models.UploadForm
	prompts := []struct {
		label string
		dst   *string
	}{
		{"File path", &form.FilePath},
		{"Title (empty uses the file name)", &form.Title},
		{"Property name", &form.PropertyName},
		{"Address", &form.Address},
		{"File type (e.g., CPR Card)", &form.Type},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	id, err := a.docs.Upload(ctx, form)
	if err != nil {
		return a.alert("Upload failed", err)
	}
	a.log.Debug(ctx, "uploaded", "id", id)
	a.say("Document uploaded successfully!")
	return nil
}
