// Package will is the will builder form: a template, free-text assets and
// beneficiaries, and an e-signature. Drafts are not persisted.
package will

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrNoTemplate      = errors.New("select a template first")
	ErrNoAssets        = errors.New("list at least one asset")
	ErrNoBeneficiaries = errors.New("list at least one beneficiary")
	ErrNoSignature     = errors.New("signature is empty")
	ErrUnsigned        = errors.New("the will is not signed")
)

func Template(id string) (models.WillTemplate, bool) {
	for _, t := range models.WillTemplates {
		if strings.EqualFold(t.ID, id) {
			return t, true
		}
	}
	return models.WillTemplate{}, false
}

type Builder struct {
	mu    sync.Mutex
	draft models.WillDraft
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Draft() models.WillDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

func (b *Builder) SelectTemplate(id string) (models.WillTemplate, error) {
	t, ok := Template(id)
	if !ok {
		return models.WillTemplate{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	b.mu.Lock()
	b.draft.TemplateID = t.ID
	b.mu.Unlock()
	return t, nil
}

// Editing the content after signing voids the signature.
func (b *Builder) SetAssets(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Assets = strings.TrimSpace(text)
	b.unsign()
}

func (b *Builder) SetBeneficiaries(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Beneficiaries = strings.TrimSpace(text)
	b.unsign()
}

func (b *Builder) unsign() {
	b.draft.Signature = ""
	b.draft.Signed = false
}

// Sign records the typed signature.
func (b *Builder) Sign(signature string) error {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return ErrNoSignature
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.draft.Signature = signature
	b.draft.Signed = true
	return nil
}

// Validate reports the first missing piece of the draft.
func (b *Builder) Validate() error {
	d := b.Draft()
	switch {
	case d.TemplateID == "":
		return ErrNoTemplate
	case d.Assets == "":
		return ErrNoAssets
	case d.Beneficiaries == "":
		return ErrNoBeneficiaries
	case !d.Signed:
		return ErrUnsigned
	}
	return nil
}

func (b *Builder) Summary() string {
	d := b.Draft()

	title := "(none)"
	if t, ok := Template(d.TemplateID); ok {
		title = t.Title
	}
	or := func(s string) string {
		if s == "" {
			return "(empty)"
		}
		return s
	}
	signed := "no"
	if d.Signed {
		signed = "yes, by " + d.Signature
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Template:      %s\n", title)
	fmt.Fprintf(&sb, "Assets:        %s\n", or(d.Assets))
	fmt.Fprintf(&sb, "Beneficiaries: %s\n", or(d.Beneficiaries))
	fmt.Fprintf(&sb, "Signed:        %s", signed)
	return sb.String()
}
