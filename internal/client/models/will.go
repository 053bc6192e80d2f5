package models

type WillTemplate struct {
	ID    string
	Title string
}

var WillTemplates = []WillTemplate{
	{ID: "basic", Title: "Basic Will Template"},
	{ID: "property", Title: "Property & Asset Template"},
	{ID: "financial", Title: "Financial Asset Template"},
}

// WillDraft is the in-progress will. Signed is set once an e-signature has
// been captured.
type WillDraft struct {
	TemplateID    string
	Assets        string
	Beneficiaries string
	Signature     string
	Signed        bool
}
