package models

// TemplateDescriptor maps a template identifier to the asset files that make
// it up inside the templates bucket. HTML is mandatory; CSS and JS are
// optional extras a template may or may not ship.
type TemplateDescriptor struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
	CSS  string `json:"css,omitempty"`
	JS   string `json:"js,omitempty"`
}

// templateCatalog is the read-only mapping of known template identifiers to
// their bucket assets.
var templateCatalog = map[string]TemplateDescriptor{
	"ecommerce-luxury": {
		ID:   "ecommerce-luxury",
		HTML: "samira_shop_v2.html",
		CSS:  "style-luxury.css",
		JS:   "script.js",
	},
	"ecommerce-basic": {
		ID:   "ecommerce-basic",
		HTML: "Template de vente.html",
		CSS:  "style.css",
		JS:   "script.js",
	},
	"portfolio-basic": {
		ID:   "portfolio-basic",
		HTML: "Portfolio_vente/index.html",
		CSS:  "Portfolio_vente/style.css",
		JS:   "Portfolio_vente/script.js",
	},
}

// LookupTemplate resolves a template identifier. The second return reports
// whether the id was known; callers fall back to the built-in generic shell
// when it was not.
func LookupTemplate(id string) (TemplateDescriptor, bool) {
	desc, ok := templateCatalog[id]
	return desc, ok
}

// ListTemplates returns the catalog for display in the template picker.
func ListTemplates() []TemplateDescriptor {
	out := make([]TemplateDescriptor, 0, len(templateCatalog))
	for _, d := range templateCatalog {
		out = append(out, d)
	}
	return out
}
