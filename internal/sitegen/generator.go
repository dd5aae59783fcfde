package sitegen

import (
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"ctcsite/sitebuilder/models"
)

// Validation errors returned before any store is touched. Handlers map these
// to client-error responses.
var (
	ErrMissingSubdomain = errors.New("subdomain is required")
	ErrMissingUser      = errors.New("user id is required")
)

// TemplateStore reads template assets out of the templates bucket.
type TemplateStore interface {
	Download(filePath string) ([]byte, error)
}

// PublicStore writes rendered assets into the public bucket and resolves
// their public URLs. Uploads must overwrite existing objects so repeated
// publishes of the same subdomain converge.
type PublicStore interface {
	Upload(filePath string, data []byte, contentType string) error
	PublicURL(filePath string) string
}

// PublishScope identifies the record a publish is entitled to update. When
// SiteID is set the update is scoped by id and user id; otherwise by
// subdomain and user id.
type PublishScope struct {
	SiteID    string
	UserID    string
	Subdomain string
}

// PublishUpdate carries the fields the generator writes back to the sites
// row once the files are uploaded.
type PublishUpdate struct {
	Status        string
	CoverImageURL string
	WhatsappLink  string
	LastUpdatedAt time.Time
}

// SiteStore persists the publish result onto the sites row.
type SiteStore interface {
	UpdatePublished(scope PublishScope, update PublishUpdate) error
}

// Request is the input of one generation run: the record identity, the
// requested template and the fields to substitute.
type Request struct {
	SiteID     string
	UserID     string
	Subdomain  string
	TemplateID string
	Fields     SiteFields
}

// Result reports a successful publish.
type Result struct {
	URL    string
	Assets []string
}

// Generator renders a site from its template and publishes it. It performs
// two classes of durable writes (bucket uploads, row update) with no
// transaction across them; re-running the same request converges because
// uploads overwrite and substitution is deterministic.
type Generator struct {
	Templates TemplateStore
	Public    PublicStore
	Sites     SiteStore
	Logger    *logrus.Logger
}

// NewGenerator creates a Generator with the given stores and logger.
func NewGenerator(templates TemplateStore, public PublicStore, sites SiteStore, logger *logrus.Logger) *Generator {
	return &Generator{
		Templates: templates,
		Public:    public,
		Sites:     sites,
		Logger:    logger,
	}
}

type renderedAsset struct {
	path        string
	data        []byte
	contentType string
}

// Generate runs one publish end to end: resolve the template, build the
// field map, substitute, upload, then flip the record online. Template
// resolution never fails the run; the built-in generic shell covers unknown
// ids and unfetchable HTML. Provider errors are returned as-is for the
// caller to surface, with no retries.
func (g *Generator) Generate(req Request) (*Result, error) {
	if req.Subdomain == "" {
		return nil, ErrMissingSubdomain
	}
	if req.UserID == "" {
		return nil, ErrMissingUser
	}

	req.Fields.Subdomain = req.Subdomain
	fields := BuildFieldMap(req.Fields)

	assets := g.renderAssets(req, fields)

	uploaded := make([]string, 0, len(assets))
	for _, asset := range assets {
		if err := g.Public.Upload(asset.path, asset.data, asset.contentType); err != nil {
			return nil, fmt.Errorf("failed to upload site file %s: %w", asset.path, err)
		}
		g.Logger.Infof("Uploaded %s", asset.path)
		uploaded = append(uploaded, asset.path)
	}

	indexPath := req.Subdomain + "/index.html"
	publicURL := g.Public.PublicURL(indexPath)

	update := PublishUpdate{
		Status:        models.SiteStatusOnline,
		CoverImageURL: publicURL,
		WhatsappLink:  WhatsappLink(req.Fields.PhoneNumber),
		LastUpdatedAt: time.Now().UTC(),
	}
	scope := PublishScope{SiteID: req.SiteID, UserID: req.UserID, Subdomain: req.Subdomain}
	if err := g.Sites.UpdatePublished(scope, update); err != nil {
		return nil, fmt.Errorf("failed to update site status: %w", err)
	}

	g.Logger.Infof("Site %s published at %s", req.Subdomain, publicURL)
	return &Result{URL: publicURL, Assets: uploaded}, nil
}

// renderAssets resolves the template descriptor and produces the final file
// set for the subdomain. The HTML asset is always present; CSS and JS are
// skipped when the descriptor omits them or the bucket fetch fails.
func (g *Generator) renderAssets(req Request, fields FieldMap) []renderedAsset {
	html := GenericTemplateHTML

	desc, known := models.LookupTemplate(req.TemplateID)
	if !known {
		g.Logger.Warnf("Unknown template id %q, using generic template", req.TemplateID)
	} else {
		data, err := g.Templates.Download(desc.HTML)
		if err != nil {
			g.Logger.Errorf("Error fetching HTML template %s: %v, using generic template", desc.HTML, err)
		} else {
			html = string(data)
		}
	}

	assets := []renderedAsset{{
		path:        req.Subdomain + "/index.html",
		data:        []byte(Substitute(html, fields)),
		contentType: "text/html",
	}}

	if known && desc.CSS != "" {
		if data, err := g.Templates.Download(desc.CSS); err != nil {
			g.Logger.Warnf("Error fetching CSS template %s: %v", desc.CSS, err)
		} else {
			assets = append(assets, renderedAsset{
				path:        req.Subdomain + "/" + path.Base(desc.CSS),
				data:        []byte(Substitute(string(data), fields)),
				contentType: "text/css",
			})
		}
	}

	if known && desc.JS != "" {
		if data, err := g.Templates.Download(desc.JS); err != nil {
			g.Logger.Warnf("Error fetching JS template %s: %v", desc.JS, err)
		} else {
			assets = append(assets, renderedAsset{
				path:        req.Subdomain + "/" + path.Base(desc.JS),
				data:        []byte(Substitute(string(data), fields)),
				contentType: "application/javascript",
			})
		}
	}

	return assets
}
