package sitegen

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplateStore struct {
	files     map[string]string
	failPaths map[string]bool
	calls     int
}

func (f *fakeTemplateStore) Download(filePath string) ([]byte, error) {
	f.calls++
	if f.failPaths[filePath] {
		return nil, errors.New("object not found")
	}
	content, ok := f.files[filePath]
	if !ok {
		return nil, errors.New("object not found")
	}
	return []byte(content), nil
}

type uploadedFile struct {
	data        string
	contentType string
}

type fakePublicStore struct {
	uploads   map[string]uploadedFile
	order     []string
	uploadErr error
	calls     int
}

func (f *fakePublicStore) Upload(filePath string, data []byte, contentType string) error {
	f.calls++
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploads == nil {
		f.uploads = make(map[string]uploadedFile)
	}
	f.uploads[filePath] = uploadedFile{data: string(data), contentType: contentType}
	f.order = append(f.order, filePath)
	return nil
}

func (f *fakePublicStore) PublicURL(filePath string) string {
	return "https://project.supabase.co/storage/v1/object/public/public-sites/" + filePath
}

type fakeSiteStore struct {
	scopes    []PublishScope
	updates   []PublishUpdate
	updateErr error
}

func (f *fakeSiteStore) UpdatePublished(scope PublishScope, update PublishUpdate) error {
	f.scopes = append(f.scopes, scope)
	f.updates = append(f.updates, update)
	return f.updateErr
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestGenerator(templates *fakeTemplateStore, public *fakePublicStore, sites *fakeSiteStore) *Generator {
	return NewGenerator(templates, public, sites, testLogger())
}

func TestGenerateRejectsMissingSubdomainBeforeAnyStoreCall(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	_, err := g.Generate(Request{UserID: "user-1"})

	assert.ErrorIs(t, err, ErrMissingSubdomain)
	assert.Zero(t, templates.calls)
	assert.Zero(t, public.calls)
	assert.Empty(t, sites.updates)
}

func TestGenerateRejectsMissingUserBeforeAnyStoreCall(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	_, err := g.Generate(Request{Subdomain: "acme"})

	assert.ErrorIs(t, err, ErrMissingUser)
	assert.Zero(t, templates.calls)
	assert.Zero(t, public.calls)
	assert.Empty(t, sites.updates)
}

func TestGenerateUnknownTemplateFallsBackToGeneric(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	result, err := g.Generate(Request{
		UserID:     "user-1",
		Subdomain:  "acme",
		TemplateID: "no-such-template",
		Fields: SiteFields{
			CompanyName:         "Acme",
			ActivityDescription: "We sell anvils.",
		},
	})

	require.NoError(t, err)
	// Unknown ids never touch the template bucket.
	assert.Zero(t, templates.calls)

	html := public.uploads["acme/index.html"]
	assert.Contains(t, html.data, "<h1>Acme</h1>")
	assert.Contains(t, html.data, "<p>We sell anvils.</p>")
	assert.NotContains(t, html.data, "{{COMPANY_NAME}}")
	assert.Equal(t, "text/html", html.contentType)
	assert.Equal(t, []string{"acme/index.html"}, result.Assets)
}

func TestGenerateHTMLFetchFailureFallsBackToGeneric(t *testing.T) {
	templates := &fakeTemplateStore{failPaths: map[string]bool{
		"Portfolio_vente/index.html": true,
		"Portfolio_vente/style.css":  true,
		"Portfolio_vente/script.js":  true,
	}}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	result, err := g.Generate(Request{
		UserID:     "user-1",
		Subdomain:  "acme",
		TemplateID: "portfolio-basic",
		Fields:     SiteFields{CompanyName: "Acme"},
	})

	require.NoError(t, err)
	assert.Contains(t, public.uploads["acme/index.html"].data, "<h1>Acme</h1>")
	// Optional assets failed to fetch: skipped, not fatal.
	assert.Equal(t, []string{"acme/index.html"}, result.Assets)
}

func TestGenerateRendersAllTemplateAssets(t *testing.T) {
	templates := &fakeTemplateStore{files: map[string]string{
		"Portfolio_vente/index.html": "<title>{{COMPANY_NAME}}</title>",
		"Portfolio_vente/style.css":  ".hero { color: {{PRIMARY_COLOR}}; }",
		"Portfolio_vente/script.js":  "console.log('{{SUBDOMAIN}}');",
	}}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	result, err := g.Generate(Request{
		SiteID:     "11111111-1111-1111-1111-111111111111",
		UserID:     "user-1",
		Subdomain:  "acme",
		TemplateID: "portfolio-basic",
		Fields: SiteFields{
			CompanyName:  "Acme",
			PrimaryColor: "#ff8800",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "<title>Acme</title>", public.uploads["acme/index.html"].data)
	assert.Equal(t, ".hero { color: #ff8800; }", public.uploads["acme/style.css"].data)
	assert.Equal(t, "console.log('acme');", public.uploads["acme/script.js"].data)
	assert.Equal(t, "text/css", public.uploads["acme/style.css"].contentType)
	assert.Equal(t, "application/javascript", public.uploads["acme/script.js"].contentType)
	assert.Equal(t, "https://project.supabase.co/storage/v1/object/public/public-sites/acme/index.html", result.URL)
}

func TestGenerateUpdatesRecordScopedByIDAndUser(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	_, err := g.Generate(Request{
		SiteID:    "site-1",
		UserID:    "user-1",
		Subdomain: "acme",
		Fields:    SiteFields{PhoneNumber: "+228 90 00 00 00"},
	})

	require.NoError(t, err)
	require.Len(t, sites.scopes, 1)
	assert.Equal(t, "site-1", sites.scopes[0].SiteID)
	assert.Equal(t, "user-1", sites.scopes[0].UserID)

	update := sites.updates[0]
	assert.Equal(t, "online", update.Status)
	assert.Equal(t, "https://wa.me/22890000000", update.WhatsappLink)
	assert.True(t, strings.HasSuffix(update.CoverImageURL, "acme/index.html"))
	assert.False(t, update.LastUpdatedAt.IsZero())
}

func TestGenerateIsIdempotent(t *testing.T) {
	req := Request{
		UserID:     "user-1",
		Subdomain:  "acme",
		TemplateID: "portfolio-basic",
		Fields:     SiteFields{CompanyName: "Acme", PhoneNumber: "+228 90 00 00 00"},
	}
	templates := &fakeTemplateStore{files: map[string]string{
		"Portfolio_vente/index.html": "<h1>{{COMPANY_NAME}}</h1>",
		"Portfolio_vente/style.css":  "body {}",
		"Portfolio_vente/script.js":  ";",
	}}

	first := &fakePublicStore{}
	second := &fakePublicStore{}
	sites := &fakeSiteStore{}

	_, err := newTestGenerator(templates, first, sites).Generate(req)
	require.NoError(t, err)
	_, err = newTestGenerator(templates, second, sites).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, first.uploads, second.uploads)
	assert.Equal(t, first.order, second.order)
}

func TestGenerateUploadFailureSurfacesProviderError(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{uploadErr: errors.New("bucket quota exceeded")}
	sites := &fakeSiteStore{}
	g := newTestGenerator(templates, public, sites)

	_, err := g.Generate(Request{UserID: "user-1", Subdomain: "acme"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket quota exceeded")
	// The record is never flipped online when the upload failed.
	assert.Empty(t, sites.updates)
}

func TestGenerateUpdateFailureSurfacesProviderError(t *testing.T) {
	templates := &fakeTemplateStore{}
	public := &fakePublicStore{}
	sites := &fakeSiteStore{updateErr: errors.New("permission denied")}
	g := newTestGenerator(templates, public, sites)

	_, err := g.Generate(Request{UserID: "user-1", Subdomain: "acme"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	// Files were already uploaded: the accepted consistency model leaves
	// them in place for the next idempotent re-publish.
	assert.NotZero(t, public.calls)
}
