package jobs

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/models"
)

type stubGenerator struct {
	requests []sitegen.Request
	err      error
}

func (s *stubGenerator) Generate(req sitegen.Request) (*sitegen.Result, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &sitegen.Result{URL: "https://example.test/" + req.Subdomain + "/index.html"}, nil
}

func strPtr(s string) *string { return &s }

func sampleSite(t *testing.T) models.Site {
	t.Helper()
	content, err := json.Marshal(models.SiteContent{
		SelectedTemplateID: "portfolio-basic",
		FirstName:          "Ama",
		LastName:           "Mensah",
		PhoneNumber:        "+228 90 00 00 00",
	})
	require.NoError(t, err)

	return models.Site{
		ID:           uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:       uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Subdomain:    "acme",
		Title:        "Acme",
		Description:  strPtr("We sell anvils."),
		PrimaryColor: strPtr("#ff8800"),
		Status:       models.SiteStatusPending,
		Content:      content,
	}
}

func TestRequestFromSiteMapsRecordAndContent(t *testing.T) {
	req, err := RequestFromSite(sampleSite(t))
	require.NoError(t, err)

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", req.SiteID)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", req.UserID)
	assert.Equal(t, "acme", req.Subdomain)
	assert.Equal(t, "portfolio-basic", req.TemplateID)
	assert.Equal(t, "Acme", req.Fields.CompanyName)
	assert.Equal(t, "We sell anvils.", req.Fields.ActivityDescription)
	assert.Equal(t, "#ff8800", req.Fields.PrimaryColor)
	assert.Equal(t, "Ama", req.Fields.FirstName)
	assert.Equal(t, "+228 90 00 00 00", req.Fields.PhoneNumber)
}

func TestRequestFromSiteToleratesEmptyContent(t *testing.T) {
	site := sampleSite(t)
	site.Content = nil
	req, err := RequestFromSite(site)
	require.NoError(t, err)
	assert.Empty(t, req.TemplateID)
	assert.Empty(t, req.Fields.PhoneNumber)
}

func TestRequestFromSiteRejectsBrokenContent(t *testing.T) {
	site := sampleSite(t)
	site.Content = json.RawMessage(`{broken`)
	_, err := RequestFromSite(site)
	assert.Error(t, err)
}

func TestPublishSiteJobIDIsSubdomain(t *testing.T) {
	job := NewPublishSiteJob(sampleSite(t), &stubGenerator{})
	assert.Equal(t, "acme", job.ID())
}

func TestPublishSiteJobExecuteRunsGenerator(t *testing.T) {
	gen := &stubGenerator{}
	job := NewPublishSiteJob(sampleSite(t), gen)

	require.NoError(t, job.Execute())
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "acme", gen.requests[0].Subdomain)
}

func TestPublishSiteJobExecutePropagatesFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("storage down")}
	job := NewPublishSiteJob(sampleSite(t), gen)

	err := job.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage down")
}
