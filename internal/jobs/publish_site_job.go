package jobs

import (
	"fmt"

	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/models"
)

// Generator runs one site generation. Satisfied by *sitegen.Generator;
// narrowed to an interface so handlers and tests can substitute it.
type Generator interface {
	Generate(req sitegen.Request) (*sitegen.Result, error)
}

// PublishSiteJob renders and publishes one site record. The job id is the
// subdomain: repeated submissions for the same site converge on the same
// published files, so duplicate jobs are harmless.
type PublishSiteJob struct {
	Site      models.Site
	Generator Generator
}

// NewPublishSiteJob creates a publish job for a sites row.
func NewPublishSiteJob(site models.Site, generator Generator) *PublishSiteJob {
	return &PublishSiteJob{Site: site, Generator: generator}
}

// ID returns the stable identifier of the job.
func (j *PublishSiteJob) ID() string {
	return j.Site.Subdomain
}

// Execute builds the generation request from the persisted record and runs
// the generator.
func (j *PublishSiteJob) Execute() error {
	req, err := RequestFromSite(j.Site)
	if err != nil {
		return err
	}
	if _, err := j.Generator.Generate(req); err != nil {
		return fmt.Errorf("publish of %s failed: %w", j.Site.Subdomain, err)
	}
	return nil
}

// RequestFromSite maps a sites row and its form content onto a generation
// request. Nullable columns collapse to empty strings; the field map layer
// applies the display defaults.
func RequestFromSite(site models.Site) (sitegen.Request, error) {
	content, err := site.DecodeContent()
	if err != nil {
		return sitegen.Request{}, fmt.Errorf("invalid content payload for site %s: %w", site.Subdomain, err)
	}

	return sitegen.Request{
		SiteID:     site.ID.String(),
		UserID:     site.UserID.String(),
		Subdomain:  site.Subdomain,
		TemplateID: content.SelectedTemplateID,
		Fields: sitegen.SiteFields{
			CompanyName:         site.Title,
			ActivityDescription: deref(site.Description),
			PrimaryColor:        deref(site.PrimaryColor),
			FirstName:           content.FirstName,
			LastName:            content.LastName,
			PhoneNumber:         content.PhoneNumber,
			FacebookLink:        deref(site.FacebookLink),
			CoverImageURL:       deref(site.CoverImageURL),
			Subdomain:           site.Subdomain,
		},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
