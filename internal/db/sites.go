package db

import (
	"fmt"
	"log"

	postgrest "github.com/supabase-community/postgrest-go"

	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/models"
)

const sitesTable = "sites"

// SiteRepository persists sites rows over PostgREST. The publisher and the
// generator go through this repository; gateway handlers use the shared
// Supabase client directly.
type SiteRepository struct {
	client *postgrest.Client
}

// NewSiteRepository initializes a PostgREST client with the service key.
// The service key is required because publish updates bypass row-level
// security.
func NewSiteRepository(supabaseURL, serviceKey string) (*SiteRepository, error) {
	if supabaseURL == "" || serviceKey == "" {
		return nil, fmt.Errorf("supabase URL and service key must be set")
	}

	client := postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        serviceKey,
		"Authorization": fmt.Sprintf("Bearer %s", serviceKey),
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("failed to initialize PostgREST client: %w", client.ClientError)
	}

	log.Println("PostgREST client initialized successfully.")
	return &SiteRepository{client: client}, nil
}

// ListPending returns sites still waiting to be published, oldest first is
// not guaranteed; the publisher treats the batch as unordered.
func (r *SiteRepository) ListPending(limit int) ([]models.Site, error) {
	var sites []models.Site
	_, err := r.client.From(sitesTable).
		Select("*", "", false).
		Eq("status", models.SiteStatusPending).
		Limit(limit, "").
		ExecuteTo(&sites)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sites: %w", err)
	}
	return sites, nil
}

// GetBySubdomain fetches one site row by its subdomain.
func (r *SiteRepository) GetBySubdomain(subdomain string) (*models.Site, error) {
	var sites []models.Site
	_, err := r.client.From(sitesTable).
		Select("*", "", false).
		Eq("subdomain", subdomain).
		ExecuteTo(&sites)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site %s: %w", subdomain, err)
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("site %s not found", subdomain)
	}
	return &sites[0], nil
}

// UpdatePublished writes the publish result onto the row. The update is
// always scoped by the owning user id, plus the record id when known and
// the subdomain otherwise, so a request can only touch the record it is
// entitled to.
func (r *SiteRepository) UpdatePublished(scope sitegen.PublishScope, update sitegen.PublishUpdate) error {
	updateData := map[string]interface{}{
		"status":          update.Status,
		"cover_image_url": update.CoverImageURL,
		"last_updated_at": update.LastUpdatedAt,
		"whatsapp_link":   update.WhatsappLink,
	}

	query := r.client.From(sitesTable).Update(updateData, "", "").Eq("user_id", scope.UserID)
	if scope.SiteID != "" {
		query = query.Eq("id", scope.SiteID)
	} else {
		query = query.Eq("subdomain", scope.Subdomain)
	}

	if _, _, err := query.Execute(); err != nil {
		return fmt.Errorf("failed to update site record: %w", err)
	}
	return nil
}
