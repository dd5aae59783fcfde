package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Site statuses. A site is inserted as pending by the wizard and flipped
// to online by the publisher once its files are in the public bucket.
const (
	SiteStatusPending = "pending"
	SiteStatusOnline  = "online"
)

// Site represents a row of the sites table. The subdomain is the unique
// DNS label the generated site is published under; it never changes after
// creation. Pointers are used for nullable TEXT columns.
type Site struct {
	ID            uuid.UUID       `json:"id,omitempty"`
	UserID        uuid.UUID       `json:"user_id"`
	Subdomain     string          `json:"subdomain"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	PrimaryColor  *string         `json:"primary_color,omitempty"`
	SiteType      *string         `json:"site_type,omitempty"`
	Plan          *string         `json:"plan,omitempty"`
	Status        string          `json:"status"`
	WhatsappLink  *string         `json:"whatsapp_link,omitempty"`
	FacebookLink  *string         `json:"facebook_link,omitempty"`
	CoverImageURL *string         `json:"cover_image_url,omitempty"`
	Content       json.RawMessage `json:"content,omitempty"` // wizard form data (JSONB)
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	LastUpdatedAt time.Time       `json:"last_updated_at,omitempty"`
}

// SiteContent is the wizard form payload persisted in the content JSONB
// column and consumed again at generation time.
type SiteContent struct {
	SelectedTemplateID string `json:"selectedTemplateId,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
}

// DecodeContent parses the site's content column. An empty or absent
// column yields a zero SiteContent rather than an error.
func (s *Site) DecodeContent() (SiteContent, error) {
	var content SiteContent
	if len(s.Content) == 0 {
		return content, nil
	}
	err := json.Unmarshal(s.Content, &content)
	return content, err
}
