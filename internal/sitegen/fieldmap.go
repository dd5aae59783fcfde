package sitegen

import (
	"net/url"
	"strings"
	"unicode"
)

// defaultPrimaryColor is used for the URL-encoded color when no color was
// submitted, so SVG data URIs in templates always stay valid.
const defaultPrimaryColor = "#3b82f6"

// SiteFields carries everything the FieldMap is assembled from: the site
// record's display fields plus the wizard's form content.
type SiteFields struct {
	CompanyName         string
	ActivityDescription string
	PrimaryColor        string
	FirstName           string
	LastName            string
	PhoneNumber         string
	FacebookLink        string
	InstagramLink       string
	TwitterLink         string
	LinkedinLink        string
	LogoURL             string
	CoverImageURL       string
	AboutImageURL       string
	Subdomain           string
}

// BuildFieldMap assembles the placeholder dictionary for one generation
// request. Social links default to "#" and image URLs to the placeholder
// asset so templates never render dead attributes.
func BuildFieldMap(f SiteFields) FieldMap {
	color := f.PrimaryColor
	if color == "" {
		color = defaultPrimaryColor
	}

	return FieldMap{
		"COMPANY_NAME":          f.CompanyName,
		"ACTIVITY_DESCRIPTION":  f.ActivityDescription,
		"PRIMARY_COLOR":         f.PrimaryColor,
		"PRIMARY_COLOR_ENCODED": url.QueryEscape(color),
		"FIRST_NAME":            f.FirstName,
		"LAST_NAME":             f.LastName,
		"PHONE_NUMBER":          f.PhoneNumber,
		"WHATSAPP_LINK":         WhatsappLink(f.PhoneNumber),
		"FACEBOOK_LINK":         orDefault(f.FacebookLink, "#"),
		"INSTAGRAM_LINK":        orDefault(f.InstagramLink, "#"),
		"TWITTER_LINK":          orDefault(f.TwitterLink, "#"),
		"LINKEDIN_LINK":         orDefault(f.LinkedinLink, "#"),
		"LOGO_URL":              orDefault(f.LogoURL, "/placeholder.svg"),
		"COVER_IMAGE_URL":       orDefault(f.CoverImageURL, "/placeholder.svg"),
		"ABOUT_IMAGE_URL":       orDefault(f.AboutImageURL, "/placeholder.svg"),
		"SUBDOMAIN":             f.Subdomain,
	}
}

// WhatsappLink derives a wa.me deep link from a free-form phone number by
// stripping every non-digit character.
func WhatsappLink(phoneNumber string) string {
	var digits strings.Builder
	for _, r := range phoneNumber {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
