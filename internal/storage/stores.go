package storage

import (
	"bytes"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"

	"ctcsite/sitebuilder/config"
)

// TemplateBucket reads template assets from the read-only templates bucket.
type TemplateBucket struct {
	client *storage_go.Client
	bucket string
}

// PublicBucket writes rendered site files into the public bucket and
// resolves their public URLs.
type PublicBucket struct {
	client *storage_go.Client
	bucket string
}

func newClient(cfg *config.Config) *storage_go.Client {
	return storage_go.NewClient(cfg.SupabaseURL+"/storage/v1", cfg.SupabaseKey, nil)
}

// NewTemplateBucket creates the template store over the configured bucket.
func NewTemplateBucket(cfg *config.Config) *TemplateBucket {
	return &TemplateBucket{client: newClient(cfg), bucket: cfg.TemplatesBucket}
}

// NewPublicBucket creates the public store over the configured bucket.
func NewPublicBucket(cfg *config.Config) *PublicBucket {
	return &PublicBucket{client: newClient(cfg), bucket: cfg.PublicBucket}
}

// Download fetches one template asset by its bucket path.
func (t *TemplateBucket) Download(filePath string) ([]byte, error) {
	data, err := t.client.DownloadFile(t.bucket, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from bucket %s: %w", filePath, t.bucket, err)
	}
	return data, nil
}

// Upload writes one rendered asset, overwriting any existing object at the
// same path so re-publishing a subdomain is idempotent.
func (p *PublicBucket) Upload(filePath string, data []byte, contentType string) error {
	upsert := true
	_, err := p.client.UploadFile(p.bucket, filePath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", filePath, p.bucket, err)
	}
	return nil
}

// PublicURL resolves the browsable URL of an object in the public bucket.
func (p *PublicBucket) PublicURL(filePath string) string {
	return p.client.GetPublicUrl(p.bucket, filePath).SignedURL
}
