package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctcsite/sitebuilder/internal/sitegen"
	"ctcsite/sitebuilder/internal/worker"
)

type recordingGenerator struct {
	requests chan sitegen.Request
}

func (r *recordingGenerator) Generate(req sitegen.Request) (*sitegen.Result, error) {
	r.requests <- req
	return &sitegen.Result{URL: "https://example.test/" + req.Subdomain + "/index.html"}, nil
}

func newWebhookTestApp(t *testing.T) (*fiber.App, *recordingGenerator) {
	t.Helper()
	dispatcher := worker.NewDispatcher(1, 10, testLogger())
	dispatcher.Run()
	t.Cleanup(dispatcher.Stop)

	gen := &recordingGenerator{requests: make(chan sitegen.Request, 10)}
	h := &ApplicationHandler{Logger: testLogger(), Generator: gen, Dispatcher: dispatcher}

	app := fiber.New()
	app.Post("/api/v1/hooks/site-created", h.OnSiteCreated)
	return app, gen
}

func postHook(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/hooks/site-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestOnSiteCreatedQueuesPublish(t *testing.T) {
	app, gen := newWebhookTestApp(t)

	status := postHook(t, app, `{
		"type": "INSERT",
		"table": "sites",
		"record": {
			"id": "11111111-1111-1111-1111-111111111111",
			"user_id": "22222222-2222-2222-2222-222222222222",
			"subdomain": "acme",
			"title": "Acme",
			"status": "pending"
		}
	}`)
	assert.Equal(t, fiber.StatusAccepted, status)

	req := <-gen.requests
	assert.Equal(t, "acme", req.Subdomain)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", req.UserID)
}

func TestOnSiteCreatedRejectsRecordWithoutSubdomain(t *testing.T) {
	app, gen := newWebhookTestApp(t)

	status := postHook(t, app, `{
		"type": "INSERT",
		"table": "sites",
		"record": {
			"id": "11111111-1111-1111-1111-111111111111",
			"user_id": "22222222-2222-2222-2222-222222222222",
			"subdomain": ""
		}
	}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, gen.requests)
}

func TestOnSiteCreatedRejectsRecordWithoutUser(t *testing.T) {
	app, gen := newWebhookTestApp(t)

	status := postHook(t, app, `{
		"type": "INSERT",
		"table": "sites",
		"record": {
			"id": "11111111-1111-1111-1111-111111111111",
			"subdomain": "acme"
		}
	}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, gen.requests)
}

func TestOnSiteCreatedRejectsMalformedBody(t *testing.T) {
	app, gen := newWebhookTestApp(t)
	assert.Equal(t, fiber.StatusBadRequest, postHook(t, app, `{not json`))
	assert.Empty(t, gen.requests)
}
