package identity

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	svc, _, _ := setupService(t, "m1")
	app := fiber.New()
	require.NoError(t, NewFeature(svc).Load(app))
	return app
}

func decode(t *testing.T, body io.Reader, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(v))
}

func TestHandleGetPlayer(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/players/1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	decode(t, resp.Body, &body)
	assert.Equal(t, "success", body["status"])
	player := body["player"].(map[string]any)
	assert.Equal(t, "john", player["nickname"])
	assert.NotEmpty(t, player["anomaly"])

	resp, err = app.Test(httptest.NewRequest("GET", "/players/1?show_anomalies=false", nil))
	require.NoError(t, err)
	decode(t, resp.Body, &body)
	player = body["player"].(map[string]any)
	assert.Empty(t, player["anomaly"])

	resp, err = app.Test(httptest.NewRequest("GET", "/players/404", nil))
	require.NoError(t, err)
	body = map[string]any{}
	decode(t, resp.Body, &body)
	assert.Equal(t, "not-found", body["status"])
	assert.NotContains(t, body, "player")
}

func TestHandleHasPlayer(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/players/2/exists", nil))
	require.NoError(t, err)
	var body map[string]bool
	decode(t, resp.Body, &body)
	assert.True(t, body["exists"])
}

func TestHandleFind(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/players/find", strings.NewReader(`{"nickname":"Jo Hn"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var found []map[string]any
	decode(t, resp.Body, &found)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0]["oid"])

	req = httptest.NewRequest("POST", "/players/find", strings.NewReader(`{bad`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	req = httptest.NewRequest("POST", "/players/find", strings.NewReader(`{"faction":"enl"}`))
	req.Header.Set("Content-Type", "text/plain")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleSourcesForExtra(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/extras/event/e1/sources", nil))
	require.NoError(t, err)
	var refs []map[string]string
	decode(t, resp.Body, &refs)
	require.Len(t, refs, 1)
	assert.Equal(t, "First", refs[0]["tag"])
}

func TestHandleInformationAndErrors(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/information", nil))
	require.NoError(t, err)
	var info map[string]map[string]any
	decode(t, resp.Body, &info)
	assert.Equal(t, "m1", info["m1"]["tag"])
	assert.Contains(t, info["m1"]["sources"], "s1")

	resp, err = app.Test(httptest.NewRequest("GET", "/errors", nil))
	require.NoError(t, err)
	var errs map[string]map[string][]string
	decode(t, resp.Body, &errs)
	assert.Contains(t, errs["m1"], ".manifest")
	assert.Contains(t, errs["m1"], "s1")
}

func TestHandleManifests(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest("POST", "/manifests", strings.NewReader(`{"key":"m2"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest("POST", "/manifests", strings.NewReader(`{"key":"m2"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	req = httptest.NewRequest("POST", "/manifests", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/manifests/m2", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/manifests/m2", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleAdminActions(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/reload", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/cache/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleSettings(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/settings/show_extra", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("PUT", "/settings/show_extra", strings.NewReader(`false`)))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("PUT", "/settings/show_extra", strings.NewReader(`nope`)))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/settings/show_extra", nil))
	require.NoError(t, err)
	var body map[string]any
	decode(t, resp.Body, &body)
	assert.Equal(t, false, body["value"])

	resp, err = app.Test(httptest.NewRequest("GET", "/players/1", nil))
	require.NoError(t, err)
	body = map[string]any{}
	decode(t, resp.Body, &body)
	assert.Empty(t, body["player"].(map[string]any)["extra"])
}
