package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"stocktake/core/storage"
	"stocktake/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, saveDir string) (*fiber.App, *mocks.Client, sqlmock.Sqlmock) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, sqlMock := setupMockDB(t)
	svc := NewService(mockClient, storageConfig(), db, saveDir, zap.NewNop())
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient, sqlMock
}

func TestHandleStructureCheck(t *testing.T) {
	app, mockClient, _ := setupTestApp(t, t.TempDir())

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyList())

	req := httptest.NewRequest("GET", "/integrity/structure", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, []any{"prefix"}, body["missing"])
}

func TestHandleStructureCheck_Disabled(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(nil, storage.Config{}, nil, t.TempDir(), zap.NewNop())).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/structure", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _, sqlMock := setupTestApp(t, t.TempDir())

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment").
		AddRow("barcode", "varchar(128)", "NO", "", nil, "")
	sqlMock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `scan_events`")).WillReturnRows(rows)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Matched bool `json:"matched"`
		Tables  map[string]struct {
			MissingColumns []string `json:"missing_columns"`
		} `json:"tables"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Matched)
	assert.ElementsMatch(t, []string{"accepted", "save_file", "scanned_at"}, body.Tables["scan_events"].MissingColumns)
}

func TestHandleSaveDirCheck(t *testing.T) {
	saveDir := filepath.Join(t.TempDir(), "saves")
	app, _, _ := setupTestApp(t, saveDir)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/savedir", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "checked", body["status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/integrity/savedir?fix=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "fixed", body["status"])
	assert.DirExists(t, saveDir)
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient, sqlMock := setupTestApp(t, t.TempDir())

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, assert.AnError)
	sqlMock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `scan_events`")).WillReturnError(assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]Section
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["savedir"].Status)
	assert.Equal(t, "failed", body["schema"].Status)
	assert.Equal(t, "error", body["structure"].Status)
}
