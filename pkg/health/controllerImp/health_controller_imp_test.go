package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Teo107/farmer-assistant/database"
	"github.com/Teo107/farmer-assistant/pkg/session"
)

func get(t *testing.T, h *HealthCtrl) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealth_OK(t *testing.T) {
	db, err := database.OpenSQLite("file:health_ok?mode=memory&cache=shared")
	require.NoError(t, err)
	st := session.NewStore()
	require.NoError(t, st.CompleteLink("+1", "F1"))
	require.True(t, st.MarkPending("+2"))

	rec, body := get(t, NewHealthCtrl(db, st))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["status"].(map[string]any)["ok"])
	sessions := body["sessions"].(map[string]any)
	assert.EqualValues(t, 1, sessions["linked"])
	assert.EqualValues(t, 1, sessions["pending"])
}

func TestHealth_NoDatabase(t *testing.T) {
	rec, body := get(t, NewHealthCtrl(nil, session.NewStore()))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	db := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, false, db["ok"])
	assert.Equal(t, "gorm db is nil", db["err"])
}
