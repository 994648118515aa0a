package i18n

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(c, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondWithAPIError(t *testing.T) {
	w, body := respond(t, errorx.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "E4001", body["code"])
	assert.NotEmpty(t, body["error"])
}

func TestRespondWithUnknownError(t *testing.T) {
	w, body := respond(t, errors.New("disk on fire"))
	assert.Equal(t, errorx.ErrInternal.Status, w.Code)
	assert.Equal(t, errorx.ErrInternal.Code, body["code"])
	// the raw message is kept so operators can see what actually broke
	assert.Equal(t, "disk on fire", body["error"])
}
