package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderbill/backend/internal/domain/shared"
	"github.com/orderbill/backend/internal/interfaces/http/dto"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	c, w := newTestContext()
	h := &BaseHandler{}

	h.Success(c, gin.H{"answer": 42})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_HandleError(t *testing.T) {
	t.Run("maps not found to 404", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}

		h.HandleError(c, shared.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("maps conflict to 409", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}

		h.HandleError(c, shared.ErrConflict)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("maps invalid state to 409", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}

		h.HandleError(c, shared.ErrInvalidState)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("maps insufficient stock to 422", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}

		h.HandleError(c, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough units of Copper Pipe"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.Equal(t, "Not enough units of Copper Pipe", resp.Error.Message)
	})

	t.Run("hides unknown errors behind 500", func(t *testing.T) {
		c, w := newTestContext()
		h := &BaseHandler{}

		h.HandleError(c, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "pq:")
	})

	t.Run("includes request ID when present", func(t *testing.T) {
		c, w := newTestContext()
		c.Set("request_id", "req-99")
		h := &BaseHandler{}

		h.HandleError(c, shared.ErrNotFound)

		resp := decodeResponse(t, w)
		assert.Equal(t, "req-99", resp.Error.RequestID)
	})
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("reports ok when database responds", func(t *testing.T) {
		c, w := newTestContext()
		h := NewSystemHandler(pingerFunc(func() error { return nil }))

		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reports 503 when database is down", func(t *testing.T) {
		c, w := newTestContext()
		h := NewSystemHandler(pingerFunc(func() error { return errors.New("down") }))

		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

type pingerFunc func() error

func (f pingerFunc) Ping() error { return f() }
