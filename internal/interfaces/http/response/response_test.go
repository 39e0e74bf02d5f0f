package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/pkg/utils"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := newContext()

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestCreated(t *testing.T) {
	c, w := newContext()

	Created(c, 42)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":42}`, w.Body.String())
}

func TestPaginated(t *testing.T) {
	c, w := newContext()

	Paginated(c, []int{1}, utils.PaginationMeta{Page: 1, Limit: 50, TotalCount: 1, TotalPages: 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_pages":1`)
}

func TestError_AppError(t *testing.T) {
	c, w := newContext()

	Error(c, domainerrors.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeNotFound)
	assert.Contains(t, w.Body.String(), "missing")
	assert.True(t, c.IsAborted())
}

func TestError_Sentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound, "product not found"},
		{domainerrors.ErrAlreadyExists, http.StatusConflict, "resource already exists"},
		{domainerrors.ErrStoreClosed, http.StatusConflict, "store is closed"},
		{domainerrors.ErrPlanLimitReached, http.StatusForbidden, "plan product limit reached"},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	}
	for _, tc := range cases {
		c, w := newContext()
		ErrorNotFound(c, tc.err, "product not found")
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), tc.msg)
	}
}

func TestError_GenericErrorIsNotLeaked(t *testing.T) {
	c, w := newContext()

	Error(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInternalError)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestErrorWithStatus(t *testing.T) {
	c, w := newContext()

	ErrorWithStatus(c, http.StatusBadRequest, "ERR_X", "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"ERR_X"`)
}
