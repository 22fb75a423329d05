package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lateshow/lateshow-api/internal/repository"
)

// newTestAPI wires an APIHandler against a sqlmock-backed database so
// handler tests can script exact query expectations without MySQL.
func newTestAPI(t *testing.T) (*APIHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	h := NewAPIHandler(
		repository.NewEpisodeRepo(db),
		repository.NewGuestRepo(db),
		repository.NewAppearanceRepo(db),
	)
	return h, mock
}

// doJSON runs a handler function against a synthetic JSON request and
// returns the recorder holding the response.  The optional id is bound as
// the :id path parameter.
func doJSON(t *testing.T, fn echo.HandlerFunc, method, target, body, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	require.NoError(t, fn(c))
	return rec
}
