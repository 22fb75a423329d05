package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGuestThenGetRoundTrip(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO guests").
		WithArgs("Ada", "Scientist").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	rec := doJSON(t, h.CreateGuest, http.MethodPost, "/guests",
		`{"name": "Ada", "occupation": "Scientist"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id": 3, "name": "Ada", "occupation": "Scientist"}`, rec.Body.String())

	// Reading the id back returns the same object with the store-assigned id.
	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "occupation"}).AddRow(3, "Ada", "Scientist"))

	rec = doJSON(t, h.GetGuest, http.MethodGet, "/guests/3", "", "3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 3, "name": "Ada", "occupation": "Scientist"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGuestMissingFields(t *testing.T) {
	h, mock := newTestAPI(t)

	for _, body := range []string{`{}`, `{"name": "Ada"}`, `{"occupation": "Scientist"}`} {
		rec := doJSON(t, h.CreateGuest, http.MethodPost, "/guests", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.JSONEq(t, `{"errors": ["Missing data fields"]}`, rec.Body.String())
	}
	// No transaction was ever started.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGuestBlankNameRejected(t *testing.T) {
	h, mock := newTestAPI(t)

	rec := doJSON(t, h.CreateGuest, http.MethodPost, "/guests",
		`{"name": "   ", "occupation": "Scientist"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors": ["Name must not be empty"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGuestsReturnsFlatArray(t *testing.T) {
	h, mock := newTestAPI(t)

	rows := sqlmock.NewRows([]string{"id", "name", "occupation"}).
		AddRow(1, "Ada", "Scientist").
		AddRow(2, "Alan", nil)
	mock.ExpectQuery("FROM guests ORDER BY id ASC").WillReturnRows(rows)

	rec := doJSON(t, h.ListGuests, http.MethodGet, "/guests", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id": 1, "name": "Ada", "occupation": "Scientist"},
		{"id": 2, "name": "Alan", "occupation": null}
	]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGuestNotFound(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.GetGuest, http.MethodGet, "/guests/42", "", "42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Guest not found"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGuestIDZeroIsNotFound(t *testing.T) {
	h, mock := newTestAPI(t)

	// 0 is a valid integer id with no row behind it and must 404 like any
	// other absent id, not fail parsing.
	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(0).
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.GetGuest, http.MethodGet, "/guests/0", "", "0")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Guest not found"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchGuestPartialUpdateLeavesOtherFieldsAlone(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "occupation"}).AddRow(7, "Ada", "Scientist"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE guests SET occupation = ? WHERE id = ?")).
		WithArgs("Comedian", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "occupation"}).AddRow(7, "Ada", "Comedian"))
	mock.ExpectCommit()

	rec := doJSON(t, h.PatchGuest, http.MethodPatch, "/guests/7", `{"occupation": "Comedian"}`, "7")
	assert.Equal(t, http.StatusOK, rec.Code)
	// The name was not in the patch and keeps its prior value.
	assert.JSONEq(t, `{"id": 7, "name": "Ada", "occupation": "Comedian"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchGuestUnknownFieldRejected(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "occupation"}).AddRow(7, "Ada", "Scientist"))

	rec := doJSON(t, h.PatchGuest, http.MethodPatch, "/guests/7", `{"nickname": "The Countess"}`, "7")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var out map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out["errors"], 1)
	assert.Contains(t, out["errors"][0], "nickname")
	// No write reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchGuestNotFound(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	rec := doJSON(t, h.PatchGuest, http.MethodPatch, "/guests/42", `{"name": "Ada"}`, "42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Guest not found"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchGuestBlankNameRejected(t *testing.T) {
	h, mock := newTestAPI(t)

	mock.ExpectQuery("FROM guests WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "occupation"}).AddRow(7, "Ada", "Scientist"))

	rec := doJSON(t, h.PatchGuest, http.MethodPatch, "/guests/7", `{"name": ""}`, "7")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors": ["Name must not be empty"]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
