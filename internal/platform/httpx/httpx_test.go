package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatuses(t *testing.T) {
	cases := map[error]int{
		fmt.Errorf("asset: %w", ErrNotFound):   http.StatusNotFound,
		ErrDuplicate:                           http.StatusConflict,
		fmt.Errorf("row 2: %w", ErrValidation): http.StatusUnprocessableEntity,
		ErrBadRequest:                          http.StatusBadRequest,
		ErrUnavailable:                         http.StatusServiceUnavailable,
		errors.New("boom"):                     http.StatusInternalServerError,
	}
	for err, status := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, err)
		assert.Equal(t, status, rec.Code, err.Error())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	}
}

func TestInternalErrorsHideDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pg: password authentication failed"))
	var body ProblemDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Empty(t, body.Detail)
}

func TestProblemWithErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	ProblemWith(rec, http.StatusUnprocessableEntity, "Validation Failed", "2 rows", []string{"a", "b"})
	assert.JSONEq(t, `{"title":"Validation Failed","status":422,"detail":"2 rows","errors":["a","b"]}`, rec.Body.String())
}

func TestDecodeJSONWrapsBadRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	var target map[string]any
	err := DecodeJSON(httptest.NewRecorder(), req, &target)
	require.ErrorIs(t, err, ErrBadRequest)
}
