package assets

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(repo *memRepo) http.Handler {
	r := chi.NewRouter()
	r.Route("/assets", NewHandler(newService(repo), nil).MountRoutes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(OrganizationHeader, orgID.String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateListDelete(t *testing.T) {
	repo := &memRepo{}
	h := newRouter(repo)

	rec := do(t, h, http.MethodPost, "/assets/equipment/", "application/json",
		[]byte(`{"name":"Plantadeira","quantity":1,"unitValue":80000}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created Equipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodGet, "/assets/equipment/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Plantadeira")

	rec = do(t, h, http.MethodDelete, "/assets/equipment/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodDelete, "/assets/equipment/"+created.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerRequiresOrganization(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/assets/land/", nil)
	rec := httptest.NewRecorder()
	newRouter(&memRepo{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUnknownKind(t *testing.T) {
	rec := do(t, newRouter(&memRepo{}), http.MethodGet, "/assets/cattle/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerCreateValidationProblem(t *testing.T) {
	rec := do(t, newRouter(&memRepo{}), http.MethodPost, "/assets/investments/", "application/json",
		[]byte(`{"category":"","year":2024,"quantity":1,"unitValue":1,"type":"REALIZADO"}`))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"field":"category"`)
}

func TestHandlerImportCSV(t *testing.T) {
	repo := &memRepo{}
	csv := "nome;qtd;valor_unitario\nTrator;1;25.000,00\nColheitadeira;1;900.000,00\n"
	rec := do(t, newRouter(repo), http.MethodPost, "/assets/equipment/import", "text/csv", []byte(csv))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"kind":"equipment","imported":2}`, rec.Body.String())
}

func TestHandlerImportMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "equipamentos.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("nome,qtd,valor_unitario\nTrator,1,100\n"))
	require.NoError(t, mw.Close())

	repo := &memRepo{}
	rec := do(t, newRouter(repo), http.MethodPost, "/assets/equipment/import", mw.FormDataContentType(), body.Bytes())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, repo.imported, 1)
}

func TestHandlerImportRowErrors(t *testing.T) {
	csv := "nome;qtd;valor_unitario\n;1;10\n"
	rec := do(t, newRouter(&memRepo{}), http.MethodPost, "/assets/equipment/import", "text/csv", []byte(csv))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem struct {
		Errors []struct {
			Row   int    `json:"row"`
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, 2, problem.Errors[0].Row)
	assert.Equal(t, "name", problem.Errors[0].Field)
}

func TestHandlerInvestmentsSummary(t *testing.T) {
	repo := &memRepo{}
	h := newRouter(repo)
	rec := do(t, h, http.MethodPost, "/assets/investments/", "application/json",
		[]byte(`{"category":"Máquinas","year":2024,"quantity":2,"unitValue":500,"type":"REALIZADO"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/assets/investments/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `"year":2024`))
	assert.Contains(t, rec.Body.String(), `"label":"Máquinas"`)
}
