// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/cre-ledger/internal/pipeline"
	"github.com/meshintel/cre-ledger/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBackend struct {
	raw types.RawTransaction
	err error
}

func (s stubBackend) Extract(_ context.Context, _ string) (types.RawTransaction, error) {
	return s.raw, s.err
}

func newTestServer(t *testing.T, backend stubBackend) (*gin.Engine, string) {
	t.Helper()
	book := filepath.Join(t.TempDir(), "transactions.xlsx")
	runner := &pipeline.Runner{Backend: backend}
	return NewServer(runner, book).Router(), book
}

func articleForm(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("article", "article.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t, stubBackend{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}

func TestIndexEmptyBook(t *testing.T) {
	r, _ := newTestServer(t, stubBackend{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CRE Transaction Ledger")
	assert.Contains(t, w.Body.String(), "0 transactions")
	assert.Contains(t, w.Body.String(), "Asset")
}

func TestExtractSuccess(t *testing.T) {
	raw := types.RawTransaction{
		Date: "Dec 05, 2025", Asset: "The Clementi Mall", Price: "$809 million",
		Buyer: "CLCT", Seller: "Lendlease",
	}
	r, _ := newTestServer(t, stubBackend{raw: raw})

	body, contentType := articleForm(t, "CLCT buys The Clementi Mall for $809 million.")
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The row shows up in the API afterwards.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.Columns(), resp.Columns)
	require.Len(t, resp.Rows, 1)
	assert.Contains(t, resp.Rows[0], "The Clementi Mall")
}

func TestExtractMissingUpload(t *testing.T) {
	r, _ := newTestServer(t, stubBackend{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/extract", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing article upload")
}

func TestExtractPipelineFailure(t *testing.T) {
	r, _ := newTestServer(t, stubBackend{err: errors.New("connection refused")})

	body, contentType := articleForm(t, "article text")
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// The client sees the outcome, not the cause.
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestTransactionsMissingBook(t *testing.T) {
	r, _ := newTestServer(t, stubBackend{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.Columns(), resp.Columns)
	assert.Empty(t, resp.Rows)
	assert.NotNil(t, resp.Rows)
}
