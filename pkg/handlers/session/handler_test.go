package session_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faoa-tools/annual-report/pkg/models/api"
	"github.com/faoa-tools/annual-report/pkg/server"
	sessionsvc "github.com/faoa-tools/annual-report/pkg/services/session"
)

const testPassword = "letmein"

func newTestRouter() http.Handler {
	web := server.NewWebAPI(zerolog.Nop(), server.Config{
		Addr:     "127.0.0.1:0",
		Password: testPassword,
		Dependencies: server.Dependencies{
			Sessions: sessionsvc.NewStore(),
		},
	})
	return web.Router()
}

func csvUploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-App-Password", testPassword)
	return req
}

const januaryCSV = "Year,Month,Amount,IRS Category Code,IRS Category Label,Sponsor Name\n" +
	"2024,1,100,1,Gifts,Acme\n" +
	"2024,1,500,2,Membership Dues,\n"

const februaryCSV = "Year,Month,Amount,IRS Category Code,IRS Category Label\n" +
	"2024,2,40,14,Fundraising\n"

func createSession(t *testing.T, router http.Handler) api.Session {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, csvUploadRequest(t, map[string]string{
		"january.csv":  januaryCSV,
		"february.csv": februaryCSV,
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var sess api.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	return sess
}

func authedRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("X-App-Password", testPassword)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestCreateSession(t *testing.T) {
	router := newTestRouter()
	sess := createSession(t, router)

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 2024, sess.Year)
	assert.Equal(t, []int{1, 2}, sess.Coverage.Present)
	assert.False(t, sess.Coverage.Complete)

	require.Len(t, sess.Summary, 3)
	assert.Equal(t, "1", sess.Summary[0].CategoryCode)
	assert.Equal(t, 100.0, sess.Summary[0].RawTotal)
	assert.Equal(t, 100.0, sess.Summary[0].AdjustedTotal)
}

func TestCreateSession_RequiresPassword(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSession_WrongPassword(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	req.Header.Set("X-App-Password", "guess")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSession_SchemaError(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, csvUploadRequest(t, map[string]string{
		"january.csv": "Year,Month\n2024,1\n",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
}

func TestCreateSession_MixedYears(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, csvUploadRequest(t, map[string]string{
		"january.csv": januaryCSV,
		"late.csv": "Year,Month,Amount,IRS Category Code,IRS Category Label\n" +
			"2025,1,10,1,Gifts\n",
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024")
	assert.Contains(t, rec.Body.String(), "2025")
}

func TestUpdateSummaryAndGenerate(t *testing.T) {
	router := newTestRouter()
	sess := createSession(t, router)

	edit := api.SummaryEditRequest{Rows: []api.SummaryEdit{
		{CategoryCode: "1", CategoryLabel: "Gifts", AdjustedTotal: 90},
	}}
	payload, err := json.Marshal(edit)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut,
		"/api/v1/sessions/"+sess.ID+"/summary", bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut,
		"/api/v1/sessions/"+sess.ID+"/reclassification",
		strings.NewReader(`{"amount": 120}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost,
		"/api/v1/sessions/"+sess.ID+"/report", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report api.ReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Contains(t, report.Report, "  1 - Gifts: $90.00")
	assert.Contains(t, report.Report, "  2 - Membership Dues: $380.00")
	assert.Contains(t, report.Report, "    Gala Tickets: $120.00")
}

func TestSetReclassification_Overdraft(t *testing.T) {
	router := newTestRouter()
	sess := createSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut,
		"/api/v1/sessions/"+sess.ID+"/reclassification",
		strings.NewReader(`{"amount": 600}`)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "exceeds the raw total")
}

func TestDownloads(t *testing.T) {
	router := newTestRouter()
	sess := createSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet,
		"/api/v1/sessions/"+sess.ID+"/report/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q", "FAOA_Annual_Financial_Report_2024.txt"),
		rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "2024 Foreign Area Officer Association Annual Financial Report")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet,
		"/api/v1/sessions/"+sess.ID+"/summary/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q", "FAOA_Annual_Summary_2024.csv"),
		rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(),
		"IRS Category Code,IRS Category Label,Raw Total Amount,Adjusted Total Amount\n"))
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet,
		"/api/v1/sessions/does-not-exist/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
