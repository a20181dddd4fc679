package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeFetcher records requested URLs and serves canned content.
type fakeFetcher struct {
	mu      sync.Mutex
	content string
	err     error
	urls    []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.content, f.err
}

func (f *fakeFetcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

func newTestServer(t *testing.T, f Fetcher) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(DefaultConfig(), NewService(f, nil), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Question", "Link"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Two Sum", "https://leetcode.com/two-sum"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"", "https://leetcode.com/3sum"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func upload(t *testing.T, url, field, filename string, data []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	resp, err := http.Post(url+PathExcel, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url+PathGitHub, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeQuestions(t *testing.T, r io.Reader) []model.Question {
	t.Helper()
	var qs []model.Question
	require.NoError(t, json.NewDecoder(r).Decode(&qs))
	return qs
}

func decodeErrorBody(t *testing.T, r io.Reader) ErrorBody {
	t.Helper()
	var eb ErrorBody
	require.NoError(t, json.NewDecoder(r).Decode(&eb))
	return eb
}

func TestParseExcel(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	resp := upload(t, srv.URL, "file", "blind75.xlsx", workbook(t))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, []model.Question{
		{Title: "Two Sum", Link: "https://leetcode.com/two-sum", Category: model.CategoryExcel},
		{Title: "Untitled Question", Link: "https://leetcode.com/3sum", Category: model.CategoryExcel},
	}, decodeQuestions(t, resp.Body))
}

func TestParseExcelCSV(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	resp := upload(t, srv.URL, "file", "list.csv", []byte("Title,URL\nLRU Cache,https://a.io/lru\n"))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []model.Question{
		{Title: "LRU Cache", Link: "https://a.io/lru", Category: model.CategoryExcel},
	}, decodeQuestions(t, resp.Body))
}

func TestParseExcelNoFile(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	for name, resp := range map[string]*http.Response{
		"empty form":  upload(t, srv.URL, "", "", nil),
		"wrong field": upload(t, srv.URL, "sheet", "a.xlsx", workbook(t)),
	} {
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
		assert.Equal(t, "No file uploaded", decodeErrorBody(t, resp.Body).Message, name)
	}
}

func TestParseExcelTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxUploadBytes = 1024
	srv := httptest.NewServer(NewServer(cfg, NewService(&fakeFetcher{}, nil), nil).Handler())
	t.Cleanup(srv.Close)
	sheet := "Question,Link\n" + strings.Repeat("Two Sum,https://leetcode.com/two-sum\n", 200)

	resp := upload(t, srv.URL, "file", "big.csv", []byte(sheet))

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	body := decodeErrorBody(t, resp.Body)
	assert.Equal(t, "File too large (limit 1024 bytes)", body.Message)
	assert.Equal(t, "file", body.Field)
}

func TestParseExcelNotMultipart(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	resp, err := http.Post(srv.URL+PathExcel, "text/csv", strings.NewReader("Question\nTwo Sum\n"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", decodeErrorBody(t, resp.Body).Message)
}

func TestParseExcelUnreadable(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	resp := upload(t, srv.URL, "file", "broken.xlsx", []byte{0x00, 0xff, 0x13, 0x37})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to parse Excel file", decodeErrorBody(t, resp.Body).Message)
}

func TestParseGitHubRewritesAndExtracts(t *testing.T) {
	f := &fakeFetcher{content: "# List\n- [Two Sum](https://leetcode.com/two-sum)\nno link\n"}
	srv := newTestServer(t, f)

	resp := postJSON(t, srv.URL, `{"url":"https://github.com/u/r/blob/main/README.md","type":"github"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []model.Question{{
		Title:    "Two Sum",
		Link:     "https://leetcode.com/two-sum",
		Category: model.CategoryGitHub,
	}}, decodeQuestions(t, resp.Body))
	assert.Equal(t, []string{"https://raw.githubusercontent.com/u/r/main/README.md"}, f.calls())
}

func TestParseGitHubEmptyDocumentReturnsEmptyArray(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{content: "nothing to see"})

	resp := postJSON(t, srv.URL, `{"url":"https://example.com/list.md"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestParseGitHubValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		msg   string
		field string
	}{
		{"missing url", `{}`, "url is required", "url"},
		{"not a url", `{"url":"definitely not a url"}`, "Invalid url", "url"},
		{"no scheme", `{"url":"github.com/u/r/blob/main/README.md"}`, "Invalid url", "url"},
		{"bad type", `{"url":"https://github.com/u/r","type":"pdf"}`, "type must be github or excel", "type"},
		{"not json", `url=https://github.com`, "Invalid request body", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{}
			srv := newTestServer(t, f)

			resp := postJSON(t, srv.URL, tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			eb := decodeErrorBody(t, resp.Body)
			assert.Equal(t, tc.msg, eb.Message)
			assert.Equal(t, tc.field, eb.Field)
			assert.Empty(t, f.calls(), "no fetch for invalid input")
		})
	}
}

func TestParseGitHubFetchFailure(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{err: errors.New("failed to fetch GitHub file: Not Found")})

	resp := postJSON(t, srv.URL, `{"url":"https://github.com/u/r/blob/main/missing.md"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to parse GitHub content", decodeErrorBody(t, resp.Body).Message)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{content: "[a](b)"})
	postJSON(t, srv.URL, `{"url":"https://example.com/a.md"}`)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mresp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer mresp.Body.Close()
	b, err := io.ReadAll(mresp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `sheettracker_imports_total{outcome="ok",source="github"} 1`)
	assert.Contains(t, string(b), `sheettracker_questions_parsed_total{source="github"} 1`)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &fakeFetcher{})

	resp, err := http.Get(srv.URL + PathGitHub)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
