package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/idilsaglam/sheettracker/internal/model"
)

// Client calls a remote gateway. It offers the same operations as Service,
// so callers can import either in-process or over the network.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ParseWorkbook(ctx context.Context, filename string, r io.Reader) ([]model.Question, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadField, filename)
	if err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("multipart: %w", err)
	}
	return c.post(ctx, PathExcel, mw.FormDataContentType(), &body)
}

func (c *Client) ParseGitHub(ctx context.Context, rawURL string) ([]model.Question, error) {
	b, err := json.Marshal(GitHubRequest{URL: rawURL, Type: TypeGitHub})
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return c.post(ctx, PathGitHub, "application/json", bytes.NewReader(b))
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]model.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil || eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return nil, remoteError(resp.StatusCode, eb.Message)
	}

	var qs []model.Question
	if err := json.NewDecoder(resp.Body).Decode(&qs); err != nil {
		return nil, fetchError(fmt.Errorf("decode response: %w", err))
	}
	return qs, nil
}
