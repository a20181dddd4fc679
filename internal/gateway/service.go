// Package gateway exposes the two import operations over HTTP and
// in-process. It normalizes uploads and fetched documents into questions
// but never stores them.
package gateway

import (
	"context"
	"io"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/idilsaglam/sheettracker/internal/normalize"
	"go.uber.org/zap"
)

// Service runs the import pipelines. It holds no business state.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, logger: logger}
}

// ParseWorkbook decodes an uploaded spreadsheet. filename only steers the
// CSV/XLSX choice.
func (s *Service) ParseWorkbook(ctx context.Context, filename string, r io.Reader) ([]model.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	qs, err := normalize.FromWorkbook(r, filename)
	if err != nil {
		s.logger.Warn("workbook parse failed", zap.String("file", filename), zap.Error(err))
		return nil, decodeError(err)
	}
	s.logger.Debug("workbook parsed", zap.String("file", filename), zap.Int("questions", len(qs)))
	return qs, nil
}

// ParseGitHub validates rawURL, rewrites GitHub views to raw content, fetches
// the document and extracts its bracket links.
func (s *Service) ParseGitHub(ctx context.Context, rawURL string) ([]model.Question, error) {
	if err := (GitHubRequest{URL: rawURL}).Validate(); err != nil {
		return nil, validationError(err)
	}
	target := normalize.RawURL(rawURL)
	content, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		s.logger.Warn("github fetch failed", zap.String("url", target), zap.Error(err))
		return nil, fetchError(err)
	}
	qs := normalize.FromMarkdown(content)
	s.logger.Debug("github document parsed", zap.String("url", target), zap.Int("questions", len(qs)))
	return qs, nil
}
