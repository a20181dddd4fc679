package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/sheettracker/internal/model"
	"github.com/idilsaglam/sheettracker/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type source struct {
	label string // "Excel" or "GitHub"
	name  string
	parse func(ctx context.Context) ([]model.Question, error)
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import questions from spreadsheets or GitHub markdown",
		Args:  cobra.ArbitraryArgs,
		RunE:  groupRunE,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "excel <file>...",
		Short: "Import .xlsx or .csv files",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(c *cobra.Command, args []string) error {
			imp := a.importer()
			sources := make([]source, 0, len(args))
			for _, path := range args {
				sources = append(sources, source{label: "Excel", name: path, parse: func(ctx context.Context) ([]model.Question, error) {
					f, err := os.Open(path)
					if err != nil {
						return nil, err
					}
					defer f.Close()
					return imp.ParseWorkbook(ctx, filepath.Base(path), f)
				}})
			}
			return a.runImports(c.Context(), sources)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "github <url>...",
		Short: "Import bracket links from GitHub-hosted markdown",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(c *cobra.Command, args []string) error {
			imp := a.importer()
			sources := make([]source, 0, len(args))
			for _, url := range args {
				sources = append(sources, source{label: "GitHub", name: url, parse: func(ctx context.Context) ([]model.Question, error) {
					return imp.ParseGitHub(ctx, url)
				}})
			}
			return a.runImports(c.Context(), sources)
		},
	})
	return cmd
}

// runImports parses every source concurrently. Each finished source is
// added on its own, so one failure does not hold back the others.
func (a *app) runImports(ctx context.Context, sources []source) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, release, err := a.openStore()
	if err != nil {
		return err
	}
	defer release()

	var (
		g      errgroup.Group
		mu     sync.Mutex // guards failed and terminal output
		failed int
	)
	for _, src := range sources {
		g.Go(func() error {
			qs, err := src.parse(ctx)
			if err != nil {
				a.logger.Warn("import failed", zap.String("source", src.name), zap.Error(err))
				mu.Lock()
				defer mu.Unlock()
				failed++
				ui.Fail(fmt.Sprintf("Import failed: %s: %v", src.name, err))
				return nil
			}
			added, err := s.Add(qs)
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Added %d questions from %s.", len(qs), src.label)
			if skipped := len(qs) - added; skipped > 0 {
				msg += fmt.Sprintf(" (%d already tracked)", skipped)
			}
			mu.Lock()
			defer mu.Unlock()
			ui.OK(msg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(sources))
	}
	return nil
}
