package news

import (
	"context"
	"log/slog"
)

// MultiSource merges a primary API source with supplementary sources.
// The primary source's failure propagates; a supplementary source failing
// only costs its own articles.
type MultiSource struct {
	primary Source
	extra   []Source
}

var _ Source = (*MultiSource)(nil)

func NewMultiSource(primary Source, extra ...Source) *MultiSource {
	return &MultiSource{primary: primary, extra: extra}
}

func (m *MultiSource) Headlines(ctx context.Context, opts HeadlinesOptions) (*Response, error) {
	resp, err := m.primary.Headlines(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, source := range m.extra {
		extraResp, err := source.Headlines(ctx, opts)
		if err != nil {
			slog.Warn("Supplementary source failed", "operation", "headlines", "error", err)
			continue
		}
		resp.Articles = append(resp.Articles, extraResp.Articles...)
		resp.TotalResults += extraResp.TotalResults
	}

	return resp, nil
}

func (m *MultiSource) Search(ctx context.Context, opts SearchOptions) (*Response, error) {
	resp, err := m.primary.Search(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, source := range m.extra {
		extraResp, err := source.Search(ctx, opts)
		if err != nil {
			slog.Warn("Supplementary source failed", "operation", "search", "error", err)
			continue
		}
		resp.Articles = append(resp.Articles, extraResp.Articles...)
		resp.TotalResults += extraResp.TotalResults
	}

	return resp, nil
}
