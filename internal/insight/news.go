package insight

import (
	"context"
	"time"
)

// NewsItem is one headline considered in commentary.
type NewsItem struct {
	Title       string
	Source      string
	PublishedAt time.Time
	Symbols     []string
}

// NewsProvider supplies recent headlines for a ticker.
type NewsProvider interface {
	GetNews(ctx context.Context, symbol string, days int) ([]NewsItem, error)
}

// StaticNewsProvider serves a fixed set of headlines. It stands in until a
// real news API integration exists and keeps tests deterministic.
type StaticNewsProvider struct {
	news []NewsItem
}

// NewStaticNewsProvider creates a news provider over fixed items.
func NewStaticNewsProvider(news []NewsItem) *StaticNewsProvider {
	return &StaticNewsProvider{news: news}
}

// GetNews returns items tagged with symbol published within the last days.
func (p *StaticNewsProvider) GetNews(ctx context.Context, symbol string, days int) ([]NewsItem, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var result []NewsItem

	for _, item := range p.news {
		if item.PublishedAt.Before(cutoff) {
			continue
		}
		for _, s := range item.Symbols {
			if s == symbol {
				result = append(result, item)
				break
			}
		}
	}

	return result, nil
}
