package market

import (
	"context"
	"time"

	"github.com/stockscope/stockscope/internal/core"
)

// Source defines the interface for market data sources.
type Source interface {
	// Name returns the source identifier used in configuration.
	Name() string

	// Profile fetches company identity, ratio inputs and statement figures
	// for a ticker. Returns core.ErrTickerNotFound when the source has no
	// such ticker.
	Profile(ctx context.Context, ticker string) (*core.CompanyProfile, error)

	// History fetches daily bars between start and end, oldest first.
	History(ctx context.Context, ticker string, start, end time.Time) ([]core.Bar, error)
}
