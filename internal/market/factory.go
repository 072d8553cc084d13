package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stockscope/stockscope/internal/config"
	"github.com/stockscope/stockscope/internal/market/fixture"
	"github.com/stockscope/stockscope/internal/market/yahoo"
)

// New creates the configured market data source.
func New(cfg config.MarketConfig) (Source, error) {
	reg := NewRegistry()
	reg.Register(yahoo.New(yahoo.Config{
		BaseURL: cfg.Yahoo.BaseURL,
		Timeout: cfg.Yahoo.Timeout,
	}))
	reg.Register(fixture.New())

	src, ok := reg.Get(cfg.Source)
	if !ok {
		names := reg.Names()
		sort.Strings(names)
		return nil, fmt.Errorf("unknown market source %q (available: %s)", cfg.Source, strings.Join(names, ", "))
	}
	return src, nil
}
