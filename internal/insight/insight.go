// Package insight generates analyst commentary for a stock using an LLM
// provider. The commentary is optional everywhere it appears; callers are
// expected to degrade gracefully when no provider is configured.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/indicator"
	"github.com/stockscope/stockscope/internal/llm"
)

const (
	systemPrompt = "You are a senior financial analyst with extensive experience in equity research and investment analysis."

	defaultMaxTokens   = 2500
	defaultTemperature = 0.3

	newsLookbackDays = 7
	maxNewsItems     = 5
)

// Config tunes commentary generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// Analyst produces investment commentary from analysis data.
type Analyst struct {
	provider    llm.Provider
	news        NewsProvider
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewAnalyst creates an Analyst on the given provider. The news provider
// may be nil, in which case the prompt simply carries no news section.
func NewAnalyst(provider llm.Provider, news NewsProvider, cfg Config, logger *zap.Logger) *Analyst {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyst{
		provider:    provider,
		news:        news,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Request carries everything the analyst reasons over. Indicators and
// Trends are optional.
type Request struct {
	Ticker     string
	Analysis   *core.AnalysisResult
	Indicators *indicator.Snapshot
	Trends     string
}

// Commentary is a generated analyst report.
type Commentary struct {
	Text     string
	Provider string
	Usage    llm.Usage
}

// Generate builds the report prompt and asks the provider for commentary.
func (a *Analyst) Generate(ctx context.Context, req Request) (*Commentary, error) {
	if req.Analysis == nil {
		return nil, core.WithMessage(core.ErrLLMFailed, "no analysis data to comment on")
	}

	var news []NewsItem
	if a.news != nil {
		items, err := a.news.GetNews(ctx, req.Ticker, newsLookbackDays)
		if err != nil {
			a.logger.Warn("news lookup failed",
				zap.String("ticker", req.Ticker),
				zap.Error(err))
		} else {
			news = items
		}
	}

	resp, err := a.provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: a.buildPrompt(req, news)},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, core.WithMessage(core.ErrLLMFailed, "provider returned empty commentary")
	}

	a.logger.Info("commentary generated",
		zap.String("ticker", req.Ticker),
		zap.String("provider", a.provider.Name()),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens))

	return &Commentary{
		Text:     resp.Content,
		Provider: a.provider.Name(),
		Usage:    resp.Usage,
	}, nil
}

func (a *Analyst) buildPrompt(req Request, news []NewsItem) string {
	var sb strings.Builder

	today := time.Now().Format("2006-01-02")
	fmt.Fprintf(&sb, "Today is %s. As a financial analyst, provide a comprehensive investment analysis report for %s based on the following information.\n\n",
		today, req.Ticker)

	info := req.Analysis.CompanyInfo
	sb.WriteString("COMPANY INFORMATION:\n")
	fmt.Fprintf(&sb, "Company: %s\n", info.CompanyName)
	fmt.Fprintf(&sb, "Symbol: %s\n", req.Ticker)
	fmt.Fprintf(&sb, "Sector: %s\n", info.Sector)
	fmt.Fprintf(&sb, "Industry: %s\n", info.Industry)
	fmt.Fprintf(&sb, "Current Price: $%s\n", info.CurrentPrice.String())
	if req.Trends != "" {
		fmt.Fprintf(&sb, "Price Trends:\n%s\n", req.Trends)
	}

	sb.WriteString("\nFINANCIAL RATIOS:\n")
	for _, r := range req.Analysis.FinancialRatios {
		fmt.Fprintf(&sb, "%s: %s\n", r.Name, r.Value.String())
	}

	if req.Analysis.FinancialHighlights != "" {
		sb.WriteString("\nFINANCIAL HIGHLIGHTS:\n")
		sb.WriteString(req.Analysis.FinancialHighlights)
		sb.WriteString("\n")
	}

	if req.Indicators != nil {
		sb.WriteString("\nTECHNICAL INDICATORS (Most Recent):\n")
		for _, row := range req.Indicators.Rows() {
			if row.Value == nil {
				fmt.Fprintf(&sb, "%s: N/A\n", row.Name)
				continue
			}
			fmt.Fprintf(&sb, "%s: %.2f\n", row.Name, *row.Value)
		}
	}

	if len(news) > 0 {
		sb.WriteString("\nRECENT NEWS:\n")
		for i, n := range news {
			if i >= maxNewsItems {
				break
			}
			fmt.Fprintf(&sb, "- [%s] %s (%s)\n", n.PublishedAt.Format("Jan 2"), n.Title, n.Source)
		}
	}

	sb.WriteString(`
Based on all this information, provide a comprehensive investment analysis with the following sections:

1. Executive Summary - A brief overview of the company and its current situation
2. Fundamental Analysis - Analysis of financial health, valuation, and growth prospects
3. Technical Analysis - Interpretation of price movements and technical indicators
4. News Impact Analysis - How recent news affects the company's prospects
5. Risk Assessment - Key risks facing the company
6. Investment Outlook - Overall assessment including strengths, weaknesses, opportunities, and threats
7. Recommendation - Clear investment recommendation (Buy/Hold/Sell) with reasoning

The report should be well-structured with clear sections and bullet points where appropriate.
Focus on providing actionable insights based on the data provided.`)

	return sb.String()
}
