package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stockscope/stockscope/internal/analysis"
	"github.com/stockscope/stockscope/internal/core"
	"github.com/stockscope/stockscope/internal/indicator"
	"github.com/stockscope/stockscope/internal/insight"
	"github.com/stockscope/stockscope/internal/llm/factory"
	"github.com/stockscope/stockscope/internal/logger"
	"github.com/stockscope/stockscope/internal/market"
	"github.com/stockscope/stockscope/internal/report"
	"github.com/stockscope/stockscope/internal/storage/archive"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER",
	Short: "Analyze a stock from the command line",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	makeReport  bool
	withInsight bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&makeReport, "report", false, "generate an HTML report and archive it")
	analyzeCmd.Flags().BoolVar(&withInsight, "insight", false, "include LLM analyst commentary in the report")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	source, err := market.New(cfg.Market)
	if err != nil {
		return fmt.Errorf("creating market source: %w", err)
	}
	analyzer := analysis.New(source, logger.Named(log, "analysis"))

	ticker := strings.ToUpper(strings.TrimSpace(args[0]))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := analyzer.Analyze(ctx, ticker)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", ticker, err)
	}
	printAnalysis(ticker, result)

	bars, err := analyzer.History(ctx, ticker)
	if err != nil {
		return fmt.Errorf("fetching history for %s: %w", ticker, err)
	}

	var snap *indicator.Snapshot
	var trends string
	if len(bars) > 0 {
		highs, lows, closes := analysis.Series(bars)
		s := indicator.Compute(highs, lows, closes)
		snap = &s
		trends = analysis.PriceTrends(bars)
		printIndicators(snap)

		fmt.Println()
		fmt.Println("Price Trends")
		fmt.Println(trends)
	}

	if !makeReport {
		return nil
	}

	var commentary string
	if withInsight {
		provider, err := factory.New(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
		analyst := insight.NewAnalyst(provider, nil, insight.Config{
			MaxTokens:   cfg.Insight.MaxTokens,
			Temperature: cfg.Insight.Temperature,
		}, log)

		c, err := analyst.Generate(ctx, insight.Request{
			Ticker:     ticker,
			Analysis:   result,
			Indicators: snap,
			Trends:     trends,
		})
		if err != nil {
			log.Warn("commentary generation failed", zap.Error(err))
		} else {
			commentary = c.Text
		}
	}

	store, err := archive.New(cfg.Archive)
	if err != nil {
		return fmt.Errorf("creating report archive: %w", err)
	}

	now := time.Now().UTC()
	doc := report.Build(report.Data{
		Ticker:      ticker,
		GeneratedAt: now,
		Analysis:    result,
		Indicators:  snap,
		Trends:      trends,
		Commentary:  commentary,
	})
	key := report.Filename(ticker, now)
	if err := store.Write(ctx, key, []byte(doc)); err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}

	fmt.Printf("Report archived at %s\n", key)
	return nil
}

func printAnalysis(ticker string, r *core.AnalysisResult) {
	info := r.CompanyInfo
	fmt.Printf("%s (%s)\n", info.CompanyName, ticker)
	fmt.Printf("Sector: %s\n", info.Sector)
	fmt.Printf("Industry: %s\n", info.Industry)
	fmt.Printf("Current Price: %s\n", info.CurrentPrice)

	if len(r.FinancialRatios) > 0 {
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RATIO\tVALUE\t")
		fmt.Fprintln(w, "-----\t-----\t")
		for _, ratio := range r.FinancialRatios {
			fmt.Fprintf(w, "%s\t%s\t\n", ratio.Name, ratio.Value)
		}
		w.Flush()
	}

	if r.FinancialHighlights != "" {
		fmt.Println()
		fmt.Println("Financial Highlights")
		fmt.Println(r.FinancialHighlights)
	}
}

func printIndicators(snap *indicator.Snapshot) {
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDICATOR\tVALUE\t")
	fmt.Fprintln(w, "---------\t-----\t")
	for _, row := range snap.Rows() {
		if row.Value == nil {
			fmt.Fprintf(w, "%s\tN/A\t\n", row.Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f\t\n", row.Name, *row.Value)
	}
	w.Flush()
}
