// Package rows flattens copy trading metrics payloads into table rows with
// null tolerant numeric columns.
package rows

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/payload"
)

const (
	SectionOverview       = "overview"
	SectionPerformance    = "performance"
	SectionHoldings       = "holdings"
	SectionTradeHistory   = "trade_history"
	SectionBalanceHistory = "balance_history"
	SectionCopyTraders    = "copy_traders"
)

var ErrMalformedSection = errors.New("metrics section has an unexpected shape")

type Builder struct {
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Builder)

// WithClock replaces time.Now for the datetime column.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func NewBuilder(logger *slog.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Builder{
		now:    time.Now,
		logger: logger.With("context", "rows_builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// datetime renders the build time like an ISO-8601 UTC timestamp with an
// explicit +00:00 offset and microsecond precision when non zero.
func (b *Builder) datetime() string {
	now := b.now().UTC()
	if now.Nanosecond()/1000 == 0 {
		return now.Format("2006-01-02T15:04:05-07:00")
	}
	return now.Format("2006-01-02T15:04:05.000000-07:00")
}

func (b *Builder) Overview(data map[string]any) *OverviewRow {
	var tag map[string]any
	if tags, ok := data["tagItemVos"].([]any); ok && len(tags) > 0 {
		tag, _ = tags[0].(map[string]any)
	}

	return &OverviewRow{
		LeadPortfolioID:        data["leadPortfolioId"],
		FavoriteCount:          ParseInt(data["favoriteCount"]),
		CurrentCopyCount:       ParseInt(data["currentCopyCount"]),
		MaxCopyCount:           ParseInt(data["maxCopyCount"]),
		TotalCopyCount:         ParseInt(data["totalCopyCount"]),
		WalletBalanceAmount:    ParseFloat(data["walletBalanceAmount"]),
		WalletBalanceAsset:     data["walletBalanceAsset"],
		CurrentInvestAmount:    ParseFloat(data["currentInvestAmount"]),
		CurrentAvailableAmount: ParseFloat(data["currentAvailableAmount"]),
		AUMAmount:              ParseFloat(data["aumAmount"]),
		AUMAsset:               data["aumAsset"],
		BadgeName:              data["badgeName"],
		BadgeCopierCount:       ParseInt(data["badgeCopierCount"]),
		TagName:                tag["name"],
		TagDays:                tag["days"],
		TagRanking:             tag["ranking"],
		TagSort:                tag["sort"],
		CopyMockCount:          ParseInt(data["copyMockCount"]),
		DataUpdatedAt:          firstOf(data, "lastTradeTime", "badgeModifyTime"),
		Datetime:               b.datetime(),
	}
}

func (b *Builder) Performance(leadPortfolioID, timeRange string, data map[string]any) PerformanceRow {
	return PerformanceRow{
		LeadPortfolioID: leadPortfolioID,
		TimeRange:       timeRange,
		ROI:             ParseFloat(data["roi"]),
		PNL:             ParseFloat(data["pnl"]),
		MDD:             ParseFloat(data["mdd"]),
		CopierPNL:       ParseFloat(data["copierPnl"]),
		WinRate:         ParseFloat(data["winRate"]),
		WinDays:         ParseInt(data["winDays"]),
		SharpRatio:      ParseFloat(data["sharpRatio"]),
		DataUpdatedAt:   data["dataUpdatedAt"],
		Datetime:        b.datetime(),
	}
}

func Holdings(leadPortfolioID string, items []map[string]any) []HoldingRow {
	rows := make([]HoldingRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, HoldingRow{
			LeadPortfolioID: leadPortfolioID,
			Assets:          firstOf(item, "asset", "symbol"),
			TimeUpdated:     firstOf(item, "updateTime", "timeUpdated"),
			RemainAmount:    ParseFloat(item["remainAmount"]),
			BuyAmount:       ParseFloat(item["buyAmount"]),
			AvgBuyPrice:     ParseFloat(item["avgBuyPrice"]),
			LastPrice:       ParseFloat(item["lastPrice"]),
			UnrealizedPNL:   ParseFloat(item["unrealizedPnl"]),
			RealizedPNL:     ParseFloat(item["realizedPnl"]),
		})
	}
	return rows
}

func TradeHistory(leadPortfolioID string, trades []map[string]any) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, trade := range trades {
		rows = append(rows, TradeRow{
			LeadPortfolioID: leadPortfolioID,
			Time:            firstOf(trade, "time", "transactTime"),
			Pair:            firstOf(trade, "pair", "symbol"),
			Side:            trade["side"],
			Executed:        ParseFloat(trade["executedQty"]),
			Role:            trade["role"],
			Total:           ParseFloat(trade["total"]),
		})
	}
	return rows
}

func BalanceHistory(leadPortfolioID string, entries []map[string]any) []BalanceRow {
	rows := make([]BalanceRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, BalanceRow{
			LeadPortfolioID: leadPortfolioID,
			Coin:            firstOf(entry, "coin", "asset"),
			Time:            entry["time"],
			Amount:          ParseFloat(entry["amount"]),
			From:            firstOf(entry, "source", "from"),
			To:              firstOf(entry, "target", "to"),
		})
	}
	return rows
}

func CopyTraders(leadPortfolioID string, traders []map[string]any) []CopyTraderRow {
	rows := make([]CopyTraderRow, 0, len(traders))
	for _, trader := range traders {
		rows = append(rows, CopyTraderRow{
			LeadPortfolioID: leadPortfolioID,
			UserID:          firstOf(trader, "userId", "user_id"),
			Amount:          ParseFloat(trader["amount"]),
			TotalPNL:        ParseFloat(trader["totalPnl"]),
			TotalROI:        ParseFloat(trader["totalRoi"]),
			Duration:        trader["duration"],
		})
	}
	return rows
}

// Build turns a metrics bundle into every table. An empty leadPortfolioID
// falls back to the one reported by the overview section. Absent sections
// produce no rows.
func (b *Builder) Build(bundle map[string]any, leadPortfolioID string) (*Set, error) {
	set := &Set{
		Performance:    []PerformanceRow{},
		Holdings:       []HoldingRow{},
		TradeHistory:   []TradeRow{},
		BalanceHistory: []BalanceRow{},
		CopyTraders:    []CopyTraderRow{},
	}

	if raw, ok := bundle[SectionOverview]; ok && raw != nil {
		overview, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be an object, got %T", ErrMalformedSection, SectionOverview, raw)
		}
		set.Overview = b.Overview(overview)
	}

	if leadPortfolioID == "" && set.Overview != nil {
		id, err := payload.Stringify(set.Overview.LeadPortfolioID)
		if err != nil {
			return nil, fmt.Errorf("%w: overview leadPortfolioId: %s", ErrMalformedSection, err)
		}
		leadPortfolioID = id
	}
	if leadPortfolioID == "" {
		return nil, fmt.Errorf("no lead portfolio id given and none found in the overview. %w", lib.BadUserInputError)
	}

	b.logger.Debug("building metric rows", "lead_portfolio_id", leadPortfolioID)

	performance, err := objectSection(bundle, SectionPerformance)
	if err != nil {
		return nil, err
	}
	ranges := make([]string, 0, len(performance))
	for timeRange := range performance {
		ranges = append(ranges, timeRange)
	}
	sort.Strings(ranges)
	for _, timeRange := range ranges {
		metrics, ok := performance[timeRange].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s must be an object, got %T", ErrMalformedSection, SectionPerformance, timeRange, performance[timeRange])
		}
		set.Performance = append(set.Performance, b.Performance(leadPortfolioID, timeRange, metrics))
	}

	lists := []struct {
		section string
		build   func([]map[string]any)
	}{
		{SectionHoldings, func(items []map[string]any) { set.Holdings = Holdings(leadPortfolioID, items) }},
		{SectionTradeHistory, func(items []map[string]any) { set.TradeHistory = TradeHistory(leadPortfolioID, items) }},
		{SectionBalanceHistory, func(items []map[string]any) { set.BalanceHistory = BalanceHistory(leadPortfolioID, items) }},
		{SectionCopyTraders, func(items []map[string]any) { set.CopyTraders = CopyTraders(leadPortfolioID, items) }},
	}
	for _, list := range lists {
		items, err := listSection(bundle, list.section)
		if err != nil {
			return nil, err
		}
		list.build(items)
	}

	return set, nil
}

func objectSection(bundle map[string]any, section string) (map[string]any, error) {
	raw, ok := bundle[section]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object, got %T", ErrMalformedSection, section, raw)
	}
	return obj, nil
}

func listSection(bundle map[string]any, section string) ([]map[string]any, error) {
	raw, ok := bundle[section]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list, got %T", ErrMalformedSection, section, raw)
	}

	items := make([]map[string]any, 0, len(list))
	for i, raw := range list {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object, got %T", ErrMalformedSection, section, i, raw)
		}
		items = append(items, item)
	}
	return items, nil
}
