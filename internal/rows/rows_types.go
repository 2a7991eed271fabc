package rows

// OverviewRow is the lead portfolio summary. Identifier and time fields are
// passed through untouched.
type OverviewRow struct {
	LeadPortfolioID        any      `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	FavoriteCount          *int64   `json:"favoriteCount" yaml:"favoriteCount"`
	CurrentCopyCount       *int64   `json:"currentCopyCount" yaml:"currentCopyCount"`
	MaxCopyCount           *int64   `json:"maxCopyCount" yaml:"maxCopyCount"`
	TotalCopyCount         *int64   `json:"totalCopyCount" yaml:"totalCopyCount"`
	WalletBalanceAmount    *float64 `json:"walletBalanceAmount" yaml:"walletBalanceAmount"`
	WalletBalanceAsset     any      `json:"walletBalanceAsset" yaml:"walletBalanceAsset"`
	CurrentInvestAmount    *float64 `json:"currentInvestAmount" yaml:"currentInvestAmount"`
	CurrentAvailableAmount *float64 `json:"currentAvailableAmount" yaml:"currentAvailableAmount"`
	AUMAmount              *float64 `json:"aumAmount" yaml:"aumAmount"`
	AUMAsset               any      `json:"aumAsset" yaml:"aumAsset"`
	BadgeName              any      `json:"badgeName" yaml:"badgeName"`
	BadgeCopierCount       *int64   `json:"badgeCopierCount" yaml:"badgeCopierCount"`
	TagName                any      `json:"tagName" yaml:"tagName"`
	TagDays                any      `json:"tag_days" yaml:"tag_days"`
	TagRanking             any      `json:"tag_ranking" yaml:"tag_ranking"`
	TagSort                any      `json:"tag_sort" yaml:"tag_sort"`
	CopyMockCount          *int64   `json:"copyMockCount" yaml:"copyMockCount"`
	DataUpdatedAt          any      `json:"dataUpdatedAt" yaml:"dataUpdatedAt"`
	Datetime               string   `json:"datetime" yaml:"datetime"`
}

type PerformanceRow struct {
	LeadPortfolioID string   `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	TimeRange       string   `json:"timeRange" yaml:"timeRange"`
	ROI             *float64 `json:"roi" yaml:"roi"`
	PNL             *float64 `json:"pnl" yaml:"pnl"`
	MDD             *float64 `json:"mdd" yaml:"mdd"`
	CopierPNL       *float64 `json:"copierPnl" yaml:"copierPnl"`
	WinRate         *float64 `json:"winRate" yaml:"winRate"`
	WinDays         *int64   `json:"winDays" yaml:"winDays"`
	SharpRatio      *float64 `json:"sharpRatio" yaml:"sharpRatio"`
	DataUpdatedAt   any      `json:"dataUpdatedAt" yaml:"dataUpdatedAt"`
	Datetime        string   `json:"datetime" yaml:"datetime"`
}

type HoldingRow struct {
	LeadPortfolioID string   `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	Assets          any      `json:"Assets" yaml:"Assets"`
	TimeUpdated     any      `json:"Time_Updated" yaml:"Time_Updated"`
	RemainAmount    *float64 `json:"Remain_Amount" yaml:"Remain_Amount"`
	BuyAmount       *float64 `json:"Buy_Amount" yaml:"Buy_Amount"`
	AvgBuyPrice     *float64 `json:"Avg_Buy_Price" yaml:"Avg_Buy_Price"`
	LastPrice       *float64 `json:"Last_Price" yaml:"Last_Price"`
	UnrealizedPNL   *float64 `json:"Unrealized_PNL" yaml:"Unrealized_PNL"`
	RealizedPNL     *float64 `json:"Realized_PNL" yaml:"Realized_PNL"`
}

type TradeRow struct {
	LeadPortfolioID string   `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	Time            any      `json:"Time" yaml:"Time"`
	Pair            any      `json:"Pair" yaml:"Pair"`
	Side            any      `json:"Side" yaml:"Side"`
	Executed        *float64 `json:"Executed" yaml:"Executed"`
	Role            any      `json:"Role" yaml:"Role"`
	Total           *float64 `json:"Total" yaml:"Total"`
}

type BalanceRow struct {
	LeadPortfolioID string   `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	Coin            any      `json:"Coin" yaml:"Coin"`
	Time            any      `json:"Time" yaml:"Time"`
	Amount          *float64 `json:"Amount" yaml:"Amount"`
	From            any      `json:"From" yaml:"From"`
	To              any      `json:"To" yaml:"To"`
}

type CopyTraderRow struct {
	LeadPortfolioID string   `json:"leadPortfolioId" yaml:"leadPortfolioId"`
	UserID          any      `json:"User_ID" yaml:"User_ID"`
	Amount          *float64 `json:"Amount" yaml:"Amount"`
	TotalPNL        *float64 `json:"Total_PNL" yaml:"Total_PNL"`
	TotalROI        *float64 `json:"Total_ROI" yaml:"Total_ROI"`
	Duration        any      `json:"Duration" yaml:"Duration"`
}

// Set is every table built from one metrics bundle.
type Set struct {
	Overview       *OverviewRow     `json:"overview" yaml:"overview"`
	Performance    []PerformanceRow `json:"performance" yaml:"performance"`
	Holdings       []HoldingRow     `json:"holdings" yaml:"holdings"`
	TradeHistory   []TradeRow       `json:"tradeHistory" yaml:"tradeHistory"`
	BalanceHistory []BalanceRow     `json:"balanceHistory" yaml:"balanceHistory"`
	CopyTraders    []CopyTraderRow  `json:"copyTraders" yaml:"copyTraders"`
}
