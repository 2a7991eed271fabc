package rows

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/AnotherFullstackDev/stepkit/internal/lib"
	"github.com/AnotherFullstackDev/stepkit/internal/payload"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int64) *int64 { return &i }

func TestParseNumbers(t *testing.T) {
	r := require.New(t)

	t.Run("should treat blank values as null", func(t *testing.T) {
		for _, v := range []any{nil, "", "null"} {
			r.Nil(ParseFloat(v), "%#v", v)
			r.Nil(ParseInt(v), "%#v", v)
		}
	})

	t.Run("should parse floats from numbers and strings", func(t *testing.T) {
		r.Equal(floatPtr(12.5), ParseFloat("12.5"))
		r.Equal(floatPtr(12.5), ParseFloat(" 12.5 "))
		r.Equal(floatPtr(3), ParseFloat(json.Number("3")))
		r.Equal(floatPtr(0.25), ParseFloat(0.25))
		r.Equal(floatPtr(1), ParseFloat(true))
		r.Equal(floatPtr(7), ParseFloat(7))
	})

	t.Run("should return null for unparsable floats", func(t *testing.T) {
		for _, v := range []any{"abc", "nan", "inf", math.NaN(), map[string]any{}, []any{1}} {
			r.Nil(ParseFloat(v), "%#v", v)
		}
	})

	t.Run("should parse integers and truncate fractional numbers", func(t *testing.T) {
		r.Equal(intPtr(42), ParseInt("42"))
		r.Equal(intPtr(42), ParseInt(" 42 "))
		r.Equal(intPtr(42), ParseInt(json.Number("42")))
		r.Equal(intPtr(4), ParseInt(json.Number("4.9")))
		r.Equal(intPtr(-4), ParseInt(-4.9))
		r.Equal(intPtr(0), ParseInt(false))
	})

	t.Run("should return null for unparsable integers", func(t *testing.T) {
		for _, v := range []any{"4.5", "abc", math.Inf(1), json.Number("1e30"), struct{}{}} {
			r.Nil(ParseInt(v), "%#v", v)
		}
	})
}

func TestBuilderRows(t *testing.T) {
	r := require.New(t)
	fixed := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	b := NewBuilder(nil, WithClock(func() time.Time { return fixed }))

	t.Run("should build the overview row", func(t *testing.T) {
		row := b.Overview(map[string]any{
			"leadPortfolioId":     json.Number("3812345678901234567"),
			"favoriteCount":       "15",
			"currentCopyCount":    json.Number("7"),
			"maxCopyCount":        nil,
			"walletBalanceAmount": "1024.5",
			"walletBalanceAsset":  "USDT",
			"aumAmount":           "",
			"tagItemVos": []any{
				map[string]any{"name": "Top", "days": json.Number("30"), "ranking": json.Number("2"), "sort": json.Number("1")},
				map[string]any{"name": "Ignored"},
			},
			"lastTradeTime":   "",
			"badgeModifyTime": json.Number("1710057600000"),
		})

		r.Equal(json.Number("3812345678901234567"), row.LeadPortfolioID)
		r.Equal(intPtr(15), row.FavoriteCount)
		r.Equal(intPtr(7), row.CurrentCopyCount)
		r.Nil(row.MaxCopyCount)
		r.Nil(row.TotalCopyCount)
		r.Equal(floatPtr(1024.5), row.WalletBalanceAmount)
		r.Equal("USDT", row.WalletBalanceAsset)
		r.Nil(row.AUMAmount)
		r.Equal("Top", row.TagName)
		r.Equal(json.Number("30"), row.TagDays)
		r.Equal(json.Number("1710057600000"), row.DataUpdatedAt)
		r.Equal("2024-03-10T08:00:00+00:00", row.Datetime)
	})

	t.Run("should tolerate missing tags", func(t *testing.T) {
		row := b.Overview(map[string]any{"tagItemVos": []any{}})
		r.Nil(row.TagName)
		r.Nil(row.TagSort)
		r.Nil(row.DataUpdatedAt)

		row = b.Overview(map[string]any{})
		r.Nil(row.TagName)
	})

	t.Run("should render microseconds in the datetime column", func(t *testing.T) {
		withMicros := NewBuilder(nil, WithClock(func() time.Time {
			return time.Date(2024, 3, 10, 16, 0, 0, 123456789, time.FixedZone("CST", 8*60*60))
		}))
		r.Equal("2024-03-10T08:00:00.123456+00:00", withMicros.Overview(map[string]any{}).Datetime)
	})

	t.Run("should build performance rows", func(t *testing.T) {
		row := b.Performance("ABC", "30D", map[string]any{
			"roi":           "12.5",
			"pnl":           json.Number("-3.25"),
			"winDays":       "9",
			"sharpRatio":    "null",
			"dataUpdatedAt": json.Number("1710057600000"),
		})
		r.Equal("ABC", row.LeadPortfolioID)
		r.Equal("30D", row.TimeRange)
		r.Equal(floatPtr(12.5), row.ROI)
		r.Equal(floatPtr(-3.25), row.PNL)
		r.Nil(row.MDD)
		r.Equal(intPtr(9), row.WinDays)
		r.Nil(row.SharpRatio)
	})

	t.Run("should fall back to alternate keys in list rows", func(t *testing.T) {
		holdings := Holdings("ABC", []map[string]any{
			{"asset": "BTC", "updateTime": json.Number("1"), "remainAmount": "0.5"},
			{"asset": "", "symbol": "ETHUSDT", "timeUpdated": "later", "lastPrice": json.Number("3000")},
		})
		r.Len(holdings, 2)
		r.Equal("BTC", holdings[0].Assets)
		r.Equal(floatPtr(0.5), holdings[0].RemainAmount)
		r.Equal("ETHUSDT", holdings[1].Assets)
		r.Equal("later", holdings[1].TimeUpdated)
		r.Equal(floatPtr(3000), holdings[1].LastPrice)

		trades := TradeHistory("ABC", []map[string]any{{"transactTime": json.Number("5"), "symbol": "BTCUSDT", "side": "BUY", "executedQty": "1.5"}})
		r.Equal(json.Number("5"), trades[0].Time)
		r.Equal("BTCUSDT", trades[0].Pair)
		r.Equal(floatPtr(1.5), trades[0].Executed)
		r.Nil(trades[0].Total)

		balances := BalanceHistory("ABC", []map[string]any{{"asset": "USDT", "amount": "10", "from": "spot", "to": "futures"}})
		r.Equal("USDT", balances[0].Coin)
		r.Equal("spot", balances[0].From)
		r.Equal("futures", balances[0].To)

		traders := CopyTraders("ABC", []map[string]any{{"user_id": "u1", "totalRoi": "0.1", "duration": json.Number("3")}})
		r.Equal("u1", traders[0].UserID)
		r.Equal(floatPtr(0.1), traders[0].TotalROI)
		r.Equal(json.Number("3"), traders[0].Duration)
	})

	t.Run("should keep the last falsy alternative", func(t *testing.T) {
		rows := Holdings("ABC", []map[string]any{{"asset": "", "symbol": ""}})
		r.Equal("", rows[0].Assets)
	})
}

const bundleJSON = `{
  "overview": {"leadPortfolioId": "3812345678901234567", "favoriteCount": "3"},
  "performance": {
    "90D": {"roi": "20"},
    "30D": {"roi": "10"}
  },
  "holdings": [{"asset": "BTC", "remainAmount": "1"}],
  "trade_history": [{"pair": "BTCUSDT", "total": "100"}],
  "balance_history": [],
  "copy_traders": [{"userId": "u1", "amount": "50"}]
}`

func decodeBundle(t *testing.T, raw string) map[string]any {
	t.Helper()
	decoded, err := payload.DecodeJSON([]byte(raw))
	require.NoError(t, err)
	bundle, ok := decoded.(map[string]any)
	require.True(t, ok)
	return bundle
}

func TestBuilderBuild(t *testing.T) {
	r := require.New(t)
	fixed := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	b := NewBuilder(nil, WithClock(func() time.Time { return fixed }))

	t.Run("should build every table from a bundle", func(t *testing.T) {
		set, err := b.Build(decodeBundle(t, bundleJSON), "")
		r.NoError(err)

		r.NotNil(set.Overview)
		r.Equal(intPtr(3), set.Overview.FavoriteCount)

		r.Len(set.Performance, 2)
		r.Equal("30D", set.Performance[0].TimeRange)
		r.Equal("90D", set.Performance[1].TimeRange)
		r.Equal("3812345678901234567", set.Performance[0].LeadPortfolioID)

		r.Len(set.Holdings, 1)
		r.Len(set.TradeHistory, 1)
		r.Empty(set.BalanceHistory)
		r.NotNil(set.BalanceHistory)
		r.Len(set.CopyTraders, 1)
		r.Equal(floatPtr(50), set.CopyTraders[0].Amount)
	})

	t.Run("should prefer the given lead portfolio id", func(t *testing.T) {
		set, err := b.Build(decodeBundle(t, bundleJSON), "OVERRIDE")
		r.NoError(err)
		r.Equal("OVERRIDE", set.Holdings[0].LeadPortfolioID)
	})

	t.Run("should use a numeric overview id verbatim", func(t *testing.T) {
		set, err := b.Build(decodeBundle(t, `{"overview":{"leadPortfolioId":3812345678901234567},"holdings":[{}]}`), "")
		r.NoError(err)
		r.Equal("3812345678901234567", set.Holdings[0].LeadPortfolioID)
	})

	t.Run("should require a lead portfolio id", func(t *testing.T) {
		_, err := b.Build(decodeBundle(t, `{"holdings":[]}`), "")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("should reject sections with the wrong shape", func(t *testing.T) {
		for _, raw := range []string{
			`{"overview":[]}`,
			`{"performance":[]}`,
			`{"performance":{"7D":"x"}}`,
			`{"holdings":{}}`,
			`{"copy_traders":[1]}`,
		} {
			_, err := b.Build(decodeBundle(t, raw), "ABC")
			r.ErrorIs(err, ErrMalformedSection, raw)
		}
	})
}
