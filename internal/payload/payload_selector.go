package payload

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func selectorLocator(scriptID string, logger *slog.Logger) locator {
	selector := "script[id=" + strconv.Quote(scriptID) + "]"

	return func(html string) (string, bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			logger.Debug("failed to parse html document", "error", err)
			return "", false
		}

		script := doc.Find(selector).First()
		if script.Length() == 0 {
			return "", false
		}

		text := script.Text()
		if text == "" {
			return "", false
		}
		return text, true
	}
}
