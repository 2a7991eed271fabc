package placeholders

import (
	"strconv"
	"time"
)

func (s *Service) resolveNowUnix() (string, error) {
	return strconv.FormatInt(s.now().UTC().Unix(), 10), nil
}

func (s *Service) resolveNowISO8601() (string, error) {
	return s.now().UTC().Format(time.RFC3339), nil
}
