package converter

import (
	"github.com/mahesh00009/CurToCryptoFrontend/pkg/types/convert"
)

type ListState int

const (
	ListNotLoaded ListState = iota
	ListLoading
	ListLoaded
	ListFailed
)

func (s ListState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListFailed:
		return "failed"
	default:
		return "not-loaded"
	}
}

func (s ListState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a copy of the controller state as of one loop turn.
// ConvertedAmount is nil when there is no result and points to "" while a
// conversion is pending.
type Snapshot struct {
	Cryptos         []convert.Currency `json:"cryptos"`
	ListState       ListState          `json:"listState"`
	Amount          string             `json:"amount"`
	Symbol          string             `json:"symbol"`
	Convert         string             `json:"convert"`
	ConvertedAmount *string            `json:"convertedAmount"`
	Loading         bool               `json:"loading"`
}

// Display renders the converted amount line the way the widget shows it.
func (s Snapshot) Display() string {
	switch {
	case s.Loading:
		return "…"
	case s.ConvertedAmount == nil:
		return "-"
	case *s.ConvertedAmount == "":
		return ""
	default:
		return *s.ConvertedAmount + " " + s.Symbol
	}
}
