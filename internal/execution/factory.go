package execution

import (
	"fmt"
	"log/slog"

	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/event"
	"github.com/Haoran-Jie/ReadyTraderGo-CrazyThursday/internal/infra"
)

// Mode selects the execution backend.
type Mode string

const (
	ModePaper Mode = "PAPER"
	ModeMock  Mode = "MOCK"
	ModeLive  Mode = "LIVE"
)

// NewExecutionClient returns the backend for the configured trading mode.
// The inbox is needed by the paper venue to report back; the session is
// needed by live mode and may be nil otherwise.
func NewExecutionClient(cfg *infra.Config, inbox chan<- event.Event, session *infra.FeedSession) (ExecutionClient, error) {
	mode := Mode(cfg.Trading.Mode)
	slog.Info("initializing execution", "mode", mode)

	switch mode {
	case ModePaper:
		return NewPaperExchange(inbox), nil
	case ModeMock:
		return NewMockExecution(), nil
	case ModeLive:
		if session == nil {
			return nil, fmt.Errorf("live execution requires an exchange session")
		}
		return NewLiveExecution(session), nil
	default:
		return nil, fmt.Errorf("unknown execution mode: %s", mode)
	}
}
