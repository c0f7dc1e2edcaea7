package httpapi

import (
	"sync/atomic"

	"internmatch-engine/internal/events"
	"internmatch-engine/internal/logger"
	"internmatch-engine/internal/service"
)

type Deps struct {
	Service *service.Service
	Hub     *events.Hub
	Log     *logger.Logger

	// CfgVal stores the running config.Config.
	CfgVal *atomic.Value

	// AdminToken returns the token admin routes require. Injected so tests
	// don't need a keychain.
	AdminToken  func() (string, error)
	RotateToken func() (string, error)

	Limiter *ClientLimiter
}
