package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/nitron/internal/domain"
	"github.com/MrSnakeDoc/nitron/internal/feature"
	"github.com/MrSnakeDoc/nitron/internal/logger"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time                // for testing, defaults to time.Now
	Location      *time.Location                  // zone used to pick "today" for summaries
	AllowedHosts  []string                        // Host headers allowed to access the server
	AllowedCIDRS  []string                        // client IPs allowed to access the server
	TrustProxy    bool                            // true if running behind a trusted reverse proxy (e.g., cloudflared)
	StoreBackend  string                          // "redis" | "sqlite" | "memory"
	Store         domain.RecordStore              // backing record store, used for health checks
	Bookmarks     *feature.Bookmarks              // bookmark feature
	History       *feature.History                // history feature
	ImportFile    string                          // Homepage bookmarks.yaml (empty if import disabled)
	ImportTrigger chan struct{}                   // Channel to trigger manual bookmark import (nil if import disabled)
	WriteLimiter  func(http.Handler) http.Handler // shared rate limit for mutating routes
}

// Now returns the current time from TimeNow, or time.Now when unset.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
