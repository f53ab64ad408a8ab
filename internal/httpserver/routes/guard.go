package routes

import (
	"github.com/MrSnakeDoc/nitron/internal/httpserver/deps"
	"github.com/MrSnakeDoc/nitron/internal/httpserver/mw"
)

// guarded returns the access checks applied to every route except /healthz.
func guarded(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}

// writes returns guarded plus the shared write rate limit.
func writes(d deps.Deps) []Middleware {
	mws := guarded(d)
	if d.WriteLimiter != nil {
		mws = append(mws, d.WriteLimiter)
	}
	return mws
}
