// Package kernel assembles the HTTP handler: global middleware chain,
// operational endpoints, the notice WebSocket, and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/lspratas/atelier/app/routes"
	"github.com/lspratas/atelier/config"
	"github.com/lspratas/atelier/pkg/auth"
	"github.com/lspratas/atelier/pkg/cache"
	"github.com/lspratas/atelier/pkg/metrics"
	"github.com/lspratas/atelier/pkg/middleware"
	"github.com/lspratas/atelier/pkg/notify"
	"github.com/lspratas/atelier/pkg/reqid"
	"github.com/lspratas/atelier/pkg/response"
	"github.com/lspratas/atelier/pkg/router"
	"github.com/lspratas/atelier/pkg/sse"
	"github.com/lspratas/atelier/pkg/ws"
)

// NewHTTP builds the full handler. Middleware order matters: metrics wraps
// everything, request IDs come before logging so every line carries one.
func NewHTTP(hub *ws.Hub) http.Handler {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	feed := notify.NewFeed()

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/ws/admin/notices", "ws.notices", noticeSocket(hub))
	r.Get("/sse/admin/notices", "sse.notices", noticeStream(feed))

	// Local disk uploads are served straight from the storage root.
	if config.StorageDefault() == "local" {
		r.Mount("/storage", http.StripPrefix("/storage/",
			http.FileServer(http.Dir(config.StorageLocalRoot()))))
	}

	routes.RegisterAPI(r, notify.Multi{notify.NewHubNotifier(hub), feed})

	return r.Handler()
}

// noticeSocket upgrades an admin client onto the notice hub. Browsers
// cannot set headers on a WebSocket handshake, so the session token rides
// in the query string instead.
func noticeSocket(hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorizeStream(w, r) {
			return
		}
		ws.Upgrade(w, r, hub)
	}
}

// noticeStream is the SSE fallback for the same feed, for clients that
// cannot hold a WebSocket open.
func noticeStream(feed *notify.Feed) http.HandlerFunc {
	const keepalive = 25 * time.Second

	return func(w http.ResponseWriter, r *http.Request) {
		if !authorizeStream(w, r) {
			return
		}

		stream := sse.New(w, r)
		if stream == nil {
			return
		}

		ch, cancel := feed.Subscribe()
		defer cancel()

		heartbeat := time.NewTicker(keepalive)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case n := <-ch:
				if err := stream.Send("notice", n); err != nil || stream.IsClosed() {
					return
				}
			case <-heartbeat.C:
				stream.Comment("keepalive")
				if stream.IsClosed() {
					return
				}
			}
		}
	}
}

func authorizeStream(w http.ResponseWriter, r *http.Request) bool {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Unauthorized(w)
		return false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		response.Unauthorized(w)
		return false
	}
	if cache.Has(r.Context(), middleware.RevokedKey(claims.ID)) {
		response.Unauthorized(w)
		return false
	}
	return true
}
