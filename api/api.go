package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/learnhub/api/middleware"
	"github.com/irsalhamdi/learnhub/api/web"
	"github.com/irsalhamdi/learnhub/core/auth"
	"github.com/irsalhamdi/learnhub/core/cart"
	"github.com/irsalhamdi/learnhub/core/course"
	"github.com/irsalhamdi/learnhub/core/dashboard"
	"github.com/irsalhamdi/learnhub/core/notify"
	"github.com/irsalhamdi/learnhub/core/shop"
	"github.com/irsalhamdi/learnhub/core/wishlist"
	"github.com/irsalhamdi/learnhub/rate"
	"github.com/irsalhamdi/learnhub/storage"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin  string
	Log         logrus.FieldLogger
	Session     *scs.SessionManager
	Store       storage.Source
	Catalog     *course.Catalog
	Users       *auth.Directory
	Limiter     *rate.Limiter
	NotifyTTL   time.Duration
	NotifyLimit int
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	a.mw = append(a.mw, shop.Provide(shop.Config{
		Source:      cfg.Store,
		Log:         cfg.Log,
		NotifyTTL:   cfg.NotifyTTL,
		NotifyLimit: cfg.NotifyLimit,
	}))

	authen := auth.Authenticate(cfg.Session)

	a.Handle(http.MethodGet, "/health", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.Users, cfg.Session))
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.Users, cfg.Session))
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))
	a.Handle(http.MethodGet, "/auth/current", auth.HandleShowCurrent(cfg.Users), authen)

	a.Handle(http.MethodGet, "/courses/categories", course.HandleCategories(cfg.Catalog))
	a.Handle(http.MethodGet, "/courses/{id}", course.HandleShow(cfg.Catalog))
	a.Handle(http.MethodGet, "/courses", course.HandleList(cfg.Catalog))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow())
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete())
	a.Handle(http.MethodPut, "/cart/items", cart.HandleCreateItem(cfg.Catalog))
	a.Handle(http.MethodPatch, "/cart/items/{id}", cart.HandleUpdateItem())
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleDeleteItem())

	a.Handle(http.MethodGet, "/wishlist", wishlist.HandleShow())
	a.Handle(http.MethodPut, "/wishlist/items", wishlist.HandleCreateItem(cfg.Catalog))
	a.Handle(http.MethodDelete, "/wishlist/items/{id}", wishlist.HandleDeleteItem())
	a.Handle(http.MethodPost, "/wishlist/items/{id}/move", shop.HandleMoveToCart())

	a.Handle(http.MethodGet, "/notifications", notify.HandleDrain())
	a.Handle(http.MethodGet, "/badges", dashboard.HandleBadges(cfg.Log))
	a.Handle(http.MethodGet, "/dashboard", dashboard.HandleDashboard(cfg.Catalog, cfg.Users), authen)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
