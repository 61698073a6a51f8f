package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/listplus/listplus-backend/api/controllers"
	"github.com/listplus/listplus-backend/api/middleware"
	"github.com/listplus/listplus-backend/internal/favourites"
	"github.com/listplus/listplus-backend/internal/groups"
	"github.com/listplus/listplus-backend/internal/lists"
	"github.com/listplus/listplus-backend/internal/shops"
	"github.com/listplus/listplus-backend/internal/users"
	"github.com/listplus/listplus-backend/pkg/config"
	"github.com/listplus/listplus-backend/pkg/db"
	"github.com/listplus/listplus-backend/pkg/logger"
	"github.com/listplus/listplus-backend/pkg/metrics"
	"github.com/listplus/listplus-backend/pkg/redis"
)

// NewRouter wires every endpoint behind the shared middleware chain.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	listService lists.Service,
	groupService groups.Service,
	shopService shops.Service,
	favouriteService favourites.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	storeUserPolicy := middleware.NewAuthRateLimitPolicy(
		"store-user",
		cfg.RateLimit.StoreUserWindow,
		cfg.RateLimit.StoreUserIPLimit,
		cfg.RateLimit.StoreUserUIDLimit,
	)

	r.Get("/", controllers.Welcome())
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, redisClient))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// The signup webhook carries its own identity token in the body, so it
	// stays outside the bearer-auth group and gets rate-limited instead.
	r.With(middleware.AuthRateLimit(storeUserPolicy, redisClient, logg)).
		Post("/api/auth/store-user", controllers.AuthStoreUser(userService, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Get("/", controllers.AuthProfile(userService, logg))
			r.Patch("/", controllers.AuthProfileUpdate(userService, logg))
			r.Delete("/", controllers.AuthProfileDelete(userService, logg))
		})
		r.Post("/user", controllers.UsersBatchGet(userService, logg))

		r.Route("/list", func(r chi.Router) {
			r.Get("/", controllers.ListsList(listService, logg))
			r.Post("/", controllers.ListsCreate(listService, logg))
			r.Get("/{id}", controllers.ListsGet(listService, logg))
			r.Patch("/{id}", controllers.ListsUpdate(listService, logg))
			r.Delete("/{id}", controllers.ListsDelete(listService, logg))
			r.Post("/{listId}/members", controllers.ListsAddMember(listService, logg))
			r.Delete("/{listId}/members/{memberId}", controllers.ListsRemoveMember(listService, logg))
			r.Post("/{listId}/invite", controllers.ListsRegenerateInvite(listService, logg))
			r.Post("/join/{inviteCode}", controllers.ListsJoin(listService, logg))
		})
		r.Route("/listitems", func(r chi.Router) {
			r.Get("/{id}", controllers.ListItemsList(listService, logg))
			r.Post("/{id}", controllers.ListItemsAdd(listService, logg))
			r.Patch("/{listId}/{itemId}", controllers.ListItemsUpdate(listService, logg))
			r.Delete("/{listId}/{itemId}", controllers.ListItemsDelete(listService, logg))
		})

		r.Route("/group", func(r chi.Router) {
			r.Get("/", controllers.GroupsList(groupService, logg))
			r.Post("/", controllers.GroupsCreate(groupService, logg))
			r.Get("/{id}", controllers.GroupsGet(groupService, logg))
			r.Patch("/{id}", controllers.GroupsUpdate(groupService, logg))
			r.Delete("/{id}", controllers.GroupsDelete(groupService, logg))
			r.Post("/{groupId}/members", controllers.GroupsAddMember(groupService, logg))
			r.Delete("/{groupId}/members/{memberId}", controllers.GroupsRemoveMember(groupService, logg))
			r.Post("/{groupId}/invite", controllers.GroupsRegenerateInvite(groupService, logg))
			r.Post("/join/{inviteCode}", controllers.GroupsJoin(groupService, logg))
		})
		r.Route("/groupitems", func(r chi.Router) {
			r.Get("/{id}", controllers.GroupItemsList(groupService, logg))
			r.Post("/{id}", controllers.GroupItemsAdd(groupService, logg))
			r.Get("/{id}/cancelled", controllers.GroupCancelledItemsList(groupService, logg))
			r.Patch("/{groupId}/{itemId}", controllers.GroupItemsUpdate(groupService, logg))
			r.Delete("/{groupId}/{itemId}", controllers.GroupItemsDelete(groupService, logg))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/favourites/list", controllers.ShopFavouritesList(favouriteService, logg))
			r.Post("/favourites", controllers.ShopFavouritesAdd(favouriteService, logg))
			r.Delete("/favourites/{shopId}", controllers.ShopFavouritesRemove(favouriteService, logg))
			r.Get("/", controllers.ShopsList(shopService, logg))
			r.Post("/", controllers.ShopsCreate(shopService, logg))
			r.Get("/{id}", controllers.ShopsGet(shopService, logg))
			r.Patch("/{id}", controllers.ShopsUpdate(shopService, logg))
			r.Delete("/{id}", controllers.ShopsDelete(shopService, logg))
		})
		r.Route("/shopitems", func(r chi.Router) {
			r.Get("/{id}", controllers.ShopItemsList(shopService, logg))
			r.Post("/{id}", controllers.ShopItemsAdd(shopService, logg))
			r.Patch("/{shopId}/{itemId}", controllers.ShopItemsUpdate(shopService, logg))
			r.Delete("/{shopId}/{itemId}", controllers.ShopItemsDelete(shopService, logg))
		})
	})

	return r
}
