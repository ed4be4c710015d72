package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brewopshq/brewhaus-backend/api/controllers"
	"github.com/brewopshq/brewhaus-backend/api/middleware"
	"github.com/brewopshq/brewhaus-backend/internal/batches"
	"github.com/brewopshq/brewhaus-backend/internal/dashboard"
	"github.com/brewopshq/brewhaus-backend/internal/grn"
	"github.com/brewopshq/brewhaus-backend/internal/ingredients"
	"github.com/brewopshq/brewhaus-backend/internal/locations"
	"github.com/brewopshq/brewhaus-backend/internal/orders"
	"github.com/brewopshq/brewhaus-backend/internal/products"
	"github.com/brewopshq/brewhaus-backend/internal/recipes"
	"github.com/brewopshq/brewhaus-backend/internal/users"
	"github.com/brewopshq/brewhaus-backend/pkg/config"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
	"github.com/brewopshq/brewhaus-backend/pkg/metrics"
)

// Services bundles the wired domain services the router exposes.
type Services struct {
	Ingredients ingredients.Service
	Recipes     recipes.Service
	GRNs        grn.Service
	Products    products.Service
	Batches     batches.Service
	Orders      orders.Service
	Users       users.Service
	Locations   locations.Service
	Dashboard   dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	cacheP controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	metricsRegistry prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Get("/ping", controllers.Ping())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cacheP, logg))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/ingredient", func(r chi.Router) {
		r.Get("/all", controllers.ListIngredients(svcs.Ingredients, logg))
		r.Post("/add", controllers.AddIngredient(svcs.Ingredients, logg))
		r.Put("/update/{id}", controllers.UpdateIngredient(svcs.Ingredients, logg))
	})

	r.Route("/recipe", func(r chi.Router) {
		r.Post("/add", controllers.AddRecipe(svcs.Recipes, logg))
		r.Put("/update/{id}", controllers.UpdateRecipe(svcs.Recipes, logg))
		r.Get("/view/{id}", controllers.ViewRecipe(svcs.Recipes, logg))
		r.Get("/view_all", controllers.ViewAllRecipes(svcs.Recipes, logg))
	})

	r.Route("/grn", func(r chi.Router) {
		r.Post("/add", controllers.AddGRN(svcs.GRNs, logg))
		r.Get("/view_all", controllers.ViewAllGRNs(svcs.GRNs, logg))
		r.Get("/view/{grn_id}", controllers.ViewGRN(svcs.GRNs, logg))
		r.Put("/update/{grn_id}", controllers.UpdateGRN(svcs.GRNs, logg))
	})

	r.Route("/product", func(r chi.Router) {
		r.Get("/all", controllers.ListProducts(svcs.Products, logg))
		r.Post("/add", controllers.AddProduct(svcs.Products, logg))
		r.Put("/update/{id}", controllers.UpdateProduct(svcs.Products, logg))
		r.Delete("/delete/{id}", controllers.DeleteProduct(svcs.Products, logg))
	})

	r.Route("/batch", func(r chi.Router) {
		r.Post("/add", controllers.AddBatch(svcs.Batches, logg))
		r.Get("/all", controllers.ListBatches(svcs.Batches, logg))
		r.Put("/edit/{id}", controllers.EditBatch(svcs.Batches, logg))
		r.Delete("/delete/{id}", controllers.DeleteBatch(svcs.Batches, logg))
	})

	r.Route("/order", func(r chi.Router) {
		r.Post("/add", controllers.AddOrder(svcs.Orders, logg))
		r.Get("/all", controllers.ListOrders(svcs.Orders, logg))
	})

	r.Route("/user", func(r chi.Router) {
		r.Get("/all", controllers.ListUsers(svcs.Users, logg))
		r.Post("/add", controllers.AddUser(svcs.Users, logg))
		r.Put("/update/{id}", controllers.UpdateUser(svcs.Users, logg))
		r.Delete("/delete/{id}", controllers.DeleteUser(svcs.Users, logg))
	})

	r.Route("/location", func(r chi.Router) {
		r.Get("/list", controllers.ListLocations(svcs.Locations, logg))
		r.Get("/users/all", controllers.ListLocationsWithUsers(svcs.Locations, logg))
		r.Post("/add", controllers.AddLocation(svcs.Locations, logg))
		r.Put("/update/{id}", controllers.UpdateLocation(svcs.Locations, logg))
		r.Delete("/delete/{id}", controllers.DeleteLocation(svcs.Locations, logg))
		r.Put("/assign_user/{uid}/{lid}", controllers.AssignUserToLocation(svcs.Locations, logg))
		r.Delete("/remove_user/{uid}/{lid}", controllers.RemoveUserFromLocation(svcs.Locations, logg))
		r.Get("/{id}", controllers.GetLocation(svcs.Locations, logg))
	})

	r.Get("/dashboard", controllers.Dashboard(svcs.Dashboard, logg))

	return r
}
