package router

import (
	"log"
	"net/http"

	"github.com/Renal37/campus-eats/internal/logger"
	"github.com/Renal37/campus-eats/internal/middlewares"
	"github.com/Renal37/campus-eats/internal/models"
	"github.com/go-chi/chi/v5"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config              Config
	authService         models.AuthService
	jwtService          models.JWTService
	orderService        models.OrderService
	creditService       models.CreditService
	cartService         models.CartService
	menuService         models.MenuService
	restaurantService   models.RestaurantService
	feedbackService     models.FeedbackService
	adminService        models.AdminService
	notificationService models.NotificationService
}

func New(
	config Config,
	authService models.AuthService,
	jwtService models.JWTService,
	orderService models.OrderService,
	creditService models.CreditService,
	cartService models.CartService,
	menuService models.MenuService,
	restaurantService models.RestaurantService,
	feedbackService models.FeedbackService,
	adminService models.AdminService,
	notificationService models.NotificationService,
) *Router {
	return &Router{
		config,
		authService,
		jwtService,
		orderService,
		creditService,
		cartService,
		menuService,
		restaurantService,
		feedbackService,
		adminService,
		notificationService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewares.ServiceInjectorMiddleware(
			router.authService,
			router.jwtService,
			router.orderService,
			router.creditService,
			router.cartService,
			router.menuService,
			router.restaurantService,
			router.feedbackService,
			router.adminService,
			router.notificationService,
		),
		logger.RequestLogger,
		middlewares.AuthMiddleware().WithExcludedPaths(
			"/api/user/register",
			"/api/user/login",
		).Middleware,
	)

	r.Route("/api/user", func(r chi.Router) {
		r.With(middlewares.JSONMiddleware[models.UnknownUser]).Post("/register", Register)
		r.With(middlewares.JSONMiddleware[models.UnknownUser]).Post("/login", Login)

		r.Get("/stats", GetUserStats)

		r.Get("/notifications", GetNotifications)
		r.Post("/notifications/{id}/read", MarkNotificationRead)
	})

	r.Route("/api/restaurants", func(r chi.Router) {
		r.Get("/", SearchRestaurants)
		r.Get("/{id}/menu", GetMenu)
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middlewares.RequireRole(models.RoleCustomer))

		r.Get("/", GetCart)
		r.With(middlewares.JSONMiddleware[models.CartUpdate]).Post("/items", AddCartItem)
		r.With(middlewares.JSONMiddleware[models.CartUpdate]).Patch("/items", UpdateCartItem)
		r.Delete("/", ClearCart)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.With(
			middlewares.RequireRole(models.RoleCustomer),
			middlewares.JSONMiddleware[models.NewOrder],
		).Post("/", Checkout)

		r.Get("/", GetOrders)
		r.Get("/{number}", GetOrder)

		r.With(
			middlewares.RequireRole(models.RoleRestaurant),
			middlewares.JSONMiddleware[models.StatusUpdate],
		).Patch("/{number}/status", UpdateOrderStatus)

		r.With(middlewares.JSONMiddleware[models.Cancellation]).Post("/{number}/cancel", CancelOrder)
	})

	r.Route("/api/restaurant", func(r chi.Router) {
		r.Use(middlewares.RequireRole(models.RoleRestaurant))

		r.Get("/profile", GetOwnRestaurant)
		r.With(middlewares.JSONMiddleware[models.OpenState]).Post("/open", SetRestaurantOpen)

		r.With(middlewares.JSONMiddleware[models.MenuItem]).Post("/menu", CreateMenuItem)
		r.With(middlewares.JSONMiddleware[models.MenuItemUpdate]).Patch("/menu/{id}", UpdateMenuItem)
		r.Post("/menu/{id}/toggle", ToggleMenuItem)

		r.With(middlewares.JSONMiddleware[models.NewFeedback]).Post("/feedback", SubmitFeedback)
		r.Get("/feedback/pending", GetPendingFeedbackOrders)
		r.Get("/feedback/history", GetFeedbackHistory)
		r.Get("/feedback/stats", GetFeedbackStats)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middlewares.RequireRole(models.RoleAdmin))

		r.With(middlewares.JSONMiddleware[models.CreditOverride]).Post("/users/{id}/credit", OverrideCreditScore)
		r.Post("/users/{id}/toggle", ToggleUserActive)
		r.Post("/restaurants/{id}/trust", ToggleTrustBadge)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}
