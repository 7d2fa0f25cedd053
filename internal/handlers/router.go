package handlers

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/middlewares"
	"github.com/acmeweb/acme-api/internal/models"
	"github.com/acmeweb/acme-api/internal/repositories"
	"github.com/acmeweb/acme-api/internal/services"
)

// RouterDeps carries everything the HTTP surface needs. All fields
// are required except SwaggerURL.
type RouterDeps struct {
	DB       *sqlx.DB
	Validate *validator.Validate

	Tokener     middlewares.Tokener
	Revocations middlewares.RevocationChecker

	Auth   *services.AuthService
	Events *services.EventService

	Users        *repositories.UserRepository
	Products     *repositories.ProductRepository
	Favorites    *repositories.FavoriteRepository
	Items        *repositories.ItemRepository
	Reviews      *repositories.ReviewRepository
	Comments     *repositories.CommentRepository
	Customers    *repositories.CustomerRepository
	Restaurants  *repositories.RestaurantRepository
	Reservations *repositories.ReservationRepository
	Employees    *repositories.EmployeeRepository
	Departments  *repositories.DepartmentRepository
	Flavors      *repositories.FlavorRepository

	SwaggerURL string
}

// NewRouter assembles the chi router: recovery and request logging on
// everything, bearer auth on the owned routes, and a per-request
// transaction around every mutating route.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authmw := middlewares.AuthMiddleware(deps.Tokener, deps.Revocations)
	tx := middlewares.TxMiddleware(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", NewRegisterHandler(deps.Auth, deps.Validate))
			r.Post("/login", NewLoginHandler(deps.Auth, deps.Validate))
			r.Group(func(r chi.Router) {
				r.Use(authmw)
				r.Get("/me", NewMeHandler(deps.Auth))
				r.Post("/logout", NewLogoutHandler(deps.Auth, deps.Tokener))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", NewListHandler[models.User](deps.Users))
			r.Get("/{id}", NewGetHandler[models.User](deps.Users))
			r.Get("/{id}/reviews", NewUserReviewsListHandler(deps.Reviews))
			r.Get("/{id}/comments", NewUserCommentsListHandler(deps.Comments))

			r.Route("/{id}/favorites", func(r chi.Router) {
				r.Use(authmw)
				r.Get("/", NewUserFavoritesListHandler(deps.Favorites))
				r.With(tx).Post("/", NewUserFavoriteCreateHandler(deps.Favorites, deps.Validate, deps.Events))
				r.With(tx).Delete("/{favoriteID}", NewUserFavoriteDeleteHandler(deps.Favorites, deps.Events))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Product](deps.Products))
			r.Get("/{id}", NewGetHandler[models.Product](deps.Products))
			r.With(tx).Post("/", NewCreateHandler[ProductRequest, models.Product](deps.Products, deps.Validate, "products", productCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[ProductRequest, models.Product](deps.Products, deps.Validate, "products", productUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Product](deps.Products, "products", false, deps.Events))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Item](deps.Items))
			r.Get("/{id}", NewGetHandler[models.Item](deps.Items))
			r.With(tx).Post("/", NewCreateHandler[ItemRequest, models.Item](deps.Items, deps.Validate, "items", itemCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[ItemRequest, models.Item](deps.Items, deps.Validate, "items", itemUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Item](deps.Items, "items", false, deps.Events))

			r.Get("/{id}/reviews", NewItemReviewsListHandler(deps.Reviews))
			r.With(authmw, tx).Post("/{id}/reviews", NewItemReviewCreateHandler(deps.Reviews, deps.Validate, deps.Events))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/{id}/comments", NewReviewCommentsListHandler(deps.Comments))
			r.With(authmw, tx).Post("/{id}/comments", NewReviewCommentCreateHandler(deps.Comments, deps.Validate, deps.Events))

			r.Group(func(r chi.Router) {
				r.Use(authmw, tx)
				r.Put("/{id}", NewUpdateHandler[ReviewRequest, models.Review](deps.Reviews, deps.Validate, "reviews", reviewUpdateFields, true, deps.Events))
				r.Delete("/{id}", NewDeleteHandler[models.Review](deps.Reviews, "reviews", true, deps.Events))
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(authmw, tx)
			r.Put("/{id}", NewUpdateHandler[CommentRequest, models.Comment](deps.Comments, deps.Validate, "comments", commentUpdateFields, true, deps.Events))
			r.Delete("/{id}", NewDeleteHandler[models.Comment](deps.Comments, "comments", true, deps.Events))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Customer](deps.Customers))
			r.Get("/{id}", NewGetHandler[models.Customer](deps.Customers))
			r.With(tx).Post("/", NewCreateHandler[CustomerRequest, models.Customer](deps.Customers, deps.Validate, "customers", customerCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[CustomerRequest, models.Customer](deps.Customers, deps.Validate, "customers", customerUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Customer](deps.Customers, "customers", false, deps.Events))

			r.Get("/{id}/reservations", NewCustomerReservationsListHandler(deps.Reservations))
			r.With(tx).Post("/{id}/reservations", NewCustomerReservationCreateHandler(deps.Reservations, deps.Validate, deps.Events))
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Restaurant](deps.Restaurants))
			r.Get("/{id}", NewGetHandler[models.Restaurant](deps.Restaurants))
			r.With(tx).Post("/", NewCreateHandler[RestaurantRequest, models.Restaurant](deps.Restaurants, deps.Validate, "restaurants", restaurantCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[RestaurantRequest, models.Restaurant](deps.Restaurants, deps.Validate, "restaurants", restaurantUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Restaurant](deps.Restaurants, "restaurants", false, deps.Events))
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Reservation](deps.Reservations))
			r.Get("/{id}", NewGetHandler[models.Reservation](deps.Reservations))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Reservation](deps.Reservations, "reservations", false, deps.Events))
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", NewEmployeeListHandler(deps.Employees))
			r.Get("/{id}", NewEmployeeGetHandler(deps.Employees))
			r.With(tx).Post("/", NewCreateHandler[EmployeeRequest, models.Employee](deps.Employees, deps.Validate, "employees", employeeCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[EmployeeRequest, models.Employee](deps.Employees, deps.Validate, "employees", employeeUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Employee](deps.Employees, "employees", false, deps.Events))
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Department](deps.Departments))
			r.Get("/{id}", NewGetHandler[models.Department](deps.Departments))
			r.With(tx).Post("/", NewCreateHandler[DepartmentRequest, models.Department](deps.Departments, deps.Validate, "departments", departmentCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[DepartmentRequest, models.Department](deps.Departments, deps.Validate, "departments", departmentUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Department](deps.Departments, "departments", false, deps.Events))
		})

		r.Route("/flavors", func(r chi.Router) {
			r.Get("/", NewListHandler[models.Flavor](deps.Flavors))
			r.Get("/{id}", NewGetHandler[models.Flavor](deps.Flavors))
			r.With(tx).Post("/", NewCreateHandler[FlavorRequest, models.Flavor](deps.Flavors, deps.Validate, "flavors", flavorCreateFields, deps.Events))
			r.With(tx).Put("/{id}", NewUpdateHandler[FlavorRequest, models.Flavor](deps.Flavors, deps.Validate, "flavors", flavorUpdateFields, false, deps.Events))
			r.With(tx).Delete("/{id}", NewDeleteHandler[models.Flavor](deps.Flavors, "flavors", false, deps.Events))
		})
	})

	if deps.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL(deps.SwaggerURL),
		))
	}

	return r
}
