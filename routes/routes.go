package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/middleware"
	"github.com/logabaalan777/property-listing/store"
	"github.com/logabaalan777/property-listing/utils"
)

// Deps is everything the route tree needs, built once in main.
type Deps struct {
	Stores      *store.Stores
	Cache       cache.Cache
	Invalidator *cache.Invalidator
	JWT         *utils.JWTManager
	Logger      *zap.Logger
}

// Register wires every endpoint. Property listing and detail are public;
// everything else requires a bearer token.
func Register(router *mux.Router, deps Deps) {
	auth := controllers.NewAuthController(deps.Stores.Users, deps.Cache, deps.JWT, deps.Logger)
	property := controllers.NewPropertyController(deps.Stores.Properties, deps.Cache, deps.Invalidator, deps.Logger)
	favorite := controllers.NewFavoriteController(deps.Stores.Favorites, deps.Stores.Properties, deps.Cache, deps.Invalidator, deps.Logger)
	recommendation := controllers.NewRecommendationController(deps.Stores.Recommendations, deps.Stores.Users, deps.Stores.Properties, deps.Cache, deps.Invalidator, deps.Logger)

	requireAuth := middleware.Auth(deps.JWT, deps.Logger)

	// Auth
	router.HandleFunc("/auth/register", auth.Register()).Methods("POST")
	router.HandleFunc("/auth/login", auth.Login()).Methods("POST")
	router.Handle("/auth/profile", requireAuth(auth.Profile())).Methods("GET")

	// Properties. /properties/user must precede /properties/{id}.
	router.HandleFunc("/properties", property.List()).Methods("GET")
	router.Handle("/properties/user", requireAuth(property.ListByOwner())).Methods("GET")
	router.HandleFunc("/properties/{id}", property.GetByID()).Methods("GET")
	router.Handle("/properties", requireAuth(property.Create())).Methods("POST")
	router.Handle("/properties/{id}", requireAuth(property.Update())).Methods("PUT")
	router.Handle("/properties/{id}", requireAuth(property.Delete())).Methods("DELETE")

	// Favorites
	router.Handle("/favorites", requireAuth(favorite.List())).Methods("GET")
	router.Handle("/favorites", requireAuth(favorite.Add())).Methods("POST")
	router.Handle("/favorites/check/{propertyId}", requireAuth(favorite.Check())).Methods("GET")
	router.Handle("/favorites/{propertyId}", requireAuth(favorite.Remove())).Methods("DELETE")

	// Recommendations
	router.Handle("/recommendations", requireAuth(recommendation.Create())).Methods("POST")
	router.Handle("/recommendations/received", requireAuth(recommendation.ListReceived())).Methods("GET")
	router.Handle("/recommendations/{id}", requireAuth(recommendation.Delete())).Methods("DELETE")
}
