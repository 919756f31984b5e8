package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/models"
	"github.com/logabaalan777/property-listing/store"
	"github.com/logabaalan777/property-listing/utils"
)

const emailExistsMarker = "exists"

type AuthController struct {
	users    store.UserStore
	cache    cache.Cache
	jwt      *utils.JWTManager
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAuthController(users store.UserStore, c cache.Cache, jwt *utils.JWTManager, logger *zap.Logger) *AuthController {
	return &AuthController{
		users:    users,
		cache:    c,
		jwt:      jwt,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a user. A short-TTL existence marker in the cache fronts
// the duplicate-email check so repeated attempts with a taken address skip
// the store entirely.
func (ac *AuthController) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := ac.validate.Struct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "Name, email and password are required")
			return
		}

		ctx := r.Context()
		emailKey := cache.EmailKey(req.Email)

		if marker, err := ac.cache.Get(ctx, emailKey); err == nil && marker == emailExistsMarker {
			WriteError(w, http.StatusBadRequest, "Email already exists")
			return
		} else if err != nil && !errors.Is(err, cache.ErrMiss) {
			ac.logger.Warn("email marker lookup failed", zap.Error(err))
		}

		if _, err := ac.users.FindByEmail(ctx, req.Email); err == nil {
			if cerr := ac.cache.Set(ctx, emailKey, emailExistsMarker, cache.EmailMarkerTTL); cerr != nil {
				ac.logger.Warn("email marker set failed", zap.Error(cerr))
			}
			WriteError(w, http.StatusBadRequest, "Email already exists")
			return
		} else if !errors.Is(err, store.ErrNotFound) {
			ac.logger.Error("duplicate-email check failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			ac.logger.Error("password hashing failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		user := &models.User{
			Name:      req.Name,
			Email:     req.Email,
			Password:  hashed,
			CreatedAt: time.Now().UTC(),
		}
		if err := ac.users.Insert(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				WriteError(w, http.StatusBadRequest, "Email already exists")
				return
			}
			ac.logger.Error("user insert failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		token, err := ac.jwt.Generate(user.ID.Hex())
		if err != nil {
			ac.logger.Error("token generation failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		ac.cacheSession(r, user)

		WriteJSON(w, http.StatusCreated, models.AuthResponse{User: user.Public(), Token: token})
	}
}

// Login verifies credentials and issues a session token.
func (ac *AuthController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := ac.validate.Struct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "Email and password are required")
			return
		}

		user, err := ac.users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusBadRequest, "Invalid email or password")
				return
			}
			ac.logger.Error("user lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			WriteError(w, http.StatusBadRequest, "Invalid email or password")
			return
		}

		token, err := ac.jwt.Generate(user.ID.Hex())
		if err != nil {
			ac.logger.Error("token generation failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		ac.cacheSession(r, user)

		WriteJSON(w, http.StatusOK, models.AuthResponse{User: user.Public(), Token: token})
	}
}

// Profile returns the caller's identity without the credential.
func (ac *AuthController) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := ac.users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "User not found")
				return
			}
			ac.logger.Error("profile lookup failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Failed to get user profile")
			return
		}

		WriteJSON(w, http.StatusOK, user.Public())
	}
}

func (ac *AuthController) cacheSession(r *http.Request, user *models.User) {
	encoded, err := json.Marshal(user.Public())
	if err != nil {
		return
	}
	key := cache.SessionKey(user.ID.Hex())
	if err := ac.cache.Set(r.Context(), key, string(encoded), cache.SessionTTL); err != nil {
		ac.logger.Warn("session cache set failed", zap.String("key", key), zap.Error(err))
	}
}
