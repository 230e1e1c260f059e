package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/plateworks/storefront/internal/middleware"
	"github.com/plateworks/storefront/internal/model"
	"github.com/plateworks/storefront/internal/store/postgres"
	"github.com/plateworks/storefront/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RestaurantHandler handles restaurant directory and menu endpoints.
type RestaurantHandler struct {
	store  *postgres.Store
	logger *logger.Logger
}

// NewRestaurantHandler creates a new restaurant handler.
func NewRestaurantHandler(store *postgres.Store, log *logger.Logger) *RestaurantHandler {
	return &RestaurantHandler{store: store, logger: log}
}

// List handles GET /api/v1/restaurants.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	restaurants, err := h.store.Restaurants.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list restaurants", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	if restaurants == nil {
		restaurants = []model.Restaurant{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"restaurants": restaurants})
}

// Get handles GET /api/v1/restaurants/{restaurantID}.
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")
	if err := middleware.ValidateRestaurantID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rest, err := h.store.Restaurants.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		h.logger.Error("failed to get restaurant", zap.String("restaurant_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get restaurant")
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

// Menu handles GET /api/v1/restaurants/{restaurantID}/menu.
func (h *RestaurantHandler) Menu(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "restaurantID")
	if err := middleware.ValidateRestaurantID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.store.Menu.Categories(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load categories", zap.String("restaurant_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}
	items, err := h.store.Menu.Items(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load menu items", zap.String("restaurant_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load menu")
		return
	}

	if categories == nil {
		categories = []model.MenuCategory{}
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"items":      items,
	})
}

// Create handles POST /api/v1/restaurants. Requires authentication; the new
// restaurant starts in pending approval and stays off the directory until
// reviewed.
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.CreateRestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Slug == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name, slug and phone are required")
		return
	}

	rest, err := h.store.Restaurants.Create(r.Context(), ownerID, &req)
	if err != nil {
		h.logger.Error("failed to create restaurant", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create restaurant")
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}
