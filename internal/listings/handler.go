package listings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/leasematch-platform/leasematch/internal/api"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError(err.Error()))
		return
	}

	listing, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		slog.Error("creating listing", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusCreated, listing)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "listingID"))
	if err != nil {
		api.HandleError(w, api.NewBadRequestError("invalid listing ID"))
		return
	}

	listing, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("fetching listing", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}
	if listing == nil {
		api.HandleError(w, api.NewNotFoundError("listing not found"))
		return
	}

	api.JSON(w, http.StatusOK, listing)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := SearchFilter{
		City:         q.Get("city"),
		PropertyType: q.Get("property_type"),
		MinPrice:     queryFloat(q.Get("min_price")),
		MaxPrice:     queryFloat(q.Get("max_price")),
		MinSize:      queryFloat(q.Get("min_size")),
		MaxSize:      queryFloat(q.Get("max_size")),
	}

	results, err := h.svc.Search(r.Context(), filter)
	if err != nil {
		slog.Error("searching listings", "error", err)
		api.HandleError(w, api.ErrInternalServer)
		return
	}

	api.JSON(w, http.StatusOK, results)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "listingID"))
	if err != nil {
		api.HandleError(w, api.NewBadRequestError("invalid listing ID"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		slog.Error("deleting listing", "error", err)
		api.HandleError(w, api.NewNotFoundError("listing not found"))
		return
	}

	api.JSONMessage(w, http.StatusOK, "listing deleted successfully")
}

func queryFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
