package transport

import (
	"errors"
	"net/http"

	"nevyra-be/internal/address"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AddressHandler struct {
	addressSvc address.Service
}

func NewAddressHandler(addressSvc address.Service) *AddressHandler {
	return &AddressHandler{addressSvc: addressSvc}
}

type addressRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zipCode"`
	SetAsDefault bool    `json:"setAsDefault"`
}

func (req *addressRequest) validate() string {
	switch {
	case req.FirstName == "" || req.LastName == "":
		return "firstName and lastName are required"
	case req.Phone == "":
		return "phone is required"
	case req.AddressLine1 == "":
		return "addressLine1 is required"
	case req.City == "" || req.State == "" || req.ZipCode == "":
		return "city, state and zipCode are required"
	}
	return ""
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addrs, err := h.addressSvc.List(r.Context())
	if err != nil {
		respondAddressError(w, err)
		return
	}
	respondData(w, http.StatusOK, addrs)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	addr, err := h.addressSvc.Create(r.Context(), address.CreateAddressInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		SetAsDefault: req.SetAsDefault,
	})
	if err != nil {
		respondAddressError(w, err)
		return
	}
	respondData(w, http.StatusCreated, addr)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, address.ErrInvalidAddressID.Error())
		return
	}

	var req addressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	addr, err := h.addressSvc.Update(r.Context(), address.UpdateAddressInput{
		AddressID:    id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
	})
	if err != nil {
		respondAddressError(w, err)
		return
	}
	respondData(w, http.StatusOK, addr)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, address.ErrInvalidAddressID.Error())
		return
	}

	if err := h.addressSvc.Delete(r.Context(), id); err != nil {
		respondAddressError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "address deleted")
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, address.ErrInvalidAddressID.Error())
		return
	}

	if err := h.addressSvc.SetDefaultAddress(r.Context(), id); err != nil {
		respondAddressError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "default address updated")
}

func respondAddressError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, address.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, address.ErrAddressNotFound):
		respondError(w, http.StatusNotFound, address.ErrAddressNotFound.Error())
	case errors.Is(err, address.ErrInvalidAddressID):
		respondError(w, http.StatusBadRequest, address.ErrInvalidAddressID.Error())
	default:
		respondError(w, http.StatusInternalServerError, "address operation failed")
	}
}
