package handlers

import (
	"net/http"

	"github.com/Dosada05/cricket-system/services"
)

type StadiumHandler struct {
	stadiumService services.StadiumService
}

func NewStadiumHandler(stadiumService services.StadiumService) *StadiumHandler {
	return &StadiumHandler{stadiumService: stadiumService}
}

func (h *StadiumHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.StadiumInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stadium, err := h.stadiumService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"stadium": stadium}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StadiumHandler) List(w http.ResponseWriter, r *http.Request) {
	stadiums, err := h.stadiumService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"stadiums": stadiums}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StadiumHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	stadiumID, err := getIDFromURL(r, "stadiumId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stadium, err := h.stadiumService.GetByID(r.Context(), stadiumID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"stadium": stadium}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StadiumHandler) Update(w http.ResponseWriter, r *http.Request) {
	stadiumID, err := getIDFromURL(r, "stadiumId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.StadiumInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stadium, err := h.stadiumService.Update(r.Context(), stadiumID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"stadium": stadium}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StadiumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stadiumID, err := getIDFromURL(r, "stadiumId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.stadiumService.Delete(r.Context(), stadiumID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
