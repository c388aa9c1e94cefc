package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/refdata"
	"github.com/Simplici0/printgenie/internal/share"
	"github.com/Simplici0/printgenie/internal/store"
)

func (s *server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	engine, err := s.engine(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load pricing config", err)
		return
	}
	writeJSON(w, http.StatusOK, engine.Config())
}

func (s *server) handleConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var partial pricing.PartialConfig
	if err := decodeJSON(w, r, &partial); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := s.store.Settings.SavePricing(r.Context(), partial)
	if errors.Is(err, store.ErrInvalidConfig) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to save pricing config", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *server) handleConfigReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Settings.ResetPricing(r.Context()); err != nil {
		s.serverError(w, r, "failed to reset pricing config", err)
		return
	}
	writeJSON(w, http.StatusOK, pricing.Defaults())
}

func (s *server) handleCategoriesList(w http.ResponseWriter, r *http.Request) {
	dict, err := s.dictionaries(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load categories", err)
		return
	}
	writeJSON(w, http.StatusOK, dict.Categories())
}

func (s *server) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var cat store.CustomCategory
	if err := decodeJSON(w, r, &cat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, _, builtin := refdata.Builtin().Subcategory(cat.Code); builtin {
		writeError(w, http.StatusConflict, fmt.Sprintf("code %s is a built-in subcategory", cat.Code))
		return
	}

	err := s.store.Categories.Add(r.Context(), cat)
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.serverError(w, r, "failed to save category", err)
	default:
		writeJSON(w, http.StatusCreated, cat)
	}
}

func (s *server) handleCompanyGet(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.Settings.LoadCompany(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load company info", err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *server) handleCompanyUpdate(w http.ResponseWriter, r *http.Request) {
	var company share.Company
	if err := decodeJSON(w, r, &company); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.Settings.SaveCompany(r.Context(), company)
	if errors.Is(err, store.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to save company info", err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}
