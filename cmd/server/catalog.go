package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printgenie/internal/export"
	"github.com/Simplici0/printgenie/internal/logger"
	"github.com/Simplici0/printgenie/internal/publish"
	"github.com/Simplici0/printgenie/internal/refdata"
	"github.com/Simplici0/printgenie/internal/sku"
	"github.com/Simplici0/printgenie/internal/store"
)

type skuPreviewResponse struct {
	SKU      string      `json:"sku"`
	Sequence int         `json:"sequence"`
	Decoded  sku.Decoded `json:"decoded"`
}

type skuDecodeResponse struct {
	sku.Decoded
	Unresolved []string `json:"unresolved,omitempty"`
}

func (s *server) handleSKUPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	segments := map[string]string{
		"subcategory": strings.TrimSpace(q.Get("subcategory")),
		"material":    strings.TrimSpace(q.Get("material")),
		"color":       strings.TrimSpace(q.Get("color")),
		"size":        strings.TrimSpace(q.Get("size")),
	}
	for _, name := range []string{"subcategory", "material", "color", "size"} {
		if segments[name] == "" {
			writeError(w, http.StatusBadRequest, name+" is required")
			return
		}
	}

	dict, err := s.dictionaries(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load categories", err)
		return
	}
	next, err := s.store.Sequences.Peek(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to read sku sequence", err)
		return
	}

	code := sku.Encode(segments["subcategory"], segments["material"], segments["color"], segments["size"], next)
	decoded, err := sku.Decode(code, dict)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, skuPreviewResponse{SKU: code, Sequence: next, Decoded: decoded})
}

func (s *server) handleSKUDecode(w http.ResponseWriter, r *http.Request) {
	dict, err := s.dictionaries(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load categories", err)
		return
	}

	decoded, err := sku.Decode(chi.URLParam(r, "sku"), dict)
	var malformed *sku.MalformedError
	if errors.As(err, &malformed) {
		writeError(w, http.StatusBadRequest, malformed.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to decode sku", err)
		return
	}
	writeJSON(w, http.StatusOK, skuDecodeResponse{Decoded: decoded, Unresolved: decoded.Unresolved()})
}

func (s *server) handleProductsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := s.store.Products.List(r.Context(), store.ProductFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	})
	if err != nil {
		s.serverError(w, r, "failed to load products", err)
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var in store.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if in.SubcategoryName == "" {
		dict, err := s.dictionaries(r.Context())
		if err != nil {
			s.serverError(w, r, "failed to load categories", err)
			return
		}
		if _, name, ok := dict.Subcategory(in.Subcategory); ok {
			in.SubcategoryName = name
		}
	}

	product, err := s.store.Products.Create(r.Context(), in)
	if errors.Is(err, store.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to create product", err)
		return
	}

	s.metrics.SKUMinted()
	logger.FromContext(r.Context()).Info("product created", zap.String("sku", product.SKU))
	writeJSON(w, http.StatusCreated, product)
}

func (s *server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "sku")))
	err := s.store.Products.Delete(r.Context(), code)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleProductsCSV(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.Products.List(r.Context(), store.ProductFilter{})
	if err != nil {
		s.serverError(w, r, "failed to load products", err)
		return
	}

	writeAttachment(w, "text/csv; charset=utf-8", export.CatalogFilename(s.now()))
	if err := export.Catalog(w, products); err != nil {
		logger.FromContext(r.Context()).Error("failed to write catalog csv", zap.Error(err))
	}
}

func (s *server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Products.Stats(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load catalog stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleCatalogPublish(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog publishing is not configured")
		return
	}

	products, err := s.store.Products.List(r.Context(), store.ProductFilter{})
	if err != nil {
		s.serverError(w, r, "failed to load products", err)
		return
	}
	content, err := publish.Encode(products, s.now())
	if err != nil {
		s.serverError(w, r, "failed to encode catalog", err)
		return
	}

	message := fmt.Sprintf("Update catalog (%d products)", len(products))
	result, err := s.publisher.Publish(r.Context(), content, message)

	var apiErr *publish.APIError
	switch {
	case err == nil:
		s.metrics.Published("success")
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, publish.ErrTimeout):
		s.metrics.Published("timeout")
		logger.FromContext(r.Context()).Warn("catalog publish timed out", zap.Error(err))
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &apiErr):
		s.metrics.Published("error")
		logger.FromContext(r.Context()).Warn("catalog publish rejected", zap.Int("status", apiErr.Status), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: apiErr.Error(), Hint: apiErr.Hint()})
	default:
		s.metrics.Published("error")
		s.serverError(w, r, "failed to publish catalog", err)
	}
}

// dictionaries returns the built-in reference data with the operator's
// custom categories layered on top.
func (s *server) dictionaries(ctx context.Context) (*refdata.Dictionaries, error) {
	overlay, err := s.store.Categories.Overlay(ctx)
	if err != nil {
		return nil, err
	}
	return refdata.Builtin().WithOverlay(overlay), nil
}
