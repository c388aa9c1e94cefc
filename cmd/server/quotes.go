package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printgenie/internal/export"
	"github.com/Simplici0/printgenie/internal/logger"
	"github.com/Simplici0/printgenie/internal/pricing"
	"github.com/Simplici0/printgenie/internal/share"
	"github.com/Simplici0/printgenie/internal/store"
)

// quoteForm is a pricing request plus the descriptive fields kept with a
// saved quote.
type quoteForm struct {
	pricing.Request
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Customer string `json:"customer"`
}

type quoteShareResponse struct {
	WhatsApp share.Message `json:"whatsapp"`
	Email    share.Email   `json:"email"`
}

func (s *server) handleQuoteCalc(w http.ResponseWriter, r *http.Request) {
	form, err := decodeQuoteRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := s.computeQuote(r.Context(), form.Request)
	if err != nil {
		s.quoteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	form, err := decodeQuoteRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := s.computeQuote(r.Context(), form.Request)
	if err != nil {
		s.quoteError(w, r, err)
		return
	}

	now := s.now()
	saved := store.SavedQuote{
		CreatedAt: now.UTC().Truncate(time.Second),
		Title:     strings.TrimSpace(form.Title),
		Notes:     strings.TrimSpace(form.Notes),
		Customer:  strings.TrimSpace(form.Customer),
		Quote:     quote,
	}
	for attempt := 1; ; attempt++ {
		saved.ID = s.quoteID(now)
		err = s.store.Quotes.Save(r.Context(), saved)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicate) {
			s.serverError(w, r, "failed to save quote", err)
			return
		}
		if attempt == quoteIDAttempts {
			logger.FromContext(r.Context()).Warn("quote id collisions exhausted", zap.Int("attempts", attempt), zap.Error(err))
			writeError(w, http.StatusConflict, "could not allocate a unique quote id, try again")
			return
		}
	}

	writeJSON(w, http.StatusCreated, saved)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(r.Context(), query)
	if err != nil {
		s.serverError(w, r, "failed to load quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	opts, err := s.shareOptions(r.Context(), saved)
	if err != nil {
		s.serverError(w, r, "failed to load company info", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(share.PlainText(saved.Quote, opts)))
}

func (s *server) handleQuoteShare(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	opts, err := s.shareOptions(r.Context(), saved)
	if err != nil {
		s.serverError(w, r, "failed to load company info", err)
		return
	}

	writeJSON(w, http.StatusOK, quoteShareResponse{
		WhatsApp: share.WhatsApp(saved.Quote, opts),
		Email:    share.EmailContent(saved.Quote, opts),
	})
}

func (s *server) handleQuoteCSV(w http.ResponseWriter, r *http.Request) {
	saved, ok := s.loadQuote(w, r)
	if !ok {
		return
	}

	writeAttachment(w, "text/csv; charset=utf-8", export.QuoteFilename(saved.ID))
	if err := export.Quote(w, export.QuoteRow{
		QuoteID:  saved.ID,
		Date:     saved.CreatedAt,
		ItemName: itemName(saved),
		Quote:    saved.Quote,
	}); err != nil {
		logger.FromContext(r.Context()).Error("failed to write quote csv", zap.String("quote_id", saved.ID), zap.Error(err))
	}
}

func (s *server) handlePriceTable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := parseFloatField(q.Get("weight"), "weight")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hours, err := parseFloatField(q.Get("hours"), "hours")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := s.engine(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to load pricing config", err)
		return
	}
	rows, err := engine.PriceTable(weight, hours, q.Get("material"))
	if err != nil {
		s.quoteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *server) listQuotes(ctx context.Context, query string) ([]store.QuoteSummary, error) {
	quotes, err := s.store.Quotes.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	if quotes == nil {
		quotes = []store.QuoteSummary{}
	}
	return quotes, nil
}

func (s *server) getQuoteDetail(ctx context.Context, id string) (store.SavedQuote, error) {
	return s.store.Quotes.Get(ctx, id)
}

// loadQuote resolves the {id} route parameter, writing the error response
// itself when the quote cannot be returned.
func (s *server) loadQuote(w http.ResponseWriter, r *http.Request) (store.SavedQuote, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return store.SavedQuote{}, false
	}

	saved, err := s.getQuoteDetail(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quote not found")
		return store.SavedQuote{}, false
	}
	if err != nil {
		s.serverError(w, r, "failed to load quote", err)
		return store.SavedQuote{}, false
	}
	return saved, true
}

func (s *server) shareOptions(ctx context.Context, saved store.SavedQuote) (share.Options, error) {
	company, err := s.store.Settings.LoadCompany(ctx)
	if err != nil {
		return share.Options{}, err
	}
	return share.Options{
		QuoteID:  saved.ID,
		ItemName: itemName(saved),
		Customer: saved.Customer,
		Notes:    saved.Notes,
		Date:     saved.CreatedAt,
		Company:  company,
	}, nil
}

func itemName(saved store.SavedQuote) string {
	if saved.Title == "" {
		return share.DefaultItemName
	}
	return saved.Title
}

// engine prices with the saved configuration. A saved configuration that no
// longer validates is logged and replaced by the defaults.
func (s *server) engine(ctx context.Context) (*pricing.Engine, error) {
	cfg, err := s.store.Settings.LoadPricing(ctx)
	if errors.Is(err, store.ErrInvalidConfig) {
		logger.FromContext(ctx).Warn("saved pricing config is invalid, using defaults", zap.Error(err))
		cfg = pricing.Defaults()
	} else if err != nil {
		return nil, err
	}
	return pricing.NewEngine(cfg, pricing.WithClock(s.now)), nil
}

func (s *server) computeQuote(ctx context.Context, req pricing.Request) (pricing.Quote, error) {
	engine, err := s.engine(ctx)
	if err != nil {
		return pricing.Quote{}, err
	}
	quote, err := engine.Quote(req)
	if err != nil {
		return pricing.Quote{}, err
	}
	s.metrics.ObserveQuote(string(quote.Params.Policy), quote.Params.Rush, quote.Pricing.UnitPrice, quote.Profit.Healthy)
	return quote, nil
}

func (s *server) quoteError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *pricing.InvalidInputError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	s.serverError(w, r, "failed to calculate quote", err)
}

func decodeQuoteRequest(w http.ResponseWriter, r *http.Request) (quoteForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var form quoteForm
		if err := decodeJSON(w, r, &form); err != nil {
			return quoteForm{}, err
		}
		return form, nil
	}
	return parseQuoteFormValues(r)
}

// parseQuoteFormValues reads a quote request from form fields. Quantity
// defaults to one; everything else is checked by the pricing engine.
func parseQuoteFormValues(r *http.Request) (quoteForm, error) {
	weight, err := parseFloatField(r.FormValue("weightGrams"), "weightGrams")
	if err != nil {
		return quoteForm{}, err
	}
	hours, err := parseFloatField(r.FormValue("printTimeHours"), "printTimeHours")
	if err != nil {
		return quoteForm{}, err
	}

	quantity := 1
	if raw := strings.TrimSpace(r.FormValue("quantity")); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil {
			return quoteForm{}, fmt.Errorf("quantity must be a whole number")
		}
	}

	var post []string
	for _, key := range r.Form["postProcessing"] {
		if key = strings.TrimSpace(key); key != "" {
			post = append(post, key)
		}
	}

	strict, _ := strconv.ParseBool(r.FormValue("strict"))

	return quoteForm{
		Request: pricing.Request{
			WeightGrams:    weight,
			PrintTimeHours: hours,
			Material:       strings.TrimSpace(r.FormValue("material")),
			Complexity:     strings.TrimSpace(r.FormValue("complexity")),
			Quantity:       quantity,
			Policy:         pricing.Policy(strings.TrimSpace(r.FormValue("policy"))),
			Rush:           strings.TrimSpace(r.FormValue("rush")),
			PostProcessing: post,
			Strict:         strict,
		},
		Title:    strings.TrimSpace(r.FormValue("title")),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
		Customer: strings.TrimSpace(r.FormValue("customer")),
	}, nil
}

func parseFloatField(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return value, nil
}
