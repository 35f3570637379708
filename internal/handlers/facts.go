// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"factshare/internal/board"
	"factshare/internal/middleware"
	"factshare/internal/models"
	"factshare/internal/render"
	"factshare/internal/session"
)

const appTitle = "Learn something new today"

// qrSize is the edge length in pixels of a source QR code.
const qrSize = 256

// Messages shown to the user. Details go to the log.
const (
	msgLoadFailed      = "There was a problem getting data"
	msgSaveFailed      = "There was a problem saving your fact. Please try again."
	msgVoteFailed      = "There was a problem saving your vote. Please try again."
	msgVoteConflict    = "Someone voted on this fact at the same time. Please try again."
	msgFactMissing     = "That fact no longer exists."
	msgUnknownCategory = "Unknown category."
	msgBusy            = "Please wait for the previous request to finish."
	msgCreated         = "Thanks for sharing!"
)

// Facts groups the handlers for browsing, submitting and voting on facts.
// Each request builds a short-lived board over svc, so handlers share no
// mutable state.
type Facts struct {
	renderer *render.Renderer
	sessions *session.Store
	svc      board.Service
}

// NewFacts creates the fact handlers. sessions may be nil when Valkey is
// not configured; flash messages are then dropped.
func NewFacts(renderer *render.Renderer, sessions *session.Store, svc board.Service) *Facts {
	return &Facts{renderer: renderer, sessions: sessions, svc: svc}
}

// Index renders the whole page. ?category= picks the filter and ?form=1
// opens the submission form.
func (f *Facts) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b := board.New(f.svc, board.WithFormOpen(q.Get("form") == "1"))
	err := b.Do(r.Context(), board.CategorySelected{Category: q.Get("category")})

	data := listData(b.Snapshot(), err)
	f.renderer.Page(w, r, statusFor(err), "index", &render.PageData{
		Title:   appTitle,
		Data:    data,
		Flashes: f.popFlashes(r),
	})
}

// List renders the fact list for the selected category. HTMX requests get
// the list section alone.
func (f *Facts) List(w http.ResponseWriter, r *http.Request) {
	if !render.IsHTMX(r) {
		f.Index(w, r)
		return
	}

	b := board.New(f.svc)
	err := b.Do(r.Context(), board.CategorySelected{Category: r.URL.Query().Get("category")})
	f.renderer.Fragment(w, r, statusFor(err), "fact_section", &render.PageData{
		Data: listData(b.Snapshot(), err),
	})
}

// Form opens (?open=1) or closes the submission form.
func (f *Facts) Form(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	open := q.Get("open") == "1"

	if !render.IsHTMX(r) {
		http.Redirect(w, r, homeURL(q.Get("category"), open), http.StatusSeeOther)
		return
	}

	b := board.New(f.svc, board.WithCategory(q.Get("category")), board.WithFormOpen(open))
	f.renderer.Fragment(w, r, http.StatusOK, "form_panel", &render.PageData{
		Data: map[string]any{"State": b.Snapshot()},
	})
}

// Show renders a single fact.
func (f *Facts) Show(w http.ResponseWriter, r *http.Request) {
	fact, ok := f.lookup(w, r)
	if !ok {
		return
	}
	f.renderer.Fragment(w, r, http.StatusOK, "vote_result", &render.PageData{
		Data: map[string]any{"Fact": *fact, "Category": r.URL.Query().Get("category")},
	})
}

// QRCode serves a PNG QR code that links to the fact's source.
func (f *Facts) QRCode(w http.ResponseWriter, r *http.Request) {
	fact, ok := f.lookup(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(fact.Source, qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("encode qr code failed", "error", err, "id", fact.ID)
		http.Error(w, "Could not encode QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

// lookup resolves the {id} URL parameter. It writes the error response
// and returns false when there is no fact to work with.
func (f *Facts) lookup(w http.ResponseWriter, r *http.Request) (*models.Fact, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	fact, err := f.svc.Get(r.Context(), id)
	if err != nil {
		slog.Error("get fact failed", "error", err, "id", id)
		http.Error(w, msgLoadFailed, http.StatusBadGateway)
		return nil, false
	}
	if fact == nil {
		http.Error(w, msgFactMissing, http.StatusNotFound)
		return nil, false
	}
	return fact, true
}

// Create submits a new fact. HTMX callers get the closed form plus the new
// item for the top of the list; plain form posts are redirected home.
func (f *Facts) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	draft := models.Draft{
		Text:     r.FormValue("text"),
		Source:   r.FormValue("source"),
		Category: r.FormValue("category"),
	}
	category := r.FormValue("current_category")

	b := board.New(f.svc, board.WithCategory(category), board.WithFormOpen(true))
	err := b.Do(r.Context(), board.FactSubmitted{Draft: draft})
	state := b.Snapshot()

	if err == nil {
		if !render.IsHTMX(r) {
			f.addFlash(w, r, session.Flash{Type: "success", Message: msgCreated})
			http.Redirect(w, r, homeURL(state.Category, false), http.StatusSeeOther)
			return
		}
		w.Header().Set("HX-Trigger", "fact-created")
		f.renderer.Fragment(w, r, http.StatusCreated, "fact_created", &render.PageData{
			Data: map[string]any{"State": state, "Fact": state.Facts[0]},
		})
		return
	}

	status := statusFor(err)
	formError := userMessage(err, msgSaveFailed)

	if render.IsHTMX(r) {
		f.renderer.Fragment(w, r, status, "form_panel", &render.PageData{
			Data: map[string]any{"State": state, "FormError": formError},
		})
		return
	}

	// A plain post re-renders the whole page with the form still open, so
	// the list is loaded as well.
	listErr := b.Do(r.Context(), board.CategorySelected{Category: state.Category})
	data := listData(b.Snapshot(), listErr)
	data["FormError"] = formError
	f.renderer.Page(w, r, status, "index", &render.PageData{
		Title: appTitle,
		Data:  data,
	})
}

// Vote adds one vote to a fact. HTMX callers get the updated item; plain
// form posts are redirected back to the list they came from.
func (f *Facts) Vote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	col, err := models.ParseVoteColumn(chi.URLParam(r, "column"))
	if err != nil {
		http.Error(w, "Invalid vote", http.StatusBadRequest)
		return
	}
	returnCategory := r.FormValue("return_category")
	htmx := render.IsHTMX(r)

	fact, err := f.svc.Get(r.Context(), id)
	if err != nil {
		slog.Error("get fact for vote failed", "error", err, "id", id)
		f.voteFailed(w, r, htmx, returnCategory, http.StatusBadGateway, msgVoteFailed)
		return
	}
	if fact == nil {
		if htmx {
			// An empty body swaps the vanished item out of the list.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.voteFailed(w, r, htmx, returnCategory, http.StatusNotFound, msgFactMissing)
		return
	}

	b := board.New(f.svc, board.WithFacts([]models.Fact{*fact}))
	err = b.Do(r.Context(), board.VoteCast{FactID: id, Column: col})
	state := b.Snapshot()

	if !htmx {
		if err != nil {
			f.addFlash(w, r, session.Flash{Type: "error", Message: userMessage(err, msgVoteFailed)})
		}
		http.Redirect(w, r, homeURL(returnCategory, false), http.StatusSeeOther)
		return
	}

	data := map[string]any{"Fact": state.Facts[0], "Category": returnCategory}
	if err != nil {
		data["ItemError"] = userMessage(err, msgVoteFailed)
	}
	f.renderer.Fragment(w, r, statusFor(err), "vote_result", &render.PageData{Data: data})
}

func (f *Facts) voteFailed(w http.ResponseWriter, r *http.Request, htmx bool, category string, status int, msg string) {
	if htmx {
		http.Error(w, msg, status)
		return
	}
	f.addFlash(w, r, session.Flash{Type: "error", Message: msg})
	http.Redirect(w, r, homeURL(category, false), http.StatusSeeOther)
}

// popFlashes returns and clears the flashes queued for this session.
func (f *Facts) popFlashes(r *http.Request) []session.Flash {
	if f.sessions == nil {
		return nil
	}
	flashes, err := f.sessions.PopFlashes(r.Context(), r, middleware.SessionFromCtx(r.Context()))
	if err != nil {
		slog.Error("pop flashes failed", "error", err)
	}
	return flashes
}

func (f *Facts) addFlash(w http.ResponseWriter, r *http.Request, flash session.Flash) {
	if f.sessions == nil {
		slog.Debug("sessions disabled, dropping flash", "message", flash.Message)
		return
	}
	if err := f.sessions.AddFlash(r.Context(), w, r, flash); err != nil {
		slog.Error("add flash failed", "error", err)
	}
}

// listData is the template data for a list render.
func listData(state board.State, err error) map[string]any {
	data := map[string]any{"State": state}
	if err != nil {
		data["Error"] = userMessage(err, msgLoadFailed)
	}
	return data
}

// statusFor maps a board error to the response status.
func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, board.ErrUnknownCategory), errors.Is(err, models.ErrUnknownVoteColumn):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrFactNotFound), errors.Is(err, board.ErrNotInList):
		return http.StatusNotFound
	case errors.Is(err, models.ErrVoteConflict), errors.Is(err, board.ErrVoteInFlight), errors.Is(err, board.ErrUploadInFlight):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// userMessage picks the text shown for err, falling back to fallback for
// upstream failures.
func userMessage(err error, fallback string) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, board.ErrUnknownCategory):
		return msgUnknownCategory
	case errors.Is(err, models.ErrVoteConflict):
		return msgVoteConflict
	case errors.Is(err, models.ErrFactNotFound), errors.Is(err, board.ErrNotInList):
		return msgFactMissing
	case errors.Is(err, board.ErrVoteInFlight), errors.Is(err, board.ErrUploadInFlight):
		return msgBusy
	}
	return fallback
}

// homeURL links back to the list, keeping the filter.
func homeURL(category string, form bool) string {
	v := url.Values{}
	if category != "" && category != models.CategoryAll {
		v.Set("category", category)
	}
	if form {
		v.Set("form", "1")
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
