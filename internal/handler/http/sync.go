// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package http

import (
	"net/http"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
	"github.com/go-chi/chi/v5"
)

// parseSince reads the "since" query parameter. An absent or empty value
// means "from the beginning" and yields the zero time, which the service
// layer exempts from the retention check.
func parseSince(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("since")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, raw)
}

func (h *Handler) getChangelog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getChangelog").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	since, err := parseSince(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChangelog").Msg("invalid since parameter")
		http.Error(w, "invalid since parameter", http.StatusBadRequest)
		return
	}

	page, err := h.services.ChangelogService.QueryEntries(ctx, userID, groupID, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChangelog").Str("group_id", groupID).Msg("error querying changelog")
		http.Error(w, "error querying changelog", statusFromError(err))
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getPending").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	since, err := parseSince(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPending").Msg("invalid since parameter")
		http.Error(w, "invalid since parameter", http.StatusBadRequest)
		return
	}

	pending, err := h.services.ChangelogService.HasPending(ctx, userID, groupID, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getPending").Str("group_id", groupID).Msg("error probing pending entries")
		http.Error(w, "error probing pending entries", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.PendingResponse{Pending: pending}, http.StatusOK)
}

func (h *Handler) getReconcileFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getReconcileFeed").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	feed, err := h.services.ChangelogService.ReconcileFeed(ctx, userID, groupID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getReconcileFeed").Str("group_id", groupID).Msg("error building reconcile feed")
		http.Error(w, "error building reconcile feed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, feed, http.StatusOK)
}
