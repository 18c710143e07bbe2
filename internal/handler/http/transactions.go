// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package http

import (
	"encoding/json"
	"net/http"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/boletapp/gastify-sync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createTransaction").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var draft models.TransactionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	transaction, err := h.services.TransactionService.CreateTransaction(ctx, userID, draft)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createTransaction").Msg("error creating transaction")
		http.Error(w, "error creating transaction", statusFromError(err))
		return
	}

	utils.WriteJSON(w, transaction, http.StatusCreated)
}

func (h *Handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getTransaction").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	transactionID := chi.URLParam(r, "transactionID")

	transaction, err := h.services.TransactionService.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTransaction").Str("transaction_id", transactionID).Msg("error getting transaction")
		http.Error(w, "error getting transaction", statusFromError(err))
		return
	}

	utils.WriteJSON(w, transaction, http.StatusOK)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.updateTransaction").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	transactionID := chi.URLParam(r, "transactionID")

	var update models.TransactionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	transaction, err := h.services.TransactionService.UpdateTransaction(ctx, userID, transactionID, update)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTransaction").Str("transaction_id", transactionID).Msg("error updating transaction")
		http.Error(w, "error updating transaction", statusFromError(err))
		return
	}

	utils.WriteJSON(w, transaction, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deleteTransaction").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	transactionID := chi.URLParam(r, "transactionID")

	if err := h.services.TransactionService.DeleteTransaction(ctx, userID, transactionID); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTransaction").Str("transaction_id", transactionID).Msg("error deleting transaction")
		http.Error(w, "error deleting transaction", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
