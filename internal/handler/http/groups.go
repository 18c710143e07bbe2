package http

import (
	"encoding/json"
	"net/http"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/utils"
	"github.com/go-chi/chi/v5"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createGroup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	group, err := h.services.GroupService.CreateGroup(ctx, userID, req.Name)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createGroup").Msg("error creating group")
		http.Error(w, "error creating group", statusFromError(err))
		return
	}

	utils.WriteJSON(w, group, http.StatusCreated)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.getGroup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	group, err := h.services.GroupService.GetGroup(ctx, userID, groupID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getGroup").Str("group_id", groupID).Msg("error getting group")
		http.Error(w, "error getting group", statusFromError(err))
		return
	}

	utils.WriteJSON(w, group, http.StatusOK)
}

func (h *Handler) joinGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.joinGroup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	if err := h.services.GroupService.JoinGroup(ctx, userID, groupID); err != nil {
		log.Err(err).Str("func", "*Handler.joinGroup").Str("group_id", groupID).Msg("error joining group")
		http.Error(w, "error joining group", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) leaveGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.leaveGroup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	groupID := chi.URLParam(r, "groupID")

	if err := h.services.GroupService.LeaveGroup(ctx, userID, groupID); err != nil {
		log.Err(err).Str("func", "*Handler.leaveGroup").Str("group_id", groupID).Msg("error leaving group")
		http.Error(w, "error leaving group", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}
