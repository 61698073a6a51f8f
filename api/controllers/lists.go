package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/lists"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// ListsList returns every list the caller belongs to.
func ListsList(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListMine(ctx, uid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ListsCreate creates a list owned by the caller.
func ListsCreate(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.CreateListInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Create(ctx, uid, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListsGet returns one list the caller is a member of.
func ListsGet(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, uid, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListsUpdate applies a partial update to a list.
func ListsUpdate(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.UpdateListInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, uid, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListsDelete removes a list and its items.
func ListsDelete(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, uid, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// ListsAddMember adds a user to the list's member set.
func ListsAddMember(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "listId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.AddMemberInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.AddMember(ctx, uid, id, payload.MemberID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListsRemoveMember removes a user from the list's member set.
func ListsRemoveMember(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "listId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		memberID := strings.TrimSpace(chi.URLParam(r, "memberId"))
		if memberID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "member id is required"))
			return
		}

		dto, err := svc.RemoveMember(ctx, uid, id, memberID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListsRegenerateInvite rolls the list's invite code.
func ListsRegenerateInvite(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "listId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.RegenerateInvite(ctx, uid, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListsJoin adds the caller to the list bound to the invite code.
func ListsJoin(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		code := strings.TrimSpace(chi.URLParam(r, "inviteCode"))
		if code == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invite code is required"))
			return
		}

		dto, err := svc.JoinByInvite(ctx, uid, code)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
