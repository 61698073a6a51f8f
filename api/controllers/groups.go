package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/groups"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// GroupsList returns every group the caller belongs to.
func GroupsList(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
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

// GroupsCreate creates a group owned by the caller.
func GroupsCreate(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload groups.CreateGroupInput
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

// GroupsGet returns one group the caller is a member of.
func GroupsGet(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
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

// GroupsUpdate applies a partial update to a group.
func GroupsUpdate(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload groups.UpdateGroupInput
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

// GroupsDelete removes a group, its items and its cancelled-item archive.
func GroupsDelete(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
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

// GroupsAddMember adds a user to the group's member set.
func GroupsAddMember(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "groupId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload groups.AddMemberInput
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

// GroupsRemoveMember removes a user from the group's member set.
func GroupsRemoveMember(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "groupId")
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

// GroupsRegenerateInvite rolls the group's invite code.
func GroupsRegenerateInvite(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := uuidParam(r, "groupId")
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

// GroupsJoin adds the caller to the group bound to the invite code.
func GroupsJoin(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
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
