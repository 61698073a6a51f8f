package controllers

import (
	"net/http"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/users"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// AuthStoreUser upserts the identity-provider record pushed after signup.
// The endpoint sits outside the bearer-token boundary and is rate limited.
func AuthStoreUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var payload users.StoreUserInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, created, err := svc.StoreUser(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, dto)
	}
}

// AuthProfile returns the authenticated user's record.
func AuthProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetProfile(ctx, uid)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AuthProfileUpdate applies a partial update to the authenticated user.
func AuthProfileUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload users.UpdateProfileInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateProfile(ctx, uid, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AuthProfileDelete removes the authenticated user's record.
func AuthProfileDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteProfile(ctx, uid); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// UsersBatchGet resolves a set of user ids into user records.
func UsersBatchGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if _, err := actorID(r); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload users.BatchGetInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.GetByIDs(ctx, payload.UserIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}
