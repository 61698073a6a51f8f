package controllers

import (
	"net/http"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/groups"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// GroupItemsList returns all items on a group.
func GroupItemsList(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		groupID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListItems(ctx, uid, groupID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// GroupItemsAdd appends an item to a group.
func GroupItemsAdd(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		groupID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload groups.AddItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.AddItem(ctx, uid, groupID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GroupItemsUpdate applies a partial update to a group item.
func GroupItemsUpdate(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		groupID, err := uuidParam(r, "groupId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload groups.UpdateItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateItem(ctx, uid, groupID, itemID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GroupItemsDelete removes a group item, archiving it first when it is
// still incomplete.
func GroupItemsDelete(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		groupID, err := uuidParam(r, "groupId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteItem(ctx, uid, groupID, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// GroupCancelledItemsList returns the group's cancelled-item archive.
func GroupCancelledItemsList(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		groupID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListCancelledItems(ctx, uid, groupID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}
