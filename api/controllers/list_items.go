package controllers

import (
	"net/http"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/lists"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// ListItemsList returns all items on a list.
func ListItemsList(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		listID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListItems(ctx, uid, listID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ListItemsAdd appends an item to a list.
func ListItemsAdd(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		listID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.AddItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.AddItem(ctx, uid, listID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListItemsUpdate applies a partial update to a list item.
func ListItemsUpdate(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		listID, err := uuidParam(r, "listId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload lists.UpdateItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateItem(ctx, uid, listID, itemID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ListItemsDelete removes a list item.
func ListItemsDelete(svc lists.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		listID, err := uuidParam(r, "listId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteItem(ctx, uid, listID, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
