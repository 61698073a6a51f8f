package controllers

import (
	"net/http"

	"github.com/listplus/listplus-backend/api/responses"
	"github.com/listplus/listplus-backend/api/validators"
	"github.com/listplus/listplus-backend/internal/shops"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// ShopItemsList returns all items on a shop.
func ShopItemsList(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		shopID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListItems(ctx, uid, shopID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ShopItemsAdd appends an item to a shop.
func ShopItemsAdd(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		shopID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload shops.AddItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.AddItem(ctx, uid, shopID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ShopItemsUpdate applies a partial update to a shop item.
func ShopItemsUpdate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		shopID, err := uuidParam(r, "shopId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload shops.UpdateItemInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateItem(ctx, uid, shopID, itemID, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ShopItemsDelete removes a shop item.
func ShopItemsDelete(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		uid, err := actorID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		shopID, err := uuidParam(r, "shopId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		itemID, err := uuidParam(r, "itemId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteItem(ctx, uid, shopID, itemID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
