package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/listplus/listplus-backend/api/middleware"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
)

// actorID pulls the authenticated subject out of the request context.
func actorID(r *http.Request) (string, error) {
	uid := middleware.UserIDFromContext(r.Context())
	if uid == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return uid, nil
}

// uuidParam parses a uuid path parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
