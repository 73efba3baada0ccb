package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/swiftbasket/swiftbasket-backend/api/middleware"
	"github.com/swiftbasket/swiftbasket-backend/api/responses"
	"github.com/swiftbasket/swiftbasket-backend/api/validators"
	"github.com/swiftbasket/swiftbasket-backend/internal/address"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
)

type saveAddressRequest struct {
	HouseNo      string  `json:"house_no" validate:"required"`
	Floor        *string `json:"floor,omitempty"`
	Area         string  `json:"area" validate:"required"`
	Landmark     *string `json:"landmark,omitempty"`
	ReceiverName string  `json:"receiver_name" validate:"required"`
	Label        string  `json:"label" validate:"required,oneof=home work hotel other"`
}

type addressResponse struct {
	HouseNo      string  `json:"house_no"`
	Floor        *string `json:"floor,omitempty"`
	Area         string  `json:"area"`
	Landmark     *string `json:"landmark,omitempty"`
	ReceiverName string  `json:"receiver_name"`
	Label        string  `json:"label"`
}

func toAddressResponse(a *models.Address) *addressResponse {
	if a == nil {
		return nil
	}
	return &addressResponse{
		HouseNo:      a.HouseNo,
		Floor:        a.Floor,
		Area:         a.Area,
		Landmark:     a.Landmark,
		ReceiverName: a.ReceiverName,
		Label:        string(a.Label),
	}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user not found in context")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid user id in context")
	}
	return id, nil
}

// AddressFetch returns the caller's saved delivery address, or a null
// payload when none is saved.
func AddressFetch(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"address": toAddressResponse(saved)})
	}
}

// AddressSave creates or replaces the single saved address.
func AddressSave(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req saveAddressRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Save(r.Context(), userID, address.Input{
			HouseNo:      req.HouseNo,
			Floor:        req.Floor,
			Area:         req.Area,
			Landmark:     req.Landmark,
			ReceiverName: req.ReceiverName,
			Label:        models.AddressLabel(req.Label),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"address": toAddressResponse(saved)})
	}
}

// AddressDelete clears the saved address. Deleting when none exists is
// not an error.
func AddressDelete(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
