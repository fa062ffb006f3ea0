package controllers

import (
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	"github.com/angelmondragon/veggieshop-backend/api/responses"
	"github.com/angelmondragon/veggieshop-backend/api/validators"
	ordersvc "github.com/angelmondragon/veggieshop-backend/internal/orders"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
)

const maxDeliveryAddressLength = 500

type placeOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListOrders(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// OrderGet returns one of the caller's orders; another user's order is 403.
func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(r, "id", "Invalid order ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), middleware.UserIDFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderPlace checks out the caller's cart.
func OrderPlace(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		address := validators.SanitizeString(req.DeliveryAddress, maxDeliveryAddressLength)
		order, err := svc.PlaceOrder(r.Context(), middleware.UserIDFromContext(r.Context()), address)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, "Order placed successfully", order)
	}
}

func OrderCancel(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathID(r, "id", "Invalid order ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CancelOrder(r.Context(), middleware.UserIDFromContext(r.Context()), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Order cancelled", order)
	}
}
