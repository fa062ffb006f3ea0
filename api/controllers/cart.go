package controllers

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	"github.com/angelmondragon/veggieshop-backend/api/responses"
	"github.com/angelmondragon/veggieshop-backend/api/validators"
	cartsvc "github.com/angelmondragon/veggieshop-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/money"
	"github.com/angelmondragon/veggieshop-backend/pkg/types"
)

type addCartItemRequest struct {
	ProductID types.FlexInt64   `json:"productId"`
	Quantity  types.FlexFloat64 `json:"quantity"`
}

func (r addCartItemRequest) quantity() float64 {
	if !r.Quantity.Set {
		return 1
	}
	return r.Quantity.Value
}

type updateCartItemRequest struct {
	Quantity types.FlexFloat64 `json:"quantity"`
}

type itemIDResponse struct {
	ItemID int64 `json:"itemId"`
}

type cartCountResponse struct {
	Count float64 `json:"count"`
}

// CartGet returns the caller's cart with totals.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.GetCart(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func CartCount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartCountResponse{Count: count})
	}
}

// CartAdd adds a product to the cart, merging with an existing line. The
// quantity defaults to 1.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !req.ProductID.Set {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Product ID is required"))
			return
		}

		itemID, err := svc.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), req.ProductID.Value, req.quantity())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Item added to cart", itemIDResponse{ItemID: itemID})
	}
}

// CartUpdate sets the quantity of a cart line; zero removes it.
func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathID(r, "productId", "Invalid product ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !req.Quantity.Set || !money.ValidQuantity(req.Quantity.Value) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Valid quantity is required"))
			return
		}

		if err := svc.UpdateQuantity(r.Context(), middleware.UserIDFromContext(r.Context()), productID, req.Quantity.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Cart updated", nil)
	}
}

func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathID(r, "productId", "Invalid product ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveItem(r.Context(), middleware.UserIDFromContext(r.Context()), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Item removed from cart", nil)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Clear(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, fmt.Sprintf("Cart cleared (%d items removed)", count), nil)
	}
}
