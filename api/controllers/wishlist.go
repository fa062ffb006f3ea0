package controllers

import (
	"net/http"

	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	"github.com/angelmondragon/veggieshop-backend/api/responses"
	"github.com/angelmondragon/veggieshop-backend/api/validators"
	wishlistsvc "github.com/angelmondragon/veggieshop-backend/internal/wishlist"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/types"
)

type addWishlistItemRequest struct {
	ProductID types.FlexInt64 `json:"productId"`
}

type moveToCartRequest struct {
	Quantity types.FlexFloat64 `json:"quantity"`
}

type wishlistStatusResponse struct {
	InWishlist bool `json:"inWishlist"`
}

func WishlistGet(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetWishlist(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// WishlistAdd saves a product; adding it twice returns the existing item id.
func WishlistAdd(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !req.ProductID.Set {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Product ID is required"))
			return
		}

		itemID, err := svc.AddItem(r.Context(), middleware.UserIDFromContext(r.Context()), req.ProductID.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Item added to wishlist", itemIDResponse{ItemID: itemID})
	}
}

func WishlistStatus(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathID(r, "productId", "Invalid product ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := svc.IsInWishlist(r.Context(), middleware.UserIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistStatusResponse{InWishlist: ok})
	}
}

func WishlistRemove(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteMessage(w, http.StatusOK, "Item removed from wishlist", nil)
	}
}

func WishlistClear(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Clear(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Wishlist cleared", map[string]int64{"removed": count})
	}
}

// WishlistMoveToCart moves a saved product into the cart. The body is
// optional and the quantity defaults to 1.
func WishlistMoveToCart(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathID(r, "productId", "Invalid product ID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req moveToCartRequest
		if err := validators.DecodeOptionalJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := 1.0
		if req.Quantity.Set {
			quantity = req.Quantity.Value
		}

		if err := svc.MoveToCart(r.Context(), middleware.UserIDFromContext(r.Context()), productID, quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Item moved to cart", nil)
	}
}
