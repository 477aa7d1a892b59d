package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/economy"
	"github.com/mcoot/santaworkshop/internal/services/shop"
)

// WalletHandler handles wallet and shop endpoints
type WalletHandler struct {
	economy *economy.Service
	shop    *shop.Service
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(economy *economy.Service, shop *shop.Service) *WalletHandler {
	return &WalletHandler{economy: economy, shop: shop}
}

// Get handles GET /api/v1/wallet
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.writeWallet(w)
}

// Earn handles POST /api/v1/wallet/earn
func (h *WalletHandler) Earn(w http.ResponseWriter, r *http.Request) {
	var req request.PointsRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.economy.AddPoints(r.Context(), req.Amount); err != nil {
		WriteError(w, err)
		return
	}
	h.writeWallet(w)
}

// Spend handles POST /api/v1/wallet/spend. Overspending clamps the balance at zero.
func (h *WalletHandler) Spend(w http.ResponseWriter, r *http.Request) {
	var req request.PointsRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.economy.SubtractPoints(r.Context(), req.Amount); err != nil {
		WriteError(w, err)
		return
	}
	h.writeWallet(w)
}

// AddItem handles POST /api/v1/wallet/inventory
func (h *WalletHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req request.InventoryRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.economy.AddToInventory(r.Context(), model.ItemID(req.ItemID)); err != nil {
		WriteError(w, err)
		return
	}
	h.writeWallet(w)
}

// Shop handles GET /api/v1/shop
func (h *WalletHandler) Shop(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ShopFromModel(h.economy.Balance(), h.shop.Listing()))
}

// Buy handles POST /api/v1/shop/{item}/buy
func (h *WalletHandler) Buy(w http.ResponseWriter, r *http.Request) {
	id := model.ItemID(mux.Vars(r)["item"])

	wallet, err := h.shop.Purchase(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.WalletFromModel(wallet))
}

func (h *WalletHandler) writeWallet(w http.ResponseWriter) {
	wallet, _ := h.economy.Wallet()
	response.JSON(w, http.StatusOK, response.WalletFromModel(wallet))
}
