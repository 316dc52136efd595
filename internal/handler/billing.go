package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/ownitpro/omgsystems/internal/service/payment"
)

// BillingHandler serves the back-office billing endpoints. These sit behind
// the dashboard's auth proxy, which identifies the caller via the X-User-ID
// header; portal clients never reach them.
type BillingHandler struct {
	paymentService payment.Provider
}

func NewBillingHandler(paymentService payment.Provider) *BillingHandler {
	return &BillingHandler{paymentService: paymentService}
}

func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req struct {
		PlanID   string `json:"planId"`
		Interval string `json:"interval"`
		Email    string `json:"email"`
		Name     string `json:"name"`
	}
	err := decodeJSON(r, &req)
	if err != nil || req.PlanID == "" {
		writeError(w, http.StatusBadRequest, "Invalid plan selected")
		return
	}
	if req.Interval == "" {
		req.Interval = "monthly"
	}

	checkoutURL, err := h.paymentService.CreateCheckoutURL(userID, req.PlanID, req.Interval, req.Email, req.Name)
	if err != nil {
		slog.Error("failed to create checkout", "error", err, "user_id", userID, "plan_id", req.PlanID, "provider", h.paymentService.Name())
		writeError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	slog.Info("checkout created", "user_id", userID, "provider", h.paymentService.Name())
	writeJSON(w, http.StatusOK, map[string]any{"url": checkoutURL})
}

func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read webhook payload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read payload")
		return
	}
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err = h.paymentService.HandleWebhook(payload, r.Header)
	if err != nil {
		slog.Error("failed to handle webhook", "error", err, "provider", h.paymentService.Name())
		writeError(w, http.StatusBadRequest, "Failed to process webhook")
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}

func (h *BillingHandler) CustomerPortal(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	portalURL, err := h.paymentService.CustomerPortalURL(userID)
	if err != nil {
		slog.Error("failed to get customer portal", "error", err, "user_id", userID, "provider", h.paymentService.Name())
		writeError(w, http.StatusInternalServerError, "Failed to access customer portal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"url": portalURL})
}
