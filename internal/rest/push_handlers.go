package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// VAPIDPublicKey handles GET /api/push/vapidPublicKey
// @Summary Get VAPID public key
// @Tags push
// @Produce json
// @Success 200 {object} rest.VAPIDPublicKey
// @Router /api/push/vapidPublicKey [get]
func (h *NewsHandler) VAPIDPublicKey(c echo.Context) error {
	return c.JSON(http.StatusOK, VAPIDPublicKey{PublicKey: h.vapidPublicKey})
}

// Subscribe handles POST /api/push/subscribe
// @Summary Subscribe to push notifications
// @Description Subscribing an already known endpoint replaces its keys and categories.
// @Tags push
// @Accept json
// @Produce json
// @Param subscription body rest.PushSubscribeRequest true "Subscription"
// @Success 201 {object} rest.PushSubscription
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/push/subscribe [post]
func (h *NewsHandler) Subscribe(c echo.Context) error {
	var req PushSubscribeRequest
	if ok, err := h.bindRequest(c, &req, "Invalid subscription data"); !ok {
		return err
	}

	sub, err := h.uc.Subscribe(c.Request().Context(), req.ToModel())
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to subscribe")
	}

	return c.JSON(http.StatusCreated, NewPushSubscription(*sub))
}

// Unsubscribe handles DELETE /api/push/unsubscribe
// @Summary Unsubscribe from push notifications
// @Description The endpoint is read from the JSON body or the query string.
// @Tags push
// @Accept json
// @Param endpoint query string false "Subscription endpoint"
// @Success 204
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/push/unsubscribe [delete]
func (h *NewsHandler) Unsubscribe(c echo.Context) error {
	var req PushUnsubscribeRequest
	if ok, err := h.bindRequest(c, &req, "Endpoint is required"); !ok {
		return err
	}

	if _, err := h.uc.Unsubscribe(c.Request().Context(), req.Endpoint); err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to unsubscribe")
	}

	return c.NoContent(http.StatusNoContent)
}

// PushSubscriptions handles GET /api/push/subscriptions
// @Summary List push subscriptions
// @Description With category set, only subscriptions with no categories or containing it are returned.
// @Tags push
// @Produce json
// @Param category query string false "Category slug"
// @Success 200 {array} rest.PushSubscription
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/push/subscriptions [get]
func (h *NewsHandler) PushSubscriptions(c echo.Context) error {
	list, err := h.uc.PushSubscriptionsByCategory(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "Failed to fetch subscriptions")
	}

	return c.JSON(http.StatusOK, Map(list, NewPushSubscription))
}
