package main

import (
	"net/http"

	"spenden/src/types"
	"spenden/src/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func paypalRoutes(g *gin.Engine) *gin.RouterGroup {
	paypal := g.Group("/paypal")
	paypal.POST("/create-order", func(ctx *gin.Context) {
		var body types.CreateOrderRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		orderID, fieldErrs, err := utils.CreateDonationOrder(ctx.Request.Context(), &body)
		if err != nil {
			log.WithError(err).Error("Error creating donation order")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		if len(fieldErrs) > 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"orderId": orderID})
	})
	paypal.POST("/capture-order", func(ctx *gin.Context) {
		var body types.CaptureOrderRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := utils.CaptureDonationOrder(ctx.Request.Context(), body.OrderID)
		if err != nil {
			log.WithError(err).WithField("order_id", body.OrderID).Error("Error capturing donation order")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to capture order"})
			return
		}
		if !result.Success {
			ctx.JSON(http.StatusBadRequest, result)
			return
		}
		ctx.JSON(http.StatusOK, result)
	})
	return paypal
}
