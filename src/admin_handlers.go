package main

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"spenden/src/config"
	"spenden/src/db"
	"spenden/src/lib/mailer"
	"spenden/src/middlewares"
	"spenden/src/models"
	"spenden/src/types"
	"spenden/src/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func adminRoutes(g *gin.Engine) *gin.RouterGroup {
	admin := g.Group("/admin")

	admin.POST("/login", func(ctx *gin.Context) {
		secret := config.Get().AdminSecret
		provided := ctx.GetHeader("x-admin-secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin secret"})
			return
		}
		var body types.AdminLoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var adminUser models.AdminUser
		conn.Model(&models.AdminUser{}).Where(&models.AdminUser{Email: body.Email}).Find(&adminUser)
		if adminUser.ID < 1 {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "not an admin"})
			return
		}
		token, err := middlewares.IssueAdminToken(adminUser.Email)
		if err != nil {
			log.WithError(err).Error("Error issuing admin token")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": token, "email": adminUser.Email})
	})

	authed := admin.Group("", middlewares.AdminAuthMiddleware)

	authed.GET("/donations", func(ctx *gin.Context) {
		var filters types.DonationQueryFilters
		if err := ctx.ShouldBindQuery(&filters); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var donations []models.Donation
		if err := conn.Order("created_at DESC").Find(&donations).Error; err != nil {
			log.WithError(err).Error("Error listing donations")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		filtered := utils.FilterDonations(donations, &filters)
		page := filters.Page
		if page < 1 {
			page = 1
		}
		totalPages := (len(filtered) + utils.DonationsPageSize - 1) / utils.DonationsPageSize
		ctx.JSON(http.StatusOK, gin.H{
			"donations":  utils.PaginateDonations(filtered, page),
			"total":      len(filtered),
			"page":       page,
			"pageSize":   utils.DonationsPageSize,
			"totalPages": totalPages,
		})
	})

	authed.GET("/donations/export", func(ctx *gin.Context) {
		var filters types.DonationQueryFilters
		if err := ctx.ShouldBindQuery(&filters); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var donations []models.Donation
		if err := conn.Order("created_at DESC").Find(&donations).Error; err != nil {
			log.WithError(err).Error("Error exporting donations")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		out, err := utils.DonationsCSV(utils.FilterDonations(donations, &filters))
		if err != nil {
			log.WithError(err).Error("Error rendering donations CSV")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		filename := fmt.Sprintf("donations_%s.csv", time.Now().Format("2006-01-02"))
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
	})

	authed.GET("/donations/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var donation models.Donation
		if err := conn.Where("id = ?", params.ID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Status(http.StatusNotFound)
				return
			}
			log.WithError(err).Error("Error loading donation")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, &donation)
	})

	authed.PATCH("/donations/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var body types.UpdateDonationRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var donation models.Donation
		if err := conn.Where("id = ?", params.ID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Status(http.StatusNotFound)
				return
			}
			log.WithError(err).Error("Error loading donation")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		if body.DonorStreet != nil {
			donation.DonorStreet = body.DonorStreet
		}
		if body.DonorPostalCode != nil {
			donation.DonorPostalCode = body.DonorPostalCode
		}
		if body.DonorCity != nil {
			donation.DonorCity = body.DonorCity
		}
		if body.DonorCountry != nil {
			donation.DonorCountry = body.DonorCountry
		}
		if body.AdminNotes != nil {
			donation.AdminNotes = *body.AdminNotes
		}
		if err := conn.Save(&donation).Error; err != nil {
			log.WithError(err).Error("Error updating donation")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, &donation)
	})

	authed.GET("/tax-receipts", func(ctx *gin.Context) {
		conn := db.GetDb()
		var eligible []models.Donation
		err := conn.
			Where("tax_receipt_eligible = ?", true).
			Where("status = ?", types.DONATION_COMPLETED).
			Order("created_at DESC").
			Find(&eligible).Error
		if err != nil {
			log.WithError(err).Error("Error listing tax receipts")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		sent := make([]models.Donation, 0)
		pending := make([]models.Donation, 0)
		for i := range eligible {
			if eligible[i].TaxReceiptSent {
				sent = append(sent, eligible[i])
			} else {
				pending = append(pending, eligible[i])
			}
		}
		ctx.JSON(http.StatusOK, gin.H{
			"sent":         sent,
			"pending":      pending,
			"sentCount":    len(sent),
			"pendingCount": len(pending),
		})
	})

	authed.GET("/tax-receipt", func(ctx *gin.Context) {
		donationID := ctx.Query("donationId")
		if donationID == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "donationId is required"})
			return
		}
		conn := db.GetDb()
		var donation models.Donation
		if err := conn.Where("id = ?", donationID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Status(http.StatusNotFound)
				return
			}
			log.WithError(err).Error("Error loading donation")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		html, err := utils.GenerateReceipt(&donation, config.GetOrganization(), time.Now())
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	})

	authed.POST("/tax-receipt", func(ctx *gin.Context) {
		var body types.TaxReceiptRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conn := db.GetDb()
		var donation models.Donation
		if err := conn.Where("id = ?", body.DonationID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.Status(http.StatusNotFound)
				return
			}
			log.WithError(err).Error("Error loading donation")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		html, err := utils.GenerateReceipt(&donation, config.GetOrganization(), time.Now())
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		receiptNumber := utils.ReceiptNumber(&donation)
		if body.SendEmail {
			if err := mailer.SendTaxReceipt(&donation, receiptNumber, html); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send tax receipt email"})
				return
			}
		}
		now := time.Now()
		donation.TaxReceiptSent = true
		donation.TaxReceiptSentAt = &now
		if err := conn.Save(&donation).Error; err != nil {
			log.WithError(err).Error("Error marking tax receipt as sent")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"receiptNumber": receiptNumber,
			"sent":          true,
			"emailed":       body.SendEmail,
		})
	})

	return admin
}
