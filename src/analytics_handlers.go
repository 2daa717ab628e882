package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spenden/src/db"
	"spenden/src/lib"
	"spenden/src/models"
	"spenden/src/types"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	analyticsCacheKey = "analytics:summary"
	analyticsCacheTTL = 60 * time.Second
	recentDonationMax = 10
)

func buildAnalytics(donations []models.Donation) *types.AnalyticsResponse {
	resp := &types.AnalyticsResponse{
		ByTier:          map[string]types.TierBreakdown{},
		RecentDonations: []types.RecentDonation{},
	}
	for i := range donations {
		d := &donations[i]
		resp.TotalFunds += d.Amount
		resp.DonationCount++
		tb := resp.ByTier[d.TierName]
		tb.Count++
		tb.Total += d.Amount
		resp.ByTier[d.TierName] = tb
		if len(resp.RecentDonations) < recentDonationMax {
			resp.RecentDonations = append(resp.RecentDonations, types.RecentDonation{
				DonorName: d.DonorName,
				Amount:    d.Amount,
				TierName:  d.TierName,
				CreatedAt: d.CreatedAt,
			})
		}
	}
	return resp
}

func analyticsRoutes(g *gin.Engine) {
	g.GET("/analytics", func(ctx *gin.Context) {
		rdb := lib.GetRedisClient()
		if rdb != nil {
			cached, err := rdb.Get(context.Background(), analyticsCacheKey).Result()
			if err == nil {
				var resp types.AnalyticsResponse
				if err := json.Unmarshal([]byte(cached), &resp); err == nil {
					ctx.JSON(http.StatusOK, &resp)
					return
				}
			}
		}

		conn := db.GetDb()
		var donations []models.Donation
		err := conn.
			Where("status = ?", types.DONATION_COMPLETED).
			Order("created_at DESC").
			Find(&donations).Error
		if err != nil {
			log.WithError(err).Error("Error loading donations for analytics")
			ctx.Status(http.StatusInternalServerError)
			return
		}
		resp := buildAnalytics(donations)

		if rdb != nil {
			if raw, err := json.Marshal(resp); err == nil {
				if err := rdb.SetEx(context.Background(), analyticsCacheKey, raw, analyticsCacheTTL).Err(); err != nil {
					log.WithError(err).Warn("Could not cache analytics summary")
				}
			}
		}
		ctx.JSON(http.StatusOK, resp)
	})
}
