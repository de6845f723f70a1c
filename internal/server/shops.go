package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	shopdomain "github.com/smallbiznis/shopmeter/internal/shop/domain"
	webhookdomain "github.com/smallbiznis/shopmeter/internal/webhook/domain"
	"go.uber.org/zap"
)

// InstallShop provisions a shop record after the platform's OAuth
// handshake. When a public base URL is configured the order webhooks are
// registered against it; registration failures are logged but do not
// fail the install, since the subscription can be repaired by
// reinstalling.
func (s *Server) InstallShop(c *gin.Context) {
	var req shopdomain.InstallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	shop, err := s.shopSvc.Install(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.cfg.PublicBaseURL != "" {
		s.registerOrderWebhooks(c, shop.ShopDomain, shop.AccessToken)
	}

	c.JSON(http.StatusOK, shop)
}

func (s *Server) registerOrderWebhooks(c *gin.Context, shopDomain, accessToken string) {
	topics := map[string]string{
		webhookdomain.TopicOrdersCreate: s.cfg.PublicBaseURL + "/webhook/orders/create",
		webhookdomain.TopicOrdersPaid:   s.cfg.PublicBaseURL + "/webhook/orders/paid",
	}
	for topic, address := range topics {
		if err := s.shopifyAPI.RegisterWebhook(c.Request.Context(), shopDomain, accessToken, topic, address); err != nil {
			s.log.Warn("webhook registration failed",
				zap.String("shop", shopDomain),
				zap.String("topic", topic),
				zap.Error(err),
			)
		}
	}
}
