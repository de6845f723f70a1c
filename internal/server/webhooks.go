package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/shopmeter/internal/shopify"
	webhookdomain "github.com/smallbiznis/shopmeter/internal/webhook/domain"
)

// HandleOrderWebhook admits one order-lifecycle delivery. The body is
// read raw and passed through untouched: the signature covers the exact
// bytes the platform sent.
func (s *Server) HandleOrderWebhook(topic string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		err = s.webhookSvc.ProcessOrderEvent(c.Request.Context(), webhookdomain.OrderEvent{
			Topic:      topic,
			ShopDomain: c.GetHeader(shopify.HeaderShopDomain),
			Signature:  c.GetHeader(shopify.HeaderHMAC),
			Payload:    payload,
		})
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}
