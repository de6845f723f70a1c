package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const (
	HeaderHMAC       = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
)

// VerifyWebhook checks that payload was signed by the platform with the
// shared secret. The digest is computed over the exact raw request bytes;
// the header carries base64 of HMAC-SHA256. Comparison is constant time
// and any malformed input fails closed.
func VerifyWebhook(payload []byte, signature string, secret []byte) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" || len(secret) == 0 {
		return false
	}

	supplied, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write(payload)
	return hmac.Equal(supplied, mac.Sum(nil))
}
