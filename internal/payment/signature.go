package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks that a payment confirmation really came from the
// gateway. Razorpay signs the string "<orderID>|<paymentID>" with
// HMAC-SHA256 keyed by the merchant secret and sends the hex digest along
// with the payment callback.
//
// The comparison is constant time so a forger learns nothing from response
// latency.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
