package onoffice

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the version 2 HMAC of an action: the base64 encoded
// HMAC-SHA256, keyed with the secret, of timestamp, token, resource type and
// action id concatenated.
func Sign(secret, timestamp, token, resourceType, actionID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + token + resourceType + actionID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
