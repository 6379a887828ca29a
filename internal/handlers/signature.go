// Package handlers provides Lambda request handlers for the Connectly Calendly bridge.
package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
)

// signatureHeader is the header Calendly signs webhook deliveries with.
const signatureHeader = "Calendly-Webhook-Signature"

// ExtractSignature reads the Calendly signature header, tolerating the
// lowercased form API Gateway sometimes delivers.
func ExtractSignature(headers map[string]string) string {
	if sig, ok := headers[signatureHeader]; ok {
		return sig
	}
	return headers["calendly-webhook-signature"]
}

// ValidateSignature verifies the HMAC-SHA256 signature over the raw request
// body using a constant-time comparison.
func ValidateSignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

// ValidatePayloadShape checks that the required fields exist on a webhook
// payload: email (string), name, and a scheduled_event object carrying uri,
// start_time and end_time. The check is shallow; field presence is what
// matters, not deeper types.
func ValidatePayloadShape(raw json.RawMessage) bool {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return false
	}

	for _, field := range []string{"email", "name", "scheduled_event"} {
		if _, ok := payload[field]; !ok {
			return false
		}
	}

	var email string
	if err := json.Unmarshal(payload["email"], &email); err != nil {
		return false
	}

	var event map[string]json.RawMessage
	if err := json.Unmarshal(payload["scheduled_event"], &event); err != nil || event == nil {
		return false
	}

	for _, field := range []string{"uri", "start_time", "end_time"} {
		if _, ok := event[field]; !ok {
			return false
		}
	}

	return true
}
