package utils

import (
	"socialstore/models"
)

// MaskValue hides the middle of a secret so tokens can appear in API
// responses and audit details without leaking.
func MaskValue(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

// sensitiveKeys are extra-data entries that never leave the store unmasked.
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
	"token_secret":  true,
}

// MaskExtraData returns a copy of a link's extra-data with provider tokens
// masked. The stored row is untouched.
func MaskExtraData(data models.JSONMap) models.JSONMap {
	if data == nil {
		return nil
	}
	masked := make(models.JSONMap, len(data))
	for key, value := range data {
		if sensitiveKeys[key] {
			if s, ok := value.(string); ok {
				masked[key] = MaskValue(s)
				continue
			}
		}
		masked[key] = value
	}
	return masked
}
