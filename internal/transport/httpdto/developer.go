package httpdto

import "time"

type APIKeyDTO struct {
	Key          string    `json:"key"`
	Plan         string    `json:"plan"`
	QuotaLimit   int       `json:"quota_limit"`
	QuotaUsed    int       `json:"quota_used"`
	QuotaResetAt time.Time `json:"quota_reset_at"`
}
