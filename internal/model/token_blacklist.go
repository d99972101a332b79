package model

import "time"

// TokenBlacklist marks a JWT as revoked. ExpiresAt mirrors the token's own expiry as
// unix seconds so rows can be pruned once the token could no longer be used anyway.
type TokenBlacklist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;size:512;not null"`
	ExpiresAt int64     `json:"expiresAt" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
