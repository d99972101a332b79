package model

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"
)

// Contact is an e-mail/phone pair owned by a User.
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null" validate:"required,email"`
	Phone     string    `json:"phone" gorm:"size:15;not null" validate:"required,numeric,min=7,max=15"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Normalize rewrites Email and Phone into their stored forms.
func (c *Contact) Normalize() {
	c.Email = NormalizeEmail(c.Email)
	c.Phone = NormalizePhone(c.Phone)
}

// MaskedPhone returns the stored phone with every digit but the last four replaced by '*'.
func (c Contact) MaskedPhone() string {
	return MaskPhone(c.Phone)
}

// MarshalJSON adds the computed maskedPhone field.
func (c Contact) MarshalJSON() ([]byte, error) {
	type contactJSON Contact
	return json.Marshal(struct {
		contactJSON
		MaskedPhone *string `json:"maskedPhone"`
	}{
		contactJSON: contactJSON(c),
		MaskedPhone: nullable(c.MaskedPhone()),
	})
}

// NormalizeEmail lower-cases and trims an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskPhone hides every digit that is followed by at least four more digits.
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	runes := []rune(phone)
	trailing := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsDigit(runes[i]) {
			trailing = 0
			continue
		}
		if trailing >= 4 {
			runes[i] = '*'
		}
		trailing++
	}
	return string(runes)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
