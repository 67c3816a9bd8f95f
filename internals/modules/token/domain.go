package token

import "time"

// Token is the stored record behind an issued JWT, keyed by its jti.
type Token struct {
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Expires int64  `json:"expires"` // unix millis
}

func (t Token) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.Expires
}

type IssuedToken struct {
	Token
	AccessToken string
}
