package token

type CreateRequest struct {
	Phone    string `json:"phone" validate:"required,min=12"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	ID          string `json:"id"`
	Phone       string `json:"phone"`
	Expires     int64  `json:"expires"`
	AccessToken string `json:"accessToken,omitempty"`
}

func toResponse(t Token, accessToken string) TokenResponse {
	return TokenResponse{
		ID:          t.ID,
		Phone:       t.Phone,
		Expires:     t.Expires,
		AccessToken: accessToken,
	}
}
