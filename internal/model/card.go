package model

// Card is the backend's record of one physical profile card.
// Counters are owned by the backend and only read here.
type Card struct {
	CardID              string  `json:"card_id,omitempty"`
	Username            string  `json:"username"`
	IsActivated         bool    `json:"isActivated"`
	RedirectURL         *string `json:"redirect_url"`
	TapsCount           int64   `json:"taps_count"`
	ValidRedirectsCount int64   `json:"valid_redirects_count"`
}

// Redirect returns the redirect URL or an empty string when unset.
func (c Card) Redirect() string {
	if c.RedirectURL == nil {
		return ""
	}
	return *c.RedirectURL
}

// PlaceholderCard builds the unactivated shell rendered for a username the
// backend does not know.
func PlaceholderCard(username string) Card {
	return Card{
		Username:    username,
		IsActivated: false,
		RedirectURL: nil,
		TapsCount:   0,
	}
}
