package db

// Credential holds the bearer tokens of one session scope. The user scope
// keeps an access and a refresh token; the admin scope keeps only an
// access token.
type Credential struct {
	Scope        string `gorm:"primaryKey" json:"scope"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
