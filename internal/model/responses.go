package model

// AccessToken struct holds the access token data
type AccessToken struct {
	Token string `json:"token"`
}

// StaffResponse struct holds the response data for staff user login or registration
type StaffResponse struct {
	Profile     StaffProfile `json:"profile"`
	AccessToken string       `json:"access_token"`
}

// VisitorResponse struct holds the response data for visitor user login or registration
type VisitorResponse struct {
	Profile     VisitorProfile `json:"profile"`
	AccessToken string         `json:"access_token"`
}

// AdminResponse struct holds the response data for admin login
type AdminResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
