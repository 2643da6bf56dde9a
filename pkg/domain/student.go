package domain

// Student is the profile returned at login and cached alongside the token.
type Student struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Grade    string `json:"grade,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
}
