package domain

import "encoding/json"

// PlaceholderSubmissionID marks a submission the server accepted without
// returning an identifier.
const PlaceholderSubmissionID = "submitted"

// SubmissionRef points at the caller's submission for a hackathon.
type SubmissionRef struct {
	ID string `json:"id"`
}

// Sponsor is an organisation backing a hackathon.
type Sponsor struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Hackathon is a single event as served by the API. The participation flags
// are only populated when the request carried a session token.
type Hackathon struct {
	ID                string         `json:"_id"`
	Title             string         `json:"title"`
	Description       string         `json:"description,omitempty"`
	ProblemStatement  string         `json:"problem_statement,omitempty"`
	ImageURL          string         `json:"image_url,omitempty"`
	StartDate         Date           `json:"start_date"`
	EndDate           Date           `json:"end_date"`
	InviteCode        string         `json:"invite_code,omitempty"`
	FileAttachmentURL string         `json:"file_attachment_url,omitempty"`
	GradeEligible     string         `json:"grade_eligible,omitempty"`
	Sponsors          []Sponsor      `json:"sponsors,omitempty"`
	HasJoined         bool           `json:"hasJoined"`
	HasSubmitted      *SubmissionRef `json:"hasSubmitted"`
	IsResultPublished bool           `json:"isResultPublished"`
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier.
func (h *Hackathon) UnmarshalJSON(data []byte) error {
	type plain Hackathon
	aux := struct {
		*plain
		AltID string `json:"id"`
	}{plain: (*plain)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if h.ID == "" {
		h.ID = aux.AltID
	}
	return nil
}

// Submitted reports whether the caller has a submission on record.
func (h Hackathon) Submitted() bool {
	return h.HasSubmitted != nil
}

// HackathonList is the envelope returned by the list endpoints.
type HackathonList struct {
	Hackathons []Hackathon `json:"hackathons"`
}
