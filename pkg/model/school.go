package model

// School represents a school registered under a region
type School struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	LegalID     string `db:"legal_id" json:"legal_id"`
	Address     string `db:"address" json:"address"`
	MainContact string `db:"main_contact" json:"main_contact"`
	Region      string `db:"region" json:"region"`
}

// SchoolCreateRequest represents the request to create a school.
// Region must reference an existing region id; the database enforces it.
type SchoolCreateRequest struct {
	Name        string `json:"name"`
	LegalID     string `json:"legal_id"`
	Address     string `json:"address"`
	MainContact string `json:"main_contact"`
	Region      string `json:"region"`
}
