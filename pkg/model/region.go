package model

// Region represents an administrative region that schools belong to
type Region struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	LegalAddress string `db:"legal_address" json:"legal_address"`
	MainContact  string `db:"main_contact" json:"main_contact"`
}

// RegionCreateRequest represents the request to create a region.
// No field is required; absent keys decode to empty strings.
type RegionCreateRequest struct {
	Name         string `json:"name"`
	LegalAddress string `json:"legal_address"`
	MainContact  string `json:"main_contact"`
}
