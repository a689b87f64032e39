package registry

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"eduscale-server-go/pkg/model"
)

// RegionService handles region persistence
type RegionService struct {
	db *sqlx.DB
}

// NewRegionService creates a new region service
func NewRegionService(db *sqlx.DB) *RegionService {
	return &RegionService{db: db}
}

// CreateRegion inserts a new region inside its own transaction. The row id is
// minted by gen_random_uuid() on the database side, never by the caller. An
// empty main_contact leaves the column out of the statement entirely so the
// column default applies instead of an explicit empty string.
func (s *RegionService) CreateRegion(req model.RegionCreateRequest) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin region insert: %w", err)
	}

	if req.MainContact == "" {
		_, err = tx.Exec(`
            INSERT INTO region (id, name, legal_address)
            VALUES (gen_random_uuid(), $1, $2)
        `, req.Name, req.LegalAddress)
	} else {
		_, err = tx.Exec(`
            INSERT INTO region (id, name, legal_address, main_contact)
            VALUES (gen_random_uuid(), $1, $2, $3)
        `, req.Name, req.LegalAddress, req.MainContact)
	}

	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetRegions returns every region, in storage order
func (s *RegionService) GetRegions() ([]model.Region, error) {
	regions := []model.Region{}
	err := s.db.Select(&regions, `
        SELECT id, name, legal_address, main_contact
        FROM region
    `)
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// GetRegion gets a single region by id. Returns sql.ErrNoRows when no row
// matches, including malformed ids that match nothing.
func (s *RegionService) GetRegion(id string) (*model.Region, error) {
	var region model.Region
	err := s.db.Get(&region, `
        SELECT id, name, legal_address, main_contact
        FROM region
        WHERE id = $1
    `, id)
	if err != nil {
		return nil, err
	}
	return &region, nil
}
