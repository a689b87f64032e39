package registry

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"eduscale-server-go/pkg/model"
)

// SchoolService handles school persistence
type SchoolService struct {
	db *sqlx.DB
}

// NewSchoolService creates a new school service
func NewSchoolService(db *sqlx.DB) *SchoolService {
	return &SchoolService{db: db}
}

// CreateSchool inserts a new school inside its own transaction. All five
// columns are always bound. The region column is a foreign key into region;
// a dangling reference fails at the database and rolls back.
func (s *SchoolService) CreateSchool(req model.SchoolCreateRequest) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin school insert: %w", err)
	}

	_, err = tx.Exec(`
        INSERT INTO school (id, name, legal_id, address, main_contact, region)
        VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
    `, req.Name, req.LegalID, req.Address, req.MainContact, req.Region)

	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetSchools returns every school, in storage order
func (s *SchoolService) GetSchools() ([]model.School, error) {
	schools := []model.School{}
	err := s.db.Select(&schools, `
        SELECT id, name, legal_id, address, main_contact, region
        FROM school
    `)
	if err != nil {
		return nil, err
	}
	return schools, nil
}

// GetSchool gets a single school by id. Returns sql.ErrNoRows when absent.
func (s *SchoolService) GetSchool(id string) (*model.School, error) {
	var school model.School
	err := s.db.Get(&school, `
        SELECT id, name, legal_id, address, main_contact, region
        FROM school
        WHERE id = $1
    `, id)
	if err != nil {
		return nil, err
	}
	return &school, nil
}
