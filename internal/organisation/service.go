package organisation

import (
	"context"

	"github.com/google/uuid"

	"github.com/davidrmellors/peeper-webportal/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateOrganisation(ctx context.Context, input Organisation) (Organisation, error) {
	input.ID = uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO organisations (id, name, street, suburb, city, province, postal_code, email, phone, latitude, longitude)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, input.ID, input.Name,
		input.Address.Street, input.Address.Suburb, input.Address.City,
		input.Address.Province, input.Address.PostalCode,
		input.Email, input.Phone, input.Latitude, input.Longitude)
	if err != nil {
		return Organisation{}, err
	}
	return input, nil
}

func (s *Service) DeleteOrganisation(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM organisations WHERE id=$1`, id)
	return err
}

func (s *Service) GetOrganisation(ctx context.Context, id string) (Organisation, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, street, suburb, city, province, postal_code, email, phone, latitude, longitude
		FROM organisations WHERE id=$1
	`, id)

	var org Organisation
	if err := row.Scan(&org.ID, &org.Name,
		&org.Address.Street, &org.Address.Suburb, &org.Address.City,
		&org.Address.Province, &org.Address.PostalCode,
		&org.Email, &org.Phone, &org.Latitude, &org.Longitude); err != nil {
		return Organisation{}, err
	}
	return org, nil
}

func (s *Service) ListOrganisations(ctx context.Context) ([]Organisation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, street, suburb, city, province, postal_code, email, phone, latitude, longitude
		FROM organisations ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []Organisation
	for rows.Next() {
		var org Organisation
		if err := rows.Scan(&org.ID, &org.Name,
			&org.Address.Street, &org.Address.Suburb, &org.Address.City,
			&org.Address.Province, &org.Address.PostalCode,
			&org.Email, &org.Phone, &org.Latitude, &org.Longitude); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}
