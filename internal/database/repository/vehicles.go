package repository

import (
	"context"
	"database/sql"
)

// VehicleRepo reads the fleet reference data.
type VehicleRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewVehicleRepo(db *sql.DB, dialect Dialect) *VehicleRepo {
	return &VehicleRepo{db: db, dialect: dialect}
}

// List returns every vehicle with color, model and brand resolved, oldest first.
func (r *VehicleRepo) List(ctx context.Context) ([]Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT v.id, v.name, v.type, v.model_type, v.plate_number, v.year,
	       c.name, m.name, b.name, m.capacity
	FROM "Vehicles" v
	LEFT JOIN "Color" c ON c.id = v.color
	LEFT JOIN "Model" m ON m.id = v.model
	LEFT JOIN "Brands" b ON b.id = m.brand
	ORDER BY v.created_at ASC, v.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Vehicle{}
	for rows.Next() {
		var v Vehicle
		var modelType, plate, color, model, brand sql.NullString
		var year, capacity sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &modelType, &plate, &year,
			&color, &model, &brand, &capacity); err != nil {
			return nil, err
		}
		v.ModelType = stringPtr(modelType)
		v.PlateNumber = stringPtr(plate)
		v.Color = stringPtr(color)
		v.Model = stringPtr(model)
		v.Brand = stringPtr(brand)
		v.Year = intPtr(year)
		v.Capacity = intPtr(capacity)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VehicleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Vehicles"`).Scan(&n)
	return n, err
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func intPtr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}
