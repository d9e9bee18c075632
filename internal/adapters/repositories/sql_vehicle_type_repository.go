package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"vehicle-allocation-service/internal/domain"
	"vehicle-allocation-service/internal/platform/obs"

	"github.com/shopspring/decimal"
)

// SQL-backed implementation of the VehicleTypeRepository and VehicleTypeLookup ports.
// Driver is the database/sql driver name ("pgx" or "sqlite") and only affects
// placeholder syntax.
type SQLVehicleTypeRepository struct {
	DB     *sql.DB
	Driver string
}

func NewSQLVehicleTypeRepository(db *sql.DB, driver string) *SQLVehicleTypeRepository {
	return &SQLVehicleTypeRepository{DB: db, Driver: driver}
}

const selectVehicleTypes = `
	SELECT
		id,
		name,
		capacity,
		luggage_capacity,
		price_per_day,
		is_active
	FROM vehicle_types
`

// Return every vehicle type in catalog order.
func (s *SQLVehicleTypeRepository) ListVehicleTypes(ctx context.Context) (_ []domain.VehicleType, err error) {
	defer obs.Time(ctx, "vehicle_types.ListVehicleTypes")(&err)

	if s.DB == nil {
		return nil, errors.New("sql vehicle type repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectVehicleTypes+"ORDER BY sort_order, id;")
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: query vehicle_types table: %w", err)
	}
	defer rows.Close()

	return scanVehicleTypes(rows)
}

// Fetch selected vehicle types keyed by ID. IDs that do not exist are absent
// from the result rather than reported as errors.
func (s *SQLVehicleTypeRepository) GetVehicleTypes(ctx context.Context, ids []int) (_ map[int]domain.VehicleType, err error) {
	defer obs.Time(ctx, "vehicle_types.GetVehicleTypes")(&err)

	if s.DB == nil {
		return nil, errors.New("sql vehicle type repository: DB is nil")
	}

	seen := map[int]struct{}{}
	args := make([]any, 0, len(ids))
	ph := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id)
		ph = append(ph, "?")
	}

	if len(args) == 0 {
		return map[int]domain.VehicleType{}, nil
	}

	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := rebind(s.Driver, selectVehicleTypes+"WHERE id IN ("+strings.Join(ph, ",")+");")

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get vehicle types: query vehicle_types table: %w", err)
	}
	defer rows.Close()

	types, err := scanVehicleTypes(rows)
	if err != nil {
		return nil, err
	}

	return domain.IndexVehicleTypes(types), nil
}

func scanVehicleTypes(rows *sql.Rows) ([]domain.VehicleType, error) {
	types := make([]domain.VehicleType, 0, 16)
	for rows.Next() {
		var (
			vt    domain.VehicleType
			price string
		)
		if err := rows.Scan(&vt.ID, &vt.Name, &vt.Capacity, &vt.LuggageCapacity, &price, &vt.Active); err != nil {
			return nil, fmt.Errorf("scan vehicle types: scan row: %w", err)
		}

		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle types: id=%d: parse price %q: %w", vt.ID, price, err)
		}
		vt.PricePerDay = p

		types = append(types, vt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan vehicle types: row iteration: %w", err)
	}

	return types, nil
}

// Rewrite "?" placeholders into "$n" for Postgres. SQLite takes "?" as is.
// Queries here never contain a literal question mark.
func rebind(driver, query string) string {
	if driver == "sqlite" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
