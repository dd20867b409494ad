package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moveasy-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("repository: not found")

// Repository implements the data access layer on PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// AreaField is a column of the areas table that can be searched by substring.
type AreaField int

const (
	AreaName AreaField = iota
	AreaCity
	AreaBorough
)

func (f AreaField) column() string {
	switch f {
	case AreaCity:
		return "city"
	case AreaBorough:
		return "borough"
	default:
		return "name"
	}
}

func (f AreaField) String() string {
	return f.column()
}

// AreaQuery matches areas where any field contains any term, case-insensitively.
type AreaQuery struct {
	Fields []AreaField
	Terms  []string
	Limit  int
}

// BuildingField is what a building search is matched against.
type BuildingField int

const (
	BuildingName BuildingField = iota
	BuildingAreaName
	BuildingAreaBorough
)

func (f BuildingField) column() string {
	switch f {
	case BuildingAreaName:
		return "a.name"
	case BuildingAreaBorough:
		return "a.borough"
	default:
		return "b.name"
	}
}

func (f BuildingField) String() string {
	switch f {
	case BuildingAreaName:
		return "area_name"
	case BuildingAreaBorough:
		return "area_borough"
	default:
		return "building_name"
	}
}

// BuildingQuery matches buildings whose field contains Term.
type BuildingQuery struct {
	Field BuildingField
	Term  string
	Limit int
}

const areaColumns = `
	id,
	name,
	COALESCE(city, ''),
	COALESCE(state, ''),
	COALESCE(borough, ''),
	COALESCE(description, ''),
	COALESCE(area_tags, '{}'),
	general_latitude,
	general_longitude,
	COALESCE(total_buildings, 0),
	avg_rent_studio::float8,
	avg_rent_1br::float8,
	avg_rent_2br::float8,
	COALESCE(image_url, '')`

const buildingColumns = `
	b.id,
	b.name,
	COALESCE(b.description, ''),
	COALESCE(b.image_url, ''),
	COALESCE(b.category, ''),
	COALESCE(b.amenities, '{}'),
	COALESCE(b.is_featured, false),
	b.area_id,
	b.created_at,
	a.id,
	a.name,
	a.city,
	a.borough,
	a.area_tags,
	a.general_latitude,
	a.general_longitude`

// likePattern wraps term for a substring ILIKE, escaping the pattern wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// SearchAreas runs an ILIKE search ordered by total_buildings, largest first.
func (r *Repository) SearchAreas(ctx context.Context, q AreaQuery) ([]models.Area, error) {
	if len(q.Fields) == 0 || len(q.Terms) == 0 {
		return []models.Area{}, nil
	}

	var conds []string
	args := make([]any, 0, len(q.Terms)+1)
	for _, term := range q.Terms {
		args = append(args, likePattern(term))
		for _, f := range q.Fields {
			conds = append(conds, fmt.Sprintf("%s ILIKE $%d", f.column(), len(args)))
		}
	}

	sql := `SELECT ` + areaColumns + `
		FROM areas
		WHERE ` + strings.Join(conds, " OR ") + `
		ORDER BY total_buildings DESC NULLS LAST, id ASC`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute area search: %w", err)
	}
	return collectAreas(rows)
}

// GetArea loads a single area by id.
func (r *Repository) GetArea(ctx context.Context, id int64) (*models.Area, error) {
	rows, err := r.db.Query(ctx, `SELECT `+areaColumns+` FROM areas WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to load area: %w", err)
	}
	areas, err := collectAreas(rows)
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, ErrNotFound
	}
	return &areas[0], nil
}

func collectAreas(rows pgx.Rows) ([]models.Area, error) {
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var a models.Area
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.City,
			&a.State,
			&a.Borough,
			&a.Description,
			&a.AreaTags,
			&a.GeneralLatitude,
			&a.GeneralLongitude,
			&a.TotalBuildings,
			&a.AvgRentStudio,
			&a.AvgRent1BR,
			&a.AvgRent2BR,
			&a.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return areas, nil
}

// SearchBuildings runs an ILIKE search over buildings joined with their area,
// featured buildings first.
func (r *Repository) SearchBuildings(ctx context.Context, q BuildingQuery) ([]models.Building, error) {
	sql := `SELECT ` + buildingColumns + `
		FROM buildings b
		LEFT JOIN areas a ON a.id = b.area_id
		WHERE ` + q.Field.column() + ` ILIKE $1
		ORDER BY b.is_featured DESC NULLS LAST, b.name ASC`
	args := []any{likePattern(q.Term)}
	if q.Limit > 0 {
		sql += " LIMIT $2"
		args = append(args, q.Limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute building search: %w", err)
	}
	return collectBuildings(rows)
}

// ListBuildingsByArea returns the newest buildings of an area.
func (r *Repository) ListBuildingsByArea(ctx context.Context, areaID int64, limit int) ([]models.Building, error) {
	sql := `SELECT ` + buildingColumns + `
		FROM buildings b
		LEFT JOIN areas a ON a.id = b.area_id
		WHERE b.area_id = $1
		ORDER BY b.created_at DESC`
	args := []any{areaID}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list buildings: %w", err)
	}
	return collectBuildings(rows)
}

// ListMapAreas returns areas with a known building count, largest first.
func (r *Repository) ListMapAreas(ctx context.Context, limit int) ([]models.Area, error) {
	sql := `SELECT ` + areaColumns + `
		FROM areas
		WHERE total_buildings IS NOT NULL
		ORDER BY total_buildings DESC, id ASC`
	var args []any
	if limit > 0 {
		sql += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list map areas: %w", err)
	}
	return collectAreas(rows)
}

// ListMapBuildings returns buildings that belong to an area, featured first, then by name.
func (r *Repository) ListMapBuildings(ctx context.Context, limit int) ([]models.Building, error) {
	sql := `SELECT ` + buildingColumns + `
		FROM buildings b
		INNER JOIN areas a ON a.id = b.area_id
		ORDER BY b.is_featured DESC NULLS LAST, b.name ASC`
	var args []any
	if limit > 0 {
		sql += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list map buildings: %w", err)
	}
	return collectBuildings(rows)
}

func collectBuildings(rows pgx.Rows) ([]models.Building, error) {
	defer rows.Close()

	buildings := []models.Building{}
	for rows.Next() {
		var (
			b       models.Building
			areaID  *int64
			name    *string
			city    *string
			borough *string
			tags    []string
			lat     *float64
			lon     *float64
		)
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.ImageURL,
			&b.Category,
			&b.Amenities,
			&b.IsFeatured,
			&b.AreaID,
			&b.CreatedAt,
			&areaID,
			&name,
			&city,
			&borough,
			&tags,
			&lat,
			&lon,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan building: %w", err)
		}

		if areaID != nil {
			if tags == nil {
				tags = []string{}
			}
			b.Area = &models.AreaSummary{
				ID:               *areaID,
				Name:             stringValue(name),
				City:             stringValue(city),
				Borough:          stringValue(borough),
				AreaTags:         tags,
				GeneralLatitude:  lat,
				GeneralLongitude: lon,
			}
		}
		buildings = append(buildings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return buildings, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListAmenities returns the newest amenities of an area. limit <= 0 means no limit.
func (r *Repository) ListAmenities(ctx context.Context, areaID int64, limit int) ([]models.AmenityRecord, error) {
	sql := `
		SELECT name, COALESCE(image_url, ''), created_at
		FROM amenities_by_area
		WHERE area_id = $1
		ORDER BY created_at DESC`
	args := []any{areaID}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list amenities: %w", err)
	}
	defer rows.Close()

	amenities := []models.AmenityRecord{}
	for rows.Next() {
		var a models.AmenityRecord
		if err := rows.Scan(&a.Name, &a.ImageURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan amenity: %w", err)
		}
		amenities = append(amenities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return amenities, nil
}

// ListTransport returns the newest transit options of an area. limit <= 0 means no limit.
func (r *Repository) ListTransport(ctx context.Context, areaID int64, limit int) ([]models.TransportRecord, error) {
	sql := `
		SELECT transport_name, COALESCE(image_url, ''), created_at
		FROM transport_by_area
		WHERE area_id = $1
		ORDER BY created_at DESC`
	args := []any{areaID}
	if limit > 0 {
		sql += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list transport: %w", err)
	}
	defer rows.Close()

	transport := []models.TransportRecord{}
	for rows.Next() {
		var t models.TransportRecord
		if err := rows.Scan(&t.Name, &t.ImageURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan transport: %w", err)
		}
		transport = append(transport, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return transport, nil
}

// BuildingCategories returns the distinct non-empty building categories.
func (r *Repository) BuildingCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT category
		FROM buildings
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan category: %w", err)
	}
	return categories, nil
}

// CountAreas returns the number of rows in the areas table.
func (r *Repository) CountAreas(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM areas`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count areas: %w", err)
	}
	return count, nil
}

// ReplaceAreas bulk-inserts areas in one transaction. With truncate set the table is
// emptied first through the truncate_areas_table() function, or a plain DELETE when
// that function is unavailable.
func (r *Repository) ReplaceAreas(ctx context.Context, areas []models.NewArea, truncate bool) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if truncate {
		if err := truncateAreas(ctx, tx); err != nil {
			return 0, err
		}
	}

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"areas"},
		[]string{"name", "state", "city", "borough", "description", "general_latitude", "general_longitude", "area_tags"},
		pgx.CopyFromSlice(len(areas), func(i int) ([]any, error) {
			a := areas[i]
			return []any{a.Name, a.State, a.City, a.Borough, a.Description, a.GeneralLatitude, a.GeneralLongitude, a.AreaTags}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy areas: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: failed to commit areas: %w", err)
	}
	return n, nil
}

func truncateAreas(ctx context.Context, tx pgx.Tx) error {
	// nested Begin is a savepoint, so a failed RPC does not abort the outer transaction
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to create savepoint: %w", err)
	}

	_, err = sp.Exec(ctx, `SELECT truncate_areas_table()`)
	if err == nil {
		if err := sp.Commit(ctx); err != nil {
			return fmt.Errorf("repository: failed to release savepoint: %w", err)
		}
		return nil
	}
	log.Warn().Err(err).Msg("truncate_areas_table() failed, falling back to DELETE")

	if err := sp.Rollback(ctx); err != nil {
		return fmt.Errorf("repository: failed to roll back savepoint: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM areas`); err != nil {
		return fmt.Errorf("repository: failed to clear areas: %w", err)
	}
	return nil
}

// RefreshBuildingCounts recomputes areas.total_buildings from the buildings table.
func (r *Repository) RefreshBuildingCounts(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE areas a
		SET total_buildings = (SELECT COUNT(*) FROM buildings b WHERE b.area_id = a.id)`)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to refresh building counts: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetUserProfile loads the application profile of an auth user.
func (r *Repository) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.QueryRow(ctx, `
		SELECT id::text, COALESCE(email, ''), COALESCE(full_name, ''), COALESCE(user_type, '')
		FROM user_profiles
		WHERE id::text = $1`, userID).Scan(&p.ID, &p.Email, &p.FullName, &p.UserType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to load user profile: %w", err)
	}
	return &p, nil
}

// ListUserProfiles returns every application profile.
func (r *Repository) ListUserProfiles(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, COALESCE(email, ''), COALESCE(full_name, ''), COALESCE(user_type, '')
		FROM user_profiles
		ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list user profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.UserProfile{}
	for rows.Next() {
		var p models.UserProfile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.UserType); err != nil {
			return nil, fmt.Errorf("repository: failed to scan user profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return profiles, nil
}
