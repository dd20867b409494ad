package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"moveasy-api/internal/models"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// Area file formats understood by ParseAreas.
const (
	FormatNTA = "nta"
	FormatNJ  = "nj"
)

// AreaWriter persists imported areas
type AreaWriter interface {
	ReplaceAreas(ctx context.Context, areas []models.NewArea, truncate bool) (int64, error)
	CountAreas(ctx context.Context) (int64, error)
}

// SyncResult reports a completed area import.
type SyncResult struct {
	AreasCount int64     `json:"areasCount"`
	Truncated  bool      `json:"truncated"`
	Timestamp  time.Time `json:"timestamp"`
}

// AreaSyncService imports area boundaries from GeoJSON
type AreaSyncService struct {
	store AreaWriter
	now   func() time.Time
}

// NewAreaSyncService creates a new area sync service
func NewAreaSyncService(store AreaWriter) *AreaSyncService {
	return &AreaSyncService{store: store, now: time.Now}
}

// DetectFormat guesses the file format from the first feature's properties.
func DetectFormat(fc *geojson.FeatureCollection) (string, error) {
	if len(fc.Features) == 0 {
		return "", fmt.Errorf("%w: feature collection is empty", ErrInvalidArgument)
	}
	props := fc.Features[0].Properties
	if _, ok := props["NTAName"]; ok {
		return FormatNTA, nil
	}
	if _, ok := props["MUN_LABEL"]; ok {
		return FormatNJ, nil
	}
	return "", fmt.Errorf("%w: unable to detect area file format", ErrInvalidArgument)
}

// ParseAreas decodes a GeoJSON feature collection into areas. fileType selects the
// format ("nta" or "nj"); an empty fileType detects it. Features without a name or
// geometry are skipped. The center of each area is the midpoint of its bounding box.
func ParseAreas(data []byte, fileType string) ([]models.NewArea, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid GeoJSON: %v", ErrInvalidArgument, err)
	}

	format := fileType
	if format == "" {
		if format, err = DetectFormat(fc); err != nil {
			return nil, err
		}
	}

	var toArea func(geojson.Properties) models.NewArea
	switch format {
	case FormatNTA:
		toArea = ntaArea
	case FormatNJ:
		toArea = njArea
	default:
		return nil, fmt.Errorf("%w: unknown file type %q", ErrInvalidArgument, fileType)
	}

	areas := make([]models.NewArea, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		a := toArea(f.Properties)
		if a.Name == "" {
			continue
		}
		center := f.Geometry.Bound().Center()
		a.GeneralLongitude = center.Lon()
		a.GeneralLatitude = center.Lat()
		areas = append(areas, a)
	}
	return areas, nil
}

func ntaArea(p geojson.Properties) models.NewArea {
	name := propString(p, "NTAName", "")
	boro := propString(p, "BoroName", "")
	return models.NewArea{
		Name:        name,
		State:       "New York",
		City:        "New York",
		Borough:     boro,
		Description: fmt.Sprintf("%s area in %s", name, boro),
		AreaTags:    []string{"residential", "community"},
	}
}

func njArea(p geojson.Properties) models.NewArea {
	name := propString(p, "MUN_LABEL", "")
	if name == "" {
		name = propString(p, "NAME", "")
	}
	county := propString(p, "COUNTY", "")
	return models.NewArea{
		Name:        name,
		State:       "New Jersey",
		City:        propString(p, "MUN", "Unknown"),
		Borough:     propString(p, "COUNTY", "Unknown County"),
		Description: fmt.Sprintf("%s in %s County, NJ", name, county),
		AreaTags:    []string{"residential", "nj-area"},
	}
}

// propString returns a property as text, or def when it is missing or empty.
func propString(p geojson.Properties, key, def string) string {
	switch v := p[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return def
}

// Sync parses one GeoJSON document and writes its areas.
func (s *AreaSyncService) Sync(ctx context.Context, data []byte, fileType string, truncate bool) (SyncResult, error) {
	areas, err := ParseAreas(data, fileType)
	if err != nil {
		return SyncResult{}, err
	}
	return s.write(ctx, areas, truncate)
}

// SyncFiles parses every file and writes all their areas in one batch. Files that
// cannot be read or parsed are logged and skipped.
func (s *AreaSyncService) SyncFiles(ctx context.Context, paths []string, truncate bool) (SyncResult, error) {
	var all []models.NewArea
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to read area file")
			continue
		}
		areas, err := ParseAreas(data, "")
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to parse area file")
			continue
		}
		log.Info().Str("path", path).Int("areas", len(areas)).Msg("loaded area file")
		all = append(all, areas...)
	}
	return s.write(ctx, all, truncate)
}

func (s *AreaSyncService) write(ctx context.Context, areas []models.NewArea, truncate bool) (SyncResult, error) {
	if len(areas) == 0 {
		return SyncResult{}, ErrNoAreas
	}

	n, err := s.store.ReplaceAreas(ctx, areas, truncate)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service: failed to store areas: %w", err)
	}

	log.Info().Int64("areas", n).Bool("truncated", truncate).Msg("areas synced")
	return SyncResult{AreasCount: n, Truncated: truncate, Timestamp: s.now().UTC()}, nil
}

// Status reports the size of the areas table.
func (s *AreaSyncService) Status(ctx context.Context) (models.AreaStatus, error) {
	count, err := s.store.CountAreas(ctx)
	if err != nil {
		return models.AreaStatus{}, fmt.Errorf("service: failed to count areas: %w", err)
	}
	return models.AreaStatus{TotalAreas: count, LastUpdated: s.now().UTC()}, nil
}
