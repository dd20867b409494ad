package handler

import (
	"net/http"
	"strings"
	"testing"

	"moveasy-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCommuteRouter(svc CommuteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommuteHandler(svc)
	r := gin.New()
	r.POST("/api/commute", h.Commute)
	r.POST("/api/commute/batch", h.Batch)
	return r
}

func TestCommuteHandler_Commute(t *testing.T) {
	origin := models.Coordinate{Lat: 40.7359, Lon: -74.0036}
	dest := models.Coordinate{Lat: 40.7440, Lon: -74.0324}

	tests := []struct {
		name           string
		body           string
		callService    bool
		expectedStatus int
	}{
		{name: "missing destination", body: `{"origin":{"lat":40.7359,"lon":-74.0036}}`, expectedStatus: http.StatusBadRequest},
		{name: "out of range", body: `{"origin":{"lat":140,"lon":-74},"destination":{"lat":40.744,"lon":-74.0324}}`, expectedStatus: http.StatusBadRequest},
		{name: "routed", body: `{"origin":{"lat":40.7359,"lon":-74.0036},"destination":{"lat":40.744,"lon":-74.0324},"mode":"walking"}`, callService: true, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCommuteService)
			if tt.callService {
				svc.On("GetCommuteTime", mock.Anything, origin, dest, "walking").Return(models.CommuteResult{
					Duration: 1500, Distance: 2600, DurationText: "25 min", DistanceText: "1.6 mi", Mode: "foot-walking",
				})
			}
			r := newCommuteRouter(svc)

			status, body := perform(t, r, http.MethodPost, "/api/commute", tt.body, nil)

			assert.Equal(t, tt.expectedStatus, status)
			if tt.callService {
				assert.Equal(t, "25 min", body.(map[string]interface{})["durationText"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCommuteHandler_Batch(t *testing.T) {
	origin := models.Coordinate{Lat: 40.7359, Lon: -74.0036}
	dests := []models.Coordinate{{Lat: 40.744, Lon: -74.0324}, {Lat: 40.7265, Lon: -73.9815}}

	svc := new(MockCommuteService)
	svc.On("GetBatchCommuteTimes", mock.Anything, origin, dests, "").Return([]models.CommuteResult{
		{Destination: &dests[0], DurationText: "12 min"},
		{Destination: &dests[1], DurationText: "9 min", IsEstimate: true},
	})
	r := newCommuteRouter(svc)

	status, body := perform(t, r, http.MethodPost, "/api/commute/batch",
		`{"origin":{"lat":40.7359,"lon":-74.0036},"destinations":[{"lat":40.744,"lon":-74.0324},{"lat":40.7265,"lon":-73.9815}]}`, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body, 2)
	svc.AssertExpectations(t)

	status, _ = perform(t, r, http.MethodPost, "/api/commute/batch", `{"origin":{"lat":40.7359,"lon":-74.0036},"destinations":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	many := `{"lat":40.7,"lon":-74.0}` + strings.Repeat(`,{"lat":40.7,"lon":-74.0}`, maxCommuteDestinations)
	status, body = perform(t, r, http.MethodPost, "/api/commute/batch", `{"origin":{"lat":40.7359,"lon":-74.0036},"destinations":[`+many+`]}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]interface{}{"error": "too many destinations"}, body)
}
