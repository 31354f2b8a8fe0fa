package cafes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

type stubGeocoder struct {
	coords models.Coordinates
	err    error
	calls  int
}

func (s *stubGeocoder) Geocode(_ context.Context, _ string) (models.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

type stubPlaces struct {
	places []models.NearbyPlace
	err    error

	gotLocation models.Coordinates
	gotRadius   int
	gotCategory string
}

func (s *stubPlaces) FetchNearby(_ context.Context, location models.Coordinates, radiusMeters int, category string) ([]models.NearbyPlace, error) {
	s.gotLocation = location
	s.gotRadius = radiusMeters
	s.gotCategory = category
	return s.places, s.err
}

func TestFormatPlace(t *testing.T) {
	tests := []struct {
		name  string
		place models.NearbyPlace
		want  string
	}{
		{
			name:  "all fields present",
			place: models.NearbyPlace{Name: "Cafe Central", Address: "1 Main St", Rating: 4.5},
			want:  "Name: Cafe Central / Address: 1 Main St / Rating: 4.5",
		},
		{
			name:  "missing fields fall back to N/A",
			place: models.NearbyPlace{},
			want:  "Name: N/A / Address: N/A / Rating: N/A",
		},
		{
			name:  "missing rating only",
			place: models.NearbyPlace{Name: "Cafe Central", Address: "1 Main St"},
			want:  "Name: Cafe Central / Address: 1 Main St / Rating: N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPlace(tt.place))
		})
	}
}

func performSearch(t *testing.T, geocoder Geocoder, places PlacesSearcher, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore(time.Minute)
	handler := NewHandler(geocoder, places, sessions, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/cafes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req

	handler.Search(c)
	return w
}

func TestSearch(t *testing.T) {
	t.Run("lists nearby restaurants", func(t *testing.T) {
		geocoder := &stubGeocoder{coords: models.Coordinates{Latitude: 38.72, Longitude: -9.14}}
		places := &stubPlaces{places: []models.NearbyPlace{
			{Name: "Cafe Central", Address: "1 Main St", Rating: 4.5},
		}}

		w := performSearch(t, geocoder, places, url.Values{"location": {"Lisbon"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Name: Cafe Central / Address: 1 Main St / Rating: 4.5")
		assert.Equal(t, geocoder.coords, places.gotLocation)
		assert.Equal(t, 1500, places.gotRadius)
		assert.Equal(t, "restaurant", places.gotCategory)
	})

	t.Run("no results is a message, not an error", func(t *testing.T) {
		geocoder := &stubGeocoder{coords: models.Coordinates{Latitude: 38.72, Longitude: -9.14}}
		places := &stubPlaces{places: nil}

		w := performSearch(t, geocoder, places, url.Values{"location": {"Lisbon"}})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cafes or restaurants found soon.")
	})

	t.Run("unknown location", func(t *testing.T) {
		geocoder := &stubGeocoder{err: models.ErrNotFound}
		places := &stubPlaces{}

		w := performSearch(t, geocoder, places, url.Values{"location": {"Nowhereville"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Location not found.")
	})

	t.Run("missing location skips the lookup", func(t *testing.T) {
		geocoder := &stubGeocoder{}
		w := performSearch(t, geocoder, &stubPlaces{}, url.Values{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, geocoder.calls)
	})

	t.Run("places outage", func(t *testing.T) {
		geocoder := &stubGeocoder{coords: models.Coordinates{Latitude: 38.72, Longitude: -9.14}}
		places := &stubPlaces{err: models.ErrServiceUnavailable}

		w := performSearch(t, geocoder, places, url.Values{"location": {"Lisbon"}})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
