package weather

import (
	"context"
	"encoding/json"
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

type stubFetcher struct {
	reading models.WeatherReading
	err     error
}

func (s *stubFetcher) FetchWeather(_ context.Context, _ string) (models.WeatherReading, error) {
	return s.reading, s.err
}

func floatPtr(v float64) *float64 { return &v }

func TestRainLines(t *testing.T) {
	tests := []struct {
		name    string
		reading models.WeatherReading
		want    []string
	}{
		{
			name:    "no rain data",
			reading: models.WeatherReading{},
			want:    []string{"No rain expected."},
		},
		{
			name:    "one hour figure only",
			reading: models.WeatherReading{RainLastHourMm: floatPtr(2.5)},
			want:    []string{"Chance of rain in the next hour: 2.5 mm"},
		},
		{
			name:    "three hour figure only",
			reading: models.WeatherReading{RainLast3HourMm: floatPtr(0.4)},
			want:    []string{"Chance of rain in the next 3 hours: 0.4 mm"},
		},
		{
			name: "both figures",
			reading: models.WeatherReading{
				RainLastHourMm:  floatPtr(1),
				RainLast3HourMm: floatPtr(3.2),
			},
			want: []string{
				"Chance of rain in the next hour: 1 mm",
				"Chance of rain in the next 3 hours: 3.2 mm",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RainLines(tt.reading))
		})
	}
}

func performShow(t *testing.T, fetcher Fetcher, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewStore(time.Minute)
	handler := NewHandler(fetcher, sessions, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/weather", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req

	handler.Show(c)
	return w
}

func TestShow(t *testing.T) {
	t.Run("renders temperature, description and rain", func(t *testing.T) {
		fetcher := &stubFetcher{reading: models.WeatherReading{
			TemperatureCelsius: 18.3,
			Description:        "scattered clouds",
		}}

		w := performShow(t, fetcher, url.Values{"city": {"Lisbon"}})
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Title       string   `json:"title"`
			Temperature string   `json:"temperature"`
			Description string   `json:"description"`
			Rain        []string `json:"rain"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Weather in Lisbon:", body.Title)
		assert.Equal(t, "Temperature: 18.3°C", body.Temperature)
		assert.Equal(t, "Weather: Scattered clouds", body.Description)
		assert.Equal(t, []string{"No rain expected."}, body.Rain)
	})

	t.Run("missing city is rejected", func(t *testing.T) {
		w := performShow(t, &stubFetcher{}, url.Values{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown city", func(t *testing.T) {
		fetcher := &stubFetcher{err: models.ErrNotFound}
		w := performShow(t, fetcher, url.Values{"city": {"Nowhereville"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Could not retrieve weather information.")
	})

	t.Run("upstream outage", func(t *testing.T) {
		fetcher := &stubFetcher{err: models.ErrServiceUnavailable}
		w := performShow(t, fetcher, url.Values{"city": {"Lisbon"}})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
