package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
)

const listingPage = `<!DOCTYPE html>
<html>
<head><title>Toyota Harrier Premium 2019 2.0L - Be Forward</title></head>
<body>
  <h1>Toyota Harrier Premium</h1>
  <div class="price">FOB Price: $13,500</div>
  <ul>
    <li>Year: 2019</li>
    <li>Engine: 2.0L petrol</li>
  </ul>
</body>
</html>`

func TestScrape(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts attributes from a listing page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(listingPage))
		}))
		defer server.Close()

		vehicle, err := NewClient().Scrape(ctx, server.URL)
		require.NoError(t, err)

		assert.Equal(t, "TOYOTA", vehicle.Make)
		assert.Equal(t, "Harrier Premium", vehicle.Model)
		assert.Equal(t, 2019, vehicle.Year)
		assert.True(t, decimal.NewFromInt(13500).Equal(vehicle.FOBValueUSD),
			"FOB = %s", vehicle.FOBValueUSD)
		assert.True(t, decimal.NewFromFloat(2.0).Equal(vehicle.EngineSizeLiters),
			"engine = %s", vehicle.EngineSizeLiters)
		assert.Equal(t, server.URL, vehicle.SourceURL)
	})

	t.Run("page without vehicle details reports not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><head><title>Welcome</title></head><body>Nothing here</body></html>"))
		}))
		defer server.Close()

		_, err := NewClient().Scrape(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("server error surfaces as scrape failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient().Scrape(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMaxRetries)
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		_, err := NewClient().Scrape(ctx, "ftp://example.com/car")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}

func TestExtractPartialPages(t *testing.T) {
	t.Run("price only", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><head><title>Great deal</title></head><body>USD 9,800 drive away</body></html>"))
		}))
		defer server.Close()

		vehicle, err := NewClient().Scrape(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Empty(t, vehicle.Make)
		assert.True(t, decimal.NewFromInt(9800).Equal(vehicle.FOBValueUSD))
	})
}
