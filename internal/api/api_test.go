package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"relief-api/internal/geo"
	"relief-api/internal/geocode"
	geomocks "relief-api/internal/geocode/mocks"
	"relief-api/internal/locate"
	"relief-api/internal/nominatim"
	"relief-api/internal/postal"
	"relief-api/internal/store"
	storemocks "relief-api/internal/store/mocks"
)

var center = geo.Coordinate{Lat: 43.6532, Lng: -79.3832}

func northOf(km float64) geo.Coordinate {
	return geo.Coordinate{Lat: center.Lat + km/geo.EarthRadiusKm*180/math.Pi, Lng: center.Lng}
}

func resource(id, name string, cat store.Category, at geo.Coordinate) store.Resource {
	return store.Resource{ID: id, Name: name, Category: cat, Latitude: at.Lat, Longitude: at.Lng, Address: name + " address"}
}

func fixtures() []store.Resource {
	return []store.Resource{
		resource("d", "Delta Shelter", store.CategoryShelter, northOf(4.1)),
		resource("a", "Alpha Food Bank", store.CategoryFood, northOf(0.5)),
		resource("c", "Charlie Clinic", store.CategoryMedical, northOf(1.8)),
		resource("z", "Zulu Water", store.CategoryWater, northOf(30)),
	}
}

type fakeLocator struct {
	known map[string]geo.Coordinate
	err   error
}

func (f fakeLocator) Locate(ip string) (geo.Coordinate, error) {
	if f.err != nil {
		return geo.Coordinate{}, f.err
	}
	if c, ok := f.known[ip]; ok {
		return c, nil
	}
	return geo.Coordinate{}, locate.ErrUnknown
}

type resolverFunc func(ctx context.Context, raw string) (geo.Coordinate, error)

func (f resolverFunc) Resolve(ctx context.Context, raw string) (geo.Coordinate, error) {
	return f(ctx, raw)
}

type APISuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	repo     *storemocks.MockRepository
	provider *geomocks.MockProvider
	static   *postal.Index
	deps     Deps
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = storemocks.NewMockRepository(s.ctrl)
	s.provider = geomocks.NewMockProvider(s.ctrl)
	s.static = postal.NewTorontoIndex()
	resolver := geocode.NewResolver(
		&geocode.StaticStage{Index: s.static},
		&geocode.CacheStage{Cache: geocode.NewCache(geocode.DefaultCacheSize, geocode.DefaultCacheTTL)},
		&geocode.ProviderStage{Provider: s.provider},
	)
	s.deps = Deps{Repo: s.repo, Resolver: resolver, DefaultRadiusKm: 25}
}

func (s *APISuite) do(method, target, body string) *httptest.ResponseRecorder {
	return s.doFrom("", method, target, body)
}

// doFrom 以指定的 X-Forwarded-For 发起请求；forwardedFor 为空时不设置
func (s *APISuite) doFrom(forwardedFor, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	BuildRoutes(s.deps).ServeHTTP(rec, req)
	return rec
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (s *APISuite) TestHealthz() {
	rec := s.do(http.MethodGet, "/healthz", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *APISuite) TestListWithoutCenterReturnsEverything() {
	s.repo.EXPECT().List(gomock.Any()).Return(fixtures(), nil)

	rec := s.do(http.MethodGet, "/relief-centers", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	out := decodeList(s.T(), rec)
	s.Require().Len(out, 4)
	s.Equal("Alpha Food Bank", out[0]["name"])
	s.Equal("food", out[0]["type"])
	s.NotContains(out[0], "distance")
	s.NotContains(out[0], "directionsUrl")
	s.Contains(out[0], "phone")
}

func (s *APISuite) TestListWithCenterFiltersByRadius() {
	s.repo.EXPECT().List(gomock.Any()).Return(fixtures(), nil)

	rec := s.do(http.MethodGet, "/relief-centers?lat=43.6532&lng=-79.3832&radius=25", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	out := decodeList(s.T(), rec)
	s.Require().Len(out, 3)
	want := []struct {
		id string
		km float64
	}{{"a", 0.5}, {"c", 1.8}, {"d", 4.1}}
	for i, w := range want {
		s.Equal(w.id, out[i]["id"])
		s.InDelta(w.km, out[i]["distance"].(float64), 1e-6)
		s.True(strings.HasPrefix(out[i]["directionsUrl"].(string), "https://www.google.com/maps/dir/?api=1&destination="))
	}
}

func (s *APISuite) TestListDefaultRadius() {
	s.repo.EXPECT().List(gomock.Any()).Return(fixtures(), nil)

	rec := s.do(http.MethodGet, "/relief-centers?lat=43.6532&lng=-79.3832", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(decodeList(s.T(), rec), 3)
}

func (s *APISuite) TestListCategoryAndSort() {
	s.repo.EXPECT().List(gomock.Any()).Return(fixtures(), nil)

	rec := s.do(http.MethodGet, "/relief-centers?lat=43.6532&lng=-79.3832&category=shelter,medical&sort=name", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	out := decodeList(s.T(), rec)
	s.Require().Len(out, 2)
	s.Equal("Charlie Clinic", out[0]["name"])
	s.Equal("Delta Shelter", out[1]["name"])
}

func (s *APISuite) TestListEmptyRepositoryIsEmptyArray() {
	s.repo.EXPECT().List(gomock.Any()).Return(nil, nil).Times(2)

	rec := s.do(http.MethodGet, "/relief-centers", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/relief-centers?lat=43.6532&lng=-79.3832", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *APISuite) TestListRejectsBadQuery() {
	for _, target := range []string{
		"/relief-centers?lat=abc&lng=-79.38",
		"/relief-centers?lat=43.6&lng=west",
		"/relief-centers?lat=95&lng=-79.38",
		"/relief-centers?lat=43.6&lng=-200",
		"/relief-centers?lat=43.6&lng=-79.38&radius=-1",
		"/relief-centers?lat=43.6&lng=-79.38&radius=NaN",
		"/relief-centers?category=bogus",
		"/relief-centers?sort=rating",
	} {
		rec := s.do(http.MethodGet, target, "")
		s.Equal(http.StatusBadRequest, rec.Code, target)
		s.Contains(rec.Body.String(), `"error"`, target)
	}
}

func (s *APISuite) TestListRepositoryFailure() {
	s.repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	rec := s.do(http.MethodGet, "/relief-centers", "")
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"Failed to fetch relief centers"}`, rec.Body.String())
}

func (s *APISuite) TestSummary() {
	s.repo.EXPECT().List(gomock.Any()).Return(fixtures(), nil).Times(2)

	rec := s.do(http.MethodGet, "/relief-centers/summary", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"total":4,"counts":{"shelter":1,"food":1,"medical":1,"water":1}}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/relief-centers/summary?lat=43.6532&lng=-79.3832&radius=2", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"total":2,"counts":{"shelter":0,"food":1,"medical":1,"water":0}}`, rec.Body.String())
}

func (s *APISuite) TestConvertStaticTable() {
	want, ok := s.static.Lookup("M5H2N2")
	s.Require().True(ok)

	rec := s.do(http.MethodPost, "/postal-code/convert", `{"postalCode":"m5h 2n2"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var got coordinateResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(want.Lat, got.Lat)
	s.Equal(want.Lng, got.Lng)
}

func (s *APISuite) TestConvertFallsBackToProvider() {
	guelph := geo.Coordinate{Lat: 43.5448, Lng: -80.2482}
	s.provider.EXPECT().FetchCoordinate(gomock.Any(), "N1G 2W1").Return(guelph, nil).Times(1)

	for range 2 {
		rec := s.do(http.MethodPost, "/postal-code/convert", `{"postalCode":"N1G 2W1"}`)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"lat":43.5448,"lng":-80.2482}`, rec.Body.String())
	}
}

func (s *APISuite) TestConvertProviderFailureIsNotFound() {
	s.provider.EXPECT().FetchCoordinate(gomock.Any(), gomock.Any()).
		Return(geo.Coordinate{}, &nominatim.ProviderError{Reason: nominatim.ReasonRequestFailed, Status: http.StatusServiceUnavailable})

	rec := s.do(http.MethodPost, "/postal-code/convert", `{"postalCode":"K1A 0B1"}`)
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"Postal code not found. Please try another location or use your current location."}`, rec.Body.String())
}

func (s *APISuite) TestConvertRejectsMissingPostalCode() {
	for _, body := range []string{`{}`, `{"postalCode":""}`, `{"postalCode":"   "}`, `not json`} {
		rec := s.do(http.MethodPost, "/postal-code/convert", body)
		s.Equal(http.StatusBadRequest, rec.Code, body)
		s.JSONEq(`{"error":"Postal code is required"}`, rec.Body.String(), body)
	}
}

func (s *APISuite) TestConvertUnexpectedError() {
	s.deps.Resolver = resolverFunc(func(context.Context, string) (geo.Coordinate, error) {
		return geo.Coordinate{}, errors.New("boom")
	})

	rec := s.do(http.MethodPost, "/postal-code/convert", `{"postalCode":"M5H 2N2"}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.JSONEq(`{"error":"Failed to convert postal code"}`, rec.Body.String())
}

func (s *APISuite) TestLocate() {
	s.Run("locator disabled", func() {
		rec := s.do(http.MethodGet, "/locate", "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.deps.Locator = fakeLocator{known: map[string]geo.Coordinate{"8.8.8.8": center}}

	s.Run("known address", func() {
		rec := s.doFrom("8.8.8.8", http.MethodGet, "/locate", "")
		s.Require().Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"lat":43.6532,"lng":-79.3832,"source":"ip"}`, rec.Body.String())
	})

	s.Run("unknown address", func() {
		rec := s.doFrom("1.1.1.1", http.MethodGet, "/locate?ip=8.8.8.8", "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.deps.Locator = fakeLocator{err: errors.New("corrupt database")}
	s.Run("reader failure", func() {
		rec := s.doFrom("8.8.8.8", http.MethodGet, "/locate", "")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func TestParseFinite(t *testing.T) {
	v, err := parseFinite(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	for _, bad := range []string{"", "abc", "Inf", "NaN"} {
		_, err := parseFinite(bad)
		assert.Error(t, err, bad)
	}
}
