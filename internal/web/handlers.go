package web

import (
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/andreiashu/countrybed"
)

const (
	themeCookie     = "theme"
	maxSuggestions  = 5
	defaultClosestN = 5
	maxClosestN     = 50
)

// pageData is what the HTML templates render.
type pageData struct {
	Title       string
	Path        string // request URI, where the theme toggle returns to
	State       countrybed.ViewState
	Regions     []string
	Countries   []countrybed.Country
	Suggestions []string
	Selected    countrybed.Country
	Borders     []countrybed.Border
	BackURL     template.URL
}

// darkMode reads the theme cookie, falling back to the configured default.
func (s *Server) darkMode(c echo.Context) bool {
	cookie, err := c.Cookie(themeCookie)
	if err != nil {
		return s.opts.DarkMode
	}
	switch cookie.Value {
	case "dark":
		return true
	case "light":
		return false
	}
	return s.opts.DarkMode
}

// requestState rebuilds the visitor's ViewState from the query string and the
// theme cookie.
func (s *Server) requestState(c echo.Context) countrybed.ViewState {
	var state countrybed.ViewState
	if s.darkMode(c) {
		state = s.bed.Reduce(state, countrybed.ToggleDarkModeAction{})
	}
	state = s.bed.Reduce(state, countrybed.SearchAction{Term: c.QueryParam("q")})
	state = s.bed.Reduce(state, countrybed.RegionAction{Region: c.QueryParam("region")})
	return state
}

// filterQuery encodes the filters in state as a query string with its
// leading "?", or "" when none is active.
func filterQuery(state countrybed.ViewState) string {
	q := url.Values{}
	if state.SearchTerm != "" {
		q.Set("q", state.SearchTerm)
	}
	if state.Region != "" {
		q.Set("region", state.Region)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// listingURL is the listing page for the filters in state.
func listingURL(state countrybed.ViewState) template.URL {
	return template.URL("/" + filterQuery(state))
}

// detailURL is the detail page for code carrying the filters in state, so
// Back from there returns to the same listing.
func detailURL(code string, state countrybed.ViewState) template.URL {
	return template.URL("/country/" + url.PathEscape(code) + filterQuery(state))
}

// suggestionURL is the listing searching for name within the active region.
func suggestionURL(name string, state countrybed.ViewState) template.URL {
	return listingURL(state.WithSearchTerm(name))
}

var templateFuncs = template.FuncMap{
	"detailURL":     detailURL,
	"suggestionURL": suggestionURL,
}

func (s *Server) listingPage(c echo.Context) error {
	state := s.requestState(c)
	data := pageData{
		Title:     "Where in the world?",
		Path:      c.Request().URL.RequestURI(),
		State:     state,
		Regions:   countrybed.Regions,
		Countries: s.bed.Visible(state),
	}
	if len(data.Countries) == 0 {
		data.Suggestions = s.bed.Suggest(state.SearchTerm, maxSuggestions)
	}
	return c.Render(http.StatusOK, "listing.html", data)
}

func (s *Server) detailPage(c echo.Context) error {
	country, ok := s.bed.ByCode(c.Param("code"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "country not found")
	}

	state := s.bed.Reduce(s.requestState(c), countrybed.SelectByNameAction{Name: country.Name})
	selected, ok := state.Selected()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "country not found")
	}
	return c.Render(http.StatusOK, "detail.html", pageData{
		Title:    selected.Name,
		Path:     c.Request().URL.RequestURI(),
		State:    state,
		Selected: selected,
		Borders:  s.bed.Borders(selected),
		BackURL:  listingURL(state.GoBack()),
	})
}

// toggleTheme flips the theme cookie and redirects to the page the form was
// posted from. Only same-site paths are accepted as return targets.
func (s *Server) toggleTheme(c echo.Context) error {
	state := s.bed.Reduce(s.requestState(c), countrybed.ToggleDarkModeAction{})
	value := "light"
	if state.DarkMode {
		value = "dark"
	}
	c.SetCookie(&http.Cookie{
		Name:     themeCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	target := c.FormValue("return")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		target = "/"
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// --- API ---

// countryResponse is a country with its borders resolved.
type countryResponse struct {
	countrybed.Country
	BorderNames     []string            `json:"borderNames"`
	BorderCountries []countrybed.Border `json:"borderCountries"`
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Server) listCountries(c echo.Context) error {
	countries := s.bed.Filter(c.QueryParam("q"), c.QueryParam("region"))
	total := len(countries)
	limit, offset := getPaginationParams(c, total)

	page := []countrybed.Country{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = countries[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   page,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) getCountry(c echo.Context) error {
	country, ok := s.bed.ByCode(c.Param("code"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "country not found")
	}
	return c.JSON(http.StatusOK, countryResponse{
		Country:         country,
		BorderNames:     s.bed.BorderNames(country),
		BorderCountries: s.bed.Borders(country),
	})
}

func (s *Server) closestCountries(c echo.Context) error {
	code := c.Param("code")
	if _, ok := s.bed.ByCode(code); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "country not found")
	}
	n := defaultClosestN
	if raw := c.QueryParam("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "n must be a positive integer")
		}
		n = min(v, maxClosestN)
	}
	neighbors := s.bed.Closest(code, n)
	if neighbors == nil {
		neighbors = []countrybed.Neighbor{}
	}
	return c.JSON(http.StatusOK, neighbors)
}

func (s *Server) listRegions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.bed.RegionSummary())
}

func (s *Server) suggest(c echo.Context) error {
	names := s.bed.Suggest(c.QueryParam("q"), maxSuggestions)
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, names)
}

func (s *Server) nearest(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lat")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lng")
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return echo.NewHTTPError(http.StatusBadRequest, "coordinates out of range")
	}
	country, ok := s.bed.CountryAt(lat, lng)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no country near this point")
	}
	return c.JSON(http.StatusOK, country)
}
