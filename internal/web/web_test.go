package web_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearch/internal/factory"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.App
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := factory.New(factory.Config{
		GameConfig: game.Config{DefaultSize: 8, DefaultWordCount: 3},
	})
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)

	// Load the word list for game tests
	err = app.WordList.LoadFromFile(t.Context(), "../../data/wordlist.json")
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Records:        app.Records,
		GameConfig:     app.GameConfig,
		HubManager:     app.HubManager,
		StaticDir:      "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, false)
}

// post makes a POST request with form data (non-HTMX)
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, false)
}

// postHTMX makes a POST request with form data as an HTMX request
func (ts *webTestServer) postHTMX(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form, true)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// createGuestPlayer creates a guest player and returns the display name
func (ts *webTestServer) createGuestPlayer(displayName string) {
	ts.t.Helper()
	form := url.Values{"display_name": {displayName}}
	rr := ts.post("/auth/guest", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after guest creation")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// createGame starts a puzzle through the new-game form and returns its id
func (ts *webTestServer) createGame(size, wordCount int) string {
	ts.t.Helper()
	form := url.Values{
		"size":       {strconv.Itoa(size)},
		"word_count": {strconv.Itoa(wordCount)},
	}
	rr := ts.post("/games", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after game creation")

	location := rr.Header().Get("Location")
	parts := strings.Split(location, "/games/")
	require.Len(ts.t, parts, 2, "Expected location to contain /games/{id}, got %q", location)
	return parts[1]
}

// playerID resolves the player behind the current session cookie
func (ts *webTestServer) playerID() model.PlayerID {
	ts.t.Helper()
	cookie, ok := ts.cookies.cookies["session"]
	require.True(ts.t, ok, "Expected a session cookie")
	player, err := ts.app.AuthService.GetPlayer(cookie.Value)
	require.NoError(ts.t, err)
	return player.ID
}

// game loads the current state of a puzzle owned by the session's player
func (ts *webTestServer) game(id string) *model.Game {
	ts.t.Helper()
	g, err := ts.app.GameController.GetGame(ts.t.Context(), model.GameID(id), ts.playerID())
	require.NoError(ts.t, err)
	return g
}

// selectWord clicks every cell of a hidden word
func (ts *webTestServer) selectWord(id string, word model.PlacedWord) {
	ts.t.Helper()
	for _, pos := range word.Positions() {
		rr := ts.post("/games/"+id+"/toggle", url.Values{"cell": {cellValue(pos)}})
		require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	}
}

// solve finds every hidden word through the form actions
func (ts *webTestServer) solve(id string) {
	ts.t.Helper()
	for _, word := range ts.game(id).Placed {
		ts.selectWord(id, word)
		rr := ts.post("/games/"+id+"/submit", nil)
		require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	}
}

func cellValue(pos model.Position) string {
	return strconv.Itoa(pos.Row) + "," + strconv.Itoa(pos.Col)
}

// followRedirect follows a redirect and returns the response
// Works with both traditional Location headers and HTMX HX-Redirect headers
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	// Check for HTMX redirect first
	location := rr.Header().Get("HX-Redirect")
	if location == "" {
		// Fall back to traditional redirect
		location = rr.Header().Get("Location")
	}
	require.NotEmpty(ts.t, location, "Expected Location or HX-Redirect header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
