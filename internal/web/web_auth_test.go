package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestCreation(t *testing.T) {
	ts := newWebTestServer(t)

	// Create guest player
	form := url.Values{"display_name": {"Alice"}}
	rr := ts.post("/auth/guest", form)

	// Should redirect to home
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// Session cookie should be set
	assert.True(t, ts.cookies.hasSession())

	// Follow redirect and check we're logged in
	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	// Should show player name in nav
	assertContainsText(t, doc, "#player-name", "Alice")
	// Should show the new puzzle form (authenticated user)
	assertContainsElement(t, doc, "form[action='/games']")
	assertNotContainsElement(t, doc, "#guest-form")
}

func TestGuestCreationEmptyNameUsesDefault(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"display_name": {"   "}}
	rr := ts.post("/auth/guest", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.True(t, ts.cookies.hasSession())

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#player-name", "Gast")
}

func TestGuestNameIsTruncated(t *testing.T) {
	ts := newWebTestServer(t)

	long := strings.Repeat("Ä", 30)
	rr := ts.post("/auth/guest", url.Values{"display_name": {long}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assert.Equal(t, strings.Repeat("Ä", 20), strings.TrimSpace(doc.Find("#player-name").Text()))
}

func TestHomeShowsGuestFormWhenSignedOut(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#guest-form form[action='/auth/guest']")
	assertNotContainsElement(t, doc, "#new-game")
	assertNotContainsElement(t, doc, "#player-name")
}

func TestGuestCreationFollowsNext(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"display_name": {"Alice"}, "next": {"/games/ABC"}}
	rr := ts.post("/auth/guest", form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/ABC", rr.Header().Get("Location"))
}

func TestGuestCreationIgnoresExternalNext(t *testing.T) {
	ts := newWebTestServer(t)

	for _, next := range []string{"https://evil.example", "//evil.example", "games"} {
		ts.cookies = newCookieJar()
		rr := ts.post("/auth/guest", url.Values{"display_name": {"Alice"}, "next": {next}})
		assert.Equal(t, "/", rr.Header().Get("Location"), "next=%q", next)
	}
}

func TestProtectedPageRemembersNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/ABC")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/?next=%2Fgames%2FABC", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	next, ok := doc.Find("#guest-form input[name='next']").Attr("value")
	assert.True(t, ok)
	assert.Equal(t, "/games/ABC", next)
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGuestPlayer("Alice")
	token := ts.cookies.cookies["session"].Value

	rr := ts.post("/auth/logout", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.False(t, ts.cookies.hasSession())

	// The old token no longer works
	_, err := ts.app.AuthService.GetPlayer(token)
	assert.Error(t, err)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#guest-form")
	assertContainsText(t, doc, "#flash", "logged out")
}

func TestStaleSessionCookieTreatedAsSignedOut(t *testing.T) {
	ts := newWebTestServer(t)
	ts.cookies.cookies["session"] = &http.Cookie{Name: "session", Value: "sess_bogus"}

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), "#guest-form")

	rr = ts.post("/games", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/?next=")
}
