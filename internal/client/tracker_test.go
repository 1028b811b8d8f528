package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/whatbetter/whatapi/internal/config"
	"github.com/whatbetter/whatapi/internal/testutil"
)

const (
	testUsername = "alice"
	testPassword = "hunter2"
	testAuthKey  = "authkey0123"
	testUserID   = 42
	testCookie   = "session-cookie"
)

// fakeTracker is a small gazelle lookalike recording every request it serves
type fakeTracker struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	times    []time.Time

	// loginStatus overrides the login response when non-zero.
	loginStatus int
	// ajax maps an action to the raw body returned for it.
	ajax map[string]string
	// snatched maps a media query value ("" when absent) to the rows of each page.
	snatched map[string][][]testutil.SnatchRowOptions
	// failSnatchPage makes that page number answer 500.
	failSnatchPage int
	logoutStatus   int
	uploadFields   map[string][]string
	uploadFiles    map[string][]string
}

func newFakeTracker(t *testing.T) *fakeTracker {
	t.Helper()
	ft := &fakeTracker{
		t: t,
		ajax: map[string]string{
			"index": fmt.Sprintf(`{"status":"success","response":{"username":%q,"id":%d,"authkey":%q,"passkey":"passkey0123","userstats":{"uploaded":100,"downloaded":50,"ratio":2,"class":"Member"}}}`,
				testUsername, testUserID, testAuthKey),
		},
		snatched: map[string][][]testutil.SnatchRowOptions{},
	}
	ft.server = httptest.NewServer(http.HandlerFunc(ft.handle))
	t.Cleanup(ft.server.Close)
	return ft
}

func (ft *fakeTracker) record(r *http.Request) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.requests = append(ft.requests, r.Clone(r.Context()))
	ft.times = append(ft.times, time.Now())
}

// count returns how many requests hit path, optionally narrowed to one query value.
func (ft *fakeTracker) count(path string, filter func(r *http.Request) bool) int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	n := 0
	for _, r := range ft.requests {
		if r.URL.Path == path && (filter == nil || filter(r)) {
			n++
		}
	}
	return n
}

func (ft *fakeTracker) requestsTo(path string) []*http.Request {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	var out []*http.Request
	for _, r := range ft.requests {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (ft *fakeTracker) total() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.requests)
}

func (ft *fakeTracker) loggedIn(r *http.Request) bool {
	c, err := r.Cookie("session")
	return err == nil && c.Value == testCookie
}

func (ft *fakeTracker) handle(w http.ResponseWriter, r *http.Request) {
	ft.record(r)

	switch r.URL.Path {
	case "/login.php":
		if r.Method != http.MethodPost {
			_, _ = io.WriteString(w, "<html><body><form>login</form></body></html>")
			return
		}
		if ft.loginStatus != 0 {
			w.WriteHeader(ft.loginStatus)
			return
		}
		if r.FormValue("username") != testUsername || r.FormValue("password") != testPassword {
			http.Redirect(w, r, "/login.php?invalid=1", http.StatusFound)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: testCookie, Path: "/"})
		http.Redirect(w, r, "/index.php", http.StatusFound)

	case "/index.php":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, "<html><body>Welcome</body></html>")

	case "/ajax.php":
		if !ft.loggedIn(r) {
			http.Redirect(w, r, "/login.php", http.StatusFound)
			return
		}
		body, ok := ft.ajax[r.URL.Query().Get("action")]
		if !ok {
			body = `{"status":"failure","error":"bad action"}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)

	case "/torrents.php":
		if r.URL.Query().Get("type") != "snatched" {
			_, _ = io.WriteString(w, "<html><body>Torrent group</body></html>")
			return
		}
		ft.serveSnatched(w, r)

	case "/upload.php":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			ft.t.Errorf("upload: invalid multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ft.mu.Lock()
		ft.uploadFields = r.MultipartForm.Value
		ft.uploadFiles = map[string][]string{}
		for field, headers := range r.MultipartForm.File {
			for _, h := range headers {
				ft.uploadFiles[field] = append(ft.uploadFiles[field], h.Filename)
			}
		}
		ft.mu.Unlock()
		http.Redirect(w, r, "/torrents.php?id=555", http.StatusFound)

	case "/logout.php":
		if ft.logoutStatus != 0 {
			w.WriteHeader(ft.logoutStatus)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
		_, _ = io.WriteString(w, "<html>bye</html>")

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (ft *fakeTracker) serveSnatched(w http.ResponseWriter, r *http.Request) {
	if !ft.loggedIn(r) {
		http.Redirect(w, r, "/login.php", http.StatusFound)
		return
	}
	q := r.URL.Query()
	if q.Get("userid") != strconv.Itoa(testUserID) {
		ft.t.Errorf("snatched: unexpected userid %q", q.Get("userid"))
	}
	page, _ := strconv.Atoi(q.Get("page"))
	if page == ft.failSnatchPage {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	pages := ft.snatched[q.Get("media")]
	var rows []testutil.SnatchRowOptions
	if page >= 1 && page <= len(pages) {
		rows = pages[page-1]
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, testutil.GenerateSnatchListHTML(rows, page, page < len(pages)))
}

func (ft *fakeTracker) config() *config.Config {
	return testConfig(ft.server.URL)
}

func testConfig(trackerURL string) *config.Config {
	return &config.Config{
		TrackerURL:    trackerURL,
		Username:      testUsername,
		Password:      testPassword,
		RateLimit:     "0",
		ClientTimeout: "5s",
	}
}

func newTestClient(t *testing.T, cfg *config.Config) Client {
	t.Helper()
	c, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func ajaxSuccess(response any) string {
	b, _ := json.Marshal(map[string]any{"status": "success", "response": response})
	return string(b)
}
