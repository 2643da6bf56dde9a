package participation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/naveenspark/hackboard/pkg/client"
)

// fakeAPI is an in-process stand-in for the hackathon API routed the same
// way the real one is.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	passkey      string // required passkey; "" means none
	submitStatus int
	submitID     string
	submitGate   chan struct{} // when set, /submit blocks until closed
	submitSeen   chan struct{}
	lastForm     map[string]string
	lastText     map[string]string
	result       string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int), submitStatus: http.StatusOK, submitID: "sub-1"}
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

func (f *fakeAPI) setSubmitStatus(code int) {
	f.mu.Lock()
	f.submitStatus = code
	f.mu.Unlock()
}

func (f *fakeAPI) form() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastForm
}

func (f *fakeAPI) text() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastText
}

func (f *fakeAPI) hit(route string) {
	f.mu.Lock()
	f.calls[route]++
	f.mu.Unlock()
}

func (f *fakeAPI) router() http.Handler {
	r := chi.NewRouter()
	r.Post("/join", func(w http.ResponseWriter, r *http.Request) {
		f.hit("join")
		var body client.JoinRequest
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		switch {
		case f.passkey != "" && body.Passkey == "":
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Passkey is required to join this hackathon"})
		case f.passkey != "" && body.Passkey != f.passkey:
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "Invalid passkey"})
		case body.InviteCode == "GONE":
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Invalid invite code"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Joined"})
		}
	})
	r.Post("/submit", func(w http.ResponseWriter, r *http.Request) {
		f.hit("submit")
		if f.submitSeen != nil {
			f.submitSeen <- struct{}{}
		}
		if f.submitGate != nil {
			<-f.submitGate
		}
		f.mu.Lock()
		if r.Header.Get("Content-Type") == "application/json" {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			f.lastText = body
		} else if err := r.ParseMultipartForm(1 << 20); err == nil {
			f.lastForm = map[string]string{"hackathon_id": r.FormValue("hackathon_id")}
			if _, hdr, err := r.FormFile("file"); err == nil {
				f.lastForm["file"] = hdr.Filename
			}
		}
		code, id := f.submitStatus, f.submitID
		f.mu.Unlock()
		if code != http.StatusOK {
			writeJSON(w, code, map[string]any{"error": "Upload failed on server"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"submissionId": id})
	})
	r.Get("/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.hit("results")
		if f.result == "" {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Result not found"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.result)) //nolint:errcheck
	})
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// start serves f and returns a client using token.
func (f *fakeAPI) start(t *testing.T, token string) *client.Client {
	t.Helper()
	srv := httptest.NewServer(f.router())
	t.Cleanup(srv.Close)
	return client.New(srv.URL, client.StaticToken(token))
}

type authFlag bool

func (a authFlag) IsAuthenticated() bool { return bool(a) }
