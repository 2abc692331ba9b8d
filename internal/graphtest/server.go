// Package graphtest provides a fake Facebook Graph API for tests.
package graphtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"igcomments/pkg/instagram"
)

// Request is a request received by the Server
type Request struct {
	Path  string
	Query url.Values
}

// rawResponse is a canned response for one path
type rawResponse struct {
	status int
	body   string
}

// Server serves pages, media edges and comment edges from in-memory fixtures
type Server struct {
	server       *httptest.Server
	version      string
	requestCount int32

	mu       sync.RWMutex
	pages    map[string]string
	media    map[string][]instagram.MediaItem
	comments map[string][]instagram.CommentData
	errors   map[string]int
	raw      map[string]rawResponse
	delays   map[string]time.Duration
	requests []Request
}

// New starts a Server answering under the default API version and closes it
// when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		version:  instagram.APIVersion,
		pages:    make(map[string]string),
		media:    make(map[string][]instagram.MediaItem),
		comments: make(map[string][]instagram.CommentData),
		errors:   make(map[string]int),
		raw:      make(map[string]rawResponse),
		delays:   make(map[string]time.Duration),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)

	return s
}

// URL returns the base URL to configure clients with
func (s *Server) URL() string {
	return s.server.URL
}

// LinkPage registers a page linked to accountID. An empty accountID
// registers a page with no business account.
func (s *Server) LinkPage(pageID, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[pageID] = accountID
}

// SetMedia sets the media edge of a business account, newest first
func (s *Server) SetMedia(accountID string, items ...instagram.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[accountID] = items
}

// SetComments sets the comment edge of a media item
func (s *Server) SetComments(mediaID string, comments ...instagram.CommentData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[mediaID] = comments
}

// SetErrorResponse makes path (e.g. "/v17.0/m1/comments") answer with a
// Graph error object and the given status code.
func (s *Server) SetErrorResponse(path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors[path] = code
}

// ClearErrorResponse removes an error configured with SetErrorResponse
func (s *Server) ClearErrorResponse(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, path)
}

// SetRawResponse makes path answer with an arbitrary status and body
func (s *Server) SetRawResponse(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[path] = rawResponse{status: status, body: body}
}

// SetDelay delays every response on path
func (s *Server) SetDelay(path string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = delay
}

// GetRequestCount returns the total number of requests
func (s *Server) GetRequestCount() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// Requests returns every request received so far, in order
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Requested reports whether path was requested at least once
func (s *Server) Requested(path string) bool {
	for _, r := range s.Requests() {
		if r.Path == path {
			return true
		}
	}
	return false
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requestCount, 1)

	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: r.URL.Path, Query: r.URL.Query()})
	delay := s.delays[r.URL.Path]
	errCode := s.errors[r.URL.Path]
	raw, hasRaw := s.raw[r.URL.Path]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if hasRaw {
		w.WriteHeader(raw.status)
		fmt.Fprint(w, raw.body)
		return
	}
	if errCode > 0 {
		s.sendError(w, errCode, r.URL.Path)
		return
	}
	if r.URL.Query().Get("access_token") == "" {
		s.sendError(w, http.StatusBadRequest, "access token")
		return
	}

	node, edge, ok := s.route(r.URL.Path)
	if !ok {
		s.sendError(w, http.StatusNotFound, r.URL.Path)
		return
	}

	switch edge {
	case "":
		s.handlePage(w, node)
	case "media":
		s.handleMedia(w, node, r.URL.Query().Get("limit"))
	case "comments":
		s.handleComments(w, node)
	default:
		s.sendError(w, http.StatusBadRequest, edge)
	}
}

// route splits "/{version}/{node}[/{edge}]"
func (s *Server) route(path string) (node, edge string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] != s.version {
		return "", "", false
	}
	node = parts[1]
	if len(parts) == 3 {
		edge = parts[2]
	}
	return node, edge, true
}

func (s *Server) handlePage(w http.ResponseWriter, pageID string) {
	s.mu.RLock()
	accountID, exists := s.pages[pageID]
	s.mu.RUnlock()

	if !exists {
		s.sendError(w, http.StatusNotFound, pageID)
		return
	}

	page := instagram.Page{ID: pageID}
	if accountID != "" {
		page.InstagramBusinessAccount = &instagram.AccountRef{ID: accountID}
	}
	writeJSON(w, page)
}

func (s *Server) handleMedia(w http.ResponseWriter, accountID, limit string) {
	s.mu.RLock()
	items, exists := s.media[accountID]
	s.mu.RUnlock()

	if !exists {
		s.sendError(w, http.StatusNotFound, accountID)
		return
	}

	if n, err := strconv.Atoi(limit); err == nil && n >= 0 && n < len(items) {
		items = items[:n]
	}
	writeJSON(w, instagram.MediaList{Data: nonNil(items)})
}

func (s *Server) handleComments(w http.ResponseWriter, mediaID string) {
	s.mu.RLock()
	comments := s.comments[mediaID]
	s.mu.RUnlock()

	writeJSON(w, instagram.CommentList{Data: nonNil(comments)})
}

// sendError writes a Graph error object
func (s *Server) sendError(w http.ResponseWriter, code int, context string) {
	graphErr := &instagram.GraphError{FBTraceID: "AbCdEfGh123"}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		graphErr.Type = "OAuthException"
		graphErr.Code = 190
		graphErr.Message = "Error validating access token"
	case http.StatusNotFound:
		graphErr.Type = "GraphMethodException"
		graphErr.Code = 803
		graphErr.Message = fmt.Sprintf("Some of the aliases you requested do not exist: %s", context)
	case http.StatusTooManyRequests:
		graphErr.Type = "OAuthException"
		graphErr.Code = 4
		graphErr.Message = "Application request limit reached"
	case http.StatusBadRequest:
		graphErr.Type = "GraphMethodException"
		graphErr.Code = 100
		graphErr.Message = fmt.Sprintf("Unsupported get request: %s", context)
	default:
		graphErr.Type = "OAuthException"
		graphErr.Code = 2
		graphErr.Message = "An unexpected error has occurred. Please retry your request later."
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(instagram.ErrorResponse{Error: graphErr})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
