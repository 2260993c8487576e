package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/feedwatch/pkg/domain"
)

// response is the envelope of every API reply
type response struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}

// followRequest is the body of a follow request
type followRequest struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	OwnerEmail string `json:"owner_email"`
}

// patchItemRequest is the body of an item update
type patchItemRequest struct {
	Unread *bool `json:"unread"`
}

// updateReport describes the result of a forced update
type updateReport struct {
	Feeds       int      `json:"feeds"`
	Updated     int      `json:"updated"`
	NewItems    int      `json:"new_items"`
	Failed      int      `json:"failed"`
	Deactivated int      `json:"deactivated"`
	Errors      []string `json:"errors,omitempty"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderOK(w, r, http.StatusOK, status)
}

// listFeedsHandler returns all feeds, or only active ones with ?active=true
func (s *Server) listFeedsHandler(w http.ResponseWriter, r *http.Request) {
	active, err := boolParam(r, "active")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	feeds, err := s.db.GetFeeds(r.Context(), active != nil && *active)
	if err != nil {
		log.Printf("[ERROR] failed to get feeds: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if active != nil && !*active {
		inactive := make([]domain.Feed, 0, len(feeds))
		for _, f := range feeds {
			if !f.Active {
				inactive = append(inactive, f)
			}
		}
		feeds = inactive
	}
	if feeds == nil {
		feeds = []domain.Feed{}
	}
	renderOK(w, r, http.StatusOK, feeds)
}

// followHandler creates a feed and triggers its first update in background
func (s *Server) followHandler(w http.ResponseWriter, r *http.Request) {
	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	req.Name, req.URL = strings.TrimSpace(req.Name), strings.TrimSpace(req.URL)
	if req.Name == "" {
		renderError(w, r, errors.New("feed name is required"), http.StatusBadRequest)
		return
	}
	if u, err := url.Parse(req.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		renderError(w, r, errors.New("valid http(s) feed url is required"), http.StatusBadRequest)
		return
	}

	feed := &domain.Feed{Name: req.Name, URL: req.URL, OwnerEmail: strings.TrimSpace(req.OwnerEmail)}
	if err := s.db.CreateFeed(r.Context(), feed); err != nil {
		if !errors.Is(err, domain.ErrAlreadyExists) {
			log.Printf("[ERROR] failed to create feed %s: %v", req.Name, err)
		}
		renderError(w, r, err, errorStatus(err))
		return
	}
	log.Printf("[INFO] following feed %s (%s)", feed.Name, feed.URL)

	go func() {
		if _, err := s.scheduler.ForceUpdate(context.Background(), feed.ID); err != nil {
			log.Printf("[WARN] failed to fetch new feed %s: %v", feed.Name, err)
		}
	}()

	renderOK(w, r, http.StatusCreated, feed)
}

// getFeedHandler returns a single feed
func (s *Server) getFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	feed, err := s.db.GetFeed(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderOK(w, r, http.StatusOK, feed)
}

// feedItemsHandler returns items of a feed, optionally filtered by ?unread=
func (s *Server) feedItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	unread, err := boolParam(r, "unread")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if _, err = s.db.GetFeed(r.Context(), id); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	s.renderItems(w, r, domain.ItemFilter{FeedID: id, Unread: unread})
}

// unfollowHandler deletes a feed with all its items
func (s *Server) unfollowHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.db.DeleteFeed(r.Context(), id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("[ERROR] failed to delete feed %d: %v", id, err)
		}
		renderError(w, r, err, errorStatus(err))
		return
	}
	log.Printf("[INFO] unfollowed feed %d", id)
	renderOK(w, r, http.StatusOK, fmt.Sprintf("feed %d unfollowed", id))
}

// setActiveHandler makes handler turning scheduled updates of a feed on or off.
// Activation also resets the feed's errors counter.
func (s *Server) setActiveHandler(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := s.db.SetFeedActive(r.Context(), id, active); err != nil {
			renderError(w, r, err, errorStatus(err))
			return
		}

		feed, err := s.db.GetFeed(r.Context(), id)
		if err != nil {
			renderError(w, r, err, errorStatus(err))
			return
		}
		log.Printf("[INFO] feed %s active=%v", feed.Name, active)
		renderOK(w, r, http.StatusOK, feed)
	}
}

// updateFeedHandler fetches a single feed right away, active or not
func (s *Server) updateFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := s.scheduler.ForceUpdate(r.Context(), id)
	if err != nil {
		log.Printf("[WARN] forced update of feed %d failed: %v", id, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderOK(w, r, http.StatusOK, map[string]any{"new_items": res.New, "stale": res.Stale})
}

// updateAllHandler fetches every feed including inactive ones
func (s *Server) updateAllHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.scheduler.ForceUpdateAll(r.Context())

	resp := updateReport{
		Feeds:       report.Feeds,
		Updated:     report.Updated,
		NewItems:    report.NewItems,
		Failed:      report.Failed,
		Deactivated: report.Deactivated,
	}
	if err != nil {
		// per-feed failures are reported, not treated as a request failure
		if report.Feeds == 0 {
			log.Printf("[ERROR] forced update failed: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		resp.Errors = strings.Split(err.Error(), "\n")
	}
	renderOK(w, r, http.StatusOK, resp)
}

// listItemsHandler returns items of all feeds, optionally filtered by ?unread= and ?feed_id=
func (s *Server) listItemsHandler(w http.ResponseWriter, r *http.Request) {
	unread, err := boolParam(r, "unread")
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	filter := domain.ItemFilter{Unread: unread}
	if v := r.URL.Query().Get("feed_id"); v != "" {
		if filter.FeedID, err = strconv.ParseInt(v, 10, 64); err != nil || filter.FeedID <= 0 {
			renderError(w, r, errors.New("invalid feed_id"), http.StatusBadRequest)
			return
		}
	}
	s.renderItems(w, r, filter)
}

// getItemHandler returns a single item
func (s *Server) getItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.db.GetItem(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderOK(w, r, http.StatusOK, item)
}

// patchItemHandler marks an item read or unread
func (s *Server) patchItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req patchItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	if req.Unread == nil {
		renderError(w, r, errors.New("unread is required"), http.StatusBadRequest)
		return
	}

	if err := s.db.SetItemUnread(r.Context(), id, *req.Unread); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}

	item, err := s.db.GetItem(r.Context(), id)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderOK(w, r, http.StatusOK, item)
}

func (s *Server) renderItems(w http.ResponseWriter, r *http.Request, filter domain.ItemFilter) {
	items, err := s.db.GetItems(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.Item{}
	}
	renderOK(w, r, http.StatusOK, items)
}

// pathID extracts positive {id} path value, renders 400 if it's invalid
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid id"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// boolParam parses optional boolean query parameter, nil if not set
func boolParam(r *http.Request, name string) (*bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q", name, v)
	}
	return &b, nil
}

// errorStatus maps error to http status code
func errorStatus(err error) int {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderOK sends successful response in the envelope
func renderOK(w http.ResponseWriter, r *http.Request, code int, msg any) {
	renderJSON(w, r, code, response{Success: true, Message: msg})
}

// renderError sends error response in the envelope
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, response{Success: false, Message: errMsg})
}
