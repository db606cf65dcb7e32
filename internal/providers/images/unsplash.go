package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const unsplashBaseURL = "https://api.unsplash.com"

type Image struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Thumb        string `json:"thumb"`
	Description  string `json:"description"`
	Photographer string `json:"photographer"`
}

var ErrNotConfigured = errors.New("unsplash access key is not set")

type Unsplash struct {
	accessKey string
	appID     string
	baseURL   string
	client    *http.Client
}

func NewUnsplash(accessKey, appID string) *Unsplash {
	return &Unsplash{
		accessKey: accessKey,
		appID:     appID,
		baseURL:   unsplashBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (u *Unsplash) WithBaseURL(s string) *Unsplash {
	u.baseURL = strings.TrimRight(s, "/")
	return u
}

func (u *Unsplash) Configured() bool { return u.accessKey != "" }

type unsplashPhoto struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

func (p unsplashPhoto) image() Image {
	desc := p.Description
	if desc == "" {
		desc = p.AltDescription
	}
	if desc == "" {
		desc = "No description"
	}
	return Image{ID: p.ID, URL: p.URLs.Regular, Thumb: p.URLs.Thumb, Description: desc, Photographer: p.User.Name}
}

// Search returns landscape photos for query. A non-200 answer yields an
// empty list rather than an error.
func (u *Unsplash) Search(ctx context.Context, query string, perPage int) ([]Image, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}
	if perPage <= 0 {
		perPage = 5
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("orientation", "landscape")

	resp, err := u.get(ctx, "/search/photos", q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []Image{}, nil
	}

	var out struct {
		Results []unsplashPhoto `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	imgs := make([]Image, 0, len(out.Results))
	for _, p := range out.Results {
		imgs = append(imgs, p.image())
	}
	return imgs, nil
}

// PhotoURL resolves a photo id to its regular-size URL.
func (u *Unsplash) PhotoURL(ctx context.Context, id string) (string, error) {
	if !u.Configured() {
		return "", ErrNotConfigured
	}

	resp, err := u.get(ctx, "/photos/"+url.PathEscape(id), url.Values{})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash: photo %s: status %d", id, resp.StatusCode)
	}

	var p unsplashPhoto
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return "", err
	}
	return p.URLs.Regular, nil
}

func (u *Unsplash) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	q.Set("client_id", u.accessKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Version", "v1")
	if u.appID != "" {
		req.Header.Set("X-Application-Id", u.appID)
	}
	return u.client.Do(req)
}
