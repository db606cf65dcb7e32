package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	facebookDialogURL = "https://www.facebook.com"
	facebookGraphURL  = "https://graph.facebook.com"
)

var facebookScopes = []string{
	"pages_show_list",
	"pages_manage_posts",
	"pages_read_engagement",
	"public_profile",
}

// Profile is the subset of /me the app keeps.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FeedPost struct {
	Message string
	Link    string
}

// GraphError carries the message the Graph API put in its error envelope.
type GraphError struct {
	StatusCode int
	Message    string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph api: status %d: %s", e.StatusCode, e.Message)
}

type Facebook struct {
	oauth      *oauth2.Config
	appID      string
	appSecret  string
	apiVersion string
	graphURL   string
	client     *http.Client
}

func NewFacebook(appID, appSecret, redirectURI, apiVersion string) *Facebook {
	if apiVersion == "" {
		apiVersion = "v18.0"
	}
	f := &Facebook{
		appID:      appID,
		appSecret:  appSecret,
		apiVersion: apiVersion,
		client:     &http.Client{Timeout: 30 * time.Second},
		oauth: &oauth2.Config{
			ClientID:     appID,
			ClientSecret: appSecret,
			RedirectURL:  redirectURI,
			Scopes:       facebookScopes,
		},
	}
	f.setHosts(facebookDialogURL, facebookGraphURL)
	return f
}

// WithHosts overrides the dialog and Graph hosts.
func (f *Facebook) WithHosts(dialogURL, graphURL string) *Facebook {
	f.setHosts(dialogURL, graphURL)
	return f
}

func (f *Facebook) setHosts(dialogURL, graphURL string) {
	f.graphURL = strings.TrimRight(graphURL, "/") + "/" + f.apiVersion
	f.oauth.Endpoint = oauth2.Endpoint{
		AuthURL:   strings.TrimRight(dialogURL, "/") + "/" + f.apiVersion + "/dialog/oauth",
		TokenURL:  f.graphURL + "/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (f *Facebook) Configured() bool {
	return f.appID != "" && f.appSecret != ""
}

func (f *Facebook) AuthURL(state string) string {
	return f.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a short-lived user token.
func (f *Facebook) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.client)
	tok, err := f.oauth.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			return "", &GraphError{StatusCode: re.Response.StatusCode, Message: graphMessage(re.Body)}
		}
		return "", err
	}
	return tok.AccessToken, nil
}

// LongLived upgrades a short-lived token to a long-lived one.
func (f *Facebook) LongLived(ctx context.Context, shortToken string) (string, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", f.appID)
	q.Set("client_secret", f.appSecret)
	q.Set("fb_exchange_token", shortToken)

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := f.do(ctx, http.MethodGet, "/oauth/access_token?"+q.Encode(), nil, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("graph api: empty long-lived token")
	}
	return out.AccessToken, nil
}

func (f *Facebook) Me(ctx context.Context, token string) (*Profile, error) {
	q := url.Values{}
	q.Set("fields", "id,name")
	q.Set("access_token", token)

	var p Profile
	if err := f.do(ctx, http.MethodGet, "/me?"+q.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PostToFeed publishes to the token owner's feed and returns the post id.
func (f *Facebook) PostToFeed(ctx context.Context, token string, p FeedPost) (string, error) {
	payload := map[string]string{"message": p.Message}
	if p.Link != "" {
		payload["url"] = p.Link
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("access_token", token)

	var out struct {
		ID string `json:"id"`
	}
	if err := f.do(ctx, http.MethodPost, "/me/feed?"+q.Encode(), b, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (f *Facebook) do(ctx context.Context, method, path string, body []byte, dst any) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, f.graphURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &GraphError{StatusCode: resp.StatusCode, Message: graphMessage(raw)}
	}
	return json.Unmarshal(raw, dst)
}

func graphMessage(raw []byte) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	if len(raw) == 0 {
		return "Unknown error"
	}
	return string(raw)
}
