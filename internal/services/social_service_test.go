package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/coachify/internal/cache"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/images"
	"github.com/yoockh/coachify/internal/providers/social"
	"github.com/yoockh/coachify/internal/utils"
)

type socialFixture struct {
	fb     *fakeFacebook
	images *fakeImages
	posts  *fakeSocialPostRepo
	svc    SocialService
}

func newSocialFixture(seoReply string, seoErr error) *socialFixture {
	f := &socialFixture{
		fb: &fakeFacebook{configured: true},
		images: &fakeImages{
			configured: true,
			urls:       map[string]string{"img1": "https://images.test/img1"},
			results:    []images.Image{{ID: "img1", URL: "https://images.test/img1"}},
		},
		posts: &fakeSocialPostRepo{},
	}
	seo := NewSEOService(&stubLLM{reply: seoReply, err: seoErr})
	f.svc = NewSocialService(seo, f.fb, f.images, f.posts, cache.NewMemory(), time.Minute)
	return f
}

func connectedUser() *models.User {
	tok := "fb-token"
	return &models.User{ID: 1, Email: "ada@example.com", FacebookToken: &tok}
}

func TestSocialService_PublishSuccess(t *testing.T) {
	f := newSocialFixture(geminiReply, nil)

	res, err := f.svc.Publish(context.Background(), connectedUser(), "orig", "img1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Posted successfully to Facebook", res.FBStatus)
	require.NotNil(t, res.PostURL)
	assert.Equal(t, "https://facebook.com/page_1", *res.PostURL)
	assert.Empty(t, res.Warnings)

	require.Len(t, f.fb.posted, 1)
	assert.Equal(t, "fb-token", f.fb.lastToken)
	assert.Equal(t, "Ready to close more deals? 🚀\nNote: limited beta\n\n#sales #AI #startups", f.fb.posted[0].Message)
	assert.Equal(t, "https://images.test/img1", f.fb.posted[0].Link)

	require.Len(t, f.posts.rows, 1)
	row := f.posts.rows[0]
	assert.True(t, row.Success)
	assert.Equal(t, "ada@example.com", row.UserID)
	assert.Equal(t, []string{"#sales", "#AI", "#startups"}, []string(row.Hashtags))
	require.NotNil(t, row.ImageURL)
}

func TestSocialService_PublishWithoutToken(t *testing.T) {
	f := newSocialFixture(geminiReply, nil)

	res, err := f.svc.Publish(context.Background(), &models.User{Email: "bo@example.com"}, "orig", "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "No Facebook token provided", res.FBStatus)
	assert.Equal(t, "Authentication required", res.Error)
	assert.Empty(t, f.fb.posted)
	assert.Len(t, f.posts.rows, 1)
}

func TestSocialService_PublishGraphFailure(t *testing.T) {
	f := newSocialFixture(geminiReply, nil)
	f.fb.postErr = &social.GraphError{StatusCode: 400, Message: "Invalid OAuth access token."}

	res, err := f.svc.Publish(context.Background(), connectedUser(), "orig", "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to post to Facebook: Invalid OAuth access token.", res.FBStatus)
	assert.Nil(t, res.PostURL)
}

func TestSocialService_PublishDegrades(t *testing.T) {
	f := newSocialFixture("", errors.New("gemini down"))
	f.posts.err = errors.New("db down")

	res, err := f.svc.Publish(context.Background(), connectedUser(), "plain text", "missing-image")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "plain text", res.Optimized.SEOContent)
	assert.Equal(t, "plain text", f.fb.posted[0].Message)
	assert.Empty(t, f.fb.posted[0].Link)
	assert.Len(t, res.Warnings, 3)
}

func TestSocialService_PublishEmptyContent(t *testing.T) {
	f := newSocialFixture(geminiReply, nil)
	_, err := f.svc.Publish(context.Background(), connectedUser(), "   ", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSocialService_SearchImagesCached(t *testing.T) {
	f := newSocialFixture("", nil)
	ctx := context.Background()

	first, err := f.svc.SearchImages(ctx, "Startup", 0)
	require.NoError(t, err)
	second, err := f.svc.SearchImages(ctx, "startup", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.images.searches)

	_, err = f.svc.SearchImages(ctx, " ", 5)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	f.images.configured = false
	_, err = f.svc.SearchImages(ctx, "other", 5)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestSocialService_History(t *testing.T) {
	f := newSocialFixture(geminiReply, nil)
	ctx := context.Background()

	_, err := f.svc.Publish(ctx, connectedUser(), "one", "")
	require.NoError(t, err)
	_, err = f.svc.Publish(ctx, connectedUser(), "two", "")
	require.NoError(t, err)

	rows, err := f.svc.History(ctx, "ada@example.com", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "two", rows[0].OriginalContent)
}
