package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yoockh/coachify/internal/cache"
	"github.com/yoockh/coachify/internal/metrics"
	"github.com/yoockh/coachify/internal/models"
	"github.com/yoockh/coachify/internal/providers/images"
	"github.com/yoockh/coachify/internal/providers/social"
	pgrepo "github.com/yoockh/coachify/internal/repositories/postgres"
	"github.com/yoockh/coachify/internal/utils"
)

const (
	statusPosted   = "Posted successfully to Facebook"
	statusNoToken  = "No Facebook token provided"
	statusFailedFB = "Failed to post to Facebook: "

	defaultPerPage = 5
	maxPerPage     = 30
)

type ImageSearcher interface {
	Configured() bool
	Search(ctx context.Context, query string, perPage int) ([]images.Image, error)
	PhotoURL(ctx context.Context, id string) (string, error)
}

type PublishResult struct {
	Success   bool             `json:"success"`
	FBStatus  string           `json:"fb_status"`
	PostURL   *string          `json:"post_url"`
	Error     string           `json:"error,omitempty"`
	Optimized OptimizedContent `json:"optimized_content"`

	// Degraded steps that did not fail the request.
	Warnings []error `json:"-"`
}

type SocialService interface {
	Publish(ctx context.Context, u *models.User, content, imageID string) (*PublishResult, error)
	SearchImages(ctx context.Context, query string, perPage int) ([]images.Image, error)
	History(ctx context.Context, userID string, limit int) ([]models.SocialPost, error)
}

type socialService struct {
	seo      SEOService
	fb       FacebookClient
	images   ImageSearcher
	posts    pgrepo.SocialPostRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewSocialService(seo SEOService, fb FacebookClient, img ImageSearcher, posts pgrepo.SocialPostRepository, c cache.Cache, cacheTTL time.Duration) SocialService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &socialService{seo: seo, fb: fb, images: img, posts: posts, cache: c, cacheTTL: cacheTTL}
}

func (s *socialService) Publish(ctx context.Context, u *models.User, content, imageID string) (*PublishResult, error) {
	const op = "SocialService.Publish"

	if strings.TrimSpace(content) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "content is required", nil)
	}

	res := &PublishResult{}
	opt, err := s.seo.Optimize(ctx, content)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Errorf("seo optimize: %w", err))
	}
	res.Optimized = opt

	var imageURL string
	if imageID != "" {
		imageURL, err = s.images.PhotoURL(ctx, imageID)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Errorf("unsplash photo %s: %w", imageID, err))
			imageURL = ""
		}
	}

	s.post(ctx, u, opt, imageURL, res)

	row := &models.SocialPost{
		UserID:          u.Email,
		OriginalContent: content,
		SEOContent:      opt.SEOContent,
		FacebookContent: opt.FacebookContent,
		Hashtags:        opt.Hashtags,
		MetaDescription: opt.MetaDescription,
		ImageAlt:        opt.ImageAlt,
		Success:         res.Success,
		Status:          res.FBStatus,
		PostURL:         res.PostURL,
	}
	if imageURL != "" {
		row.ImageURL = &imageURL
	}
	if err := s.posts.Insert(ctx, row); err != nil {
		res.Warnings = append(res.Warnings, fmt.Errorf("store social post: %w", err))
	}
	return res, nil
}

func (s *socialService) post(ctx context.Context, u *models.User, opt OptimizedContent, imageURL string, res *PublishResult) {
	if !u.HasFacebook() {
		res.FBStatus = statusNoToken
		res.Error = "Authentication required"
		return
	}

	msg := opt.FacebookContent
	if len(opt.Hashtags) > 0 {
		msg += "\n\n" + strings.Join(opt.Hashtags, " ")
	}

	id, err := s.fb.PostToFeed(ctx, *u.FacebookToken, social.FeedPost{Message: msg, Link: imageURL})
	metrics.FacebookPost(err == nil)
	if err != nil {
		reason := err.Error()
		var ge *social.GraphError
		if errors.As(err, &ge) {
			reason = ge.Message
		}
		res.FBStatus = statusFailedFB + reason
		res.Error = reason
		return
	}

	postURL := "https://facebook.com/" + id
	res.Success = true
	res.FBStatus = statusPosted
	res.PostURL = &postURL
}

func (s *socialService) SearchImages(ctx context.Context, query string, perPage int) ([]images.Image, error) {
	const op = "SocialService.SearchImages"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if !s.images.Configured() {
		return nil, utils.E(utils.CodeUnavailable, op, "image search is not configured", nil)
	}

	key := fmt.Sprintf("unsplash:%s:%d", strings.ToLower(query), perPage)
	var cached []images.Image
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := s.images.Search(ctx, query, perPage)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "Error searching images", err)
	}
	if len(out) > 0 {
		_ = s.cache.SetJSON(ctx, key, out, s.cacheTTL)
	}
	return out, nil
}

func (s *socialService) History(ctx context.Context, userID string, limit int) ([]models.SocialPost, error) {
	const op = "SocialService.History"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.posts.LatestByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list social posts", err)
	}
	return rows, nil
}
