package domain

import (
	"net/url"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// SocialMediaPlatform identifies which network a profile link points to.
type SocialMediaPlatform string

const (
	PlatformFacebook  SocialMediaPlatform = "facebook"
	PlatformInstagram SocialMediaPlatform = "instagram"
	PlatformTwitter   SocialMediaPlatform = "twitter"
	PlatformLinkedIn  SocialMediaPlatform = "linkedin"
	PlatformTikTok    SocialMediaPlatform = "tiktok"
	PlatformSnapchat  SocialMediaPlatform = "snapchat"
	PlatformTelegram  SocialMediaPlatform = "telegram"
	PlatformWhatsApp  SocialMediaPlatform = "whatsapp"
	PlatformYouTube   SocialMediaPlatform = "youtube"
	PlatformDiscord   SocialMediaPlatform = "discord"
)

// Valid checks if the value is a defined platform.
func (p SocialMediaPlatform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformTwitter, PlatformLinkedIn,
		PlatformTikTok, PlatformSnapchat, PlatformTelegram, PlatformWhatsApp,
		PlatformYouTube, PlatformDiscord:
		return true
	default:
		return false
	}
}

// maxSocialLinksPerUser bounds how many profile links a user may publish.
const maxSocialLinksPerUser = 10

// SocialMediaLink is one profile link a user publishes so swap partners can
// reach them off-platform.
type SocialMediaLink struct {
	ID       string              `json:"id"`
	UserID   string              `json:"user_id"`
	Platform SocialMediaPlatform `json:"platform"`
	URL      string              `json:"url"`
}

// NewSocialMediaLink validates and creates a profile link, reporting every
// violation at once. The URL must be absolute (scheme and host).
func NewSocialMediaLink(linkID, userID string, platform SocialMediaPlatform, rawURL string) (*SocialMediaLink, *errors.Error) {
	var v errors.Violations
	v.Check(linkID != "", "Social media link id is required")
	if userID == "" {
		v.Add(errors.NotFound("User not found"))
	}
	if !platform.Valid() {
		v.Add(errors.Invalidf("Unsupported platform: %q", platform))
	}
	v.Check(isAbsoluteURL(rawURL), "URL must be absolute")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &SocialMediaLink{
		ID:       linkID,
		UserID:   userID,
		Platform: platform,
		URL:      rawURL,
	}, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

// newSocialLinks builds the profile-link collection for a user: at most
// ten links, one per platform, owner fixed at creation.
func newSocialLinks() Collection[*SocialMediaLink] {
	return NewCollection("social media link", func(l *SocialMediaLink) string { return l.ID }).
		WithCap(maxSocialLinksPerUser, "Max social media links count reached").
		WithAddRule(func(items []*SocialMediaLink, candidate *SocialMediaLink) *errors.Error {
			for _, it := range items {
				if it.Platform == candidate.Platform {
					return errors.Conflict("Platform already used - duplicate")
				}
			}
			return nil
		}).
		WithImmutable(func(existing, updated *SocialMediaLink) *errors.Error {
			if updated.UserID != existing.UserID {
				return errors.Conflict("Social media link user id cannot be changed")
			}
			return nil
		})
}
