package instagram

import (
	"context"
	"net/http"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/instagram"
)

const igAppID = "936619743392459"

// MobileAPIStrategy hits the i.instagram.com profile endpoint with the
// mobile app's user agent. Usually the most reliable path.
type MobileAPIStrategy struct {
	client *http.Client
}

func NewMobileAPIStrategy(client *http.Client) *MobileAPIStrategy {
	return &MobileAPIStrategy{client: client}
}

func (s *MobileAPIStrategy) Name() string { return "mobile_api" }

func (s *MobileAPIStrategy) Fetch(ctx context.Context, username string) (*instagram.ProfileData, error) {
	headers := map[string]string{
		"User-Agent":       "Instagram 275.0.0.27.98 Android (33/13; 420dpi; 1080x2400; samsung; SM-G991B; o1s; exynos2100; en_US; 458229237)",
		"X-IG-App-ID":      igAppID,
		"X-IG-WWW-Claim":   "0",
		"X-Requested-With": "XMLHttpRequest",
		"Accept":           "application/json",
	}
	user, err := fetchWebProfileInfo(ctx, s.client, "i.instagram.com", headers, username)
	if err != nil {
		return nil, err
	}
	return mapUser(user), nil
}

// WebAPIStrategy is the fallback: the same endpoint on www.instagram.com
// with a desktop browser user agent.
type WebAPIStrategy struct {
	client *http.Client
}

func NewWebAPIStrategy(client *http.Client) *WebAPIStrategy {
	return &WebAPIStrategy{client: client}
}

func (s *WebAPIStrategy) Name() string { return "web_api" }

func (s *WebAPIStrategy) Fetch(ctx context.Context, username string) (*instagram.ProfileData, error) {
	headers := map[string]string{
		"User-Agent":       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"X-IG-App-ID":      igAppID,
		"X-Requested-With": "XMLHttpRequest",
		"Accept":           "application/json",
	}
	user, err := fetchWebProfileInfo(ctx, s.client, "www.instagram.com", headers, username)
	if err != nil {
		return nil, err
	}
	return mapUser(user), nil
}

// DefaultStrategies returns the ordered fallback chain the resolver
// walks for every account.
func DefaultStrategies(client *http.Client) []service.FetchStrategy {
	return []service.FetchStrategy{
		NewMobileAPIStrategy(client),
		NewWebAPIStrategy(client),
	}
}
