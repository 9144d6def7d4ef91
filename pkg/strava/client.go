package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"coach/config"
	"coach/pkg/http"
	"coach/pkg/utils"

	log "github.com/sirupsen/logrus"
)

// scopes the access token must carry for the stats endpoints
var RequiredScopes = []string{"read", "activity:read_all", "profile:read_all"}

type Client struct {
	ApiUrl string

	ClientId     string
	ClientSecret string

	// mu guards the token fields; the client is shared across plan goroutines
	mu             sync.Mutex
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt time.Time

	logger *log.Entry
}

func New(cfg *config.StravaConfig) (*Client, error) {
	clientId := utils.LoadEnv(cfg.EnvPrefix + "_CLIENT_ID")
	clientSecret := utils.LoadEnv(cfg.EnvPrefix + "_CLIENT_SECRET")
	accessToken := utils.LoadEnv(cfg.EnvPrefix + "_ACCESS_TOKEN")
	refreshToken := utils.LoadEnv(cfg.EnvPrefix + "_REFRESH_TOKEN")

	client := &Client{
		ApiUrl:         cfg.ApiUrl,
		ClientId:       clientId,
		ClientSecret:   clientSecret,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		TokenExpiresAt: time.Now().Add(1 * time.Hour),
		logger: log.WithFields(log.Fields{
			"component": "strava",
		}),
	}
	return client, nil
}

// exchange the refresh token for a fresh access token; caller holds c.mu
func (c *Client) refreshAccessToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("client_id", c.ClientId)
	form.Set("client_secret", c.ClientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", c.RefreshToken)

	// credentials go in the body, not the URL
	statusCode, resBody, err := http.PostFormRequest(ctx, c.ApiUrl+"/oauth/token", form)
	if err != nil {
		return fmt.Errorf("fail to refresh strava token: %w", err)
	}
	if statusCode != 200 {
		return fmt.Errorf("fail to refresh strava token: status %v: %s", statusCode, resBody)
	}

	var token tokenResponse
	if err := json.Unmarshal(resBody, &token); err != nil {
		return fmt.Errorf("fail to parse strava token response: %w", err)
	}

	c.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		c.RefreshToken = token.RefreshToken
	}
	c.TokenExpiresAt = time.Unix(token.ExpiresAt, 0)
	if c.logger != nil {
		c.logger.Debugf("strava access token refreshed, expires at %v", c.TokenExpiresAt)
	}
	return nil
}

// ensureToken returns a valid access token, refreshing first when the
// current one has expired. The lock spans the whole check-then-refresh so
// concurrent callers never refresh twice or see a half-rotated token pair.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AccessToken == "" || c.ClientId == "" {
		return "", fmt.Errorf("missing strava api credentials")
	}
	if time.Now().Before(c.TokenExpiresAt) {
		return c.AccessToken, nil
	}
	if c.RefreshToken == "" {
		return "", fmt.Errorf("strava access token expired and no refresh token is set")
	}
	if err := c.refreshAccessToken(ctx); err != nil {
		return "", err
	}
	return c.AccessToken, nil
}

// GetAthlete fetches the authenticated athlete's profile
func (c *Client) GetAthlete(ctx context.Context) (*Athlete, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	statusCode, resBody, err := http.GetRequest(ctx, c.ApiUrl+"/api/v3/athlete", token)
	if err != nil {
		return nil, fmt.Errorf("fail to fetch athlete: %w", err)
	}
	if statusCode == 401 {
		return nil, fmt.Errorf("authorization error with strava api, required scopes: %v", strings.Join(RequiredScopes, ", "))
	}
	if statusCode != 200 {
		return nil, fmt.Errorf("fail to fetch athlete: status %v: %s", statusCode, resBody)
	}

	var athlete Athlete
	if err := json.Unmarshal(resBody, &athlete); err != nil {
		return nil, fmt.Errorf("fail to parse athlete response: %w", err)
	}
	return &athlete, nil
}

// GetAthleteStats fetches the activity totals for an athlete
func (c *Client) GetAthleteStats(ctx context.Context, athleteId int64) (*ActivityStats, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	statsUrl := fmt.Sprintf("%s/api/v3/athletes/%v/stats", c.ApiUrl, athleteId)
	statusCode, resBody, err := http.GetRequest(ctx, statsUrl, token)
	if err != nil {
		return nil, fmt.Errorf("fail to fetch athlete stats: %w", err)
	}
	if statusCode == 401 {
		return nil, fmt.Errorf("authorization error with strava api, required scopes: %v", strings.Join(RequiredScopes, ", "))
	}
	if statusCode != 200 {
		return nil, fmt.Errorf("fail to fetch athlete stats: status %v: %s", statusCode, resBody)
	}

	var stats ActivityStats
	if err := json.Unmarshal(resBody, &stats); err != nil {
		return nil, fmt.Errorf("fail to parse athlete stats response: %w", err)
	}
	return &stats, nil
}
