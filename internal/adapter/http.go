package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

const discordAvatarURL = "https://cdn.discordapp.com/avatars/%s/%s.png?size=256"

type httpUserInfoAdapter struct {
	client *utils.HTTPClient
	url    string
	shape  Shape

	logger *logger.Logger
}

// NewHTTPUserInfoAdapter constructs the HTTP implementation of
// [UserInfoAdapter] for the endpoint rawURL answering in the given shape.
//
// Returns [ErrInvalidURL] if rawURL is not an absolute http(s) url.
func NewHTTPUserInfoAdapter(rawURL string, shape Shape, client *utils.HTTPClient, logger *logger.Logger) (UserInfoAdapter, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must include scheme and host", ErrInvalidURL, rawURL)
	}

	return &httpUserInfoAdapter{
		client: client,
		url:    u.String(),
		shape:  shape,
		logger: logger.Component("user-info"),
	}, nil
}

// UserInfo implements [UserInfoAdapter].
func (h *httpUserInfoAdapter) UserInfo(ctx context.Context, accessToken string) (Identity, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Accept", "application/json").
		Get(h.url)
	if err != nil {
		return Identity{}, fmt.Errorf("user info request: %w", err)
	}
	if err = userInfoError(resp); err != nil {
		h.logger.Err(err).Str("func", "*httpUserInfoAdapter.UserInfo").Int("status", resp.StatusCode()).Msg("provider refused user info")
		return Identity{}, err
	}

	switch h.shape {
	case ShapeDiscord:
		return decodeDiscord(resp.Body())
	default:
		return decodeGitHub(resp.Body())
	}
}

type githubUser struct {
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	AvatarURL string  `json:"avatar_url"`
	Name      *string `json:"name"`
}

func decodeGitHub(body []byte) (Identity, error) {
	var u githubUser
	if err := json.Unmarshal(body, &u); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrDecodingUserInfo, err)
	}
	if u.Login == "" {
		return Identity{}, fmt.Errorf("%w: missing login", ErrDecodingUserInfo)
	}
	if u.Email == nil || *u.Email == "" {
		return Identity{}, ErrMissingEmail
	}

	return Identity{
		Login:     u.Login,
		Email:     *u.Email,
		Name:      orDefault(u.Name, u.Login),
		AvatarURL: u.AvatarURL,
	}, nil
}

type discordUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      *string `json:"email"`
	GlobalName *string `json:"global_name"`
	Avatar     *string `json:"avatar"`
}

func decodeDiscord(body []byte) (Identity, error) {
	var u discordUser
	if err := json.Unmarshal(body, &u); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrDecodingUserInfo, err)
	}
	if u.Username == "" {
		return Identity{}, fmt.Errorf("%w: missing username", ErrDecodingUserInfo)
	}
	if u.Email == nil || *u.Email == "" {
		return Identity{}, ErrMissingEmail
	}

	identity := Identity{
		Login: u.Username,
		Email: *u.Email,
		Name:  orDefault(u.GlobalName, u.Username),
	}
	if u.Avatar != nil && *u.Avatar != "" {
		identity.AvatarURL = fmt.Sprintf(discordAvatarURL, u.ID, *u.Avatar)
	}
	return identity, nil
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
