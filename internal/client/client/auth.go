package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// signInResponse mirrors the auth API's signin body. The token field is
// literally named "Bearer" on the wire.
type signInResponse struct {
	Bearer string `json:"Bearer"`
}

// HTTPAuthClient implements AuthClient over the auth API's REST endpoints.
type HTTPAuthClient struct {
	rest *restClient
}

// NewHTTPAuthClient returns a client for the auth API rooted at baseURL
// (e.g. "http://localhost:8080/api"). A nil httpClient gets a default one
// without timeout.
func NewHTTPAuthClient(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPAuthClient {
	return &HTTPAuthClient{rest: newRESTClient(baseURL, httpClient, logger)}
}

func (c *HTTPAuthClient) SignUp(ctx context.Context, data models.RegisterData) error {
	return c.rest.do(ctx, call{
		op:       "signup",
		method:   http.MethodPost,
		path:     "/user/signup",
		body:     data,
		fallback: "registration failed",
	}, nil)
}

func (c *HTTPAuthClient) SignIn(ctx context.Context, creds models.LoginCredentials) (string, error) {
	var resp signInResponse
	err := c.rest.do(ctx, call{
		op:       "signin",
		method:   http.MethodPost,
		path:     "/user/signin",
		body:     creds,
		fallback: "invalid username or password",
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Bearer == "" {
		return "", &Error{Kind: KindMalformed, Op: "signin", Detail: "token not received from server"}
	}
	return resp.Bearer, nil
}

func (c *HTTPAuthClient) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	err := c.rest.do(ctx, call{
		op:       "me",
		method:   http.MethodGet,
		path:     "/user/me",
		token:    token,
		fallback: "unable to fetch user profile",
	}, &u)
	if err != nil {
		return nil, err
	}

	if u.Username == "" {
		return nil, &Error{Kind: KindMalformed, Op: "me", Detail: "user profile is missing the username"}
	}
	u.Normalize()
	return &u, nil
}
