package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

// HTTPVMClient implements VMClient over the VM API's REST endpoints.
type HTTPVMClient struct {
	rest *restClient
}

// NewHTTPVMClient returns a client for the VM API rooted at baseURL
// (e.g. "http://127.0.0.1:8001").
func NewHTTPVMClient(baseURL string, httpClient *http.Client, logger logging.Logger) *HTTPVMClient {
	return &HTTPVMClient{rest: newRESTClient(baseURL, httpClient, logger)}
}

func vmPath(id int64, suffix string) string {
	return fmt.Sprintf("/vms/%d%s", id, suffix)
}

func (c *HTTPVMClient) CreateVM(ctx context.Context, token string, req *models.CreateVMRequest) (*models.VirtualMachine, error) {
	var vm models.VirtualMachine
	err := c.rest.do(ctx, call{
		op:       "create vm",
		method:   http.MethodPost,
		path:     "/vms",
		token:    token,
		body:     req,
		fallback: "failed to create VM",
	}, &vm)
	if err != nil {
		return nil, err
	}
	return &vm, nil
}

func (c *HTTPVMClient) ListVMs(ctx context.Context, token string, userID int64) ([]models.VirtualMachine, error) {
	var vms []models.VirtualMachine
	err := c.rest.do(ctx, call{
		op:       "list vms",
		method:   http.MethodGet,
		path:     "/vms",
		query:    url.Values{"user_id": []string{strconv.FormatInt(userID, 10)}},
		token:    token,
		fallback: "failed to list VMs",
	}, &vms)
	if err != nil {
		return nil, err
	}
	if vms == nil {
		vms = []models.VirtualMachine{}
	}
	return vms, nil
}

func (c *HTTPVMClient) GetVM(ctx context.Context, token string, id int64) (*models.VirtualMachine, error) {
	var vm models.VirtualMachine
	err := c.rest.do(ctx, call{
		op:       "get vm",
		method:   http.MethodGet,
		path:     vmPath(id, ""),
		token:    token,
		fallback: "failed to fetch VM",
	}, &vm)
	if err != nil {
		return nil, err
	}
	return &vm, nil
}

func (c *HTTPVMClient) DeleteVM(ctx context.Context, token string, id int64) error {
	return c.rest.do(ctx, call{
		op:       "delete vm",
		method:   http.MethodDelete,
		path:     vmPath(id, ""),
		token:    token,
		fallback: "failed to delete VM",
	}, nil)
}

func (c *HTTPVMClient) StartVM(ctx context.Context, token string, id int64) error {
	return c.rest.do(ctx, call{
		op:       "start vm",
		method:   http.MethodPost,
		path:     vmPath(id, "/start"),
		token:    token,
		fallback: "failed to start VM",
	}, nil)
}

func (c *HTTPVMClient) StopVM(ctx context.Context, token string, id int64) error {
	return c.rest.do(ctx, call{
		op:       "stop vm",
		method:   http.MethodPost,
		path:     vmPath(id, "/stop"),
		token:    token,
		fallback: "failed to stop VM",
	}, nil)
}
