// Package api is the HTTP client for the cost-estimation backend. The
// console owns no data: every list and every calculation comes from here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Alphy12345/Alp-version-hal-cost-estimation/cache"
)

const (
	cacheKeyMachines       = "machines"
	cacheKeyOperationTypes = "operation-types"
)

type Client struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache
}

// NewClient builds a client for the backend at baseURL. refDataTTL controls
// how long machine and operation-type lists are served from memory; pass 0
// to fetch fresh on every request.
func NewClient(baseURL string, timeout time.Duration, refDataTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New(refDataTTL),
	}
}

// Machines returns all machines with the operation-type relation resolved.
func (c *Client) Machines(ctx context.Context) ([]Machine, error) {
	if cached, ok := c.cache.Get(cacheKeyMachines); ok {
		return cached.([]Machine), nil
	}

	var machines []Machine
	if err := c.get(ctx, "/machines/", &machines); err != nil {
		return nil, err
	}
	c.cache.Set(cacheKeyMachines, machines)
	return machines, nil
}

func (c *Client) OperationTypes(ctx context.Context) ([]OperationType, error) {
	if cached, ok := c.cache.Get(cacheKeyOperationTypes); ok {
		return cached.([]OperationType), nil
	}

	var ops []OperationType
	if err := c.get(ctx, "/operation-type/", &ops); err != nil {
		return nil, err
	}
	c.cache.Set(cacheKeyOperationTypes, ops)
	return ops, nil
}

func (c *Client) Materials(ctx context.Context) ([]Material, error) {
	var materials []Material
	err := c.get(ctx, "/materials/", &materials)
	return materials, err
}

func (c *Client) Duties(ctx context.Context) ([]Duty, error) {
	var duties []Duty
	err := c.get(ctx, "/duties/", &duties)
	return duties, err
}

func (c *Client) MHRRows(ctx context.Context) ([]MHRRow, error) {
	var rows []MHRRow
	err := c.get(ctx, "/mhr/", &rows)
	return rows, err
}

// Calculate submits an estimate request and returns the raw response body.
// The response shape is owned by the backend and treated as opaque; the
// display layer flattens whatever comes back.
func (c *Client) Calculate(ctx context.Context, req CalculateRequest) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/cost-estimation/calculate", req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) CreateMachine(ctx context.Context, name string, opTypeID int64) error {
	body := map[string]interface{}{"name": name, "op_id": opTypeID}
	if err := c.do(ctx, http.MethodPost, "/machines/", body, nil); err != nil {
		return err
	}
	c.cache.Clear(cacheKeyMachines)
	return nil
}

func (c *Client) UpdateMachine(ctx context.Context, id int64, name string, opTypeID int64) error {
	body := map[string]interface{}{"name": name, "op_id": opTypeID}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/machines/%d", id), body, nil); err != nil {
		return err
	}
	c.cache.Clear(cacheKeyMachines)
	return nil
}

func (c *Client) DeleteMachine(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/machines/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Clear(cacheKeyMachines)
	return nil
}

func (c *Client) CreateOperationType(ctx context.Context, name string) error {
	body := map[string]interface{}{"operation_name": name}
	if err := c.do(ctx, http.MethodPost, "/operation-type/", body, nil); err != nil {
		return err
	}
	c.cache.Clear(cacheKeyOperationTypes)
	return nil
}

func (c *Client) DeleteOperationType(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/operation-type/%d", id), nil, nil); err != nil {
		return err
	}
	c.cache.Clear(cacheKeyOperationTypes)
	// Machines embed their operation type, so drop them too.
	c.cache.Clear(cacheKeyMachines)
	return nil
}

func (c *Client) CreateMHR(ctx context.Context, row MHRRow) error {
	return c.do(ctx, http.MethodPost, "/mhr/", row, nil)
}

func (c *Client) UpdateMHR(ctx context.Context, id int64, row MHRRow) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/mhr/%d", id), row, nil)
}

func (c *Client) DeleteMHR(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/mhr/%d", id), nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encode %s %s body", method, path)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("backend request failed")
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("backend request")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s %s response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}
	return nil
}

// errorDetail pulls a human-readable message out of an error body. The
// backend uses `detail` (FastAPI convention) but `message` shows up too.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		// Validation errors arrive as structures; show them as-is.
		return string(payload.Detail)
	}
	return payload.Message
}
