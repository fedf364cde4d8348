package cmms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	commonhttp "shopfloor-workers/internal/common/http"
)

// Client talks to the plant CMMS work order API.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *commonhttp.Client
}

// WorkOrder mirrors the CMMS work order resource.
type WorkOrder struct {
	ID          string `json:"id,omitempty"`
	MachineID   string `json:"machineId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Status      string `json:"status,omitempty"`
	RequestedBy string `json:"requestedBy,omitempty"`
	ExternalRef string `json:"externalRef,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type createWorkOrderResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiToken:   apiToken,
		baseURL:    baseURL,
		httpClient: commonhttp.NewClient(timeout),
	}
}

// CreateWorkOrder registers a work order and returns the CMMS reference id.
func (c *Client) CreateWorkOrder(ctx context.Context, order *WorkOrder) (string, error) {
	endpoint := fmt.Sprintf("%s/workorders", c.baseURL)

	payload := map[string]interface{}{
		"data": []WorkOrder{*order},
	}

	req, err := commonhttp.NewJSONRequest(http.MethodPost, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to create work order (status %d): %s", resp.StatusCode, string(body))
	}

	var createResp createWorkOrderResponse
	if err := json.Unmarshal(body, &createResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(createResp.Data) == 0 {
		return "", fmt.Errorf("no data in response")
	}

	if createResp.Data[0].Status != "success" {
		return "", fmt.Errorf("work order creation failed: %s", createResp.Data[0].Message)
	}

	return createResp.Data[0].Details.ID, nil
}

// GetWorkOrder fetches a single work order by CMMS id.
func (c *Client) GetWorkOrder(ctx context.Context, workOrderID string) (*WorkOrder, error) {
	endpoint := fmt.Sprintf("%s/workorders/%s", c.baseURL, workOrderID)

	req, err := commonhttp.NewJSONRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get work order (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []WorkOrder `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("work order not found")
	}

	return &result.Data[0], nil
}

// CloseWorkOrder marks a work order resolved in the CMMS.
func (c *Client) CloseWorkOrder(ctx context.Context, workOrderID, resolution string) error {
	endpoint := fmt.Sprintf("%s/workorders/%s/close", c.baseURL, workOrderID)

	payload := map[string]interface{}{
		"resolution": resolution,
	}

	req, err := commonhttp.NewJSONRequest(http.MethodPut, endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to close work order (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// SearchWorkOrders lists work orders for a machine, optionally filtered by status.
func (c *Client) SearchWorkOrders(ctx context.Context, machineID, status string) ([]WorkOrder, error) {
	params := url.Values{}
	params.Set("machineId", machineID)
	if status != "" {
		params.Set("status", status)
	}
	endpoint := fmt.Sprintf("%s/workorders/search?%s", c.baseURL, params.Encode())

	req, err := commonhttp.NewJSONRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search work orders (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []WorkOrder `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return result.Data, nil
}
