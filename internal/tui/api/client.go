package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wordquest/pkg/models"
)

// Client handles HTTP API communication
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	userID     string // Store current user ID
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current authentication token
func (c *Client) GetToken() string {
	return c.token
}

// GetUserID returns the current user ID
func (c *Client) GetUserID() string {
	return c.userID
}

// doRequest performs an HTTP request with common handling
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// decodeAPIResponse decodes the APIResponse envelope and unmarshals the data field into target
func decodeAPIResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("API error (status %d)", resp.StatusCode)
	}

	if !apiResp.Success {
		if apiResp.Error != "" {
			return fmt.Errorf("%s", apiResp.Error)
		}
		return fmt.Errorf("request failed (status %d)", resp.StatusCode)
	}

	if target != nil && len(apiResp.Data) > 0 {
		if err := json.Unmarshal(apiResp.Data, target); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

// Auth endpoints

// Register creates a new player account and logs in
func (c *Client) Register(ctx context.Context, username, email, name, password string) (*models.LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"name":     name,
		"password": password,
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/register", body)
	if err != nil {
		return nil, err
	}

	var registerData struct {
		User models.User `json:"user"`
	}
	if err := decodeAPIResponse(resp, &registerData); err != nil {
		return nil, err
	}

	return c.Login(ctx, username, password)
}

// Login authenticates a player
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}

	resp, err := c.doRequest(ctx, "POST", "/auth/login", body)
	if err != nil {
		return nil, err
	}

	var loginResp models.LoginResponse
	if err := decodeAPIResponse(resp, &loginResp); err != nil {
		return nil, err
	}

	c.token = loginResp.Token
	c.userID = loginResp.User.ID
	return &loginResp, nil
}

// GetMe retrieves the authenticated player's record
func (c *Client) GetMe(ctx context.Context) (*models.User, error) {
	resp, err := c.doRequest(ctx, "GET", "/me", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		User models.User `json:"user"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Catalog endpoints

// ListBooks retrieves books with optional search and difficulty filter
func (c *Client) ListBooks(ctx context.Context, query, difficulty string, limit, offset int) (*models.BookListResponse, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))

	resp, err := c.doRequest(ctx, "GET", "/books?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result models.BookListResponse
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBook retrieves a single book
func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {
	resp, err := c.doRequest(ctx, "GET", "/books/"+id, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Book models.Book `json:"book"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return &data.Book, nil
}

// ListChapters retrieves a book's chapters in reading order
func (c *Client) ListChapters(ctx context.Context, bookID string) ([]models.Chapter, error) {
	resp, err := c.doRequest(ctx, "GET", "/books/"+bookID+"/chapters", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Chapters []models.Chapter `json:"chapters"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return data.Chapters, nil
}

// Progress endpoints

// GetChapterStatus retrieves a chapter's missions with progress and unlock state
func (c *Client) GetChapterStatus(ctx context.Context, chapterID string) ([]models.MissionStatus, error) {
	resp, err := c.doRequest(ctx, "GET", "/chapters/"+chapterID+"/status", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Missions []models.MissionStatus `json:"missions"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return data.Missions, nil
}

// SubmitMission submits raw answers for scoring
func (c *Client) SubmitMission(ctx context.Context, missionID string, req models.SubmitMissionRequest) (*models.SubmitResult, error) {
	resp, err := c.doRequest(ctx, "POST", "/missions/"+missionID+"/submit", req)
	if err != nil {
		return nil, err
	}

	var result models.SubmitResult
	if err := decodeAPIResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordPosition updates the navigation cursor in a book
func (c *Client) RecordPosition(ctx context.Context, bookID, chapterID, missionID string) error {
	body := models.RecordPositionRequest{ChapterID: chapterID, MissionID: missionID}
	resp, err := c.doRequest(ctx, "POST", "/books/"+bookID+"/position", body)
	if err != nil {
		return err
	}
	return decodeAPIResponse(resp, nil)
}

// GetAchievements retrieves the player's achievements
func (c *Client) GetAchievements(ctx context.Context) ([]models.Achievement, error) {
	resp, err := c.doRequest(ctx, "GET", "/me/achievements", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Achievements []models.Achievement `json:"achievements"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return data.Achievements, nil
}

// Leaderboard endpoints

// GetLeaderboard retrieves the top players by points
func (c *Client) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/leaderboard?limit=%d", limit), nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
	}
	if err := decodeAPIResponse(resp, &data); err != nil {
		return nil, err
	}
	return data.Leaderboard, nil
}

// GetMyRank retrieves the player's own standing
func (c *Client) GetMyRank(ctx context.Context) (*models.UserRank, error) {
	resp, err := c.doRequest(ctx, "GET", "/me/rank", nil)
	if err != nil {
		return nil, err
	}

	var rank models.UserRank
	if err := decodeAPIResponse(resp, &rank); err != nil {
		return nil, err
	}
	return &rank, nil
}
