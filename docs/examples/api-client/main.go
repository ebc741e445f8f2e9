// Roster API Client Example
//
// This is a minimal example of how to call the Roster users API from Go.
// It registers a user, reads it back by ID, and walks the paginated list.
//
// Usage:
//   export ROSTER_BASE_URL="http://localhost:8080"
//   go run main.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// User mirrors the API's user representation.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// UserList mirrors the API's paginated list response.
type UserList struct {
	Data       []User `json:"data"`
	Pagination struct {
		Total  int64 `json:"total"`
		Offset int   `json:"offset"`
		Limit  int   `json:"limit"`
	} `json:"pagination"`
}

// APIError mirrors the API's error envelope.
type APIError struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func main() {
	baseURL := os.Getenv("ROSTER_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &http.Client{Timeout: 10 * time.Second}

	// Register a user with a unique email.
	email := fmt.Sprintf("client-demo-%d@example.com", time.Now().UnixNano())
	created, err := createUser(client, baseURL, email, "Client Demo", "demo-password-123")
	if err != nil {
		log.Fatalf("create user: %v", err)
	}
	log.Printf("✓ Created user %s (%s)", created.ID, created.Email)

	// Read it back by ID.
	fetched, err := getUser(client, baseURL, created.ID)
	if err != nil {
		log.Fatalf("get user: %v", err)
	}
	log.Printf("✓ Fetched user %s, created at %s", fetched.Email, fetched.CreatedAt)

	// Walk the list two users at a time.
	offset := 0
	for {
		page, err := listUsers(client, baseURL, offset, 2)
		if err != nil {
			log.Fatalf("list users: %v", err)
		}
		for _, user := range page.Data {
			log.Printf("  [%d] %s  %s", offset, user.ID, user.Email)
			offset++
		}
		if int64(offset) >= page.Pagination.Total || len(page.Data) == 0 {
			break
		}
	}
	log.Printf("✓ Listed %d users total", offset)
}

func createUser(client *http.Client, baseURL, email, name, password string) (*User, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/api/v1/users", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func getUser(client *http.Client, baseURL, id string) (*User, error) {
	resp, err := client.Get(baseURL + "/api/v1/users/" + url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func listUsers(client *http.Client, baseURL string, offset, limit int) (*UserList, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := client.Get(baseURL + "/api/v1/users?" + query.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var list UserList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// decodeError turns a non-success response into a readable error.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		if len(apiErr.Fields) > 0 {
			return fmt.Errorf("%d %s: %s %v", resp.StatusCode, apiErr.Code, apiErr.Error, apiErr.Fields)
		}
		return fmt.Errorf("%d %s: %s", resp.StatusCode, apiErr.Code, apiErr.Error)
	}

	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
}
