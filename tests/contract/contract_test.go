// Package contract validates the embedded OpenAPI document and, when a
// live server is available, checks real responses against it.
package contract

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/rosterhq/roster/internal/docs"
)

// loadSpec loads and validates the embedded OpenAPI document.
func loadSpec(t *testing.T) (*openapi3.T, routers.Router) {
	t.Helper()

	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(docs.Spec())
	if err != nil {
		t.Fatalf("Failed to load OpenAPI spec: %v", err)
	}

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI spec validation failed: %v", err)
	}

	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		t.Fatalf("Failed to create router from spec: %v", err)
	}

	return spec, router
}

// TestOpenAPISpecValid ensures the embedded OpenAPI document is valid.
func TestOpenAPISpecValid(t *testing.T) {
	loadSpec(t)
}

// TestSpecCoversUserRoutes ensures every served route is documented.
func TestSpecCoversUserRoutes(t *testing.T) {
	spec, _ := loadSpec(t)

	routes := []struct {
		path   string
		method string
	}{
		{"/healthz", http.MethodGet},
		{"/readyz", http.MethodGet},
		{"/api/v1/users", http.MethodGet},
		{"/api/v1/users", http.MethodPost},
		{"/api/v1/users/{id}", http.MethodGet},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			item := spec.Paths.Find(route.path)
			if item == nil {
				t.Fatalf("path %s missing from spec", route.path)
			}
			if item.GetOperation(route.method) == nil {
				t.Errorf("operation %s %s missing from spec", route.method, route.path)
			}
		})
	}
}

// TestLiveResponsesMatchSpec validates real responses against the spec.
// Requires a running server; skipped when API_BASE_URL is not set.
func TestLiveResponsesMatchSpec(t *testing.T) {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		t.Skip("API_BASE_URL not set")
	}

	_, router := loadSpec(t)
	client := &http.Client{Timeout: 10 * time.Second}

	paths := []string{"/healthz", "/api/v1/users"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
			if err != nil {
				t.Fatalf("failed to build request: %v", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if err := validateResponse(router, req, resp); err != nil {
				t.Errorf("response does not match spec: %v", err)
			}
		})
	}
}

// validateResponse checks a response against the spec's schema for its route.
func validateResponse(router routers.Router, req *http.Request, resp *http.Response) error {
	route, pathParams, err := router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("route not found in spec: %w", err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   resp.Body,
	}

	return openapi3filter.ValidateResponse(context.Background(), input)
}
