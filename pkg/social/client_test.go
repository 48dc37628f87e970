package social

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/nmoreno/bazaar-backend/pkg/config"
	pkgerrors "github.com/nmoreno/bazaar-backend/pkg/errors"
)

func testConfig() config.SocialConfig {
	return config.SocialConfig{
		Endpoint:    "http://social.test/announce",
		AccessToken: "test-token",
	}
}

func TestClientAnnounceRequest(t *testing.T) {
	var capturedURL string
	var capturedHeaders http.Header
	var capturedPayload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()

		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}

		return &http.Response{
			StatusCode: http.StatusCreated,
			Body:       io.NopCloser(strings.NewReader("{}")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Announce(context.Background(), Announcement{
		Message:   "Introducing Widget at our shop!",
		ImagePath: "widgets/widget.png",
	})
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if capturedURL != "http://social.test/announce" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("Authorization") != "Bearer test-token" {
		t.Fatalf("authorization header missing")
	}
	if capturedPayload["message"] != "Introducing Widget at our shop!" {
		t.Fatalf("unexpected message %v", capturedPayload["message"])
	}
	if capturedPayload["image_path"] != "widgets/widget.png" {
		t.Fatalf("unexpected image path %v", capturedPayload["image_path"])
	}
}

func TestClientAnnounceOmitsEmptyImagePath(t *testing.T) {
	var capturedPayload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		bodyBytes, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{}")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Announce(context.Background(), Announcement{Message: "New shop open"}); err != nil {
		t.Fatalf("announce: %v", err)
	}
	if _, ok := capturedPayload["image_path"]; ok {
		t.Fatalf("expected image_path to be omitted, got %v", capturedPayload)
	}
}

func TestClientAnnounceDependencyError(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader("rate limited")),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Announce(context.Background(), Announcement{Message: "New product"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewClientRequiresConfig(t *testing.T) {
	if _, err := NewClient(config.SocialConfig{AccessToken: "t"}); err == nil {
		t.Fatal("expected endpoint error")
	}
	if _, err := NewClient(config.SocialConfig{Endpoint: "http://social.test"}); err == nil {
		t.Fatal("expected token error")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
