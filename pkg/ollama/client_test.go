package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectPose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var req struct {
			Model    string `json:"model"`
			Stream   *bool  `json:"stream"`
			Messages []struct {
				Images []string `json:"images"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Stream == nil || *req.Stream {
			t.Error("Expected a non-streaming request")
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Images) != 1 {
			t.Errorf("Expected one message with one image, got %+v", req.Messages)
		}

		content := `{"landmarks": {"LEFT_HIP": {"x": 0.4, "y": 0.5}}, "confidence": 0.9}`
		reply, _ := json.Marshal(map[string]any{
			"model":      req.Model,
			"created_at": "2025-01-01T00:00:00Z",
			"message":    map[string]string{"role": "assistant", "content": content},
			"done":       true,
		})
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write(append(reply, '\n'))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/api/chat")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	result, err := c.DetectPose(context.Background(), "llava", "find the pose", "aGVsbG8=")
	if err != nil {
		t.Fatalf("DetectPose failed: %v", err)
	}
	if got := result.Landmarks["LEFT_HIP"]; got.X != 0.4 || got.Y != 0.5 {
		t.Errorf("Unexpected LEFT_HIP %+v", got)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Expected confidence 0.9, got %f", result.Confidence)
	}
}

func TestDetectPoseBadImage(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := c.DetectPose(context.Background(), "m", "p", "not base64!"); err == nil {
		t.Error("Expected base64 decode error")
	}
}

func TestNewClientRejectsBareHost(t *testing.T) {
	if _, err := NewClient("localhost"); err == nil {
		t.Error("Expected error for URL without scheme")
	}
}
