package appsync_test

import (
	"testing"

	"github.com/go-json-experiment/json"

	"github.com/graphsmith/appsync"
)

func TestDataResponse(t *testing.T) {
	t.Parallel()

	resp := appsync.NewDataResponse(map[string]any{"id": "p-1"})
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(out); got != `{"data":{"id":"p-1"}}` {
		t.Errorf("Marshal() = %s", got)
	}
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	resp := appsync.NewErrorResponse(appsync.NewError("NotFound", "no player"))
	if resp.ErrorType != "NotFound" || resp.ErrorMessage != "no player" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.ErrorInfo != nil {
		t.Errorf("single error should carry no errorInfo, got %v", resp.ErrorInfo)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got := string(out); got != `{"errorType":"NotFound","errorMessage":"no player"}` {
		t.Errorf("Marshal() = %s", got)
	}
}

func TestErrorResponseMerged(t *testing.T) {
	t.Parallel()

	merged := appsync.NewError("Unauthorized", "no session").
		Or(appsync.NewError("NotFound", "no player")).
		WithInfo("requestId", "r-1")
	resp := appsync.NewErrorResponse(merged)

	if resp.ErrorType != "Unauthorized" {
		t.Errorf("ErrorType = %q, want the first constituent", resp.ErrorType)
	}
	entries, ok := resp.ErrorInfo["errors"].([]appsync.ErrorEntry)
	if !ok || len(entries) != 2 {
		t.Fatalf("errorInfo.errors = %v, want both constituents", resp.ErrorInfo["errors"])
	}
	if entries[1].ErrorType != "NotFound" {
		t.Errorf("second entry = %+v", entries[1])
	}
	if resp.ErrorInfo["requestId"] != "r-1" {
		t.Errorf("errorInfo.requestId = %v", resp.ErrorInfo["requestId"])
	}
}
