package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type fakeChatService struct {
	response string
	question string
	err      error
}

func (f *fakeChatService) Ask(ctx context.Context, userMessage string) (string, error) {
	f.question = userMessage
	return f.response, f.err
}

func TestChatHandler_Chat(t *testing.T) {
	chat := &fakeChatService{response: "The pipeline looks healthy."}
	h := NewChatHandler(chat)

	w := performJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"message": "How are we doing?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if chat.question != "How are we doing?" {
		t.Errorf("question = %q", chat.question)
	}
	body := decodeBody(t, w)
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	if body["response"] != "The pipeline looks healthy." {
		t.Errorf("response = %v", body["response"])
	}
}

func TestChatHandler_Chat_MissingMessage(t *testing.T) {
	h := NewChatHandler(&fakeChatService{})

	w := performJSON(t, h.Chat, http.MethodPost, "/api/chat", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// Model failures come back as a 200 with an inline error message so the chat
// UI can render them like a normal reply.
func TestChatHandler_Chat_ModelFailure(t *testing.T) {
	chat := &fakeChatService{err: errors.New("anthropic timeout")}
	h := NewChatHandler(chat)

	w := performJSON(t, h.Chat, http.MethodPost, "/api/chat", `{"message": "hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "error" {
		t.Errorf("status = %v, want error", body["status"])
	}
	if body["response"] != "Sorry, I encountered an error: anthropic timeout" {
		t.Errorf("response = %v", body["response"])
	}
}
