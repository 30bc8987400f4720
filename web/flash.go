package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookieName holds read-once notices across a redirect.
const flashCookieName = "blog_flash"

// FlashMessage is a one-shot notice shown on the next rendered page.
// Kind is "error" or "info" and selects the styling in the templates.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SetFlash queues a flash message for the next rendered page. Messages
// accumulate within a single response, so several notices can survive one
// redirect together.
func SetFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	messages := append(peekFlash(r), FlashMessage{Kind: kind, Message: message})
	encoded, err := encodeFlash(messages)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash messages and clears them.
func PopFlash(w http.ResponseWriter, r *http.Request) []FlashMessage {
	messages := peekFlash(r)
	if messages == nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return messages
}

// peekFlash decodes the flash cookie without clearing it.
func peekFlash(r *http.Request) []FlashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	messages, err := decodeFlash(cookie.Value)
	if err != nil {
		return nil
	}
	return messages
}

func encodeFlash(messages []FlashMessage) (string, error) {
	raw, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

func decodeFlash(value string) ([]FlashMessage, error) {
	raw, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var messages []FlashMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
