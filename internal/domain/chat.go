package domain

import (
	"errors"
	"strings"
	"time"
)

// ChatTimeLayout is the human-readable clock used for chat timestamps.
const ChatTimeLayout = "3:04:05 PM"

var (
	ErrEmptyChatText   = errors.New("chat text empty")
	ErrEmptyChatAuthor = errors.New("chat author empty")
)

// ChatMessage is relayed once and never stored.
type ChatMessage struct {
	Text      string
	Author    string
	EmittedAt string
}

// NewChatMessage trims text and author and stamps the message with now.
func NewChatMessage(text, author string, now time.Time) (*ChatMessage, error) {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)
	if text == "" {
		return nil, ErrEmptyChatText
	}
	if author == "" {
		return nil, ErrEmptyChatAuthor
	}
	return &ChatMessage{
		Text:      text,
		Author:    author,
		EmittedAt: now.Format(ChatTimeLayout),
	}, nil
}
