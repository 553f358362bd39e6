package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mentorhub-backend-go/internal/ai"
	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// VoiceEnvelope is the payload stored for voice messages. The kind column
// decides the variant at write time; readers never sniff the content.
type VoiceEnvelope struct {
	Type              string `json:"type"`
	Duration          int    `json:"duration"`
	FormattedDuration string `json:"formattedDuration"`
	AudioData         string `json:"audioData"`
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ChatMessage is the wire shape pushed to websocket subscribers and returned
// by the history endpoints.
type ChatMessage struct {
	ID         string         `json:"id"`
	SenderID   string         `json:"senderId"`
	ReceiverID string         `json:"receiverId"`
	Kind       string         `json:"kind"`
	Text       string         `json:"text,omitempty"`
	Voice      *VoiceEnvelope `json:"voice,omitempty"`
	Read       bool           `json:"read"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ChatHub fans stored messages out to the receiver's open sockets. Delivery
// is push-only: no acks, bursts arrive as individual events.
type ChatHub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]bool
	ch      chan ChatMessage
}

func NewChatHub() *ChatHub {
	return &ChatHub{
		clients: map[string]map[*websocket.Conn]bool{},
		ch:      make(chan ChatMessage, 64),
	}
}

func (h *ChatHub) Run(ctx context.Context) {
	for {
		select {
		case msg := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients[msg.ReceiverID] {
				_ = conn.WriteJSON(msg)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (h *ChatHub) Broadcast(msg ChatMessage) {
	select {
	case h.ch <- msg:
	default:
	}
}

func (h *ChatHub) Add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*websocket.Conn]bool{}
	}
	h.clients[userID][conn] = true
}

func (h *ChatHub) Remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// VoiceTranscriber abstracts the audio transcription client so the chat
// surface can be tested without network calls.
type VoiceTranscriber interface {
	Transcribe(ctx context.Context, audioBase64 string) (string, error)
}

// ChatService is the append-only message relay between one student and one
// mentor.
type ChatService struct {
	Messages    store.MessageStore
	Profiles    store.ProfileStore
	Hub         *ChatHub
	Transcriber VoiceTranscriber
}

func NewChatService(messages store.MessageStore, profiles store.ProfileStore, hub *ChatHub, transcriber VoiceTranscriber) *ChatService {
	return &ChatService{Messages: messages, Profiles: profiles, Hub: hub, Transcriber: transcriber}
}

func (s *ChatService) SendText(ctx context.Context, senderID, receiverID, text string) (*ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrBadRequest("Message is required")
	}
	return s.send(ctx, senderID, receiverID, models.MessageText, text, nil)
}

func (s *ChatService) SendVoice(ctx context.Context, senderID, receiverID string, durationSeconds int, audioData string) (*ChatMessage, error) {
	if durationSeconds <= 0 || strings.TrimSpace(audioData) == "" {
		return nil, ErrBadRequest("Voice recording is required")
	}
	envelope := &VoiceEnvelope{
		Type:              models.MessageVoice,
		Duration:          durationSeconds,
		FormattedDuration: formatDuration(durationSeconds),
		AudioData:         audioData,
	}
	content, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, senderID, receiverID, models.MessageVoice, string(content), envelope)
}

func (s *ChatService) send(ctx context.Context, senderID, receiverID, kind, content string, voice *VoiceEnvelope) (*ChatMessage, error) {
	if receiverID == "" || receiverID == senderID {
		return nil, ErrBadRequest("Invalid receiver")
	}
	if _, err := s.Profiles.GetProfile(ctx, receiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound("Receiver not found")
		}
		return nil, err
	}
	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Kind:       kind,
		Content:    content,
	}
	if err := s.Messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	out := toChatMessage(msg, voice)
	s.Hub.Broadcast(*out)
	return out, nil
}

// TranscribeVoice converts a base64 recording into text on demand. Nothing is
// stored; the caller decides what to do with the transcript.
func (s *ChatService) TranscribeVoice(ctx context.Context, audioData string) (string, error) {
	if strings.TrimSpace(audioData) == "" {
		return "", ErrBadRequest("Audio data is required")
	}
	text, err := s.Transcriber.Transcribe(ctx, audioData)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrRateLimited):
			return "", ServiceError{Status: 429, Message: "Rate limit exceeded. Please try again in a moment."}
		case errors.Is(err, ai.ErrQuotaExhausted):
			return "", ServiceError{Status: 402, Message: "AI credits exhausted."}
		default:
			return "", ServiceError{Status: 502, Message: "Transcription service unavailable"}
		}
	}
	return text, nil
}

func (s *ChatService) Conversation(ctx context.Context, userID, peerID string) ([]ChatMessage, error) {
	rows, err := s.Messages.ListConversation(ctx, userID, peerID)
	if err != nil {
		return nil, err
	}
	items := make([]ChatMessage, 0, len(rows))
	for i := range rows {
		items = append(items, *toChatMessage(&rows[i], nil))
	}
	return items, nil
}

func (s *ChatService) Conversations(ctx context.Context, userID string) ([]store.ConversationSummary, error) {
	return s.Messages.ListConversations(ctx, userID)
}

func (s *ChatService) MarkRead(ctx context.Context, userID, peerID string) error {
	return s.Messages.MarkRead(ctx, userID, peerID)
}

func toChatMessage(m *models.Message, voice *VoiceEnvelope) *ChatMessage {
	out := &ChatMessage{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Kind:       m.Kind,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
	if m.Kind == models.MessageVoice {
		if voice == nil {
			voice = &VoiceEnvelope{}
			if err := json.Unmarshal([]byte(m.Content), voice); err != nil {
				// Stored voice rows always hold an envelope; treat a bad row
				// as an empty recording rather than failing the listing.
				voice = &VoiceEnvelope{Type: models.MessageVoice}
			}
		}
		out.Voice = voice
	} else {
		out.Text = m.Content
	}
	return out
}
