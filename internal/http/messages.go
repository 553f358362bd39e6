package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type SendMessagePayload struct {
	Kind            string `json:"kind"`
	Text            string `json:"text"`
	DurationSeconds int    `json:"durationSeconds"`
	AudioData       string `json:"audioData"`
}

func (s *Server) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessagePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	peerID := chi.URLParam(r, "peerId")
	switch req.Kind {
	case "", "text":
		msg, err := s.Chat.SendText(r.Context(), CurrentUserID(r), peerID, req.Text)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, msg)
	case "voice":
		msg, err := s.Chat.SendVoice(r.Context(), CurrentUserID(r), peerID, req.DurationSeconds, req.AudioData)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, msg)
	default:
		WriteError(w, http.StatusBadRequest, "Kind must be text or voice")
	}
}

type TranscribePayload struct {
	AudioData string `json:"audioData"`
}

func (s *Server) TranscribeVoice(w http.ResponseWriter, r *http.Request) {
	var req TranscribePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	text, err := s.Chat.TranscribeVoice(r.Context(), req.AudioData)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (s *Server) Conversation(w http.ResponseWriter, r *http.Request) {
	items, err := s.Chat.Conversation(r.Context(), CurrentUserID(r), chi.URLParam(r, "peerId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": items})
}

func (s *Server) Conversations(w http.ResponseWriter, r *http.Request) {
	items, err := s.Chat.Conversations(r.Context(), CurrentUserID(r))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"conversations": items})
}

func (s *Server) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := s.Chat.MarkRead(r.Context(), CurrentUserID(r), chi.URLParam(r, "peerId")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChatSocket subscribes the authenticated user to message push. The browser
// websocket API cannot set headers, so the access token rides on the query.
func (s *Server) ChatSocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("token")
	if query == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	token, claims, err := s.Tokens.ParseToken(query)
	if err != nil || !token.Valid || claims["typ"] != "access" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Chat.Hub.Add(userID, conn)
	defer func() {
		s.Chat.Hub.Remove(userID, conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
