package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) CreateMessage(ctx context.Context, m *models.Message) error {
	m.CreatedAt = now()
	_, err := p.db.ExecContext(ctx, `
INSERT INTO messages (id, sender_id, receiver_id, kind, content, read, created_at)
VALUES ($1, $2, $3, $4, $5, FALSE, $6)
`, m.ID, m.SenderID, m.ReceiverID, m.Kind, m.Content, m.CreatedAt)
	return translate(err)
}

func (p *Postgres) ListConversation(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	items := []models.Message{}
	err := p.db.SelectContext(ctx, &items, `
SELECT id, sender_id, receiver_id, kind, content, read, created_at
FROM messages
WHERE (sender_id = $1 AND receiver_id = $2)
   OR (sender_id = $2 AND receiver_id = $1)
ORDER BY created_at
`, userID, peerID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (p *Postgres) ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error) {
	items := []ConversationSummary{}
	err := p.db.SelectContext(ctx, &items, `
SELECT DISTINCT ON (peer.id)
       peer.id AS peer_id,
       peer.name AS peer_name,
       peer.role AS peer_role,
       m.kind AS last_kind,
       m.content AS last_content,
       m.created_at AS last_created_at,
       (SELECT count(*) FROM messages u
        WHERE u.sender_id = peer.id AND u.receiver_id = $1 AND NOT u.read) AS unread_count
FROM messages m
JOIN profiles peer
  ON peer.id = CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
WHERE m.sender_id = $1 OR m.receiver_id = $1
ORDER BY peer.id, m.created_at DESC
`, userID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (p *Postgres) MarkRead(ctx context.Context, receiverID, senderID string) error {
	_, err := p.db.ExecContext(ctx, `
UPDATE messages
SET read = TRUE
WHERE receiver_id = $1 AND sender_id = $2 AND NOT read
`, receiverID, senderID)
	return translate(err)
}
