package message

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const messageCols = `id, sender_id, receiver_id, content, created_at`

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt)
	return &m, err
}

func (r *repoPG) Insert(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*Message, error) {
	return scanMessage(r.pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING `+messageCols,
		uuid.New(), senderID, receiverID, content))
}

func (r *repoPG) Conversations(ctx context.Context, userID uuid.UUID) ([]*Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.other_user_id, t.last_message_time, u.first_name, u.last_name
		FROM (
			SELECT
				CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS other_user_id,
				MAX(created_at) AS last_message_time
			FROM messages
			WHERE sender_id = $1 OR receiver_id = $1
			GROUP BY other_user_id
		) AS t
		JOIN users u ON u.id = t.other_user_id
		ORDER BY t.last_message_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.OtherUserID, &c.LastMessageTime, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

func (r *repoPG) History(ctx context.Context, userA, userB uuid.UUID) ([]*Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+messageCols+`
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC`, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
