package feed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/saravenpi/chatview/internal/models"
)

// SQLiteSource reads rooms from a database laid out as:
//
//	rooms(id, name, image_url)
//	participants(room_id, id, name, email)
//	comments(id, room_id, sender, type, message, url, caption, filename)
//
// Rows come back in insertion order. The database is opened read-only.
type SQLiteSource struct {
	path string
}

func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

func (s *SQLiteSource) Name() string {
	return "sqlite://" + s.path
}

func (s *SQLiteSource) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func (s *SQLiteSource) Load(ctx context.Context) (*models.Payload, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rooms, err := getRooms(ctx, db)
	if err != nil {
		return nil, err
	}

	participantsMap, err := getAllParticipants(ctx, db)
	if err != nil {
		return nil, err
	}

	commentsMap, err := getAllComments(ctx, db)
	if err != nil {
		return nil, err
	}

	payload := &models.Payload{Results: make([]models.RoomResult, 0, len(rooms))}
	for _, room := range rooms {
		room.Participants = participantsMap[room.ID]
		if room.Participants == nil {
			room.Participants = []models.Participant{}
		}
		comments := commentsMap[room.ID]
		if comments == nil {
			comments = []models.Message{}
		}
		payload.Results = append(payload.Results, models.RoomResult{Room: room, Comments: comments})
	}

	return payload, nil
}

func getRooms(ctx context.Context, db *sql.DB) ([]models.Room, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(image_url, '')
		FROM rooms
		ORDER BY ROWID
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

type participantRow struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// getAllParticipants fetches every room's participants in one query.
func getAllParticipants(ctx context.Context, db *sql.DB) (map[int64][]models.Participant, error) {
	query := `
		SELECT room_id, COALESCE(id, ''), COALESCE(name, ''), COALESCE(email, '')
		FROM participants
		ORDER BY room_id, ROWID
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participantsMap := make(map[int64][]models.Participant)
	for rows.Next() {
		var roomID int64
		var p participantRow
		if err := rows.Scan(&roomID, &p.ID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode participant: %w", err)
		}
		participantsMap[roomID] = append(participantsMap[roomID], models.Participant(data))
	}

	return participantsMap, rows.Err()
}

func getAllComments(ctx context.Context, db *sql.DB) (map[int64][]models.Message, error) {
	query := `
		SELECT
			room_id,
			id,
			COALESCE(sender, ''),
			COALESCE(type, ''),
			COALESCE(message, ''),
			COALESCE(url, ''),
			COALESCE(caption, ''),
			COALESCE(filename, '')
		FROM comments
		ORDER BY room_id, ROWID
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	commentsMap := make(map[int64][]models.Message)
	for rows.Next() {
		var roomID int64
		var msg models.Message
		err := rows.Scan(&roomID, &msg.ID, &msg.Sender, &msg.RawKind, &msg.Text, &msg.URL, &msg.Caption, &msg.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		msg.Kind = models.ParseKind(msg.RawKind)
		commentsMap[roomID] = append(commentsMap[roomID], msg)
	}

	return commentsMap, rows.Err()
}
