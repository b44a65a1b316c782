package services

import (
	"strings"
	"time"

	"github.com/bomspace/backend/internal/models"
	"github.com/bomspace/backend/internal/store"
	"github.com/bomspace/backend/pkg/response"
)

// MessageService appends to and reads from the messaging log. Messages
// are immutable once created; there is no edit or delete operation.
type MessageService struct {
	records *store.RecordStore
}

func NewMessageService(records *store.RecordStore) *MessageService {
	return &MessageService{records: records}
}

// Send appends a message with a server-side UTC timestamp. to is nil
// for a team broadcast. Empty text is rejected.
func (s *MessageService) Send(from string, to *string, project, team, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, response.NewValidation("message text required")
	}

	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	msg := models.Message{
		From:    from,
		To:      to,
		Project: project,
		Team:    team,
		Text:    text,
		TS:      time.Now().UTC(),
	}
	doc.Messages = append(doc.Messages, msg)
	if err := s.records.Save(doc); err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns messages matching project and team (either may be
// empty) in insertion order. viewer filters out messages addressed to
// someone else; broadcasts always pass. limit > 0 keeps only the most
// recent entries.
func (s *MessageService) List(project, team, viewer string, limit int) ([]models.Message, error) {
	doc, err := s.records.Load()
	if err != nil {
		return nil, err
	}

	out := []models.Message{}
	for _, m := range doc.Messages {
		if project != "" && m.Project != project {
			continue
		}
		if team != "" && m.Team != team {
			continue
		}
		if viewer != "" && !m.VisibleTo(viewer) {
			continue
		}
		out = append(out, m)
	}

	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
