package models

import "time"

// Message is one entry in the append-only messaging log. To is nil for
// a broadcast to the whole team. Messages are never edited or deleted.
type Message struct {
	From    string    `json:"from"`
	To      *string   `json:"to"`
	Project string    `json:"project"`
	Team    string    `json:"team"`
	Text    string    `json:"text"`
	TS      time.Time `json:"ts"`
}

// VisibleTo reports whether the message appears in viewer's filtered
// view: broadcasts and messages addressed to the viewer.
func (m *Message) VisibleTo(viewer string) bool {
	return m.To == nil || *m.To == viewer
}
