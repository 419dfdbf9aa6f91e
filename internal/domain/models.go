// Package domain defines the persistence models for users, mood entries,
// community thought posts, self-care checklists and companion conversations.
// These types are mapped with GORM when the SQLite store is selected and are
// shared by the in-memory store, the service layer and the HTTP handlers.
//
// JSON field names are camelCase; that is the contract the web client uses.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Mood is one of the fixed mood labels a user can record.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodCalm     Mood = "calm"
	MoodNeutral  Mood = "neutral"
	MoodSad      Mood = "sad"
	MoodStressed Mood = "stressed"
)

// Moods lists every valid mood in display order.
var Moods = []Mood{MoodHappy, MoodCalm, MoodNeutral, MoodSad, MoodStressed}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// User is a registered account. Password holds a bcrypt hash and is never
// serialized.
//
// Fields:
//   - ID: store-assigned integer primary key.
//   - Username: unique login name (NFKC-normalized by the service layer).
//   - Password: bcrypt hash of the secret.
//   - DisplayName: optional friendly name.
type User struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	Username    string    `json:"username"    gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Password    string    `json:"-"           gorm:"type:varchar(128);not null"`
	DisplayName *string   `json:"displayName" gorm:"type:varchar(128)"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// MoodEntry is a single mood observation by a user.
type MoodEntry struct {
	ID        int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId"    gorm:"not null;index:idx_mood_user_time,priority:1"`
	Mood      Mood      `json:"mood"      gorm:"type:varchar(16);not null;check:mood IN ('happy','calm','neutral','sad','stressed')"`
	Note      *string   `json:"note"      gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_mood_user_time,priority:2"`
}

// TableName returns the database table name for MoodEntry.
func (MoodEntry) TableName() string { return "mood_entries" }

// ThoughtPost is an anonymous community board post.
type ThoughtPost struct {
	ID        int64     `json:"id"        gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"userId"    gorm:"not null;index"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	Likes     int64     `json:"likes"     gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName returns the database table name for ThoughtPost.
func (ThoughtPost) TableName() string { return "thought_posts" }

// SelfCareChecklist is a user's five-item checklist for one calendar day.
// Date carries the instant the checklist was created; the day it belongs to
// is Date's UTC calendar date.
type SelfCareChecklist struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"userId"      gorm:"not null;index:idx_selfcare_user_date,priority:1"`
	Water       bool      `json:"water"       gorm:"not null;default:false"`
	Exercise    bool      `json:"exercise"    gorm:"not null;default:false"`
	Sleep       bool      `json:"sleep"       gorm:"not null;default:false"`
	Journal     bool      `json:"journal"     gorm:"not null;default:false"`
	Mindfulness bool      `json:"mindfulness" gorm:"not null;default:false"`
	Date        time.Time `json:"date"        gorm:"not null;index:idx_selfcare_user_date,priority:2"`
}

// TableName returns the database table name for SelfCareChecklist.
func (SelfCareChecklist) TableName() string { return "self_care_checklists" }

// SelfCarePatch is a partial checklist update; nil fields are left unchanged.
type SelfCarePatch struct {
	Water       *bool `json:"water,omitempty"`
	Exercise    *bool `json:"exercise,omitempty"`
	Sleep       *bool `json:"sleep,omitempty"`
	Journal     *bool `json:"journal,omitempty"`
	Mindfulness *bool `json:"mindfulness,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p SelfCarePatch) Empty() bool {
	return p.Water == nil && p.Exercise == nil && p.Sleep == nil && p.Journal == nil && p.Mindfulness == nil
}

// Apply merges the non-nil fields of p into c.
func (p SelfCarePatch) Apply(c *SelfCareChecklist) {
	if p.Water != nil {
		c.Water = *p.Water
	}
	if p.Exercise != nil {
		c.Exercise = *p.Exercise
	}
	if p.Sleep != nil {
		c.Sleep = *p.Sleep
	}
	if p.Journal != nil {
		c.Journal = *p.Journal
	}
	if p.Mindfulness != nil {
		c.Mindfulness = *p.Mindfulness
	}
}

// Columns returns the patch as a column→value map for GORM Updates.
func (p SelfCarePatch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if p.Water != nil {
		cols["water"] = *p.Water
	}
	if p.Exercise != nil {
		cols["exercise"] = *p.Exercise
	}
	if p.Sleep != nil {
		cols["sleep"] = *p.Sleep
	}
	if p.Journal != nil {
		cols["journal"] = *p.Journal
	}
	if p.Mindfulness != nil {
		cols["mindfulness"] = *p.Mindfulness
	}
	return cols
}

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatConversation is a user's conversation with the companion. Messages are
// stored as a single JSON column, in order. Revision counts message updates
// and guards against concurrent sends overwriting each other.
type ChatConversation struct {
	ID        int64                            `json:"id"        gorm:"primaryKey;autoIncrement"`
	UserID    int64                            `json:"userId"    gorm:"not null;index:idx_chat_user_created,priority:1"`
	Messages  datatypes.JSONSlice[ChatMessage] `json:"messages"  gorm:"type:json;not null"`
	Revision  int64                            `json:"-"         gorm:"not null;default:0"`
	CreatedAt time.Time                        `json:"createdAt" gorm:"index:idx_chat_user_created,priority:2"`
	UpdatedAt time.Time                        `json:"updatedAt"`
}

// TableName returns the database table name for ChatConversation.
func (ChatConversation) TableName() string { return "chat_conversations" }

// CloneMessages returns an independent copy of msgs.
func CloneMessages(msgs []ChatMessage) []ChatMessage {
	if msgs == nil {
		return []ChatMessage{}
	}
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// Quote is a motivational quote. Not persisted.
type Quote struct {
	Text   string `json:"text"   example:"Every moment is a fresh beginning."`
	Author string `json:"author" example:"T.S Eliot"`
}

// MoodAnalysis is the language model's reading of a journal entry. Not persisted.
type MoodAnalysis struct {
	SuggestedMood Mood   `json:"suggestedMood" example:"calm"`
	Insights      string `json:"insights"      example:"You sound settled after a long week."`
}
