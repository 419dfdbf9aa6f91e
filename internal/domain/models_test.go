package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(User{}).TableName():              "users",
		(MoodEntry{}).TableName():         "mood_entries",
		(ThoughtPost{}).TableName():       "thought_posts",
		(SelfCareChecklist{}).TableName(): "self_care_checklists",
		(ChatConversation{}).TableName():  "chat_conversations",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMood_Valid(t *testing.T) {
	for _, m := range Moods {
		if !m.Valid() {
			t.Fatalf("%q should be valid", m)
		}
	}
	for _, m := range []Mood{"", "ecstatic", "Happy"} {
		if m.Valid() {
			t.Fatalf("%q should be invalid", m)
		}
	}
}

func TestUser_PasswordNeverSerialized(t *testing.T) {
	name := "Sam"
	b, err := json.Marshal(User{ID: 1, Username: "sam", Password: "$2a$10$hash", DisplayName: &name})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if strings.Contains(s, "password") || strings.Contains(s, "hash") {
		t.Fatalf("password leaked: %s", s)
	}
	if !strings.Contains(s, `"displayName":"Sam"`) {
		t.Fatalf("expected camelCase displayName: %s", s)
	}
}

func TestSelfCarePatch_ApplyColumnsEmpty(t *testing.T) {
	var p SelfCarePatch
	if !p.Empty() || len(p.Columns()) != 0 {
		t.Fatalf("zero patch should be empty")
	}

	yes, no := true, false
	p = SelfCarePatch{Water: &yes, Sleep: &no}
	c := SelfCareChecklist{Sleep: true, Journal: true}
	p.Apply(&c)
	if !c.Water || c.Sleep || !c.Journal || c.Exercise || c.Mindfulness {
		t.Fatalf("unexpected merge result: %+v", c)
	}
	cols := p.Columns()
	if len(cols) != 2 || cols["water"] != true || cols["sleep"] != false {
		t.Fatalf("unexpected columns: %#v", cols)
	}
}

func TestCloneMessages_Independent(t *testing.T) {
	if out := CloneMessages(nil); out == nil || len(out) != 0 {
		t.Fatalf("nil should clone to empty non-nil slice")
	}
	src := []ChatMessage{{Role: RoleUser, Content: "hi"}}
	dst := CloneMessages(src)
	dst[0].Content = "changed"
	if src[0].Content != "hi" {
		t.Fatalf("clone shares backing array")
	}
}

func TestMigrations_Indexes_CheckAndJSONColumn(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&User{}, &MoodEntry{}, &ThoughtPost{}, &SelfCareChecklist{}, &ChatConversation{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&User{}, &MoodEntry{}, &ThoughtPost{}, &SelfCareChecklist{}, &ChatConversation{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&User{}, "ux_users_username") {
		t.Fatalf("expected unique index ux_users_username")
	}
	if !m.HasIndex(&MoodEntry{}, "idx_mood_user_time") {
		t.Fatalf("expected index idx_mood_user_time")
	}
	if !m.HasIndex(&SelfCareChecklist{}, "idx_selfcare_user_date") {
		t.Fatalf("expected index idx_selfcare_user_date")
	}

	now := time.Now().UTC()

	// Unique username.
	if err := db.Create(&User{Username: "a", Password: "x", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if err := db.Create(&User{Username: "a", Password: "y", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation on username")
	}

	// Mood CHECK constraint.
	if err := db.Create(&MoodEntry{UserID: 1, Mood: "ecstatic", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected CHECK violation for unknown mood")
	}

	// JSON messages round-trip in order.
	conv := &ChatConversation{
		UserID: 1,
		Messages: []ChatMessage{
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi there"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(conv).Error; err != nil {
		t.Fatalf("insert conversation: %v", err)
	}
	var got ChatConversation
	if err := db.First(&got, conv.ID).Error; err != nil {
		t.Fatalf("load conversation: %v", err)
	}
	if len(got.Messages) != 2 || got.Messages[0].Content != "hello" || got.Messages[1].Role != RoleAssistant {
		t.Fatalf("messages round-trip mismatch: %+v", got.Messages)
	}
}
