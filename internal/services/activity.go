package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/resilia/internal/logging"
	"github.com/dmitrijs2005/resilia/internal/models"
	"github.com/dmitrijs2005/resilia/internal/repositories/kv"
)

// DefaultDateLayout renders dates the way en-US locales print them.
const DefaultDateLayout = "1/2/2006"

// ActivityLog keeps the mood and conversation histories of this device.
// Both are newest-first, grow without bound and are never edited.
type ActivityLog struct {
	repo       kv.Repository
	log        logging.Logger
	dateLayout string
	now        func() time.Time
}

// NewActivityLog constructs an ActivityLog. dateLayout formats the display
// date of new entries; empty means DefaultDateLayout.
func NewActivityLog(repo kv.Repository, log logging.Logger, dateLayout string) *ActivityLog {
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return &ActivityLog{repo: repo, log: log, dateLayout: dateLayout, now: time.Now}
}

// RecordMood prepends a check-in stamped with the current time and returns it.
func (a *ActivityLog) RecordMood(ctx context.Context, label, emoji string) (models.MoodEntry, error) {
	t := a.now()
	entry := models.MoodEntry{
		Mood:      label,
		Emoji:     emoji,
		Timestamp: t.UTC(),
		Date:      t.Format(a.dateLayout),
	}

	moods := loadLog[models.MoodEntry](ctx, a, KeyMoodHistory)
	moods = append([]models.MoodEntry{entry}, moods...)
	if err := kv.SaveJSON(ctx, a.repo, KeyMoodHistory, moods); err != nil {
		return models.MoodEntry{}, fmt.Errorf("save mood history: %w", err)
	}

	a.log.Debug(ctx, "mood recorded", "mood", label, "entries", len(moods))
	return entry, nil
}

// ListMoods returns the mood history, newest first.
func (a *ActivityLog) ListMoods(ctx context.Context) []models.MoodEntry {
	return loadLog[models.MoodEntry](ctx, a, KeyMoodHistory)
}

// RecordConversation prepends a conversation summary. An empty Date is filled
// in from the current time.
func (a *ActivityLog) RecordConversation(ctx context.Context, entry models.ConversationEntry) error {
	if entry.Date == "" {
		entry.Date = a.now().Format(a.dateLayout)
	}

	chats := loadLog[models.ConversationEntry](ctx, a, KeyChatHistory)
	chats = append([]models.ConversationEntry{entry}, chats...)
	if err := kv.SaveJSON(ctx, a.repo, KeyChatHistory, chats); err != nil {
		return fmt.Errorf("save chat history: %w", err)
	}

	a.log.Debug(ctx, "conversation recorded", "title", entry.Title, "entries", len(chats))
	return nil
}

// ListConversations returns the stored conversations as-is. A positive limit
// keeps only the first limit entries.
func (a *ActivityLog) ListConversations(ctx context.Context, limit int) []models.ConversationEntry {
	chats := loadLog[models.ConversationEntry](ctx, a, KeyChatHistory)
	if limit > 0 && len(chats) > limit {
		chats = chats[:limit]
	}
	return chats
}

// SummarizeMoods counts check-ins per mood label.
func (a *ActivityLog) SummarizeMoods(ctx context.Context) models.MoodSummary {
	moods := a.ListMoods(ctx)
	s := models.MoodSummary{Total: len(moods), Counts: make(map[string]int)}
	for _, m := range moods {
		s.Counts[m.Mood]++
	}
	if len(moods) > 0 {
		latest := moods[0]
		s.Latest = &latest
	}
	return s
}

func loadLog[T any](ctx context.Context, a *ActivityLog, key string) []T {
	entries, _, err := kv.LoadJSON[[]T](ctx, a.repo, key)
	if err != nil {
		a.log.Warn(ctx, "history unreadable, treating as empty", "key", key, "error", err)
		return nil
	}
	return entries
}
