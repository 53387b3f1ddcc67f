package models

import (
	"strings"
	"time"
)

// MoodEntry is one mood check-in. Entries have no identity beyond their
// position in the newest-first history.
type MoodEntry struct {
	Mood      string    `json:"mood"`
	Emoji     string    `json:"emoji"`
	Timestamp time.Time `json:"timestamp"`
	// Date is Timestamp rendered with the configured date layout.
	Date string `json:"date"`
}

// ConversationEntry is a display summary of one chat with the companion.
type ConversationEntry struct {
	Mood     string `json:"mood"`
	Title    string `json:"title"`
	Preview  string `json:"preview"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
}

// Mood is an entry of the check-in catalog.
type Mood struct {
	Label string
	Emoji string
}

// Moods is the catalog offered on the home screen, lowest to highest.
var Moods = []Mood{
	{Label: "Struggling", Emoji: "😢"},
	{Label: "Low", Emoji: "😕"},
	{Label: "Okay", Emoji: "😐"},
	{Label: "Good", Emoji: "🙂"},
	{Label: "Great", Emoji: "😊"},
}

// LookupMood finds a catalog mood by label, ignoring case and surrounding space.
func LookupMood(label string) (Mood, bool) {
	label = strings.TrimSpace(label)
	for _, m := range Moods {
		if strings.EqualFold(m.Label, label) {
			return m, true
		}
	}
	return Mood{}, false
}

// Affirmations are the short encouragements shown when the companion greets
// the user.
var Affirmations = []string{
	"You are stronger than your anxious thoughts 🌿",
	"Every breath is a fresh start 🌤️",
	"Healing takes time, and that's perfectly okay 💙",
	"You are doing better than you think 💫",
	"Peace begins with accepting how you feel 💧",
	"Your emotions matter, always 🌸",
}

// MoodSummary aggregates a mood history for the trends view.
type MoodSummary struct {
	Total  int
	Counts map[string]int
	Latest *MoodEntry
}
