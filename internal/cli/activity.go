package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/resilia/internal/models"
)

const previewLen = 80

// chooseMood resolves a catalog entry from a label or a 1-based menu number.
func chooseMood(choice string) (models.Mood, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(choice)); err == nil {
		if n >= 1 && n <= len(models.Moods) {
			return models.Moods[n-1], true
		}
		return models.Mood{}, false
	}
	return models.LookupMood(choice)
}

func (a *App) promptMood(prompt string) (string, error) {
	for i, m := range models.Moods {
		a.printf("  %d. %s %s\n", i+1, m.Emoji, m.Label)
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// Mood records a check-in. label may be a catalog label or menu number; an
// empty label shows the menu.
func (a *App) Mood(ctx context.Context, label string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	if label == "" {
		var err error
		if label, err = a.promptMood("How are you feeling?"); err != nil {
			return err
		}
	}

	m, ok := chooseMood(label)
	if !ok {
		a.printf("Unknown mood %q.\n", label)
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, label)
	}

	if _, err := a.activity.RecordMood(ctx, m.Label, m.Emoji); err != nil {
		return err
	}
	a.printf("Mood logged: %s %s\n", m.Emoji, m.Label)
	return nil
}

// Moods prints the mood history, newest first.
func (a *App) Moods(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	moods := a.activity.ListMoods(ctx)
	if len(moods) == 0 {
		a.println("No mood check-ins yet.")
		return nil
	}
	for _, m := range moods {
		a.printf("%-10s %s  %s %s\n", m.Date, m.Timestamp.Local().Format("15:04"), m.Emoji, m.Mood)
	}
	return nil
}

// Trends prints how often each mood was logged.
func (a *App) Trends(ctx context.Context) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	s := a.activity.SummarizeMoods(ctx)
	if s.Total == 0 {
		a.println("No mood check-ins yet.")
		return nil
	}

	a.printf("Total check-ins: %d\n", s.Total)
	seen := make(map[string]bool, len(models.Moods))
	for _, m := range models.Moods {
		seen[m.Label] = true
		a.printTrendRow(m.Emoji, m.Label, s.Counts[m.Label], s.Total)
	}

	var other []string
	for label := range s.Counts {
		if !seen[label] {
			other = append(other, label)
		}
	}
	slices.Sort(other)
	for _, label := range other {
		a.printTrendRow("  ", label, s.Counts[label], s.Total)
	}

	a.printf("Latest: %s %s on %s\n", s.Latest.Emoji, s.Latest.Mood, s.Latest.Date)
	return nil
}

func (a *App) printTrendRow(emoji, label string, n, total int) {
	pct := n * 100 / total
	a.printf("%s %-10s %3d %3d%% %s\n", emoji, label, n, pct, strings.Repeat("#", pct/5))
}

// Chat records a journal-style conversation. The first line becomes the
// preview and the time spent typing becomes the duration.
func (a *App) Chat(ctx context.Context, title string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	started := a.now()

	choice, err := a.promptMood("How are you feeling? (Enter to skip)")
	if err != nil {
		return err
	}
	var emoji string
	if choice != "" {
		m, ok := chooseMood(choice)
		if !ok {
			a.printf("Unknown mood %q.\n", choice)
			return fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, choice)
		}
		emoji = m.Emoji
	}

	if title == "" {
		if title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
			return err
		}
		if title == "" {
			title = "Conversation"
		}
	}

	lines, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		a.println("Nothing recorded.")
		return nil
	}

	minutes := int(a.now().Sub(started).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	entry := models.ConversationEntry{
		Mood:     emoji,
		Title:    title,
		Preview:  preview(lines[0]),
		Duration: fmt.Sprintf("%d min", minutes),
	}
	if err := a.activity.RecordConversation(ctx, entry); err != nil {
		return err
	}
	a.println("Conversation saved.")
	return nil
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLen {
		return s
	}
	r := []rune(s)
	return string(r[:previewLen-1]) + "…"
}

// History prints recent conversations, or all of them when all is set.
func (a *App) History(ctx context.Context, all bool) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}

	limit := a.config.RecentLimit
	if all {
		limit = 0
	}

	chats := a.activity.ListConversations(ctx, limit)
	if len(chats) == 0 {
		a.println("No conversation history yet.")
		return nil
	}
	for _, c := range chats {
		a.printf("%s %s  (%s, %s)\n", c.Mood, c.Title, c.Date, c.Duration)
		if c.Preview != "" {
			a.printf("    %s\n", c.Preview)
		}
	}
	return nil
}

// Status prints device and store details.
func (a *App) Status(ctx context.Context) error {
	session := "logged out"
	if u := a.sessions.Current(ctx); u != nil {
		session = u.Email
	}

	a.printf("Device:        %s\n", a.deviceID)
	a.printf("Store:         %s\n", a.config.DBPath)
	a.printf("Session:       %s\n", session)
	a.printf("Accounts:      %d\n", len(a.accounts.List(ctx)))
	a.printf("Mood entries:  %d\n", len(a.activity.ListMoods(ctx)))
	a.printf("Conversations: %d\n", len(a.activity.ListConversations(ctx, 0)))

	keys, err := a.device.StoredKeys(ctx)
	if err != nil {
		return err
	}
	a.printf("Stored keys:   %s\n", strings.Join(keys, ", "))
	return nil
}

// Reset erases everything stored on this device after the user types "yes".
// force skips the confirmation.
func (a *App) Reset(ctx context.Context, force bool) error {
	if !force {
		answer, err := getSimpleText(a.reader, "This erases every account, the session and all history on this device. Type 'yes' to continue:", a.out)
		if err != nil {
			return err
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
			a.println("Reset cancelled.")
			return nil
		}
	}

	id, err := a.device.Reset(ctx)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "device reset", "new_device", id)
	a.deviceID = id
	a.println("All data on this device was erased.")
	return nil
}
