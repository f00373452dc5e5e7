// Package bot is the Telegram presentation layer: it renders session
// state and forwards the user's taps and commands into the study core.
package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/example/radbot/internal/catalog"
	"github.com/example/radbot/internal/deck"
	"github.com/example/radbot/internal/excel"
	"github.com/example/radbot/internal/leitner"
	"github.com/example/radbot/internal/progress"
	"github.com/example/radbot/internal/study"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in an inline keyboard
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates an inline keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// Bot is the Telegram front end over one progress store. This is a
// single-user tool: every chat shares the same progress, and each chat
// has at most one running session.
type Bot struct {
	api      *tgbotapi.BotAPI
	token    string
	store    *progress.Store
	sessions map[int64]*study.Session
	config   *Config

	// lastChatID is written by the update loop and read by the reminder
	// goroutine, so access is atomic
	lastChatID int64
}

// New creates a bot over the given progress store
func New(token string, store *progress.Store) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	return &Bot{
		token:    token,
		store:    store,
		sessions: make(map[int64]*study.Session),
		config:   DefaultConfig(),
	}, nil
}

// Start connects to Telegram and processes updates until ctx is canceled.
// Updates are handled one at a time, in arrival order.
func (b *Bot) Start(ctx context.Context) error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	log.Printf("Authorized on account %s", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.shutdown()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) shutdown() {
	for chatID, s := range b.sessions {
		s.Stop()
		delete(b.sessions, chatID)
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		atomic.StoreInt64(&b.lastChatID, update.Message.Chat.ID)
		b.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		atomic.StoreInt64(&b.lastChatID, update.CallbackQuery.Message.Chat.ID)
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start", "help":
		b.send(chatID, helpText())
	case "learn":
		b.startSession(chatID, deck.ModeLearn)
	case "review":
		b.startSession(chatID, deck.ModeReview)
	case "quiz":
		b.startSession(chatID, deck.ModeQuiz)
	case "stop":
		b.endSession(chatID)
		b.send(chatID, "Session closed.")
	case "list":
		b.handleList(chatID, message.CommandArguments())
	case "stats":
		b.handleStats(chatID)
	case "settings":
		b.showSettings(chatID)
	case "reset":
		b.sendWithKeyboard(chatID, "Reset all progress? Boxes, counters and learned flags will be wiped.", createKeyboard([][]MenuButton{{
			{Text: "Yes, reset", CallbackData: "reset_yes"},
			{Text: "Cancel", CallbackData: "reset_no"},
		}}))
	case "export":
		b.handleExport(chatID)
	default:
		b.send(chatID, "Unknown command. Try /help.")
	}
}

func helpText() string {
	return strings.Join([]string{
		"60 radicals study bot.",
		"",
		"/learn - flashcards over the whole set",
		"/review - flashcards for the cards due today",
		"/quiz - multiple-choice drill",
		"/stop - close the current session",
		"/list <query> - browse the radicals",
		"/stats - progress overview",
		"/settings - display and behavior toggles",
		"/export - progress report as a spreadsheet",
		"/reset - wipe all progress",
	}, "\n")
}

// startSession replaces any running session for the chat
func (b *Bot) startSession(chatID int64, mode deck.Mode) {
	b.endSession(chatID)
	s := study.New(b.store, mode)
	b.sessions[chatID] = s
	b.showCard(chatID, s)
}

func (b *Bot) endSession(chatID int64) {
	if s, ok := b.sessions[chatID]; ok {
		s.Stop()
		delete(b.sessions, chatID)
	}
}

// showCard renders the current card for the session's mode
func (b *Bot) showCard(chatID int64, s *study.Session) {
	if s.Mode() == deck.ModeQuiz {
		b.showQuiz(chatID, s)
		return
	}

	card := s.Current()
	rec := s.CurrentRecord()
	pos, total := s.Position()
	settings := b.store.Settings()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Card %d/%d · Box %d · %s\n\n", pos, total, rec.Box, s.ElapsedString())
	fmt.Fprintf(&sb, "%s\n", card.Radical)

	if s.Flipped() {
		fmt.Fprintf(&sb, "\n%s — %s\n", card.Name, catalog.Pinyin(card, settings.ToneMarks))
		fmt.Fprintf(&sb, "Meaning: %s\n", card.Meaning)
		if settings.ShowMnemonic {
			fmt.Fprintf(&sb, "Mnemonic: %s\n", card.Mnemonic)
		}
		if settings.ShowExamples {
			fmt.Fprintf(&sb, "Examples: %s\n", strings.Join(card.Examples, " "))
		}
		b.sendWithKeyboard(chatID, sb.String(), createKeyboard([][]MenuButton{
			{
				{Text: "1 Again", CallbackData: "grade:1"},
				{Text: "2 Hard", CallbackData: "grade:2"},
				{Text: "3 Good", CallbackData: "grade:3"},
				{Text: "4 Easy", CallbackData: "grade:4"},
			},
			{{Text: "Exit", CallbackData: "exit"}},
		}))
		return
	}

	sb.WriteString("\nRecall the name, pinyin and meaning, then flip.")
	b.sendWithKeyboard(chatID, sb.String(), createKeyboard([][]MenuButton{
		{{Text: "Flip", CallbackData: "flip"}},
		{{Text: "Exit", CallbackData: "exit"}},
	}))
}

func (b *Bot) showQuiz(chatID int64, s *study.Session) {
	card := s.Current()
	quiz := s.Quiz()
	if quiz == nil {
		return
	}
	pos, total := s.Position()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Question %d/%d · %s\n\n", pos, total, s.ElapsedString())
	fmt.Fprintf(&sb, "%s\n\nPick the meaning:\n", card.Radical)

	var rows [][]MenuButton
	for i, opt := range quiz.Options {
		label := opt
		if s.QuizRevealed() {
			if opt == quiz.Answer {
				label = "✅ " + label
			} else if i == s.Choice() {
				label = "❌ " + label
			}
		} else if i == s.Choice() {
			label = "• " + label
		}
		rows = append(rows, []MenuButton{{Text: label, CallbackData: "opt:" + strconv.Itoa(i)}})
	}

	if s.QuizRevealed() {
		fmt.Fprintf(&sb, "\nAnswer: %s", quiz.Answer)
		rows = append(rows, []MenuButton{{Text: "Next", CallbackData: "next"}})
	} else {
		rows = append(rows, []MenuButton{{Text: "Submit", CallbackData: "submit"}})
	}
	rows = append(rows, []MenuButton{{Text: "Exit", CallbackData: "exit"}})

	b.sendWithKeyboard(chatID, sb.String(), createKeyboard(rows))
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	// Acknowledge so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case data == "reset_yes":
		b.store.ResetAll()
		b.endSession(chatID)
		b.send(chatID, "Progress reset. Every card is back in box 1.")
		return
	case data == "reset_no":
		b.send(chatID, "Reset canceled.")
		return
	case strings.HasPrefix(data, "set:"):
		b.toggleSetting(chatID, strings.TrimPrefix(data, "set:"))
		return
	}

	s, ok := b.sessions[chatID]
	if !ok {
		b.send(chatID, "No session running. Start one with /learn, /review or /quiz.")
		return
	}

	switch {
	case data == "flip":
		s.Flip()
		b.showCard(chatID, s)
	case strings.HasPrefix(data, "grade:"):
		if g, err := strconv.Atoi(strings.TrimPrefix(data, "grade:")); err == nil {
			s.Grade(leitner.Grade(g))
		}
		b.showCard(chatID, s)
	case strings.HasPrefix(data, "opt:"):
		if i, err := strconv.Atoi(strings.TrimPrefix(data, "opt:")); err == nil {
			s.SelectOption(i)
		}
		b.showQuiz(chatID, s)
	case data == "submit":
		s.SubmitQuiz()
		b.showQuiz(chatID, s)
	case data == "next":
		s.ProceedQuiz()
		b.showQuiz(chatID, s)
	case data == "exit":
		b.endSession(chatID)
		b.send(chatID, "Session closed.")
	}
}

func (b *Bot) handleList(chatID int64, query string) {
	matches := catalog.Search(query)
	if len(matches) == 0 {
		b.send(chatID, "Nothing matches that query.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d/%d radicals\n\n", len(matches), catalog.Size())
	shown := matches
	if len(shown) > b.config.ListLimit {
		shown = shown[:b.config.ListLimit]
	}
	for _, r := range shown {
		rec := b.store.Record(r.ID)
		learned := "—"
		if rec.Learned {
			learned = "learned"
		}
		fmt.Fprintf(&sb, "%d. %s %s (%s) — %s · box %d · %s\n", r.ID, r.Name, r.Radical, r.Pinyin, r.Meaning, rec.Box, learned)
	}
	if len(matches) > len(shown) {
		fmt.Fprintf(&sb, "\n…and %d more. Narrow the query.", len(matches)-len(shown))
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleStats(chatID int64) {
	state := b.store.State()
	boxes := make(map[int]int)
	for _, rec := range state.ByID {
		boxes[rec.Box]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Learned: %d/%d\n", b.store.LearnedCount(), catalog.Size())
	fmt.Fprintf(&sb, "Due today: %d\n\n", b.store.DueCount())
	for box := leitner.MinBox; box <= leitner.MaxBox; box++ {
		fmt.Fprintf(&sb, "Box %d: %d cards\n", box, boxes[box])
	}
	b.send(chatID, sb.String())
}

func (b *Bot) showSettings(chatID int64) {
	s := b.store.Settings()
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	b.sendWithKeyboard(chatID, "Settings (tap to toggle):", createKeyboard([][]MenuButton{
		{{Text: "Show examples: " + onOff(s.ShowExamples), CallbackData: "set:showExamples"}},
		{{Text: "Show mnemonic: " + onOff(s.ShowMnemonic), CallbackData: "set:showMnemonic"}},
		{{Text: "Pinyin tone marks: " + onOff(s.ToneMarks), CallbackData: "set:toneMarks"}},
		{{Text: "Shuffle learn deck: " + onOff(s.ShuffleLearn), CallbackData: "set:shuffleLearn"}},
		{{Text: "Keyboard shortcuts: " + onOff(s.KeyboardShortcuts), CallbackData: "set:keyboardShortcuts"}},
	}))
}

func (b *Bot) toggleSetting(chatID int64, name string) {
	s := b.store.Settings()
	var patch progress.SettingsPatch
	flip := func(v bool) *bool { v = !v; return &v }

	switch name {
	case "showExamples":
		patch.ShowExamples = flip(s.ShowExamples)
	case "showMnemonic":
		patch.ShowMnemonic = flip(s.ShowMnemonic)
	case "toneMarks":
		patch.ToneMarks = flip(s.ToneMarks)
	case "shuffleLearn":
		patch.ShuffleLearn = flip(s.ShuffleLearn)
	case "keyboardShortcuts":
		patch.KeyboardShortcuts = flip(s.KeyboardShortcuts)
	default:
		return
	}
	b.store.PatchSettings(patch)

	// A changed shuffle setting rebuilds a running session from the top
	if name == "shuffleLearn" {
		if sess, ok := b.sessions[chatID]; ok {
			sess.Rebuild(sess.Mode())
		}
	}
	b.showSettings(chatID)
}

func (b *Bot) handleExport(chatID int64) {
	path := filepath.Join(b.config.ExportDir, "radicals_progress.xlsx")
	if err := excel.ExportProgress(path, b.store.State()); err != nil {
		log.Printf("Failed to export progress: %v", err)
		b.send(chatID, "Export failed.")
		return
	}
	defer os.Remove(path)

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Failed to send export: %v", err)
		b.send(chatID, "Export failed.")
	}
}

// SendDueReminder implements the reminder notifier: it pings the chat the
// bot last talked to
func (b *Bot) SendDueReminder(count int) error {
	chatID := atomic.LoadInt64(&b.lastChatID)
	if chatID == 0 {
		return fmt.Errorf("no chat to remind yet")
	}
	b.send(chatID, fmt.Sprintf("You have %d cards due for review. /review", count))
	return nil
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
