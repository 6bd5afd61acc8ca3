package telegram

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-response-tracker/internal/ingest"
	"go-response-tracker/internal/models"
	"go-response-tracker/internal/storage"
)

const helpText = `Присылайте текст со страницы откликов (можно частями).
Команды:
/done — разобрать накопленный текст и сохранить отклики
/reset — очистить накопленный текст
/stats [7|30|all] — статистика за период (по умолчанию 30 дней)`

// Storage is what the bot needs from the persistence layer: the paste
// buffer, the event gate, record insertion and aggregation. The concrete
// storage.Store satisfies it.
type Storage interface {
	Append(ctx context.Context, userID int64, text string) error
	ReadBuffer(ctx context.Context, userID int64) (string, error)
	ClearBuffer(ctx context.Context, userID int64) error
	MarkProcessed(ctx context.Context, eventID int) (bool, error)
	InsertIfAbsent(ctx context.Context, userID int64, rec models.CandidateRecord) (bool, error)
	Aggregate(ctx context.Context, userID int64, w storage.Window, topK int) (*storage.Stats, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	store    Storage
	pipeline *ingest.Pipeline
	topK     int
}

func NewBot(token string, store Storage, pipeline *ingest.Pipeline, topK int) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:      api,
		store:    store,
		pipeline: pipeline,
		topK:     topK,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine: deliveries for different users never block each other,
// and per-user state is serialized by the store, not here.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)
	log.Printf("🤖 Bot @%s is listening", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	//Telegram may redeliver updates; the gate makes reprocessing a no-op
	first, err := b.store.MarkProcessed(ctx, update.UpdateID)
	if err != nil {
		log.Printf("⚠️ Failed to mark update %d: %v", update.UpdateID, err)
		return
	}
	if !first {
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if err := b.store.Append(ctx, msg.From.ID, msg.Text); err != nil {
		log.Printf("⚠️ Append failed for user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, "⚠️ Не удалось сохранить текст, попробуйте ещё раз.")
		return
	}
	b.reply(msg.Chat.ID, "Принято. Пришлите ещё текст или /done для разбора.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	switch msg.Command() {
	case "start", "help":
		b.reply(msg.Chat.ID, helpText)
	case "reset":
		if err := b.store.ClearBuffer(ctx, userID); err != nil {
			log.Printf("⚠️ Reset failed for user %d: %v", userID, err)
			b.reply(msg.Chat.ID, "⚠️ Не удалось очистить буфер.")
			return
		}
		b.reply(msg.Chat.ID, "Буфер очищен.")
	case "done":
		b.reply(msg.Chat.ID, b.finalizeReply(ctx, userID))
	case "stats":
		w := parseWindow(msg.CommandArguments())
		stats, err := b.store.Aggregate(ctx, userID, w, b.topK)
		if err != nil {
			log.Printf("⚠️ Stats failed for user %d: %v", userID, err)
			b.reply(msg.Chat.ID, "⚠️ Не удалось посчитать статистику.")
			return
		}
		b.reply(msg.Chat.ID, formatStats(stats, w))
	default:
		b.reply(msg.Chat.ID, "Неизвестная команда. /help")
	}
}

func (b *Bot) finalizeReply(ctx context.Context, userID int64) string {
	inserted, skipped, err := b.finalize(ctx, userID)
	if err != nil {
		//buffer is intact on failure, the user retries without re-pasting
		log.Printf("⚠️ Finalize failed for user %d: %v", userID, err)
		return "⚠️ Не удалось сохранить, буфер не тронут. Повторите /done."
	}
	if inserted == 0 && skipped == 0 {
		return "Не нашёл ни одного отклика. Буфер сохранён — докиньте остаток текста и повторите /done."
	}
	return fmt.Sprintf("Сохранено: %d, дубликатов пропущено: %d.", inserted, skipped)
}

// finalize parses the user's buffer, persists the records and clears the
// buffer. The buffer survives any storage error so the user can retry; it
// also survives a parse that found nothing, since that usually means the
// status line of the last block has not been pasted yet.
func (b *Bot) finalize(ctx context.Context, userID int64) (inserted, skipped int, err error) {
	text, err := b.store.ReadBuffer(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	records := b.pipeline.Ingest(text)
	if len(records) == 0 {
		return 0, 0, nil
	}
	for _, rec := range records {
		fresh, err := b.store.InsertIfAbsent(ctx, userID, rec)
		if err != nil {
			return inserted, skipped, err
		}
		if fresh {
			inserted++
		} else {
			skipped++
		}
	}
	if err := b.store.ClearBuffer(ctx, userID); err != nil {
		return inserted, skipped, err
	}
	return inserted, skipped, nil
}

func parseWindow(arg string) storage.Window {
	switch strings.TrimSpace(arg) {
	case "7":
		return storage.LastDays(7)
	case "all", "все":
		return storage.AllTime
	default:
		return storage.LastDays(30)
	}
}

func windowLabel(w storage.Window) string {
	if w.Days == 0 {
		return "за всё время"
	}
	return fmt.Sprintf("за %d дн.", w.Days)
}

func formatStats(st *storage.Stats, w storage.Window) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>Отклики %s: %d</b>\n", windowLabel(w), st.Total)
	if st.Total == 0 {
		return sb.String()
	}

	sb.WriteString("\nПо статусам:\n")
	for _, s := range models.AllStatuses() {
		if n := st.ByStatus[s]; n > 0 {
			fmt.Fprintf(&sb, "  %s — %d\n", html.EscapeString(string(s)), n)
		}
	}

	sb.WriteString("\nПо ролям:\n")
	for _, line := range sortedCounts(st.ByRole) {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString("\nПо грейдам:\n")
	for _, line := range sortedCounts(st.ByGrade) {
		sb.WriteString("  " + line + "\n")
	}

	if len(st.TopCompanies) > 0 {
		sb.WriteString("\nТоп компаний:\n")
		for i, c := range st.TopCompanies {
			fmt.Fprintf(&sb, "  %d. %s — %d\n", i+1, html.EscapeString(c.Company), c.Count)
		}
	}

	sb.WriteString("\nПо дням:\n")
	days := make([]string, 0, len(st.ByDay))
	for d := range st.ByDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		fmt.Fprintf(&sb, "  %s — %d\n", d, st.ByDay[d])
	}
	return sb.String()
}

// sortedCounts renders a tag→count map as lines ordered by count desc, tag
// name asc on ties, so replies are deterministic.
func sortedCounts[T ~string](m map[T]int) []string {
	type kv struct {
		tag   string
		count int
	}
	pairs := make([]kv, 0, len(m))
	for t, n := range m {
		pairs = append(pairs, kv{tag: string(t), count: n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].tag < pairs[j].tag
	})
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%s — %d", html.EscapeString(p.tag), p.count))
	}
	return lines
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("⚠️ Failed to send reply to chat %d: %v", chatID, err)
	}
}
