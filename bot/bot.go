package bot

import (
	"context"
	"log"
	"time"

	"tolo-telegram/config"
	"tolo-telegram/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const fetchRetryDelay = 3 * time.Second

// telegramAPI is the slice of *tgbotapi.BotAPI the bot uses, so handlers
// can be driven against a fake in tests.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Bot struct {
	api telegramAPI
	cfg *config.Config
}

func New(cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, cfg: cfg}, nil
}

// Start runs the ingestion loop. Updates are fetched with the durable
// cursor and processed strictly in order; the cursor is persisted only
// after a whole batch succeeded, so delivery is at-least-once and every
// handler must tolerate replays.
func (b *Bot) Start() {
	ctx := context.Background()
	b.registerCommands()

	var offset int
	for {
		o, err := services.LoadOffset(ctx)
		if err != nil {
			log.Printf("load offset: %v", err)
			time.Sleep(fetchRetryDelay)
			continue
		}
		offset = o
		break
	}

	u := tgbotapi.NewUpdate(offset)
	u.Timeout = b.cfg.Telegram.PollTimeout

	for {
		u.Offset = offset
		updates, err := b.api.GetUpdates(u)
		if err != nil {
			log.Printf("get updates: %v", err)
			time.Sleep(fetchRetryDelay)
			continue
		}

		ok := true
		for _, upd := range updates {
			if err := b.handleUpdate(ctx, upd); err != nil {
				// Persistence failure: abort without advancing the
				// cursor so the whole batch is redelivered.
				log.Printf("handle update %d: %v", upd.UpdateID, err)
				ok = false
				break
			}
		}
		if !ok {
			time.Sleep(fetchRetryDelay)
			continue
		}

		if len(updates) > 0 {
			offset = updates[len(updates)-1].UpdateID + 1
			if err := services.SaveOffset(ctx, offset); err != nil {
				log.Printf("save offset: %v", err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	if upd.CallbackQuery != nil {
		return b.handleCallback(ctx, upd.CallbackQuery)
	}
	msg := upd.Message
	if msg == nil {
		return nil
	}
	if msg.Location != nil {
		return b.handleLocation(ctx, msg)
	}
	if msg.Text == "" {
		return nil
	}
	return b.handleText(ctx, msg)
}

func (b *Bot) registerCommands() {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot / ቦትን ጀምር"},
		tgbotapi.BotCommand{Command: "about", Description: "About this bot / ስለምን ይህ ቦት"},
		tgbotapi.BotCommand{Command: "contact", Description: "Contact us / እኛን ያግኙ"},
		tgbotapi.BotCommand{Command: "cancel", Description: "Cancel current operation / አሁን ያቋርጡ"},
		tgbotapi.BotCommand{Command: "feedback", Description: "Send feedback / አስተያየት ይላኩ"},
		tgbotapi.BotCommand{Command: "price", Description: "Delivery pricing / የማድረስ ዋጋ"},
		tgbotapi.BotCommand{Command: "level", Description: "Your loyalty level / የታማኝነት ደረጃዎ"},
		tgbotapi.BotCommand{Command: "mydeliveries", Description: "Your delivery history / የትእዛዝ ታሪክዎ"},
	)
	if _, err := b.api.Request(cmds); err != nil {
		log.Printf("set my commands: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send: %v", err)
	}
}

func (b *Bot) sendWithReplyKeyboard(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send: %v", err)
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send: %v", err)
	}
}

func (b *Bot) sendRemoveKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send: %v", err)
	}
}

// answerCallback answers the callback query (required for every callback path).
func (b *Bot) answerCallback(cq *tgbotapi.CallbackQuery, text string) {
	cb := tgbotapi.NewCallback(cq.ID, text)
	if _, err := b.api.Request(cb); err != nil {
		log.Printf("answer callback: %v", err)
	}
}
