package bot

import (
	"context"

	"tolo-telegram/models"
	"tolo-telegram/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	if cq.Message == nil {
		b.answerCallback(cq, "")
		return nil
	}
	chatID := cq.Message.Chat.ID

	switch cq.Data {
	case cbStartOver:
		fresh := &models.Session{
			ChatID:   chatID,
			Mode:     models.SessionModeCollect,
			Skip:     models.SkipNone,
			Data:     map[string]string{},
			UserName: displayName(cq.From),
		}
		if err := services.ReplaceSession(ctx, fresh); err != nil {
			return err
		}
		b.answerCallback(cq, "")
		b.promptField(chatID, 0)

	case cbKeepGoing:
		sess, err := services.GetSession(ctx, chatID)
		if err != nil {
			return err
		}
		b.answerCallback(cq, "")
		if sess == nil || sess.Mode != models.SessionModeCollect || sess.Step >= len(formFields) {
			b.send(chatID, textTypeStart)
			return nil
		}
		b.promptField(chatID, sess.Step)

	case cbNewOrder:
		fresh := &models.Session{
			ChatID:   chatID,
			Mode:     models.SessionModeCollect,
			Skip:     models.SkipNone,
			Data:     map[string]string{},
			UserName: displayName(cq.From),
		}
		lo, err := services.GetLastOrder(ctx, chatID)
		if err != nil {
			return err
		}
		if lo != nil {
			// The payer's counterpart side was the constant one last
			// time; reuse it and skip those prompts.
			switch lo.Payment {
			case paymentReceiver:
				prefillSenderSide(fresh.Data, lo)
				fresh.Skip = models.SkipSender
			case paymentSender:
				prefillReceiverSide(fresh.Data, lo)
				fresh.Skip = models.SkipReceiver
			}
		}
		fresh.Step = nextStep(0, fresh.Skip)
		if err := services.ReplaceSession(ctx, fresh); err != nil {
			return err
		}
		b.answerCallback(cq, "")
		b.promptField(chatID, fresh.Step)

	case cbDone:
		b.answerCallback(cq, "")
		b.send(chatID, textDoneThanks)

	default:
		b.answerCallback(cq, "")
	}
	return nil
}
