package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"tolo-telegram/models"
	"tolo-telegram/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch strings.ToLower(text) {
	case "/start":
		return b.handleStart(ctx, msg)
	case "/cancel":
		return b.handleCancel(ctx, chatID)
	case "/feedback":
		return b.handleFeedback(ctx, msg)
	case "/about", "/contact", "/price", "/level", "/mydeliveries":
		return b.handleInfoCommand(ctx, chatID, strings.ToLower(text))
	}

	sess, err := services.GetSession(ctx, chatID)
	if err != nil {
		return err
	}
	if sess == nil {
		b.send(chatID, textTypeStart)
		return nil
	}
	if sess.Mode == models.SessionModeFeedback {
		if err := services.SaveFeedback(ctx, chatID, sess.UserName, text); err != nil {
			return fmt.Errorf("save feedback: %w", err)
		}
		if err := services.DeleteSession(ctx, chatID); err != nil {
			return err
		}
		b.send(chatID, textFeedbackThanks)
		return nil
	}
	return b.handleFieldInput(ctx, sess, text)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	sess, err := services.GetSession(ctx, chatID)
	if err != nil {
		return err
	}
	if sess != nil && sess.Mode == models.SessionModeCollect {
		// Do not touch the session; let the user decide.
		kb := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(btnKeepGoing, cbKeepGoing),
				tgbotapi.NewInlineKeyboardButtonData(btnStartOver, cbStartOver),
			),
		)
		b.sendWithInline(chatID, textResumeChoice, kb)
		return nil
	}

	fresh := &models.Session{
		ChatID:   chatID,
		Mode:     models.SessionModeCollect,
		Skip:     models.SkipNone,
		Data:     map[string]string{},
		UserName: displayName(msg.From),
	}
	if err := services.ReplaceSession(ctx, fresh); err != nil {
		return err
	}
	b.send(chatID, textWelcome)
	b.promptField(chatID, 0)
	return nil
}

func (b *Bot) handleCancel(ctx context.Context, chatID int64) error {
	sess, err := services.GetSession(ctx, chatID)
	if err != nil {
		return err
	}
	if sess == nil {
		b.send(chatID, textNothingToCancel)
		return nil
	}
	if err := services.DeleteSession(ctx, chatID); err != nil {
		return err
	}
	b.send(chatID, textCancelled)
	return nil
}

func (b *Bot) handleFeedback(ctx context.Context, msg *tgbotapi.Message) error {
	fb := &models.Session{
		ChatID:   msg.Chat.ID,
		Mode:     models.SessionModeFeedback,
		Skip:     models.SkipNone,
		Data:     map[string]string{},
		UserName: displayName(msg.From),
	}
	if err := services.ReplaceSession(ctx, fb); err != nil {
		return err
	}
	b.send(msg.Chat.ID, textFeedbackPrompt)
	return nil
}

// handleInfoCommand serves the pure-query commands. They are refused
// while an order is being collected so a command typed as a field value
// cannot corrupt the step's expected input.
func (b *Bot) handleInfoCommand(ctx context.Context, chatID int64, cmd string) error {
	sess, err := services.GetSession(ctx, chatID)
	if err != nil {
		return err
	}
	if sess != nil && sess.Mode == models.SessionModeCollect {
		b.send(chatID, textBusy)
		return nil
	}

	switch cmd {
	case "/about":
		b.send(chatID, textAbout)
	case "/contact":
		b.send(chatID, textContact)
	case "/price":
		b.send(chatID, textPrice)
	case "/level":
		count, err := services.CountOrders(ctx, chatID)
		if err != nil {
			return err
		}
		level := services.LoyaltyLevel(count)
		remaining := level*10 - count
		b.send(chatID, fmt.Sprintf(textLevel, level, count, remaining, level+1, level))
	case "/mydeliveries":
		orders, err := services.ListOrders(ctx, chatID, 5)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			b.send(chatID, textNoDeliveries)
			return nil
		}
		var sb strings.Builder
		sb.WriteString(textDeliveriesHeader)
		for _, o := range orders {
			sb.WriteString(fmt.Sprintf("\n%s  %s → %s  (%s)", o.OrderID, o.Pickup, o.Dropoff, o.CreatedAt.Format("2006-01-02")))
			if o.FreeDelivery {
				sb.WriteString("  🎉 free")
			}
		}
		b.send(chatID, sb.String())
	}
	return nil
}

func (b *Bot) handleFieldInput(ctx context.Context, sess *models.Session, text string) error {
	chatID := sess.ChatID
	if sess.Step >= len(formFields) {
		return b.finalize(ctx, sess)
	}
	f := formFields[sess.Step]

	switch f.Kind {
	case KindLocation:
		// Text arrived while a location share is expected.
		b.requestLocation(chatID)
		return nil
	case KindPhone:
		if !validPhone(text) {
			b.send(chatID, textInvalidPhone)
			return nil
		}
	case KindQuantity:
		if !validQuantity(text) {
			b.send(chatID, textInvalidQuantity)
			return nil
		}
	case KindChoice:
		if !validPayment(text) {
			b.requestPayment(chatID)
			return nil
		}
	}

	sess.Data[f.Name] = text

	if f.Kind == KindChoice {
		b.sendRemoveKeyboard(chatID, textSaved)
		if text == paymentReceiver {
			sess.Skip = models.SkipSender
			lo, err := services.GetLastOrder(ctx, chatID)
			if err != nil {
				return err
			}
			if lo != nil {
				prefillSenderSide(sess.Data, lo)
			}
		} else {
			sess.Skip = models.SkipNone
		}
	}

	return b.advance(ctx, sess)
}

func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	sess, err := services.GetSession(ctx, chatID)
	if err != nil {
		return err
	}
	if sess == nil || sess.Mode != models.SessionModeCollect || sess.Step >= len(formFields) {
		b.send(chatID, textTypeStart)
		return nil
	}
	if formFields[sess.Step].Kind != KindLocation {
		// A location we did not ask for: never merged early, just ask
		// for the current field again.
		b.promptField(chatID, sess.Step)
		return nil
	}

	lat := msg.Location.Latitude
	lon := msg.Location.Longitude
	sess.Data["latitude"] = strconv.FormatFloat(lat, 'f', 6, 64)
	sess.Data["longitude"] = strconv.FormatFloat(lon, 'f', 6, 64)

	addr, err := services.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		log.Printf("reverse geocode: %v", err)
	} else {
		sess.Data["full_address"] = addr.FullAddress
		sess.Data["city"] = addr.City
		sess.Data["postcode"] = addr.Postcode
		sess.Data["country"] = addr.Country
	}

	b.sendRemoveKeyboard(chatID, textSaved)
	return b.advance(ctx, sess)
}

// advance moves the session to the next prompt-worthy field or, at the
// end of the form, finalizes within the same update.
func (b *Bot) advance(ctx context.Context, sess *models.Session) error {
	next := nextStep(sess.Step+1, sess.Skip)
	if next >= len(formFields) {
		return b.finalize(ctx, sess)
	}
	sess.Step = next
	if err := services.SaveSession(ctx, sess); err != nil {
		return err
	}
	b.promptField(sess.ChatID, next)
	return nil
}

func (b *Bot) finalize(ctx context.Context, sess *models.Session) error {
	order, err := services.FinalizeOrder(ctx, sess)
	if err != nil {
		return err
	}
	b.send(sess.ChatID, fmt.Sprintf(textOrderAccepted, order.OrderID))
	if order.FreeDelivery {
		b.send(sess.ChatID, textFreeDelivery)
	}

	if phone := sess.Data["receiver_phone"]; phone != "" {
		item := sess.Data["item_description"]
		if err := services.SendSMS(ctx, phone, fmt.Sprintf(smsDeliveryConfirmed, item)); err != nil {
			log.Printf("send sms: %v", err)
		}
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnNewOrder, cbNewOrder),
			tgbotapi.NewInlineKeyboardButtonData(btnDone, cbDone),
		),
	)
	b.sendWithInline(sess.ChatID, textReorderChoice, kb)
	return nil
}

func (b *Bot) promptField(chatID int64, step int) {
	f := formFields[step]
	switch f.Kind {
	case KindLocation:
		b.requestLocation(chatID)
	case KindChoice:
		b.requestPayment(chatID)
	default:
		b.send(chatID, f.Label)
	}
}

func (b *Bot) requestLocation(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation("📍 Share Location"),
		),
	)
	kb.OneTimeKeyboard = true
	b.sendWithReplyKeyboard(chatID, textShareLocation, kb)
}

func (b *Bot) requestPayment(chatID int64) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(paymentSender)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(paymentReceiver)),
	)
	kb.OneTimeKeyboard = true
	b.sendWithReplyKeyboard(chatID, textWhoPays, kb)
}
