package bot

import (
	"strconv"
	"strings"

	"tolo-telegram/models"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindPhone
	KindQuantity
	KindLocation
	KindChoice
)

// FieldSide marks which half of the form a field belongs to. A whole
// side can be skipped on a reorder when its values are already known.
type FieldSide int

const (
	SideNone FieldSide = iota
	SideSender
	SideReceiver
)

type Field struct {
	Name  string
	Label string
	Kind  FieldKind
	Side  FieldSide
}

// The delivery form. Order is fixed; field names are stable keys in
// session data and the order ledger.
var formFields = []Field{
	{Name: "pickup", Label: "Enter pickup location: / መነሻ ቦታን ያስገቡ:", Kind: KindText, Side: SideSender},
	{Name: "sender_phone", Label: "Enter sender's phone number: / የላኪውን ስልክ ቁጥር ያስገቡ:", Kind: KindPhone, Side: SideSender},
	{Name: "dropoff", Label: "Enter drop-off location: / መድረሻ ቦታን ያስገቡ:", Kind: KindText, Side: SideReceiver},
	{Name: "receiver_phone", Label: "Enter receiver's phone number: / የተቀባዩን ስልክ ቁጥር ያስገቡ:", Kind: KindPhone, Side: SideReceiver},
	{Name: "location_marker", Label: "📍 Please share your location: / እባክዎ አካባቢዎን ያካፍሉ:", Kind: KindLocation, Side: SideNone},
	{Name: "payment", Label: textWhoPays, Kind: KindChoice, Side: SideNone},
	{Name: "item_description", Label: "Enter item description: / የእቃውን መግለጫ ያስገቡ:", Kind: KindText, Side: SideNone},
	{Name: "quantity", Label: "Enter quantity: / ብዛትን ያስገቡ:", Kind: KindQuantity, Side: SideNone},
}

const (
	paymentSender   = "Sender / ላኪ"
	paymentReceiver = "Receiver / ተቀባይ"
)

func fieldSkipped(side FieldSide, skip models.SkipMode) bool {
	switch skip {
	case models.SkipSender:
		return side == SideSender
	case models.SkipReceiver:
		return side == SideReceiver
	}
	return false
}

// nextStep returns the first prompt-worthy index at or after from. Every
// advance path (text input, location input, reorder entry) goes through
// here so skip semantics cannot diverge.
func nextStep(from int, skip models.SkipMode) int {
	i := from
	for i < len(formFields) && fieldSkipped(formFields[i].Side, skip) {
		i++
	}
	return i
}

// validPhone accepts the local format (09xxxxxxxx) or the international
// one (+2519xxxxxxxx).
func validPhone(s string) bool {
	if strings.HasPrefix(s, "09") && len(s) == 10 && allDigits(s) {
		return true
	}
	if strings.HasPrefix(s, "+2519") && len(s) == 13 && allDigits(s[1:]) {
		return true
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func validQuantity(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && allDigits(s) && n > 0
}

func validPayment(s string) bool {
	return s == paymentSender || s == paymentReceiver
}

// prefillSenderSide copies cached pickup/sender phone into data without
// overwriting values the user already entered.
func prefillSenderSide(data map[string]string, lo *models.LastOrder) {
	if _, ok := data["pickup"]; !ok && lo.Pickup != "" {
		data["pickup"] = lo.Pickup
	}
	if _, ok := data["sender_phone"]; !ok && lo.SenderPhone != "" {
		data["sender_phone"] = lo.SenderPhone
	}
}

func prefillReceiverSide(data map[string]string, lo *models.LastOrder) {
	if _, ok := data["dropoff"]; !ok && lo.Dropoff != "" {
		data["dropoff"] = lo.Dropoff
	}
	if _, ok := data["receiver_phone"]; !ok && lo.ReceiverPhone != "" {
		data["receiver_phone"] = lo.ReceiverPhone
	}
}
