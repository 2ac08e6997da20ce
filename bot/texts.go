package bot

// User-facing strings. Bilingual English/Amharic, same register as the
// bot's original announcements.
const (
	textWelcome = "👋 Selam! Welcome to Tolo Delivery.\nሰላም! ወደ ቶሎ ዴሊቨሪ እንኳን በደህና መጡ።\nLet's begin / እንጀምር።"

	textTypeStart       = "Type /start to begin. / እባክዎ /start ይጻፉ ለመጀመር።"
	textCancelled       = "❌ Operation cancelled. / እቅዱ ተሰርዟል።"
	textNothingToCancel = "No operation to cancel. / ምንም እቅድ የለም።"
	textBusy            = "⚠️ Please finish or /cancel your current order first. / እባክዎ መጀመሪያ ያሉትን ትእዛዝ ይጨርሱ ወይም /cancel ይጻፉ።"

	textInvalidPhone    = "⚠️ Invalid Ethiopian phone number. Example: 0912345678 or +251912345678 / እባክዎ ትክክል የኢትዮጵያ ስልክ ቁጥር ያስገቡ።"
	textInvalidQuantity = "⚠️ Please enter a valid quantity (positive number). / እባክዎ ትክክል ቁጥር ያስገቡ።"

	textShareLocation = "📍 Please share your location: / እባክዎ አካባቢዎን ያጋሩ:"
	textWhoPays       = "Who will pay for the delivery? / ከፋዩ ማን ነው?"
	textSaved         = "Saved. / ተመዝግቧል."

	textOrderAccepted = "✅ Delivery saved. Thank you! / እቅድዎ በስኬት ተመዝግቧል።\nOrder ID: %s"
	textFreeDelivery  = "🎉 This delivery is FREE, a thank-you for your loyalty! / ይህ ማድረስ ነፃ ነው!"

	textResumeChoice  = "You already have an order in progress. / በመካከል ያለ ትእዛዝ አለዎት።"
	textReorderChoice = "Would you like to order again? / እንደገና ማዘዝ ይፈልጋሉ?"
	textDoneThanks    = "Thank you for using Tolo Delivery! / ቶሎ ዴሊቨሪን ስለተጠቀሙ እናመሰግናለን!"

	textFeedbackPrompt = "📝 Please type your feedback: / እባክዎ አስተያየትዎን ይጻፉ:"
	textFeedbackThanks = "🙏 Thank you for your feedback! / ስለ አስተያየትዎ እናመሰግናለን!"

	textAbout   = "🚚 Tolo Delivery - fast package delivery around Addis Ababa.\nቶሎ ዴሊቨሪ - ፈጣን የእቃ ማድረስ አገልግሎት በአዲስ አበባ።"
	textContact = "📞 Contact us / እኛን ያግኙ:\nPhone: 0911000000\nTelegram: @ToloDeliverySupport"
	textPrice   = "💰 Delivery price depends on distance. Every 10th-order milestone earns one free delivery.\nዋጋው በርቀት ይወሰናል። በየ10 ትእዛዝ አንድ ነፃ ማድረስ ያገኛሉ።"

	textLevel = "⭐ Your loyalty level: %d (%d orders so far).\n%d more orders until level %d. / የእርስዎ ደረጃ: %d"

	textNoDeliveries     = "You have no deliveries yet. / እስካሁን ምንም ትእዛዝ የለዎትም።"
	textDeliveriesHeader = "📦 Your recent deliveries / የቅርብ ትእዛዞችዎ:"

	smsDeliveryConfirmed = "Dear Customer Item Type: %s is currently being deliverd. Your delivery has been confirmed! Thank you for using Tolo Delivery."
)

// Inline keyboard labels and callback tokens.
const (
	btnStartOver = "🔄 Start over / እንደገና ጀምር"
	btnKeepGoing = "▶️ Keep going / ቀጥል"
	btnNewOrder  = "🆕 New order / አዲስ ትእዛዝ"
	btnDone      = "✔️ Done / ጨርሻለሁ"

	cbStartOver = "start_over"
	cbKeepGoing = "keep_going"
	cbNewOrder  = "new_order"
	cbDone      = "done"
)
