package bot

import "gopkg.in/telebot.v4"

// mainMenu is the single reply keyboard: the bot has no authentication
// layer, every chat sees the same read-only views.
var (
	mainMenu = &telebot.ReplyMarkup{ResizeKeyboard: true}

	btnSearch  = mainMenu.Text("🔍 Find a tool")
	btnActive  = mainMenu.Text("📋 Active issues")
	btnOverdue = mainMenu.Text("⏰ Overdue")
	btnStats   = mainMenu.Text("📊 Statistics")
	btnReport  = mainMenu.Text("📄 Excel report")
)

func init() {
	mainMenu.Reply(
		mainMenu.Row(btnSearch),
		mainMenu.Row(btnActive, btnOverdue),
		mainMenu.Row(btnStats, btnReport),
	)
}
