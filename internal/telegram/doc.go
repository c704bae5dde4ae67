// Package telegram sends game-day messages through the Telegram Bot API.
//
// Messages are plain HTTP requests against the Bot API sendMessage method.
// Authentication requires a bot token (from @BotFather) and a chat ID.
package telegram
