package main

import (
	"fmt"
	"net/url"
	"strings"

	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	textStartFirst  = "❌ Please start the bot first with /start"
	textError       = "❌ Something went wrong. Please try again later."
	textShareLink   = "📤 Share Referral Link"
	textShareInvite = "Join me on Farming Pro and start earning USDT!"

	textHelp = `🆘 <b>Farming Pro Help</b>

<b>Commands:</b>
/start - Start the bot and open app
/farm - Open the farming dashboard
/balance - Check your balance
/referral - View referral stats
/help - Show this help message

<b>Features:</b>
🌱 Farm USDT every 4 hours
📋 Complete social tasks for rewards
👥 3-level referral system
🚀 Boost system for faster farming
💰 Deposit and withdrawal system

<b>Withdrawal Requirements:</b>
• Minimum withdrawal: $12
• First deposit: $5 (to enable withdrawals)
• Deposit $3 for each withdrawal

Click /start to begin farming!`

	textUnknown = `🤖 I don't understand that command.

Use /help to see available commands or click below to open the app:`
)

var printer = message.NewPrinter(language.English)

// formatUSDT renders an amount with thousand separators and at most two
// fraction digits, trailing zeros dropped.
func formatUSDT(amount decimal.Decimal) string {
	amount = amount.Round(2)
	whole := amount.Truncate(0)

	s := printer.Sprintf("%d", whole.IntPart())
	if amount.IsNegative() && whole.IsZero() {
		s = "-" + s
	}

	frac := strings.TrimRight(amount.Sub(whole).Abs().StringFixed(2)[2:], "0")
	if frac != "" {
		s += "." + frac
	}
	return s
}

func referralLink(botUsername string, accountID int64) string {
	return fmt.Sprintf("https://t.me/%s?start=ref_%d", botUsername, accountID)
}

func shareURL(link string) string {
	return fmt.Sprintf("https://t.me/share/url?url=%s&text=%s", url.QueryEscape(link), url.QueryEscape(textShareInvite))
}

func textWelcome(rate decimal.Decimal) string {
	return fmt.Sprintf(`🌱 <b>Welcome to Farming Pro!</b>

Start earning USDT by farming, completing tasks, and referring friends.

⏰ <b>Farming rate:</b> %s USDT/hour
🔗 <b>3-level referral system</b>

Click the button below to open the app:`, formatUSDT(rate))
}

func textWelcomeBack(account *models.Account) string {
	return fmt.Sprintf(`🌱 <b>Welcome back to Farming Pro!</b>

💰 <b>Current balance:</b> %s USDT
📊 <b>Total earned:</b> %s USDT

Click the button below to continue farming:`, formatUSDT(account.Balance), formatUSDT(account.TotalEarned))
}

func textFarm(account *models.Account) string {
	return fmt.Sprintf(`🌱 <b>Farming Pro Dashboard</b>

💰 <b>Balance:</b> %s USDT
⏰ <b>Farming Rate:</b> %s USDT/hour
🚀 <b>Boost:</b> %sx

Click the button below to open the farming app:`, formatUSDT(account.Balance), formatUSDT(account.FarmingRate), account.BoostMultiplier.String())
}

func textBalance(account *models.Account) string {
	return fmt.Sprintf(`💰 <b>Your Balance</b>

💵 <b>Current:</b> %s USDT
📈 <b>Total Earned:</b> %s USDT
👥 <b>Referral Earnings:</b> %s USDT
💎 <b>Total Deposited:</b> %s USDT
📤 <b>Total Withdrawn:</b> %s USDT`,
		formatUSDT(account.Balance),
		formatUSDT(account.TotalEarned),
		formatUSDT(account.ReferralEarnings),
		formatUSDT(account.TotalDeposited),
		formatUSDT(account.TotalWithdrawn),
	)
}

// commissions is indexed by level - 1.
func textReferral(link string, account *models.Account, stats *models.ReferralStats, commissions [models.MaxReferralLevel]decimal.Decimal) string {
	return fmt.Sprintf(`👥 <b>Your Referral Program</b>

🔗 <b>Your referral link:</b>
%s

📊 <b>Referral Stats:</b>
• Level 1: %d users (%s%%)
• Level 2: %d users (%s%%)
• Level 3: %d users (%s%%)

💰 <b>Total referral earnings:</b> %s USDT`,
		link,
		stats.Level1, commissions[0].String(),
		stats.Level2, commissions[1].String(),
		stats.Level3, commissions[2].String(),
		formatUSDT(account.ReferralEarnings),
	)
}
