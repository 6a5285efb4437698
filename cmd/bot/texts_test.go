package main

import (
	"net/url"
	"testing"

	"farmingpro/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUSDT(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"5":          "5",
		"120.00":     "120",
		"1234.5":     "1,234.5",
		"1234567.89": "1,234,567.89",
		"0.005":      "0.01",
		"-0.5":       "-0.5",
		"-2500":      "-2,500",
	}

	for in, expected := range cases {
		assert.Equal(t, expected, formatUSDT(decimal.RequireFromString(in)), in)
	}
}

func TestReferralLink(t *testing.T) {
	link := referralLink("usdtm1nerr_bot", 42)
	assert.Equal(t, "https://t.me/usdtm1nerr_bot?start=ref_42", link)

	share, err := url.Parse(shareURL(link))
	require.NoError(t, err)
	assert.Equal(t, link, share.Query().Get("url"))
	assert.Equal(t, textShareInvite, share.Query().Get("text"))
}

func TestTexts(t *testing.T) {
	account := &models.Account{
		Balance:          decimal.RequireFromString("1460"),
		TotalEarned:      decimal.RequireFromString("1260"),
		ReferralEarnings: decimal.Zero,
		TotalDeposited:   decimal.RequireFromString("300"),
		TotalWithdrawn:   decimal.RequireFromString("50"),
		FarmingRate:      decimal.RequireFromString("120.00"),
		BoostMultiplier:  decimal.RequireFromString("2.00"),
	}

	assert.Contains(t, textBalance(account), "<b>Current:</b> 1,460 USDT")
	assert.Contains(t, textBalance(account), "<b>Total Withdrawn:</b> 50 USDT")
	assert.Contains(t, textFarm(account), "<b>Boost:</b> 2x")
	assert.Contains(t, textWelcomeBack(account), "1,260 USDT")
	assert.Contains(t, textWelcome(account.FarmingRate), "120 USDT/hour")

	stats := &models.ReferralStats{Level1: 3, Level2: 1}
	commissions := [models.MaxReferralLevel]decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(5),
		decimal.NewFromInt(2),
	}
	text := textReferral("https://t.me/bot?start=ref_1", account, stats, commissions)
	assert.Contains(t, text, "• Level 1: 3 users (10%)")
	assert.Contains(t, text, "• Level 3: 0 users (2%)")
}
