package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"
	"github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/util"
	apperrors "github.com/jaehyuk-choi/coupang-hotdeal-bot/pkg/errors"
)

const maxSendRetries = 2

// wonPrinter renders integer prices with thousands separators (12,345).
var wonPrinter = message.NewPrinter(language.Korean)

// Client sends deal notifications to a Telegram chat. Sends are paced by a
// rate limiter so a burst of deals does not trip Telegram's flood control.
type Client struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
}

func New(token string, chatID int64, sendInterval time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	if sendInterval <= 0 {
		sendInterval = time.Millisecond
	}
	return &Client{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(sendInterval), 1),
	}, nil
}

// Send delivers one deal message. A failure after retries is a send error;
// the caller decides whether to continue with the remaining deals.
func (c *Client) Send(ctx context.Context, deal models.Deal) error {
	if err := c.send(ctx, FormatDeal(deal)); err != nil {
		return apperrors.NewSend(deal.Title, "message delivery failed", err)
	}
	return nil
}

// SendHeader announces the run before the individual deal messages.
func (c *Client) SendHeader(ctx context.Context, n int) error {
	if err := c.send(ctx, FormatHeader(time.Now(), n)); err != nil {
		return apperrors.NewSend("header", "message delivery failed", err)
	}
	return nil
}

// SendFooter closes the run with the stock disclaimer.
func (c *Client) SendFooter(ctx context.Context) error {
	if err := c.send(ctx, footerText); err != nil {
		return apperrors.NewSend("footer", "message delivery failed", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	return util.RetryWithBackoff(ctx, maxSendRetries, func(attempt int) error {
		_, err := c.bot.Send(msg)
		return err
	})
}

const footerText = "위 상품들은 재고 소진 시 종료될 수 있습니다."

// FormatDeal renders one deal as a Telegram HTML message.
func FormatDeal(deal models.Deal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔥 <b>%s</b>\n\n", html.EscapeString(deal.Title))
	fmt.Fprintf(&b, "💰 <b>%s원</b> (원가: %s원)\n", formatWon(deal.Price), formatWon(deal.OriginalPrice))
	fmt.Fprintf(&b, "🏷️ <b>%d%% 할인</b>\n\n", deal.DiscountPercent)
	fmt.Fprintf(&b, "📁 %s\n", html.EscapeString(deal.Category))
	fmt.Fprintf(&b, "🔗 <a href=\"%s\">구매 링크</a>", deal.Link)
	return b.String()
}

// FormatHeader renders the run announcement.
func FormatHeader(now time.Time, n int) string {
	return fmt.Sprintf("📢 <b>%s 쿠팡 핫딜 TOP %d</b>", now.Format("2006년 01월 02일 15시"), n)
}

func formatWon(n int) string {
	return wonPrinter.Sprintf("%d", n)
}
