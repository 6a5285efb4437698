package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"farmingpro/internal/interfaces"
	"farmingpro/internal/models"

	"github.com/go-redis/redis_rate/v10"
	"github.com/samber/do"
)

var reTelegramLink = regexp.MustCompile(`^(?:|(https?:\/\/)?(|www)[.]?((t|telegram)\.me)\/)([a-zA-Z0-9_+-]+)$`)

var joinedChatStatuses = map[string]bool{
	"member":        true,
	"restricted":    true,
	"creator":       true,
	"administrator": true,
}

type TelegramRespError struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

type TelegramChatMemberResp struct {
	*TelegramRespError
	OK     bool                `json:"ok"`
	Result *TelegramChatMember `json:"result"`
}

type TelegramChatMember struct {
	User struct {
		ID        int64  `json:"id"`
		IsBot     bool   `json:"is_bot"`
		FirstName string `json:"first_name"`
		Username  string `json:"username"`
	} `json:"user"`
	Status string `json:"status"`
}

// TelegramTaskVerifier checks channel membership through the Bot API. Tasks of
// other categories are trusted.
type TelegramTaskVerifier struct {
	*ServiceHTTP
	limiter interfaces.Limiter
	token   string
	baseURL string
}

func NewTelegramTaskVerifier(container *do.Injector) (*TelegramTaskVerifier, error) {
	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	baseURL := vs["TELEGRAM_API_BASE_URL"]
	if baseURL == "" {
		baseURL = TELEGRAM_API_BASE_URL
	}

	return &TelegramTaskVerifier{&ServiceHTTP{}, limiter, vs["BOT_TOKEN"], baseURL}, nil
}

func (verifier *TelegramTaskVerifier) Verify(ctx context.Context, accountID int64, task *models.Task) (bool, error) {
	if task.Category != models.TaskCategoryTelegram {
		return true, nil
	}

	err := verifier.limiter.Allow(ctx, LimitKeyAccountTaskVerify(accountID), redis_rate.PerMinute(TELEGRAM_TASK_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return false, err
	}

	matches := reTelegramLink.FindStringSubmatch(task.URL)
	if len(matches) != 6 {
		return false, errors.New("invalid telegram link")
	}
	channel := matches[5]

	member, err := verifier.apiChatMember(accountID, channel)
	if err != nil {
		return false, fmt.Errorf("%w: unable to get chat member (%d: %s)", err, accountID, channel)
	}

	return joinedChatStatuses[member.Status], nil
}

func (verifier *TelegramTaskVerifier) apiChatMember(userID int64, channel string) (*TelegramChatMember, error) {
	resp, err := verifier.httpClient(0).Get(
		fmt.Sprintf("%s/bot%s/getChatMember?chat_id=@%s&user_id=%d", verifier.baseURL, verifier.token, channel, userID),
		http.Header{},
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body TelegramChatMemberResp
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return nil, err
	}

	if !body.OK || body.Result == nil {
		if body.TelegramRespError != nil {
			return nil, errors.New(body.Description)
		}
		return nil, errors.New("empty telegram response")
	}

	return body.Result, nil
}
