package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:TEST_TOKEN"

// signInitData подписывает параметры так же, как это делает Telegram
func signInitData(t *testing.T, params url.Values, botToken string) string {
	t.Helper()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}
	dcs := strings.Join(pairs, "\n")

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(botToken))
	calcMAC := hmac.New(sha256.New, secretMAC.Sum(nil))
	calcMAC.Write([]byte(dcs))

	params.Set("hash", hex.EncodeToString(calcMAC.Sum(nil)))
	return params.Encode()
}

func validParams(now time.Time) url.Values {
	params := url.Values{}
	params.Set("auth_date", strconv.FormatInt(now.Unix(), 10))
	params.Set("query_id", "AAE1")
	params.Set("user", `{"id":777,"username":"ivan","first_name":"Иван","last_name":"Петров"}`)
	return params
}

func TestVerify_OK(t *testing.T) {
	now := time.Now()
	initData := signInitData(t, validParams(now), testBotToken)

	identity, err := Verify(initData, testBotToken, 24*time.Hour, now)
	require.NoError(t, err)

	assert.Equal(t, int64(777), identity.TelegramID)
	assert.Equal(t, "ivan", identity.Username)
	assert.Equal(t, "Иван", identity.FirstName)
	assert.Equal(t, "Петров", identity.LastName)
}

func TestVerify_Tampered(t *testing.T) {
	now := time.Now()
	initData := signInitData(t, validParams(now), testBotToken)

	// Подменяем id пользователя после подписания
	tampered := strings.Replace(initData, "777", "778", 1)

	_, err := Verify(tampered, testBotToken, 24*time.Hour, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_WrongToken(t *testing.T) {
	now := time.Now()
	initData := signInitData(t, validParams(now), "other:TOKEN")

	_, err := Verify(initData, testBotToken, 24*time.Hour, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Now().Add(-25 * time.Hour)
	initData := signInitData(t, validParams(issued), testBotToken)

	_, err := Verify(initData, testBotToken, 24*time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_FailClosed(t *testing.T) {
	now := time.Now()

	noHash := validParams(now)
	noAuthDate := validParams(now)
	noAuthDate.Del("auth_date")

	tests := []struct {
		name     string
		initData string
	}{
		{name: "empty", initData: ""},
		{name: "garbage", initData: "%zz"},
		{name: "missing hash", initData: noHash.Encode()},
		{name: "missing auth_date", initData: signInitData(t, noAuthDate, testBotToken)},
		{name: "hash not hex", initData: "auth_date=1&hash=zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify(tt.initData, testBotToken, 24*time.Hour, now)
			// Любая ошибка разбора неотличима от неверной подписи
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestVerify_NoUserPayload(t *testing.T) {
	now := time.Now()
	params := validParams(now)
	params.Del("user")
	initData := signInitData(t, params, testBotToken)

	_, err := Verify(initData, testBotToken, 24*time.Hour, now)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
