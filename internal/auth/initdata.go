package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnauthorized возвращается при любой ошибке проверки initData
// Причина (нет подписи, нет метки времени, неверная подпись, просрочено)
// не различается наружу - fail closed
var ErrUnauthorized = errors.New("auth: unauthorized")

// secretKeyDomain фиксированная доменная строка алгоритма Telegram WebApp
const secretKeyDomain = "WebAppData"

// Identity данные пользователя из проверенного initData
type Identity struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	AuthDate   time.Time
}

// initDataUser полезная нагрузка поля "user" внутри initData
type initDataUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Verify проверяет подпись Telegram WebApp initData:
//
//	secret_key = HMAC_SHA256("WebAppData", bot_token)
//	hash       = HMAC_SHA256(secret_key, data_check_string)
//
// где data_check_string - отсортированные по ключу строки "k=v" (без hash),
// соединенные переводом строки. Сравнение подписи выполняется за
// константное время
func Verify(initData, botToken string, maxAge time.Duration, now time.Time) (*Identity, error) {
	if initData == "" {
		return nil, fmt.Errorf("%w: empty init data", ErrUnauthorized)
	}

	params, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed init data", ErrUnauthorized)
	}

	gotHash := params.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrUnauthorized)
	}

	authDateRaw := params.Get("auth_date")
	if authDateRaw == "" {
		return nil, fmt.Errorf("%w: missing auth_date", ErrUnauthorized)
	}
	authDateUnix, err := strconv.ParseInt(authDateRaw, 10, 64)
	if err != nil || authDateUnix <= 0 {
		return nil, fmt.Errorf("%w: bad auth_date", ErrUnauthorized)
	}
	authDate := time.Unix(authDateUnix, 0)

	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, fmt.Errorf("%w: init data too old", ErrUnauthorized)
	}

	if !validSignature(params, gotHash, botToken) {
		return nil, fmt.Errorf("%w: bad signature", ErrUnauthorized)
	}

	identity := &Identity{AuthDate: authDate}
	if userRaw := params.Get("user"); userRaw != "" {
		var u initDataUser
		if err := json.Unmarshal([]byte(userRaw), &u); err != nil || u.ID == 0 {
			return nil, fmt.Errorf("%w: no user", ErrUnauthorized)
		}
		identity.TelegramID = u.ID
		identity.Username = u.Username
		identity.FirstName = u.FirstName
		identity.LastName = u.LastName
	}
	if identity.TelegramID == 0 {
		return nil, fmt.Errorf("%w: no user", ErrUnauthorized)
	}

	return identity, nil
}

func validSignature(params url.Values, gotHash, botToken string) bool {
	dataCheckString := buildDataCheckString(params)

	secretMAC := hmac.New(sha256.New, []byte(secretKeyDomain))
	secretMAC.Write([]byte(botToken))
	secretKey := secretMAC.Sum(nil)

	calcMAC := hmac.New(sha256.New, secretKey)
	calcMAC.Write([]byte(dataCheckString))
	calc := calcMAC.Sum(nil)

	gotBytes, err := hex.DecodeString(gotHash)
	if err != nil {
		return false
	}

	return hmac.Equal(calc, gotBytes)
}

// buildDataCheckString собирает канонический вид: все пары кроме hash,
// отсортированные по ключу, соединенные "\n"
func buildDataCheckString(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}
	return strings.Join(pairs, "\n")
}
