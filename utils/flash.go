package utils

import (
	"fmt"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	flashKey    = "flash_key"
)

// Flash severities, matching the alert classes used by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type FlashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type flashClaims struct {
	Flashes []FlashMessage `json:"flashes"`
	jwt.StandardClaims
}

// SetFlashKey installs the key used to sign the flash cookie. Without a key
// messages only live for the current request.
func SetFlashKey(c *gin.Context, key []byte) {
	c.Set(flashKey, key)
}

func flashSigningKey(c *gin.Context) []byte {
	key, _ := c.Get(flashKey)
	b, _ := key.([]byte)
	return b
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, category, message string) {
	messages := pendingFlashes(c)
	messages = append(messages, FlashMessage{Category: category, Message: message})
	c.Set(flashCookie, messages)
	writeFlashCookie(c, messages)
}

// ConsumeFlashes returns and clears every queued message.
func ConsumeFlashes(c *gin.Context) []FlashMessage {
	messages := pendingFlashes(c)
	c.Set(flashCookie, []FlashMessage(nil))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return messages
}

func pendingFlashes(c *gin.Context) []FlashMessage {
	if v, ok := c.Get(flashCookie); ok {
		messages, _ := v.([]FlashMessage)
		return messages
	}
	return DecodeFlashes(readCookie(c, flashCookie), flashSigningKey(c))
}

// EncodeFlashes signs messages into a flash cookie value.
func EncodeFlashes(messages []FlashMessage, key []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{Flashes: messages}).SignedString(key)
}

// DecodeFlashes verifies and parses a flash cookie value. Malformed or
// tampered values yield nil.
func DecodeFlashes(value string, key []byte) []FlashMessage {
	if value == "" || len(key) == 0 {
		return nil
	}
	var claims flashClaims
	parsed, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return claims.Flashes
}

func writeFlashCookie(c *gin.Context, messages []FlashMessage) {
	key := flashSigningKey(c)
	if len(key) == 0 {
		return
	}
	value, err := EncodeFlashes(messages, key)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, value, 0, "/", "", false, true)
}

func readCookie(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}
