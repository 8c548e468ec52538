// Package tokengen генерирует короткие токены приглашений, удобные для ручного ввода.
package tokengen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Alphabet без похожих символов (0/O, 1/I/L)
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultLength длина токена приглашения по умолчанию
const DefaultLength = 8

var ErrInvalidLength = errors.New("tokengen: length must be positive")

// Generate возвращает случайный токен заданной длины из Alphabet
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("tokengen: read random: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}

	return string(buf), nil
}

// IsValid проверяет, что токен состоит только из символов Alphabet
func IsValid(token string) bool {
	if token == "" {
		return false
	}
	for _, c := range token {
		found := false
		for _, a := range Alphabet {
			if c == a {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
