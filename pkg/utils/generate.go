package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"strconv"
	"time"
)

// ==================== TOKEN ====================

// GenerateSessionToken membuat bearer token random 64 karakter hex
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// ==================== BOOKING CODE ====================

func GenerateBookingCode() string {
	now := time.Now()

	// Format: PARK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", mrand.Intn(10000))

	return fmt.Sprintf("PARK-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== QUERY PARAMS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
