package terminal

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	// codeAlphabet excludes visually ambiguous characters (I, O, 0, 1) so a
	// code read off an admin screen can be typed on a kiosk without guesswork.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultCodeLength gives 32^6 (~10^9) combinations, far more than can be
	// brute-forced inside the bounded validity window.
	DefaultCodeLength = 6

	// MinCodeValidity and MaxCodeValidity bound the exposure window of a code.
	MinCodeValidity = 1 * time.Minute
	MaxCodeValidity = 60 * time.Minute
)

// PairingCode is a single-use voucher that authorizes binding a physical
// device to a terminal. It is terminated by redemption, expiry, or being
// superseded when a new code is issued for the same terminal.
type PairingCode struct {
	ID         uint
	TerminalID uint
	Code       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	UsedAt     *time.Time
	UsedByIP   string
}

// NewPairingCode generates a code for the terminal with the requested
// validity clamped to [MinCodeValidity, MaxCodeValidity].
func NewPairingCode(terminalID uint, validity time.Duration, now time.Time) (*PairingCode, error) {
	if terminalID == 0 {
		return nil, fmt.Errorf("terminal ID is required")
	}

	code, err := generateCode(DefaultCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate pairing code: %w", err)
	}

	return &PairingCode{
		TerminalID: terminalID,
		Code:       code,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ClampValidity(validity)),
	}, nil
}

// ClampValidity bounds a requested validity window to the allowed policy range.
func ClampValidity(validity time.Duration) time.Duration {
	if validity < MinCodeValidity {
		return MinCodeValidity
	}
	if validity > MaxCodeValidity {
		return MaxCodeValidity
	}
	return validity
}

// NormalizeCode canonicalizes user input before lookup. Codes are stored
// upper-case; kiosks may submit them in any case.
func NormalizeCode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

func (p *PairingCode) IsUsed() bool {
	return p.UsedAt != nil
}

func (p *PairingCode) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

func generateCode(length int) (string, error) {
	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = codeAlphabet[num.Int64()]
	}

	return string(result), nil
}
