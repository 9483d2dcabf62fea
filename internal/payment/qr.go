// Package payment builds bank-transfer QR codes in the Czech SPAYD format.
package payment

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrNoAccount = errors.New("bank account not configured")

const (
	maxMessageLen = 60
	qrSize        = 256
)

type Request struct {
	IBAN           string
	Amount         int
	VariableSymbol string
	Message        string
}

// SPAYD renders the Short Payment Descriptor understood by Czech banking apps.
func SPAYD(r Request) (string, error) {
	iban := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(r.IBAN)), " ", "")
	if iban == "" {
		return "", ErrNoAccount
	}
	if r.Amount <= 0 {
		return "", fmt.Errorf("invalid amount %d", r.Amount)
	}

	parts := []string{
		"SPD*1.0",
		"ACC:" + iban,
		fmt.Sprintf("AM:%d.00", r.Amount),
		"CC:CZK",
	}
	if r.VariableSymbol != "" {
		parts = append(parts, "X-VS:"+r.VariableSymbol)
	}
	if msg := sanitize(r.Message); msg != "" {
		parts = append(parts, "MSG:"+msg)
	}
	return strings.Join(parts, "*"), nil
}

func sanitize(s string) string {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "*", " "))
	if len(s) > maxMessageLen {
		s = s[:maxMessageLen]
	}
	return s
}

// PNG encodes the SPAYD payload as a QR image.
func PNG(r Request) ([]byte, error) {
	payload, err := SPAYD(r)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(payload, qrcode.Medium, qrSize)
}
