package immediate

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/go-drift/immediate/pkg/errors"
)

// parser turns the text of an input into a field value.
type parser func(string) (any, error)

func validationError(kind Kind, input string, err error) error {
	return &errors.ValidationError{Field: kind.String(), Input: input, Err: err}
}

func parseText(s string) (any, error) {
	return s, nil
}

func parseIP(s string) (any, error) {
	if _, err := netip.ParseAddr(strings.TrimSpace(s)); err != nil {
		return nil, validationError(KindIPField, s, err)
	}
	return s, nil
}

func parseInt(s string) (any, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, validationError(KindIntField, s, err)
	}
	return v, nil
}

func parseFloat(s string) (any, error) {
	v, err := parseFloat32(s)
	if err != nil {
		return nil, validationError(KindFloatField, s, err)
	}
	return v, nil
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
