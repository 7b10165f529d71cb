package commuting

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnknownPurpose is returned when a purpose label or dataset value isn't recognised.
var ErrUnknownPurpose = errors.New("unknown commuting purpose")

// Purpose is the commuting purpose category of a flow. Total is a sentinel that
// selects every purpose and never appears in a dataset row.
type Purpose int

const (
	Work Purpose = iota + 1
	Study
	Total
)

// Purposes lists the selectable purposes in display order.
var Purposes = []Purpose{Work, Study, Total}

// Label is the English name shown by selectors.
func (p Purpose) Label() string {
	switch p {
	case Work:
		return "Work"
	case Study:
		return "Study"
	case Total:
		return "Total"
	}
	return ""
}

// Value is the name used in the dataset's motivo column.
func (p Purpose) Value() string {
	switch p {
	case Work:
		return "Lavoro"
	case Study:
		return "Studio"
	case Total:
		return "Totale"
	}
	return ""
}

func (p Purpose) String() string {
	return p.Label()
}

func (p Purpose) Valid() bool {
	return p >= Work && p <= Total
}

// ParsePurpose accepts either the label ("Work") or the dataset value ("Lavoro"),
// case-insensitively.
func ParsePurpose(s string) (Purpose, error) {
	s = strings.TrimSpace(s)
	for _, p := range Purposes {
		if strings.EqualFold(s, p.Label()) || strings.EqualFold(s, p.Value()) {
			return p, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownPurpose, "%q", s)
}

func (p Purpose) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrUnknownPurpose, "%d", int(p))
	}
	return []byte(p.Label()), nil
}

func (p *Purpose) UnmarshalText(b []byte) error {
	parsed, err := ParsePurpose(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
