package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// createTransactionRequest is the body of POST /transactions.
// Amount is in major currency units; the handler converts it to cents.
// Description and category must be present but may be empty.
type createTransactionRequest struct {
	Description *string          `json:"description" validate:"required"`
	Amount      requestAmount    `json:"amount"`
	Type        transaction.Type `json:"type" validate:"required,oneof=income expense"`
	Category    *string          `json:"category" validate:"required"`
	Date        *requestDate     `json:"date,omitempty"`
}

func (req createTransactionRequest) params() (transaction.CreateParams, error) {
	cents, err := transaction.AmountToCents(req.Amount.Decimal)
	if err != nil {
		return transaction.CreateParams{}, err
	}

	p := transaction.CreateParams{
		Description: *req.Description,
		Amount:      cents,
		Type:        req.Type,
		Category:    *req.Category,
	}

	if req.Date != nil {
		p.Date = req.Date.Time
	}

	return p, nil
}

// requestAmount accepts a JSON number or a numeric string.
type requestAmount struct {
	decimal.Decimal
}

func (a *requestAmount) UnmarshalJSON(b []byte) error {
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return &transaction.ValidationError{
			Field:   "amount",
			Message: "amount must be a number",
			Err:     transaction.ErrInvalidAmount,
		}
	}

	return nil
}

// requestDate accepts either a date string or a Unix timestamp in milliseconds.
type requestDate struct {
	time.Time
}

func (d *requestDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		if s == "" {
			return nil
		}

		t, err := transaction.ParseDate(s)
		if err != nil {
			return invalidDate(err)
		}

		d.Time = t

		return nil
	}

	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return invalidDate(fmt.Errorf("%w: %s", transaction.ErrInvalidDate, b))
	}

	d.Time = time.UnixMilli(ms).UTC()

	return nil
}

func invalidDate(err error) error {
	return &transaction.ValidationError{Field: "date", Message: err.Error(), Err: err}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// fieldError turns the first validator failure into a ValidationError.
func fieldError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err
	}

	fe := errs[0]

	msg := fmt.Sprintf("%s is invalid", fe.Field())

	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}

	return &transaction.ValidationError{Field: fe.Field(), Message: msg, Err: err}
}
