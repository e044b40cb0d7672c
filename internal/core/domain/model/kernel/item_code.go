package kernel

import (
	"fmt"
	"strings"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// maxItemCodeLength bounds the normalized code to the column width used
// by the pick line and shipment line tables.
const maxItemCodeLength = 64

// ItemCode is a value object identifying a warehouse item (the scanned
// barcode value). Codes are normalized on construction: surrounding
// whitespace is stripped and letters are upper-cased, so that two
// scanners reading the same physical barcode always produce equal codes.
//
// ItemCode is immutable; the zero value is invalid and fails Validate.
type ItemCode struct {
	value string
}

// NewItemCode creates a validated ItemCode from a raw scanner string.
//
// Returns an error when the trimmed code is empty or longer than the
// supported column width.
func NewItemCode(raw string) (ItemCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return ItemCode{}, errs.NewValueIsRequiredError("itemCode")
	}
	if len(normalized) > maxItemCodeLength {
		return ItemCode{}, errs.NewValueIsInvalidErrorWithCause("itemCode",
			fmt.Errorf("%q is longer than %d characters", normalized, maxItemCodeLength))
	}
	return ItemCode{value: normalized}, nil
}

// Validate reports whether the ItemCode was created via NewItemCode.
func (c ItemCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("itemCode")
	}
	return nil
}

// String returns the normalized code value.
func (c ItemCode) String() string {
	return c.value
}

// IsEqual compares two item codes by their normalized value.
func (c ItemCode) IsEqual(other ItemCode) bool {
	return c.value == other.value
}
