package store

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1000", "-12.5", "585.00", "0.000123", "123456789012345.6789"} {
		d := decimal.RequireFromString(s)
		got := fromNumeric(toNumeric(d))
		if !got.Equal(d) {
			t.Errorf("round trip %s: got %s", s, got)
		}
	}
}

func TestFromNumericInvalid(t *testing.T) {
	if got := fromNumeric(pgtype.Numeric{}); !got.IsZero() {
		t.Fatalf("NULL numeric should read as zero, got %s", got)
	}
	if got := fromNumeric(pgtype.Numeric{NaN: true, Valid: true}); !got.IsZero() {
		t.Fatalf("NaN numeric should read as zero, got %s", got)
	}
}
