package models

import (
	"testing"
	"time"
)

func TestBillingDayFromWeekday(t *testing.T) {
	cases := map[time.Weekday]BillingDay{
		time.Monday:    BillingMon,
		time.Tuesday:   BillingTue,
		time.Wednesday: BillingWed,
		time.Thursday:  BillingThu,
		time.Friday:    BillingFri,
		time.Saturday:  BillingSat,
		time.Sunday:    BillingSun,
	}
	for weekday, want := range cases {
		if got := BillingDayFromWeekday(weekday); got != want {
			t.Fatalf("BillingDayFromWeekday(%s) = %s, want %s", weekday, got, want)
		}
	}
}
