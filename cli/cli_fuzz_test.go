package cli

import (
	"testing"
)

func FuzzParseFlexibleDate(f *testing.F) {
	f.Add("2024-06-01")
	f.Add("2024-06-01T13:45:00")
	f.Add("")
	f.Add("not-a-date")
	f.Add("2024/06/01")
	f.Add("0000-00-00")
	f.Add("9999-12-31")

	f.Fuzz(func(t *testing.T, s string) {
		parseFlexibleDate(s)
	})
}

func FuzzParseFlexibleClock(f *testing.F) {
	f.Add("13:45")
	f.Add("13:45:30")
	f.Add("")
	f.Add("not-a-time")
	f.Add("25:99")

	f.Fuzz(func(t *testing.T, s string) {
		parseFlexibleClock(s)
	})
}
