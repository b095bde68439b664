package rates

import (
	"testing"
	"time"
)

func TestDayTypeFor(t *testing.T) {
	tests := []struct {
		date string
		want DayType
	}{
		{"2025-06-15", DayStandard}, // Sunday
		{"2025-06-16", DayStandard}, // Monday
		{"2025-06-17", DayStandard}, // Tuesday
		{"2025-06-18", DayStandard}, // Wednesday
		{"2025-06-19", DayPremium},  // Thursday
		{"2025-06-20", DayPremium},  // Friday
		{"2025-06-21", DayPremium},  // Saturday
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			if got := DayTypeFor(date); got != tt.want {
				t.Errorf("DayTypeFor(%s) = %s, want %s", tt.date, got, tt.want)
			}
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		size int
		want PartyBand
	}{
		{1, Band1to2},
		{2, Band1to2}, // boundary value falls into the lower band
		{3, Band3to4},
		{4, Band3to4},
		{5, Band5to6},
		{8, Band7to8},
		{9, Band9to11},
		{11, Band9to11},
		{12, Band12to14},
		{14, Band12to14},
		{15, Band12to14}, // above top band clamps, caller validates range
		{0, Band1to2},    // below 1 clamps to bottom band
		{-3, Band1to2},
	}
	for _, tt := range tests {
		if got := BandFor(tt.size); got != tt.want {
			t.Errorf("BandFor(%d) = %s, want %s", tt.size, got.Label(), tt.want.Label())
		}
	}
}

func TestWaitBandFor(t *testing.T) {
	tests := []struct {
		size int
		want WaitBand
	}{
		{1, WaitBand1to4},
		{4, WaitBand1to4},
		{5, WaitBand5to8},
		{8, WaitBand5to8},
		{9, WaitBand9to14},
		{14, WaitBand9to14},
		{20, WaitBand9to14},
	}
	for _, tt := range tests {
		if got := WaitBandFor(tt.size); got != tt.want {
			t.Errorf("WaitBandFor(%d) = %s, want %s", tt.size, got.Label(), tt.want.Label())
		}
	}
}

func TestSharedTourRuns(t *testing.T) {
	tbl := Default()

	friday, _ := time.Parse("2006-01-02", "2025-06-20")
	if !tbl.SharedTourRuns(friday) {
		t.Error("expected shared tour to run on Friday")
	}
	tuesday, _ := time.Parse("2006-01-02", "2025-06-17")
	if tbl.SharedTourRuns(tuesday) {
		t.Error("expected no shared tour on Tuesday")
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default table should validate: %v", err)
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	t.Run("negative rate", func(t *testing.T) {
		tbl := Default()
		tbl.WineTourHourly[DayStandard][Band1to2] = -1
		if err := tbl.Validate(); err == nil {
			t.Error("expected error for negative rate")
		}
	})
	t.Run("band coverage mismatch", func(t *testing.T) {
		tbl := Default()
		tbl.MaxGuests = 20
		if err := tbl.Validate(); err == nil {
			t.Error("expected error for max guests beyond band coverage")
		}
	})
	t.Run("tax rate out of range", func(t *testing.T) {
		tbl := Default()
		tbl.TaxRate = 1.2
		if err := tbl.Validate(); err == nil {
			t.Error("expected error for tax rate >= 1")
		}
	})
	t.Run("deposit percent out of range", func(t *testing.T) {
		tbl := Default()
		tbl.DepositPercent = 130
		if err := tbl.Validate(); err == nil {
			t.Error("expected error for deposit percent > 100")
		}
	})
}
