package core

import (
	"strings"
	"testing"
	"time"
)

var testRun = RunContext{CompanyID: "tenant-1", UserID: "user-1"}

// buildRow turns a column->value map into a row plus header index, the way
// one CSV record arrives.
func buildRow(cells map[string]string) ([]string, HeaderIndex) {
	header := make([]string, 0, len(cells))
	row := make([]string, 0, len(cells))
	for k, v := range cells {
		header = append(header, k)
		row = append(row, v)
	}
	return row, MakeHeaderIndex(header)
}

func TestBuildProperty_SaleRouting(t *testing.T) {
	m := testMappings()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-001",
		ColType:           "STUDIO",
		ColUnitFor:        "For Sale",
		ColTotalPrice:     "1,200,000",
	})

	p := BuildProperty(row, idx, m, testRun, now)

	if p.PropertyNumber != "P-001" {
		t.Errorf("PropertyNumber = %q, want P-001", p.PropertyNumber)
	}
	if p.Title != "Property P-001" {
		t.Errorf("Title = %q, want %q", p.Title, "Property P-001")
	}
	wantID(t, p.TypeID, "type-studio")
	wantID(t, p.StatusID, "status-sale")

	if !p.SalePrice.Valid {
		t.Fatal("SalePrice absent, want 1200000")
	}
	f, err := p.SalePrice.Float64Value()
	if err != nil || !f.Valid || f.Float64 != 1200000 {
		t.Errorf("SalePrice = %v (err=%v), want 1200000", f, err)
	}
	if p.RentalPriceMonthly.Valid {
		t.Error("RentalPriceMonthly populated on a for-sale record")
	}

	// Total >= threshold and no dollar marker: local currency.
	wantID(t, p.CurrencyID, "cur-egp")

	if p.CompanyID != "tenant-1" || p.CreatedByID != "user-1" {
		t.Errorf("run identity not carried: company=%q user=%q", p.CompanyID, p.CreatedByID)
	}
}

func TestBuildProperty_DollarMarker(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-001",
		ColType:           "STUDIO",
		ColUnitFor:        "For Sale",
		ColTotalPrice:     "85000 dollar",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	wantID(t, p.CurrencyID, "cur-usd")
	if !p.SalePrice.Valid {
		t.Fatal("SalePrice absent, want 85000")
	}
	f, err := p.SalePrice.Float64Value()
	if err != nil || !f.Valid || f.Float64 != 85000 {
		t.Errorf("SalePrice = %v (err=%v), want 85000", f, err)
	}
}

func TestBuildProperty_RentalRouting(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-010",
		ColUnitFor:        "For Rent",
		ColTotalPrice:     "15,000,000",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	if !p.RentalPriceMonthly.Valid {
		t.Fatal("RentalPriceMonthly absent on a for-rent record")
	}
	if p.SalePrice.Valid {
		t.Error("SalePrice populated on a for-rent record")
	}
}

func TestBuildProperty_NeitherStatusNoPrices(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-011",
		ColUnitFor:        "Sold Out",
		ColTotalPrice:     "2,000,000",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	wantID(t, p.StatusID, "status-sold")
	if p.SalePrice.Valid || p.RentalPriceMonthly.Valid {
		t.Error("price routed despite status being neither for-sale nor for-rent")
	}
}

func TestBuildProperty_UnresolvedStatusNoPrices(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-012",
		ColUnitFor:        "????",
		ColTotalPrice:     "2,000,000",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	wantAbsent(t, p.StatusID)
	if p.SalePrice.Valid || p.RentalPriceMonthly.Valid {
		t.Error("price routed despite unresolved status")
	}
}

func TestBuildProperty_DescriptionTruncation(t *testing.T) {
	m := testMappings()
	long := strings.Repeat("d", 2500)

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-020",
		ColDescription:    long,
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	if len(p.Description) != MaxDescription {
		t.Fatalf("len(Description) = %d, want %d", len(p.Description), MaxDescription)
	}
	if p.Description != long[:MaxDescription] {
		t.Error("Description is not the prefix of the input")
	}
}

func TestBuildProperty_AreaFallback(t *testing.T) {
	m := testMappings()

	// Primary column present: SPACE is ignored.
	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-030",
		ColLandArea:       "250",
		ColSpace:          "999",
	})
	p := BuildProperty(row, idx, m, testRun, time.Now())
	f, _ := p.LandArea.Float64Value()
	if !p.LandArea.Valid || f.Float64 != 250 {
		t.Errorf("LandArea = %v, want 250", f.Float64)
	}

	// Primary absent: the alternate column wins.
	row, idx = buildRow(map[string]string{
		ColPropertyNumber: "P-031",
		ColLandArea:       "????",
		ColSpace:          "180",
	})
	p = BuildProperty(row, idx, m, testRun, time.Now())
	f, _ = p.LandArea.Float64Value()
	if !p.LandArea.Valid || f.Float64 != 180 {
		t.Errorf("LandArea = %v, want 180 from fallback", f.Float64)
	}

	// Land and total area carry the same value.
	tf, _ := p.TotalArea.Float64Value()
	if tf.Float64 != f.Float64 {
		t.Errorf("TotalArea = %v, want %v (same as LandArea)", tf.Float64, f.Float64)
	}
}

func TestBuildProperty_RoomsSharedWithBedrooms(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-040",
		ColRooms:          "3 rooms",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	if !p.RoomsCount.Valid || p.RoomsCount.Int32 != 3 {
		t.Errorf("RoomsCount = %+v, want 3", p.RoomsCount)
	}
	if p.BedroomsCount != p.RoomsCount {
		t.Errorf("BedroomsCount = %+v, want same as RoomsCount", p.BedroomsCount)
	}
}

func TestBuildProperty_BuildingFallback(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-050",
		ColBuilding:       "",
		ColBuildingName:   "Tower B",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	if p.BuildingName != "Tower B" {
		t.Errorf("BuildingName = %q, want %q", p.BuildingName, "Tower B")
	}
}

func TestBuildProperty_TimestampFallback(t *testing.T) {
	m := testMappings()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// Parsed dates win.
	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-060",
		ColCreatedTime:    "25-12-2023 14:30:00",
		ColModifiedTime:   "????",
	})
	p := BuildProperty(row, idx, m, testRun, now)

	want := time.Date(2023, 12, 25, 14, 30, 0, 0, time.UTC)
	if !p.CreatedAt.Valid || !p.CreatedAt.Time.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt.Time, want)
	}
	// Unparseable modified time independently falls back to now.
	if !p.UpdatedAt.Valid || !p.UpdatedAt.Time.Equal(now) {
		t.Errorf("UpdatedAt = %v, want now fallback %v", p.UpdatedAt.Time, now)
	}
}

func TestBuildProperty_UnmappedVocabularyStaysAbsent(t *testing.T) {
	m := testMappings()

	row, idx := buildRow(map[string]string{
		ColPropertyNumber: "P-070",
		ColType:           "SPACESHIP",
		ColFinished:       "????",
		ColArea:           "Atlantis",
	})

	p := BuildProperty(row, idx, m, testRun, time.Now())

	wantAbsent(t, p.TypeID)
	wantAbsent(t, p.FinishingStatusID)
	wantAbsent(t, p.RegionID)
}
