package core

// normalize.go assembles one PropertyParams from one raw CSV row. The
// record is complete when BuildProperty returns and is never mutated
// afterwards.

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// BuildProperty normalizes a raw row into insert parameters. The caller
// has already verified the property number is present; everything else
// degrades to absent or falls back rather than failing.
//
// Resolution order matters in one place only: the status identifier must be
// known before the total price can be routed to the sale or rental field.
func BuildProperty(row []string, idx HeaderIndex, m *Mappings, run RunContext, now time.Time) PropertyParams {
	number := Cell(row, idx, ColPropertyNumber)

	typeID := m.MapType(Cell(row, idx, ColType))
	statusID := m.MapStatus(Cell(row, idx, ColUnitFor))
	finishingID := m.MapFinishing(Cell(row, idx, ColFinished))
	regionID := m.MapRegion(Cell(row, idx, ColArea))

	rawPrice := RawCell(row, idx, ColTotalPrice)
	totalPrice := ParsePrice(rawPrice)
	currencyID := m.MapCurrency(DetectCurrency(rawPrice, totalPrice))

	// Land and total area carry the same measurement in these exports;
	// "Land area" wins over the alternate "SPACE" column.
	landArea := ParsePrice(Cell(row, idx, ColLandArea))
	if !landArea.Valid {
		landArea = ParsePrice(Cell(row, idx, ColSpace))
	}

	// Rooms and bedrooms derive from the same parsed count.
	rooms := ParseCount(Cell(row, idx, ColRooms))

	building := Cell(row, idx, ColBuilding)
	if building == "" {
		building = Cell(row, idx, ColBuildingName)
	}

	createdAt := ParseDate(Cell(row, idx, ColCreatedTime))
	if !createdAt.Valid {
		createdAt = pgtype.Timestamp{Time: now, Valid: true}
	}
	updatedAt := ParseDate(Cell(row, idx, ColModifiedTime))
	if !updatedAt.Valid {
		updatedAt = pgtype.Timestamp{Time: now, Valid: true}
	}

	return PropertyParams{
		CompanyID:      run.CompanyID,
		CreatedByID:    run.UserID,
		PropertyNumber: number,

		TypeID:            typeID,
		StatusID:          statusID,
		FinishingStatusID: finishingID,
		RegionID:          regionID,
		CurrencyID:        currencyID,

		PropertyName: Truncate(Cell(row, idx, ColPropertyName), MaxPropertyName),
		Title:        fmt.Sprintf("Property %s", number),
		Description:  Truncate(Cell(row, idx, ColDescription), MaxDescription),
		BuildingName: Truncate(building, MaxBuildingName),
		UnitNumber:   Truncate(Cell(row, idx, ColUnitNo), MaxUnitNumber),
		FloorNumber:  Truncate(Cell(row, idx, ColFloors), MaxFloorNumber),

		LandArea:           landArea,
		TotalArea:          landArea,
		RoomsCount:         rooms,
		BedroomsCount:      rooms,
		SalePrice:          routePrice(totalPrice, statusID, m.StatusIDFor(CodeForSale)),
		RentalPriceMonthly: routePrice(totalPrice, statusID, m.StatusIDFor(CodeForRent)),

		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// routePrice populates the price only when the resolved status identifier
// matches the wanted one. At most one of the sale and rental fields ends up
// populated; with neither status resolved, both stay absent.
func routePrice(price pgtype.Numeric, statusID, wantID pgtype.Text) pgtype.Numeric {
	if !price.Valid || !statusID.Valid || !wantID.Valid {
		return pgtype.Numeric{Valid: false}
	}
	if statusID.String != wantID.String {
		return pgtype.Numeric{Valid: false}
	}
	return price
}
