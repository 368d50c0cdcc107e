package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SpaceStatus string

const (
	SpaceStatusAvailable SpaceStatus = "available"
	SpaceStatusOccupied  SpaceStatus = "occupied"
	SpaceStatusReserved  SpaceStatus = "reserved"
)

// IsValid reports whether s is a known spot status
func (s SpaceStatus) IsValid() bool {
	switch s {
	case SpaceStatusAvailable, SpaceStatusOccupied, SpaceStatusReserved:
		return true
	}
	return false
}

// LayoutSlot adalah satu posisi parkir, e.g. {"id": "A3", "status": "available"}
type LayoutSlot struct {
	ID     string      `json:"id"`
	Status SpaceStatus `json:"status"`
}

// LayoutRow adalah satu baris slot dengan prefix label ("A", "B", ...)
type LayoutRow struct {
	Prefix string       `json:"prefix"`
	Slots  []LayoutSlot `json:"slots"`
}

// ParkingLayout adalah sub-area (khu) milik owner di dalam parking lot.
// Rows disimpan sebagai JSONB di database. Urutan layout per lot mengikuti
// created_at supaya index di SpaceRef stabil.
type ParkingLayout struct {
	ID           uuid.UUID   `db:"id"`
	ParkingLotID uuid.UUID   `db:"parking_lot_id"`
	Name         string      `db:"name"`
	Rows         []LayoutRow `db:"rows"`
	CreatedAt    time.Time   `db:"created_at"`
}

// SpaceRef adalah alamat composite sebuah slot: {layoutIdx}_{rowIdx}_{slotIdx},
// di-resolve terhadap daftar layout milik lot (urutan created_at).
type SpaceRef struct {
	LayoutIdx int
	RowIdx    int
	SlotIdx   int
}

func (ref SpaceRef) String() string {
	return fmt.Sprintf("%d_%d_%d", ref.LayoutIdx, ref.RowIdx, ref.SlotIdx)
}

// ParseSpaceRef parses "0_1_2" into a SpaceRef
func ParseSpaceRef(spaceID string) (SpaceRef, error) {
	parts := strings.Split(spaceID, "_")
	if len(parts) != 3 {
		return SpaceRef{}, fmt.Errorf("invalid space ID format %q", spaceID)
	}

	idx := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return SpaceRef{}, fmt.Errorf("invalid space ID format %q", spaceID)
		}
		idx[i] = n
	}

	return SpaceRef{LayoutIdx: idx[0], RowIdx: idx[1], SlotIdx: idx[2]}, nil
}

// ResolveSlot mengembalikan pointer ke slot yang dirujuk ref, supaya caller
// bisa mutate status lalu simpan ulang rows layout-nya.
func ResolveSlot(layouts []*ParkingLayout, ref SpaceRef) (*ParkingLayout, *LayoutSlot, error) {
	if ref.LayoutIdx >= len(layouts) {
		return nil, nil, fmt.Errorf("layout %d not found", ref.LayoutIdx)
	}

	layout := layouts[ref.LayoutIdx]
	if ref.RowIdx >= len(layout.Rows) {
		return nil, nil, fmt.Errorf("row %d not found in layout %s", ref.RowIdx, layout.Name)
	}

	row := &layout.Rows[ref.RowIdx]
	if ref.SlotIdx >= len(row.Slots) {
		return nil, nil, fmt.Errorf("slot %d not found in row %s", ref.SlotIdx, row.Prefix)
	}

	return layout, &row.Slots[ref.SlotIdx], nil
}

// CountAvailableSlots menghitung ulang agregat available_spots untuk satu lot.
// Invariant: lot.AvailableSpots == CountAvailableSlots(layouts) setiap saat.
func CountAvailableSlots(layouts []*ParkingLayout) int {
	count := 0
	for _, layout := range layouts {
		for _, row := range layout.Rows {
			for _, slot := range row.Slots {
				if slot.Status == SpaceStatusAvailable {
					count++
				}
			}
		}
	}
	return count
}

// SlotNumericSuffix mengambil angka dari slot ID untuk sort order display
// ("A12" -> 12). Karakter non-digit dibuang; tanpa digit sama sekali -> 0.
func SlotNumericSuffix(slotID string) int {
	var digits strings.Builder
	for _, r := range slotID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
