package helper

import (
	"errors"
	"fmt"
	"strconv"
	"travel_booking/model"

	"gorm.io/gorm"
)

// SeatLabel builds the printed seat number, e.g. "A3" or "UB2" on the upper
// deck of a sleeper bus.
func SeatLabel(level, row, column int) string {
	prefix := ""
	if level > 1 {
		prefix = "U"
	}
	return fmt.Sprintf("%s%c%d", prefix, 'A'+rune(row-1), column)
}

// ParseSeatLabel inverts SeatLabel. Returns level, row, column.
func ParseSeatLabel(label string) (int, int, int, error) {
	if label == "" {
		return 0, 0, 0, errors.New("empty seat label")
	}
	level := 1
	if label[0] == 'U' {
		level = 2
		label = label[1:]
	}
	if len(label) < 2 || label[0] < 'A' || label[0] > 'Z' {
		return 0, 0, 0, fmt.Errorf("invalid seat label %q", label)
	}
	row := int(label[0]-'A') + 1
	column, err := strconv.Atoi(label[1:])
	if err != nil || column < 1 {
		return 0, 0, 0, fmt.Errorf("invalid seat label %q", label)
	}
	return level, row, column, nil
}

// GenerateBusSeats materializes the physical seats of a bus from its type's
// layout. Last row on the lower deck is marked vip.
func GenerateBusSeats(tx *gorm.DB, bus *model.Bus, busProperty *model.BusProperty) error {
	var seats []model.BusSeat

	for level := 1; level <= busProperty.SeatLevels; level++ {
		for row := 1; row <= busProperty.SeatRows; row++ {
			for column := 1; column <= busProperty.SeatColumns; column++ {
				seatType := "standard"
				if level == 1 && row == busProperty.SeatRows {
					seatType = "vip"
				}
				seats = append(seats, model.BusSeat{
					BusID:      bus.ID,
					SeatNumber: SeatLabel(level, row, column),
					Type:       seatType,
					Level:      level,
					Row:        row,
					Column:     column,
				})
			}
		}
	}

	if len(seats) == 0 {
		return errors.New("bus type has no seat layout")
	}

	return tx.Create(&seats).Error
}

// CreateScheduleSeats copies every seat of the bus into the schedule as a
// sellable unit. One row per (schedule, seat) backed by a unique index.
func CreateScheduleSeats(tx *gorm.DB, scheduleId uint, busId uint) error {
	var seats []model.BusSeat

	if err := tx.Where("bus_id = ?", busId).Find(&seats).Error; err != nil {
		return err
	}

	if len(seats) == 0 {
		return errors.New("bus has no seats")
	}

	var scheduleSeats []model.ScheduleSeat

	for _, seat := range seats {
		scheduleSeats = append(scheduleSeats, model.ScheduleSeat{
			ScheduleID: scheduleId,
			SeatID:     seat.ID,
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.Type,
			Level:      seat.Level,
			Status:     "AVAILABLE",
			HeldBy:     "",
			ExpiredAt:  nil,
		})
	}

	return tx.Create(&scheduleSeats).Error
}
