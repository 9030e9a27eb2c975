package model

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

type TheaterStatus string

const (
	TheaterStatusActive   TheaterStatus = "active"
	TheaterStatusInactive TheaterStatus = "inactive"
)

// Window is a single day's open hours. Close is exclusive: a time equal
// to Close is out of hours.
type Window struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Contains reports whether t falls inside the half-open interval
// [Open, Close). Zero-padded "HH:MM" strings order lexically.
func (w Window) Contains(t string) bool {
	return t >= w.Open && t < w.Close
}

// WeeklyWindows maps weekday name ("Monday".."Sunday") to that day's open
// window. A day absent from the map means the theater is closed that day.
type WeeklyWindows map[string]Window

func (w WeeklyWindows) Value() (driver.Value, error) { return jsonbValue(w) }
func (w *WeeklyWindows) Scan(src interface{}) error  { return jsonbScan(src, w) }

type EquipmentItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type EquipmentList []EquipmentItem

func (e EquipmentList) Value() (driver.Value, error) { return jsonbValue(e) }
func (e *EquipmentList) Scan(src interface{}) error  { return jsonbScan(src, e) }

// OperatingTheater is a bookable, time-windowed resource. Bookings refer
// to it by Name, matched by string equality.
type OperatingTheater struct {
	Base
	TenantID      uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Name          string        `db:"name" json:"name"`
	Capacity      int           `db:"capacity" json:"capacity"`
	Status        TheaterStatus `db:"status" json:"status"`
	Equipment     EquipmentList `db:"equipment" json:"equipment"`
	WeeklyWindows WeeklyWindows `db:"weekly_windows" json:"weekly_windows"`
}

// IsActive reports whether the theater participates in matching.
func (t *OperatingTheater) IsActive() bool {
	return t.Status == TheaterStatusActive
}

type CreateTheaterRequest struct {
	Name          string        `json:"name" validate:"required"`
	Capacity      int           `json:"capacity" validate:"gte=0"`
	Status        TheaterStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Equipment     EquipmentList `json:"equipment"`
	WeeklyWindows WeeklyWindows `json:"weekly_windows"`
}

type UpdateTheaterRequest struct {
	Name          *string        `json:"name"`
	Capacity      *int           `json:"capacity"`
	Status        *TheaterStatus `json:"status"`
	Equipment     *EquipmentList `json:"equipment"`
	WeeklyWindows *WeeklyWindows `json:"weekly_windows"`
}
