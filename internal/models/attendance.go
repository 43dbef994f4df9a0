package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatus describes how a working day was recorded
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
)

// Attendance is one user's check-in/out for one day
type Attendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date,priority:1" json:"user_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date,priority:2" json:"date"`
	CheckIn   time.Time        `gorm:"not null" json:"check_in"`
	CheckOut  *time.Time       `json:"check_out,omitempty"`
	Status    AttendanceStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Attendance model
func (Attendance) TableName() string {
	return "attendance"
}

// BeforeCreate assigns a new UUID when none is set
func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// LeaveKind is the length of a leave request
type LeaveKind string

const (
	LeaveFull LeaveKind = "full"
	LeaveHalf LeaveKind = "half"
)

// LeaveStatus is the review state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest asks for a full or half day off on one date
type LeaveRequest struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	Date       time.Time   `gorm:"type:date;index;not null" json:"date"`
	Kind       LeaveKind   `gorm:"size:10;not null" json:"kind"`
	Reason     string      `gorm:"size:500" json:"reason"`
	Status     LeaveStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReviewedBy *uuid.UUID  `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for LeaveRequest model
func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// BeforeCreate assigns a new UUID when none is set
func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
