package models

import "time"

// Inquiry statuses. PENDING→REPLIED is system-triggered the moment an admin
// reply is stored; REPLIED→CLOSED is an explicit admin action.
const (
	InquiryStatusPending = "PENDING"
	InquiryStatusReplied = "REPLIED"
	InquiryStatusClosed  = "CLOSED"
)

// ValidInquiryStatus reports whether s is one of the enumerated statuses.
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusPending, InquiryStatusReplied, InquiryStatusClosed:
		return true
	}
	return false
}

// InquiryModel is a customer question. AdminReply, Status, RepliedAt and
// RepliedBy change together: storing a non-empty reply flips the row to
// REPLIED with the reply timestamp and the acting admin's email in one
// update.
type InquiryModel struct {
	Base
	Name      string     `json:"name"       gorm:"not null"`
	Email     string     `json:"email"      gorm:"not null"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"    gorm:"type:text;not null"`
	Status    string     `json:"status"     gorm:"default:PENDING;index"`
	AdminReply string    `json:"admin_reply" gorm:"type:text"`
	RepliedAt *time.Time `json:"replied_at"`
	RepliedBy string     `json:"replied_by"`
}

func (InquiryModel) TableName() string { return "inquiries" }
