package model

import "strings"

type BusinessProfile struct {
	BaseModel
	UserID              string `db:"user_id"`
	CompanyName         string `db:"company_name"`
	GSTNumber           string `db:"gst_number"`
	PANNumber           string `db:"pan_number"`
	YearOfEstablishment int    `db:"year_of_establishment"`
	BusinessType        string `db:"business_type"`
	Address             string `db:"address"`
	City                string `db:"city"`
	State               string `db:"state"`
	Verified            bool   `db:"verified"`
}

// MaskIdentifier hides all but the last four characters of a tax or
// registration number.
func MaskIdentifier(s string) string {
	const visible = 4
	if len(s) <= visible {
		return s
	}
	return strings.Repeat("*", len(s)-visible) + s[len(s)-visible:]
}
