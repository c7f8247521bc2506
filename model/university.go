package model

// University is the top of the scope chain. Its code is the natural key
// (e.g. "utn"), unique across the whole system including deleted rows: a
// deleted university keeps its code and blocks recreation until restored.
type University struct {
	Base
	Code    string `gorm:"uniqueIndex;not null;type:varchar(100)" json:"university_id"`
	Name    string `gorm:"not null" json:"name"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	Website string `gorm:"type:varchar(255)" json:"website"`
}
