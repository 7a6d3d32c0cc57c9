package models

// Sequence is a named atomic counter backing display-number assignment.
// Incrementing it with a single UPDATE avoids the duplicate numbers a
// count-then-write scheme produces under concurrent creates.
type Sequence struct {
	Name  string `gorm:"primaryKey;type:varchar(64)"`
	Value int64
}
