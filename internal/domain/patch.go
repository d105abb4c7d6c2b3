package domain

import "time"

// UserPatch lists the user fields a partial update may touch. A nil field is left as is.
// FullName, when set, is split into Name and Surname and wins over both.
type UserPatch struct {
	FullName *string
	Name     *string
	Surname  *string
	BirthDay *time.Time
	Accounts *string
}

func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.Name == nil && p.Surname == nil &&
		p.BirthDay == nil && p.Accounts == nil
}
