package domain

// UserRecord is the canonical user shape. Field order here fixes the
// serialized order, so re-encoding a canonical record is byte-identical.
type UserRecord struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (u UserRecord) IsZero() bool {
	return u == UserRecord{}
}
