package domain

// Dump is the bulk interchange format. The seed admin is never part of Users.
//
// A nil slice means the key was absent from an imported document and the
// corresponding collection is left untouched.
type Dump struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}
