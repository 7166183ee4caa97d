package models

type AdminAccount struct {
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"passwordHash"`
}
