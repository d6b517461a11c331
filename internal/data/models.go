package data

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User maps to the User collection (unique username, verbatim password,
// join timestamp). The password field never serializes to JSON; anything
// that crosses the API boundary goes through Safe() instead.
type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username   string        `bson:"username" json:"username"`
	Password   string        `bson:"password" json:"-"`
	DateJoined time.Time     `bson:"date_joined" json:"dateJoined"`
}

// SafeUser is the public projection of a user: id, username and join
// date only. It is computed on every response and never persisted.
type SafeUser struct {
	ID         bson.ObjectID `json:"_id"`
	Username   string        `json:"username"`
	DateJoined time.Time     `json:"dateJoined"`
}

// Safe projects the client-facing shape of a user. The password is
// dropped unconditionally, even for partially-populated query results.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Username:   u.Username,
		DateJoined: u.DateJoined,
	}
}

// UserPatch carries the recognized updatable user fields. Nil means the
// field is absent from the request and must be left untouched.
type UserPatch struct {
	Username *string
	Password *string
}

// Message maps to the Message collection. Messages are immutable once
// created; there is no update or delete operation.
type Message struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Msg         string        `bson:"msg" json:"msg"`
	MsgFrom     string        `bson:"msg_from" json:"msgFrom"`
	MsgDateTime time.Time     `bson:"msg_date_time" json:"msgDateTime"`
}
