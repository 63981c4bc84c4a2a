package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid skill tags. These double as the service types a technician can be
// scheduled for.
var ValidSkills = []string{"Oil Change", "Brake Repair", "Battery Test"}

// Lowercase weekday names accepted as availability tags.
var ValidDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// Technician represents a registered technician profile.
type Technician struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	LastName     string             `bson:"last_name" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	Credential   primitive.ObjectID `bson:"credential" json:"credential"`
	Skills       []string           `bson:"skills" json:"skills"`
	Availability []string           `bson:"availability" json:"availability"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// FullName returns the technician's display name, denormalized onto
// services at scheduling time.
func (t *Technician) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}

// AvailableOn reports whether the technician works on the given lowercase
// weekday name.
func (t *Technician) AvailableOn(day string) bool {
	day = strings.ToLower(strings.TrimSpace(day))
	for _, d := range t.Availability {
		if d == day {
			return true
		}
	}
	return false
}

// StringList unmarshals from either a JSON string or an array of strings.
// Registration clients send both forms ("skill": "Oil Change" and
// "skills": ["Oil Change"]).
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(many)
	return nil
}

// RegisterRequest represents a technician registration request.
type RegisterRequest struct {
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirmPassword"`
	Skills          StringList `json:"skills"`
	Skill           StringList `json:"skill"`
	Availability    StringList `json:"availability"`
}

// AllSkills merges the singular and plural skill fields.
func (r *RegisterRequest) AllSkills() []string {
	return append([]string(r.Skills), []string(r.Skill)...)
}
