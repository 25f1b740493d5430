package models

import "fmt"

type CastMemberRole int

const (
	RoleActor    CastMemberRole = 1
	RoleDirector CastMemberRole = 2
	RoleActress  CastMemberRole = 3
)

var CastMemberRoles = []CastMemberRole{RoleActor, RoleDirector, RoleActress}

func (r CastMemberRole) Valid() bool {
	for _, role := range CastMemberRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r CastMemberRole) String() string {
	switch r {
	case RoleActor:
		return "actor"
	case RoleDirector:
		return "director"
	case RoleActress:
		return "actress"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

type CastMember struct {
	Base
	Name string         `gorm:"size:255;not null;index" json:"name" example:"Fernanda Montenegro"`
	Role CastMemberRole `gorm:"not null" json:"role" example:"1"`
}

func (CastMember) TableName() string {
	return "cast_members"
}
