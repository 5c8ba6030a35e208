package services

import (
	"github.com/cl1024ex/Software-Engineering-1-Assignment/utils"
)

// IsOwner fails closed: an anonymous session owns nothing.
func IsOwner(createdBy int, s *utils.Session) bool {
	if !s.Authenticated() {
		return false
	}
	return createdBy == s.UserID
}

// IsAdmin trusts the flag stored in the session at login.
func IsAdmin(s *utils.Session) bool {
	return s.Authenticated() && s.IsAdmin
}

func requireLogin(s *utils.Session, msg string) error {
	if !s.Authenticated() {
		return forbidden(msg)
	}
	return nil
}

func requireAdmin(s *utils.Session) error {
	if !IsAdmin(s) {
		return forbidden("You are not authorised")
	}
	return nil
}
