package model

// Role names as sent by the upstream auth proxy.
const (
	RoleAdmin  = "admin"
	RoleSafety = "safety"
	RoleComms  = "comms"
)
